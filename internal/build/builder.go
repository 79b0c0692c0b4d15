package build

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/millionaires/internal/config"
	"github.com/sells-group/millionaires/internal/counts"
	"github.com/sells-group/millionaires/internal/dataset"
	"github.com/sells-group/millionaires/internal/fetcher"
	"github.com/sells-group/millionaires/internal/model"
)

// Output file names.
const (
	FilePeople      = string(dataset.SourcePeople)
	FileStateTotals = "state_totals.json"
	FileStateCity   = string(dataset.SourceStateCity)
	FileIndustry    = string(dataset.SourceIndustry)
	FileManifest    = "manifest.json"
)

// ManifestFile records one written file.
type ManifestFile struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
}

// Manifest describes one build.
type Manifest struct {
	BuildID     string         `json:"build_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	People      int            `json:"people"`
	Files       []ManifestFile `json:"files"`
}

// Builder runs the site data build.
type Builder struct {
	cfg   config.BuildConfig
	now   func() time.Time
	newID func() uuid.UUID
}

// NewBuilder creates a Builder for cfg.
func NewBuilder(cfg config.BuildConfig) *Builder {
	return &Builder{cfg: cfg, now: time.Now, newID: uuid.New}
}

func (b *Builder) input(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(b.cfg.DataDir, name)
}

// Run reads the inputs, writes every records file and the manifest into the
// output directory, and loads the result back to confirm it is valid.
func (b *Builder) Run(ctx context.Context) (*Manifest, error) {
	log := zap.L().With(zap.String("out_dir", b.cfg.OutDir))
	start := b.now()

	var (
		people     []model.PersonRecord
		totals     []model.StateTotal
		stateCity  model.StateCityCounts
		industries []model.IndustryAggregate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		people, err = readFile(gctx, b.input(b.cfg.PeopleFile), ReadPeople)
		return err
	})
	g.Go(func() error {
		path := b.input(b.cfg.CountsFile)
		var err error
		totals, err = readFile(gctx, path, counts.ReadStateTotals)
		if err != nil {
			return err
		}
		stateCity, err = readFile(gctx, path, func(r io.Reader) (model.StateCityCounts, error) {
			return ReadStateCityCounts(r, totals)
		})
		return err
	})
	g.Go(func() error {
		var err error
		industries, err = readFile(gctx, b.input(b.cfg.IndustryFile), ReadIndustryTotals)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(b.cfg.OutDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "build: create %s", b.cfg.OutDir)
	}

	outputs := []struct {
		name    string
		payload any
		records int
	}{
		{FilePeople, people, len(people)},
		{FileStateTotals, SortedTotals(totals), len(totals)},
		{FileStateCity, stateCity, len(stateCity.States)},
		{FileIndustry, industries, len(industries)},
	}

	m := &Manifest{
		BuildID:     b.newID().String(),
		GeneratedAt: start.UTC(),
		People:      len(people),
	}
	for _, out := range outputs {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "build: cancelled")
		}
		if err := writeJSON(filepath.Join(b.cfg.OutDir, out.name), out.payload); err != nil {
			return nil, err
		}
		m.Files = append(m.Files, ManifestFile{Name: out.name, Records: out.records})
	}

	if err := Verify(ctx, b.cfg.OutDir); err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(b.cfg.OutDir, FileManifest), m); err != nil {
		return nil, err
	}

	log.Info("build: complete",
		zap.String("build_id", m.BuildID),
		zap.Int("people", len(people)),
		zap.Int("states", len(stateCity.States)),
		zap.Int("industries", len(industries)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return m, nil
}

// Verify loads every records file in dir through the dataset loader.
func Verify(ctx context.Context, dir string) error {
	loader := dataset.NewLoader(fetcher.NewFileFetcher(dir))
	if _, err := loader.Load(ctx, dataset.AllSources...); err != nil {
		return eris.Wrap(err, "build: verify output")
	}
	return nil
}

// ReadManifest reads the manifest written to dir.
func ReadManifest(dir string) (*Manifest, error) {
	f, err := os.Open(filepath.Join(dir, FileManifest))
	if err != nil {
		return nil, eris.Wrap(err, "build: read manifest")
	}
	defer f.Close() //nolint:errcheck

	m, err := fetcher.DecodeJSONObject[Manifest](f)
	if err != nil {
		return nil, eris.Wrap(err, "build: parse manifest")
	}
	return m, nil
}

func readFile[T any](ctx context.Context, path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, eris.Wrap(err, "build: cancelled")
	}
	f, err := os.Open(path)
	if err != nil {
		return zero, eris.Wrapf(err, "build: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	v, err := parse(f)
	if err != nil {
		return zero, eris.Wrapf(err, "build: parse %s", path)
	}
	return v, nil
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "build: encode %s", filepath.Base(path))
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "build: write %s", path)
	}
	return nil
}
