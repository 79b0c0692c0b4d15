package dataset

import (
	"context"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/millionaires/internal/fetcher"
	"github.com/sells-group/millionaires/internal/model"
)

// Loader fetches and validates records files.
type Loader struct {
	fetcher fetcher.Fetcher
}

// NewLoader creates a Loader that reads through f.
func NewLoader(f fetcher.Fetcher) *Loader {
	return &Loader{fetcher: f}
}

// Load fetches every requested source concurrently and returns an index only
// when all of them are fetched and valid. Any failure returns a *LoadError and
// no index; there is no partially loaded state.
func (l *Loader) Load(ctx context.Context, sources ...Source) (*Index, error) {
	sources = uniqueSources(sources)
	if len(sources) == 0 {
		return nil, eris.New("dataset: no sources requested")
	}
	for _, src := range sources {
		if !src.known() {
			return nil, eris.Errorf("dataset: unknown source %q", src)
		}
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	var (
		people     []model.PersonRecord
		states     []model.StateAggregate
		industries []model.IndustryAggregate
	)

	for _, src := range sources {
		switch src {
		case SourcePeople:
			g.Go(func() error {
				var err error
				people, err = load(gctx, l.fetcher, src, decodePeople)
				return err
			})
		case SourceStateCity:
			g.Go(func() error {
				var err error
				states, err = load(gctx, l.fetcher, src, decodeStateCity)
				return err
			})
		case SourceIndustry:
			g.Go(func() error {
				var err error
				industries, err = load(gctx, l.fetcher, src, decodeIndustry)
				return err
			})
		}
	}

	if err := g.Wait(); err != nil {
		zap.L().Warn("dataset load failed", zap.Error(err))
		return nil, err
	}

	idx := newIndex(sources, people, states, industries)
	zap.L().Info("dataset loaded",
		zap.Int("people", len(people)),
		zap.Int("states", len(states)),
		zap.Int("industries", len(industries)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return idx, nil
}

func load[T any](ctx context.Context, f fetcher.Fetcher, src Source, decode func(context.Context, io.Reader) (T, error)) (T, error) {
	var zero T

	body, err := f.Fetch(ctx, string(src))
	if err != nil {
		return zero, &LoadError{Source: src, Err: err}
	}
	defer body.Close() //nolint:errcheck

	v, err := decode(ctx, body)
	if err != nil {
		return zero, &LoadError{Source: src, Err: err}
	}
	return v, nil
}

func uniqueSources(sources []Source) []Source {
	seen := make(map[Source]bool, len(sources))
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
