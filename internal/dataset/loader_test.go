package dataset

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/millionaires/internal/fetcher"
)

const (
	peopleJSON = `[
  {"name":"Alice Smith","state":"NY","city":"Buffalo","desc":"Banker","name_norm":"alice smith","desc_norm":"banker"},
  {"name":"Bob Jones","state":"CA","city":null,"desc":"Railroad","name_norm":"bob jones","desc_norm":"railroad"}
]`
	stateCityJSON = `{"states":[
  {"state":"CA","count":1,"cities":[{"city":null,"count":1}]},
  {"state":"NY","count":1,"cities":[{"city":"Buffalo","count":1}]}
]}`
	industryJSON = `[{"category":"Banking","count":1},{"category":"Railroads","count":1}]`
)

func writeRecords(t *testing.T, files map[Source]string) string {
	t.Helper()
	dir := t.TempDir()
	for src, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, string(src)), []byte(content), 0o644))
	}
	return dir
}

func TestLoader_LoadAll(t *testing.T) {
	dir := writeRecords(t, map[Source]string{
		SourcePeople:    peopleJSON,
		SourceStateCity: stateCityJSON,
		SourceIndustry:  industryJSON,
	})

	idx, err := NewLoader(fetcher.NewFileFetcher(dir)).Load(context.Background(), AllSources...)
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Total())
	assert.Len(t, idx.States(), 2)
	assert.Len(t, idx.Industries(), 2)
	for _, src := range AllSources {
		assert.True(t, idx.Has(src))
	}

	ny, ok := idx.State("NY")
	require.True(t, ok)
	assert.Equal(t, 1, ny.Count)
}

func TestLoader_LoadSubset(t *testing.T) {
	dir := writeRecords(t, map[Source]string{
		SourceStateCity: stateCityJSON,
		SourceIndustry:  industryJSON,
	})

	idx, err := NewLoader(fetcher.NewFileFetcher(dir)).Load(context.Background(), SourceStateCity, SourceIndustry, SourceIndustry)
	require.NoError(t, err)
	assert.False(t, idx.Has(SourcePeople))
	assert.True(t, idx.Has(SourceStateCity))
	assert.Equal(t, 0, idx.Total())
}

func TestLoader_MissingSourceIsAllOrNothing(t *testing.T) {
	dir := writeRecords(t, map[Source]string{
		SourcePeople: peopleJSON,
	})

	idx, err := NewLoader(fetcher.NewFileFetcher(dir)).Load(context.Background(), SourcePeople, SourceStateCity)
	require.Error(t, err)
	assert.Nil(t, idx)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, SourceStateCity, le.Source)
	assert.True(t, IsLoadFailure(err))
}

func TestLoader_SchemaErrorIsLoadFailure(t *testing.T) {
	dir := writeRecords(t, map[Source]string{
		SourcePeople:    `[{"name":"Alice Smith","state":"NY"}]`,
		SourceStateCity: stateCityJSON,
	})

	idx, err := NewLoader(fetcher.NewFileFetcher(dir)).Load(context.Background(), SourcePeople, SourceStateCity)
	require.Error(t, err)
	assert.Nil(t, idx)
	assert.True(t, IsLoadFailure(err))
	assert.True(t, IsSchemaError(err))
}

func TestLoader_UnknownSource(t *testing.T) {
	_, err := NewLoader(fetcher.NewFileFetcher(t.TempDir())).Load(context.Background(), Source("state_totals.json"))
	require.Error(t, err)
	assert.False(t, IsLoadFailure(err))

	_, err = NewLoader(fetcher.NewFileFetcher(t.TempDir())).Load(context.Background())
	require.Error(t, err)
}

// gateFetcher blocks every fetch until all expected names have been requested,
// proving the loader issues them concurrently.
type gateFetcher struct {
	files   map[string]string
	mu      sync.Mutex
	pending int
	ready   chan struct{}
}

func (g *gateFetcher) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	g.mu.Lock()
	g.pending--
	if g.pending == 0 {
		close(g.ready)
	}
	g.mu.Unlock()

	select {
	case <-g.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	content, ok := g.files[name]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func TestLoader_FetchesConcurrently(t *testing.T) {
	g := &gateFetcher{
		files: map[string]string{
			string(SourcePeople):    peopleJSON,
			string(SourceStateCity): stateCityJSON,
			string(SourceIndustry):  industryJSON,
		},
		pending: 3,
		ready:   make(chan struct{}),
	}

	idx, err := NewLoader(g).Load(context.Background(), AllSources...)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Total())
}

func TestLoader_ContextCancelled(t *testing.T) {
	g := &gateFetcher{pending: 2, ready: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx, err := NewLoader(g).Load(ctx, SourcePeople, SourceStateCity, SourceIndustry)
	require.Error(t, err)
	assert.Nil(t, idx)
	assert.True(t, IsLoadFailure(err))
}
