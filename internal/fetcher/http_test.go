package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assets/records/industry_totals.json", r.URL.Path)
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		assert.Equal(t, "millionaires-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	f, err := NewHTTPFetcher(srv.URL+"/assets/records", HTTPOptions{UserAgent: "millionaires-test"})
	require.NoError(t, err)

	body, err := f.Fetch(context.Background(), "industry_totals.json")
	require.NoError(t, err)
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestHTTPFetcher_NonOK(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f, err := NewHTTPFetcher(srv.URL, HTTPOptions{})
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), "people_index.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 503")
	assert.Equal(t, int32(1), hits.Load(), "failed requests are not retried")
}

func TestHTTPFetcher_InvalidBase(t *testing.T) {
	_, err := NewHTTPFetcher("ftp://example.com/records", HTTPOptions{})
	require.Error(t, err)
}

func TestHTTPFetcher_URL(t *testing.T) {
	f, err := NewHTTPFetcher("https://example.com/assets/records/", HTTPOptions{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/assets/records/people_index.json", f.URL("people_index.json"))
}

func TestFileFetcher_Fetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "people_index.json"), []byte(`[]`), 0o644))

	f := NewFileFetcher(dir)
	body, err := f.Fetch(context.Background(), "people_index.json")
	require.NoError(t, err)
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = f.Fetch(context.Background(), "missing.json")
	require.Error(t, err)
}

func TestFileFetcher_RejectsEscapingNames(t *testing.T) {
	f := NewFileFetcher(t.TempDir())
	for _, name := range []string{"", "../secret.json", "/etc/passwd", "a/../../b.json", `..\x.json`} {
		_, err := f.Fetch(context.Background(), name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestNew(t *testing.T) {
	f, err := New("records", "", Options{})
	require.NoError(t, err)
	assert.IsType(t, &FileFetcher{}, f)

	f, err = New("records", "https://example.com/records", Options{})
	require.NoError(t, err)
	assert.IsType(t, &HTTPFetcher{}, f)

	f, err = New("records", "s3://site/assets/records", Options{S3: S3Options{Region: "us-east-1"}})
	require.NoError(t, err)
	assert.IsType(t, &S3Fetcher{}, f)
}
