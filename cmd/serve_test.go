package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets", "records"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "about.html"), []byte("<h1>About</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "records", "people_index.json"), []byte("[]"), 0o600))
	return dir
}

func TestBuildRouter_Health(t *testing.T) {
	h := buildRouter(newSite(t), []string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestBuildRouter_RecordsNoCache(t *testing.T) {
	h := buildRouter(newSite(t), []string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/assets/records/people_index.json", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Equal(t, "[]", w.Body.String())
}

func TestBuildRouter_StaticPage(t *testing.T) {
	h := buildRouter(newSite(t), []string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/about.html", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "About")
}

func TestBuildRouter_Head(t *testing.T) {
	h := buildRouter(newSite(t), []string{"*"})

	req := httptest.NewRequest(http.MethodHead, "/assets/records/people_index.json", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
}

func TestBuildRouter_NotFound(t *testing.T) {
	h := buildRouter(newSite(t), []string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/assets/records/missing.json", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBuildRouter_CORS(t *testing.T) {
	h := buildRouter(newSite(t), []string{"https://example.org"})

	req := httptest.NewRequest(http.MethodGet, "/assets/records/people_index.json", nil)
	req.Header.Set("Origin", "https://example.org")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/assets/records/people_index.json", nil)
	req.Header.Set("Origin", "https://other.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServe_InvalidPort(t *testing.T) {
	useDataDir(t, t.TempDir())

	_, err := execute(t, "serve", "--port", "70000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}
