// Package fetcher opens the published records files and streams delimited source data.
package fetcher

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/rotisserie/eris"
)

// Fetcher defines the interface for opening a named records file.
type Fetcher interface {
	// Fetch opens the named file. The caller closes the returned body.
	Fetch(ctx context.Context, name string) (io.ReadCloser, error)
}

// Options carries the settings of every remote fetcher.
type Options struct {
	HTTP HTTPOptions
	S3   S3Options
}

// New picks a fetcher for the records location: an S3Fetcher for s3://
// locations, an HTTPFetcher for any other baseURL, and a FileFetcher rooted
// at dir when baseURL is empty.
func New(dir, baseURL string, opts Options) (Fetcher, error) {
	switch {
	case strings.HasPrefix(baseURL, "s3://"):
		s, err := NewS3Fetcher(baseURL, opts.S3)
		if err != nil {
			return nil, err
		}
		return s, nil
	case baseURL != "":
		h, err := NewHTTPFetcher(baseURL, opts.HTTP)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
	return NewFileFetcher(dir), nil
}

// checkName rejects names that would escape the records location.
func checkName(name string) error {
	if name == "" || strings.Contains(name, `\`) || path.Clean(name) != name ||
		strings.HasPrefix(name, "/") || strings.HasPrefix(name, "..") {
		return eris.Errorf("fetch: invalid records file name %q", name)
	}
	return nil
}
