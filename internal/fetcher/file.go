package fetcher

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FileFetcher implements Fetcher over a local records directory.
type FileFetcher struct {
	Dir string
}

// NewFileFetcher creates a FileFetcher rooted at dir.
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{Dir: dir}
}

// Fetch opens <Dir>/<name>.
func (f *FileFetcher) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "file fetch: context")
	}
	if err := checkName(name); err != nil {
		return nil, err
	}

	p := filepath.Join(f.Dir, filepath.FromSlash(name))
	file, err := os.Open(p)
	if err != nil {
		return nil, eris.Wrapf(err, "file fetch: open %s", p)
	}

	zap.L().Debug("opened records file", zap.String("path", p))
	return file, nil
}
