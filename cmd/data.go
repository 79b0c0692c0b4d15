package main

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/millionaires/internal/config"
	"github.com/sells-group/millionaires/internal/dataset"
	"github.com/sells-group/millionaires/internal/fetcher"
	"github.com/sells-group/millionaires/internal/report"
)

// newFetcher opens the records location named by the data config.
func newFetcher(c *config.Config) (fetcher.Fetcher, error) {
	return fetcher.New(c.Data.Dir, c.Data.BaseURL, fetcher.Options{
		HTTP: fetcher.HTTPOptions{
			UserAgent: c.Fetch.UserAgent,
			Timeout:   c.Fetch.Timeout(),
			RateLimit: rate.Limit(c.Fetch.RateLimit),
		},
		S3: fetcher.S3Options{
			Endpoint:  c.Data.S3.Endpoint,
			Region:    c.Data.S3.Region,
			AccessKey: c.Data.S3.AccessKey,
			SecretKey: c.Data.S3.SecretKey,
			Insecure:  c.Data.S3.Insecure,
			PathStyle: c.Data.S3.PathStyle,
		},
	})
}

// loadIndex loads the requested records files. Failures are logged and
// returned for the page to become unavailable.
func loadIndex(ctx context.Context, c *config.Config, sources ...dataset.Source) (*dataset.Index, error) {
	if err := c.Validate("query"); err != nil {
		return nil, err
	}
	f, err := newFetcher(c)
	if err != nil {
		return nil, err
	}
	idx, err := dataset.NewLoader(f).Load(ctx, sources...)
	if err != nil {
		zap.L().Error("records unavailable", zap.Error(err))
		return nil, err
	}
	return idx, nil
}

// errUnavailable is returned by page commands whose data failed to load.
var errUnavailable = eris.New("data unavailable")

// outputFlags are shared by the page commands.
type outputFlags struct {
	format string
	out    string
}

// writeReport renders r in the chosen format to --out or stdout. XLSX
// output must go to a file.
func (o outputFlags) writeReport(stdout io.Writer, r *report.Report) error {
	format, err := report.ParseFormat(o.format)
	if err != nil {
		return err
	}
	if format == report.FormatXLSX && o.out == "" {
		return eris.New("xlsx output requires --out")
	}

	dest := stdout
	if o.out != "" && o.out != "-" {
		f, err := os.Create(o.out)
		if err != nil {
			return eris.Wrapf(err, "create %s", o.out)
		}
		defer f.Close() //nolint:errcheck
		dest = f
	}

	w, err := report.NewWriter(format, dest)
	if err != nil {
		return err
	}
	if _, err := w.Write(r); err != nil {
		return eris.Wrap(err, "write report")
	}
	return nil
}
