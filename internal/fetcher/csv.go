package fetcher

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVOptions configures the streaming delimited-row parser.
type CSVOptions struct {
	Delimiter rune // 0 detects '|' or ',' from the first line
	TrimSpace bool
}

// DetectDelimiter returns '|' when the sample line contains a pipe and ','
// otherwise.
func DetectDelimiter(sample string) rune {
	if strings.ContainsRune(sample, '|') {
		return '|'
	}
	return ','
}

// StreamCSV reads delimited rows, header included, and sends them to a
// channel. Bare quotes are accepted and rows may have any number of fields.
// Both channels are closed when processing completes.
func StreamCSV(ctx context.Context, r io.Reader, opts CSVOptions) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		br := bufio.NewReader(r)
		delim := opts.Delimiter
		if delim == 0 {
			first, err := br.ReadString('\n')
			if err != nil && err != io.EOF {
				errCh <- eris.Wrap(err, "csv: read first line")
				return
			}
			delim = DetectDelimiter(first)
			r = io.MultiReader(strings.NewReader(first), br)
		} else {
			r = br
		}

		reader := csv.NewReader(r)
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "csv: read row")
				return
			}

			if opts.TrimSpace {
				for i, field := range record {
					record[i] = strings.TrimSpace(field)
				}
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}
