package fetcher

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// Element is one decoded member of a JSON array together with its position.
type Element[T any] struct {
	Index int
	Value T
}

// DecodeJSONArray decodes a JSON array streaming, sending each element to a
// channel. A document that is not a single array is an error. Both channels are
// closed when processing completes.
func DecodeJSONArray[T any](ctx context.Context, r io.Reader) (<-chan Element[T], <-chan error) {
	outCh := make(chan Element[T], 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(outCh)
		defer close(errCh)

		decoder := json.NewDecoder(r)

		tok, err := decoder.Token()
		if err != nil {
			errCh <- eris.Wrap(err, "json: read opening token")
			return
		}

		delim, ok := tok.(json.Delim)
		if !ok || delim != '[' {
			errCh <- eris.Errorf("json: expected '[', got %v", tok)
			return
		}

		for i := 0; decoder.More(); i++ {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "json: context cancelled")
				return
			}

			var item T
			if err := decoder.Decode(&item); err != nil {
				errCh <- eris.Wrapf(err, "json: decode element %d", i)
				return
			}

			select {
			case outCh <- Element[T]{Index: i, Value: item}:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "json: context cancelled")
				return
			}
		}

		if _, err := decoder.Token(); err != nil {
			errCh <- eris.Wrap(err, "json: read closing token")
			return
		}
		if tok, err := decoder.Token(); err != io.EOF {
			if err != nil {
				errCh <- eris.Wrap(err, "json: trailing data after array")
				return
			}
			errCh <- eris.Errorf("json: trailing data after array: %v", tok)
		}
	}()

	return outCh, errCh
}

// DecodeJSONObject decodes a single JSON value from a reader.
func DecodeJSONObject[T any](r io.Reader) (*T, error) {
	var obj T
	if err := json.NewDecoder(r).Decode(&obj); err != nil {
		return nil, eris.Wrap(err, "json: decode object")
	}
	return &obj, nil
}
