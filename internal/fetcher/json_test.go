package fetcher

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTotal struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

func collectElements[T any](t *testing.T, ch <-chan Element[T], errCh <-chan error) ([]Element[T], error) {
	t.Helper()
	var out []Element[T]
	for el := range ch {
		out = append(out, el)
	}
	for err := range errCh {
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

func TestDecodeJSONArray(t *testing.T) {
	input := `[{"category":"Banking","count":12},{"category":"Railroads","count":9}]`

	ch, errCh := DecodeJSONArray[testTotal](context.Background(), strings.NewReader(input))
	els, err := collectElements(t, ch, errCh)
	require.NoError(t, err)

	require.Len(t, els, 2)
	assert.Equal(t, 0, els[0].Index)
	assert.Equal(t, "Banking", els[0].Value.Category)
	assert.Equal(t, 1, els[1].Index)
	assert.Equal(t, 9, els[1].Value.Count)
}

func TestDecodeJSONArray_Empty(t *testing.T) {
	ch, errCh := DecodeJSONArray[testTotal](context.Background(), strings.NewReader(`[]`))
	els, err := collectElements(t, ch, errCh)
	require.NoError(t, err)
	assert.Empty(t, els)
}

func TestDecodeJSONArray_NotAnArray(t *testing.T) {
	ch, errCh := DecodeJSONArray[testTotal](context.Background(), strings.NewReader(`{"states":[]}`))
	_, err := collectElements(t, ch, errCh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected '['")
}

func TestDecodeJSONArray_EmptyDocument(t *testing.T) {
	ch, errCh := DecodeJSONArray[testTotal](context.Background(), strings.NewReader(""))
	_, err := collectElements(t, ch, errCh)
	require.Error(t, err)
}

func TestDecodeJSONArray_TrailingData(t *testing.T) {
	for name, input := range map[string]string{
		"second value":   `[{"category":"Banking","count":1}] {"oops"`,
		"extra brackets": `[{"category":"Banking","count":1}]]]`,
		"bare word":      `[] x`,
	} {
		t.Run(name, func(t *testing.T) {
			ch, errCh := DecodeJSONArray[testTotal](context.Background(), strings.NewReader(input))
			_, err := collectElements(t, ch, errCh)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "trailing data")
		})
	}
}

func TestDecodeJSONArray_TrailingWhitespace(t *testing.T) {
	ch, errCh := DecodeJSONArray[testTotal](context.Background(), strings.NewReader("[{\"category\":\"Banking\",\"count\":1}]\n\n"))
	els, err := collectElements(t, ch, errCh)
	require.NoError(t, err)
	assert.Len(t, els, 1)
}

func TestDecodeJSONArray_BadElementReportsIndex(t *testing.T) {
	input := `[{"category":"Banking","count":1},{"category":"Mining","count":"many"}]`
	ch, errCh := DecodeJSONArray[testTotal](context.Background(), strings.NewReader(input))
	els, err := collectElements(t, ch, errCh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "element 1")
	assert.Len(t, els, 1)
}

func TestDecodeJSONObject(t *testing.T) {
	obj, err := DecodeJSONObject[testTotal](strings.NewReader(`{"category":"Shipping","count":4}`))
	require.NoError(t, err)
	assert.Equal(t, "Shipping", obj.Category)

	_, err = DecodeJSONObject[testTotal](strings.NewReader(`{`))
	require.Error(t, err)
}
