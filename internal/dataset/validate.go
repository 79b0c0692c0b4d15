package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/millionaires/internal/fetcher"
	"github.com/sells-group/millionaires/internal/model"
	"github.com/sells-group/millionaires/internal/textnorm"
)

type object = map[string]json.RawMessage

// fieldReader pulls typed fields out of one JSON object and records the first
// problem as a SchemaError.
type fieldReader struct {
	source Source
	index  int
	prefix string
	obj    object
	err    *SchemaError
}

func newFieldReader(source Source, index int, prefix string, raw json.RawMessage) *fieldReader {
	fr := &fieldReader{source: source, index: index, prefix: prefix}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		fr.fail("", "must be an object")
		return fr
	}
	if err := json.Unmarshal(raw, &fr.obj); err != nil {
		fr.fail("", "malformed object: "+err.Error())
	}
	return fr
}

func (fr *fieldReader) fail(field, reason string) {
	if fr.err != nil {
		return
	}
	if fr.prefix != "" && field != "" {
		field = fr.prefix + "." + field
	} else if fr.prefix != "" {
		field = fr.prefix
	}
	fr.err = &SchemaError{Source: fr.source, Index: fr.index, Field: field, Reason: reason}
}

func (fr *fieldReader) value(field string) (any, bool) {
	if fr.err != nil {
		return nil, false
	}
	raw, ok := fr.obj[field]
	if !ok {
		fr.fail(field, "required field missing")
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		fr.fail(field, "malformed value")
		return nil, false
	}
	return v, true
}

func (fr *fieldReader) raw(field string) json.RawMessage {
	if fr.err != nil {
		return nil
	}
	raw, ok := fr.obj[field]
	if !ok {
		fr.fail(field, "required field missing")
		return nil
	}
	return raw
}

func (fr *fieldReader) str(field string) string {
	v, ok := fr.value(field)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		fr.fail(field, "must be a string")
	}
	return s
}

func (fr *fieldReader) optionalStr(field string) string {
	if fr.err != nil {
		return ""
	}
	if _, ok := fr.obj[field]; !ok {
		return ""
	}
	return fr.str(field)
}

// nullableStr reads a field that must be present but may be null.
func (fr *fieldReader) nullableStr(field string) *string {
	v, ok := fr.value(field)
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		fr.fail(field, "must be a string or null")
		return nil
	}
	return &s
}

func (fr *fieldReader) count(field string) int {
	v, ok := fr.value(field)
	if !ok {
		return 0
	}
	n, ok := v.(json.Number)
	if !ok {
		fr.fail(field, "must be a number")
		return 0
	}
	i, err := n.Int64()
	if err != nil {
		fr.fail(field, "must be an integer")
		return 0
	}
	if i < 0 {
		fr.fail(field, "must be non-negative")
		return 0
	}
	return int(i)
}

func (fr *fieldReader) array(field string) []json.RawMessage {
	raw := fr.raw(field)
	if fr.err != nil {
		return nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		fr.fail(field, "must be an array")
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		fr.fail(field, "malformed array")
		return nil
	}
	return items
}

// Err returns the first problem found, or nil.
func (fr *fieldReader) Err() error {
	if fr.err == nil {
		return nil
	}
	return fr.err
}

// ValidatePerson checks one people_index.json element and returns the record.
func ValidatePerson(index int, raw json.RawMessage) (model.PersonRecord, error) {
	fr := newFieldReader(SourcePeople, index, "", raw)
	p := model.PersonRecord{
		ID:       fr.optionalStr("id"),
		Name:     fr.str("name"),
		State:    fr.str("state"),
		City:     fr.nullableStr("city"),
		Desc:     fr.str("desc"),
		NameNorm: fr.str("name_norm"),
		DescNorm: fr.str("desc_norm"),
	}
	if err := fr.Err(); err != nil {
		return model.PersonRecord{}, err
	}

	switch {
	case p.State == "":
		fr.fail("state", "must not be empty")
	case p.NameNorm != textnorm.Normalize(p.Name):
		fr.fail("name_norm", "does not match normalized name")
	case p.DescNorm != textnorm.Normalize(p.Desc):
		fr.fail("desc_norm", "does not match normalized desc")
	}
	if err := fr.Err(); err != nil {
		return model.PersonRecord{}, err
	}
	return p, nil
}

func decodePeople(ctx context.Context, r io.Reader) ([]model.PersonRecord, error) {
	ch, errCh := fetcher.DecodeJSONArray[json.RawMessage](ctx, r)

	var people []model.PersonRecord
	var firstErr error
	for el := range ch {
		if firstErr != nil {
			continue
		}
		p, err := ValidatePerson(el.Index, el.Value)
		if err != nil {
			firstErr = err
			continue
		}
		people = append(people, p)
	}
	for err := range errCh {
		if err != nil && firstErr == nil {
			firstErr = eris.Wrap(err, "decode people")
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if people == nil {
		people = []model.PersonRecord{}
	}
	return people, nil
}

// ValidateStateAggregate checks one element of the states array.
func ValidateStateAggregate(index int, raw json.RawMessage) (model.StateAggregate, error) {
	fr := newFieldReader(SourceStateCity, index, "", raw)
	s := model.StateAggregate{
		State: fr.str("state"),
		Count: fr.count("count"),
	}
	cities := fr.array("cities")
	if err := fr.Err(); err != nil {
		return model.StateAggregate{}, err
	}
	if s.State == "" {
		fr.fail("state", "must not be empty")
		return model.StateAggregate{}, fr.Err()
	}

	s.Cities = make([]model.CityAggregate, 0, len(cities))
	for i, rawCity := range cities {
		cr := newFieldReader(SourceStateCity, index, "cities", rawCity)
		c := model.CityAggregate{
			City:  cr.nullableStr("city"),
			Count: cr.count("count"),
		}
		if err := cr.Err(); err != nil {
			se := err.(*SchemaError)
			se.Reason = fmt.Sprintf("city %d: %s", i, se.Reason)
			return model.StateAggregate{}, se
		}
		s.Cities = append(s.Cities, c)
	}
	return s, nil
}

func decodeStateCity(_ context.Context, r io.Reader) ([]model.StateAggregate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "read state city counts")
	}

	fr := newFieldReader(SourceStateCity, -1, "", data)
	items := fr.array("states")
	if err := fr.Err(); err != nil {
		return nil, err
	}

	states := make([]model.StateAggregate, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, raw := range items {
		s, err := ValidateStateAggregate(i, raw)
		if err != nil {
			return nil, err
		}
		if seen[s.State] {
			return nil, &SchemaError{Source: SourceStateCity, Index: i, Field: "state", Reason: "duplicate state " + s.State}
		}
		seen[s.State] = true
		states = append(states, s)
	}
	return states, nil
}

// ValidateIndustry checks one industry_totals.json element.
func ValidateIndustry(index int, raw json.RawMessage) (model.IndustryAggregate, error) {
	fr := newFieldReader(SourceIndustry, index, "", raw)
	ind := model.IndustryAggregate{
		Category: fr.str("category"),
		Count:    fr.count("count"),
	}
	if err := fr.Err(); err != nil {
		return model.IndustryAggregate{}, err
	}
	return ind, nil
}

func decodeIndustry(ctx context.Context, r io.Reader) ([]model.IndustryAggregate, error) {
	ch, errCh := fetcher.DecodeJSONArray[json.RawMessage](ctx, r)

	industries := []model.IndustryAggregate{}
	var firstErr error
	for el := range ch {
		if firstErr != nil {
			continue
		}
		ind, err := ValidateIndustry(el.Index, el.Value)
		if err != nil {
			firstErr = err
			continue
		}
		industries = append(industries, ind)
	}
	for err := range errCh {
		if err != nil && firstErr == nil {
			firstErr = eris.Wrap(err, "decode industry totals")
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return industries, nil
}
