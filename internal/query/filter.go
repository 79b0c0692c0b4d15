// Package query holds the pure derivations shared by every page: record
// filtering, state-scoped city options, aggregate sorting, and the notable
// names selection. Nothing here mutates its inputs.
package query

import (
	"strings"

	"github.com/sells-group/millionaires/internal/model"
	"github.com/sells-group/millionaires/internal/textnorm"
)

// CitySelection is the city filter. The zero value selects every city.
type CitySelection struct {
	set  bool
	city *string
}

// AnyCity returns the selection that imposes no city constraint.
func AnyCity() CitySelection { return CitySelection{} }

// CityNamed selects records whose city is exactly name.
func CityNamed(name string) CitySelection {
	return CitySelection{set: true, city: &name}
}

// UnknownCity selects records without a city.
func UnknownCity() CitySelection { return CitySelection{set: true} }

// SelectCity returns the selection matching a nullable city value.
func SelectCity(city *string) CitySelection {
	if city == nil {
		return UnknownCity()
	}
	return CityNamed(*city)
}

// IsAny reports whether the selection imposes no constraint.
func (c CitySelection) IsAny() bool { return !c.set }

// City returns the selected city value; nil for AnyCity and UnknownCity.
func (c CitySelection) City() *string {
	if c.city == nil {
		return nil
	}
	v := *c.city
	return &v
}

// Matches reports whether a record city satisfies the selection.
func (c CitySelection) Matches(city *string) bool {
	return !c.set || model.SameCity(c.city, city)
}

// Equal reports whether two selections are the same.
func (c CitySelection) Equal(o CitySelection) bool {
	return c.set == o.set && model.SameCity(c.city, o.city)
}

func (c CitySelection) String() string {
	switch {
	case !c.set:
		return ""
	case c.city == nil:
		return model.UnknownCity
	default:
		return *c.city
	}
}

// Criteria is a conjunction of record predicates. Empty fields impose no
// constraint.
type Criteria struct {
	State string
	City  CitySelection
	Query string // already normalized
}

// NewCriteria builds criteria from raw input, normalizing only the search text.
func NewCriteria(state string, city CitySelection, rawQuery string) Criteria {
	return Criteria{
		State: state,
		City:  city,
		Query: textnorm.Normalize(rawQuery),
	}
}

// IsEmpty reports whether the criteria match every record.
func (c Criteria) IsEmpty() bool {
	return c.State == "" && c.City.IsAny() && c.Query == ""
}

// Match reports whether p satisfies every present predicate.
func (c Criteria) Match(p model.PersonRecord) bool {
	if c.State != "" && p.State != c.State {
		return false
	}
	if !c.City.Matches(p.City) {
		return false
	}
	if c.Query != "" && !strings.Contains(p.NameNorm, c.Query) && !strings.Contains(p.DescNorm, c.Query) {
		return false
	}
	return true
}

// Filter returns the records matching criteria in their original order. The
// result is always a new slice.
func Filter(records []model.PersonRecord, criteria Criteria) []model.PersonRecord {
	out := make([]model.PersonRecord, 0, len(records))
	for _, p := range records {
		if criteria.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
