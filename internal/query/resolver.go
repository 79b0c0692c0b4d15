package query

import (
	"github.com/sells-group/millionaires/internal/model"
)

// DeepLink holds filter values supplied from outside the page, such as URL
// query parameters. Values are unvalidated.
type DeepLink struct {
	State string
	City  string
	Query string
}

// Resolver scopes city options to the chosen state.
type Resolver struct {
	states map[string]model.StateAggregate
}

// NewResolver indexes the given state aggregates by code.
func NewResolver(states []model.StateAggregate) *Resolver {
	r := &Resolver{states: make(map[string]model.StateAggregate, len(states))}
	for _, s := range states {
		if _, dup := r.states[s.State]; !dup {
			r.states[s.State] = s
		}
	}
	return r
}

// KnownState reports whether state matches a loaded aggregate.
func (r *Resolver) KnownState(state string) bool {
	_, ok := r.states[state]
	return ok
}

// OptionsFor returns the city options of state, or nil when no state is
// chosen or the state is unknown.
func (r *Resolver) OptionsFor(state string) []model.CityAggregate {
	s, ok := r.states[state]
	if !ok || len(s.Cities) == 0 {
		return nil
	}
	out := make([]model.CityAggregate, len(s.Cities))
	copy(out, s.Cities)
	return out
}

// Reconcile returns requested when it is one of the options for state and
// AnyCity otherwise.
func (r *Resolver) Reconcile(state string, requested CitySelection) CitySelection {
	if requested.IsAny() {
		return requested
	}
	if s, ok := r.states[state]; ok && s.HasCity(requested.City()) {
		return requested
	}
	return AnyCity()
}

// Bootstrap turns a deep link into criteria. An unknown state falls back to
// the unfiltered view; the city is reconciled against the resulting state.
func (r *Resolver) Bootstrap(link DeepLink) Criteria {
	state := ""
	if r.KnownState(link.State) {
		state = link.State
	}

	city := AnyCity()
	if link.City != "" {
		city = r.Reconcile(state, CityNamed(link.City))
	}
	return NewCriteria(state, city, link.Query)
}
