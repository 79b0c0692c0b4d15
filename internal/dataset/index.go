// Package dataset loads and validates the published records files and holds
// them as an immutable, read-only index.
package dataset

import (
	"slices"

	"github.com/sells-group/millionaires/internal/model"
)

// Source names one published records file.
type Source string

const (
	SourcePeople    Source = "people_index.json"
	SourceStateCity Source = "state_city_counts.json"
	SourceIndustry  Source = "industry_totals.json"
)

func (s Source) known() bool {
	switch s {
	case SourcePeople, SourceStateCity, SourceIndustry:
		return true
	}
	return false
}

// AllSources lists every records file in load order.
var AllSources = []Source{SourcePeople, SourceStateCity, SourceIndustry}

// Index is the loaded dataset. It is created once and never modified; every
// accessor returns a copy.
type Index struct {
	sources    map[Source]bool
	people     []model.PersonRecord
	states     []model.StateAggregate
	industries []model.IndustryAggregate
	stateByKey map[string]int
}

// NewIndex builds an index from in-memory collections, marking every source
// as present. The collections are copied.
func NewIndex(people []model.PersonRecord, states []model.StateAggregate, industries []model.IndustryAggregate) *Index {
	return newIndex(AllSources, people, states, industries)
}

func newIndex(sources []Source, people []model.PersonRecord, states []model.StateAggregate, industries []model.IndustryAggregate) *Index {
	idx := &Index{
		sources:    make(map[Source]bool, len(sources)),
		people:     slices.Clone(people),
		states:     cloneStates(states),
		industries: slices.Clone(industries),
		stateByKey: make(map[string]int, len(states)),
	}
	for _, s := range sources {
		idx.sources[s] = true
	}
	for i, s := range idx.states {
		if _, dup := idx.stateByKey[s.State]; !dup {
			idx.stateByKey[s.State] = i
		}
	}
	return idx
}

// Has reports whether source was loaded into the index.
func (idx *Index) Has(source Source) bool {
	return idx != nil && idx.sources[source]
}

// People returns the directory records in file order.
func (idx *Index) People() []model.PersonRecord {
	return slices.Clone(idx.people)
}

// Total returns the number of directory records.
func (idx *Index) Total() int {
	return len(idx.people)
}

// States returns the state aggregates in file order.
func (idx *Index) States() []model.StateAggregate {
	return cloneStates(idx.states)
}

// State returns the aggregate for code.
func (idx *Index) State(code string) (model.StateAggregate, bool) {
	i, ok := idx.stateByKey[code]
	if !ok {
		return model.StateAggregate{}, false
	}
	return cloneState(idx.states[i]), true
}

// Industries returns the industry totals in file order.
func (idx *Index) Industries() []model.IndustryAggregate {
	return slices.Clone(idx.industries)
}

func cloneState(s model.StateAggregate) model.StateAggregate {
	s.Cities = slices.Clone(s.Cities)
	return s
}

func cloneStates(states []model.StateAggregate) []model.StateAggregate {
	if states == nil {
		return nil
	}
	out := make([]model.StateAggregate, len(states))
	for i, s := range states {
		out[i] = cloneState(s)
	}
	return out
}
