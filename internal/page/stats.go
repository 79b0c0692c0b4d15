package page

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/millionaires/internal/dataset"
	"github.com/sells-group/millionaires/internal/model"
	"github.com/sells-group/millionaires/internal/query"
)

// StatsSources are the files the stats page needs.
var StatsSources = []dataset.Source{dataset.SourceStateCity, dataset.SourceIndustry}

// Stats messages.
const (
	MessageChooseState = "Choose a state to view city totals."
	MessageNoCities    = "No city totals available."
	MessageNoStates    = "No state totals found."
	MessageNoIndustry  = "No industry totals found."
)

// Stats is the aggregate statistics page: a sortable state table, a sortable
// city table for the selected state, and the industry totals.
type Stats struct {
	status     Status
	states     []model.StateAggregate
	industries []model.IndustryAggregate
	resolver   *query.Resolver
	stateSort  query.SortSpec
	citySort   query.SortSpec
	selected   string
	err        error
}

// NewStats returns a loading stats page. States sort by label ascending and
// cities by count descending.
func NewStats() Stats {
	return Stats{
		status:    StatusLoading,
		stateSort: query.SortSpec{Key: query.KeyLabel, Dir: query.Asc},
		citySort:  query.SortSpec{Key: query.KeyCount, Dir: query.Desc},
	}
}

// Loaded moves a loading page to Ready.
func (s Stats) Loaded(idx *dataset.Index) Stats {
	if s.status != StatusLoading {
		return s
	}
	for _, src := range StatsSources {
		if !idx.Has(src) {
			return s.Failed(eris.Errorf("page: stats requires %s", src))
		}
	}
	s.states = idx.States()
	s.industries = idx.Industries()
	s.resolver = query.NewResolver(s.states)
	s.status = StatusReady
	if !s.resolver.KnownState(s.selected) {
		s.selected = ""
	}
	return s
}

// Failed moves the page to the terminal Unavailable state.
func (s Stats) Failed(err error) Stats {
	if s.status == StatusUnavailable {
		return s
	}
	return Stats{
		status:    StatusUnavailable,
		stateSort: s.stateSort,
		citySort:  s.citySort,
		err:       err,
	}
}

// ToggleStateSort applies a header click on the state table. Clicks made
// while loading are held; an Unavailable page ignores them.
func (s Stats) ToggleStateSort(key query.SortKey) Stats {
	if s.status == StatusUnavailable {
		return s
	}
	s.stateSort = s.stateSort.Toggle(key)
	return s
}

// ToggleCitySort applies a header click on the city table.
func (s Stats) ToggleCitySort(key query.SortKey) Stats {
	if s.status == StatusUnavailable {
		return s
	}
	s.citySort = s.citySort.Toggle(key)
	return s
}

// SelectState chooses the state whose cities are listed. Before the data is
// loaded any value is held; once ready an unknown state clears the selection.
func (s Stats) SelectState(state string) Stats {
	switch s.status {
	case StatusLoading:
		s.selected = state
	case StatusReady:
		if !s.resolver.KnownState(state) {
			state = ""
		}
		s.selected = state
	}
	return s
}

// Status returns the lifecycle state.
func (s Stats) Status() Status { return s.status }

// Err returns the load failure of an Unavailable page.
func (s Stats) Err() error { return s.err }

// StateRow is one row of the state table.
type StateRow struct {
	State string
	Count int
	URL   string
}

// CityRow is one row of the city table.
type CityRow struct {
	State string
	City  *string
	Label string
	Count int
	URL   string
}

// StatsView is the render-ready projection of the stats page.
type StatsView struct {
	Status          Status
	Message         string
	States          []StateRow
	StateSort       query.SortSpec
	StateMessage    string
	StateOptions    []string
	SelectedState   string
	Cities          []CityRow
	CitySort        query.SortSpec
	CityMessage     string
	Industries      []model.IndustryAggregate
	IndustryMessage string
}

// View projects the page.
func (s Stats) View() StatsView {
	v := StatsView{
		Status:        s.status,
		StateSort:     s.stateSort,
		CitySort:      s.citySort,
		SelectedState: s.selected,
	}

	switch s.status {
	case StatusLoading:
		v.Message = MessageLoading
		return v
	case StatusUnavailable:
		v.Message = MessageUnavailable
		return v
	}

	for _, st := range query.Sort(s.states, s.stateSort) {
		v.States = append(v.States, StateRow{
			State: st.State,
			Count: st.Count,
			URL:   DirectoryURL(st.State, nil),
		})
	}
	if len(v.States) == 0 {
		v.StateMessage = MessageNoStates
	}
	for _, st := range s.states {
		v.StateOptions = append(v.StateOptions, st.State)
	}

	switch {
	case s.selected == "":
		v.CityMessage = MessageChooseState
	default:
		opts := s.resolver.OptionsFor(s.selected)
		if len(opts) == 0 {
			v.CityMessage = MessageNoCities
		}
		for _, c := range query.Sort(opts, s.citySort) {
			v.Cities = append(v.Cities, CityRow{
				State: s.selected,
				City:  c.City,
				Label: model.DisplayCity(c.City),
				Count: c.Count,
				URL:   DirectoryURL(s.selected, c.City),
			})
		}
	}

	v.Industries = s.industries
	if len(v.Industries) == 0 {
		v.IndustryMessage = MessageNoIndustry
	}
	return v
}
