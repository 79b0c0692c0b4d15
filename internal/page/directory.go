package page

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sells-group/millionaires/internal/dataset"
	"github.com/sells-group/millionaires/internal/model"
	"github.com/sells-group/millionaires/internal/query"
)

// DirectorySources are the files the directory page needs.
var DirectorySources = []dataset.Source{dataset.SourcePeople, dataset.SourceStateCity}

// Directory is the searchable directory page.
type Directory struct {
	status   Status
	link     query.DeepLink
	people   []model.PersonRecord
	states   []model.StateAggregate
	resolver *query.Resolver
	criteria query.Criteria
	rawQuery string
	err      error
}

// NewDirectory returns a loading directory page that will apply link once the
// data is loaded.
func NewDirectory(link query.DeepLink) Directory {
	return Directory{status: StatusLoading, link: link, rawQuery: link.Query}
}

// Loaded moves a loading page to Ready, bootstrapping filters from the deep
// link. An index without the required sources makes the page Unavailable.
func (d Directory) Loaded(idx *dataset.Index) Directory {
	if d.status != StatusLoading {
		return d
	}
	for _, src := range DirectorySources {
		if !idx.Has(src) {
			return d.Failed(eris.Errorf("page: directory requires %s", src))
		}
	}

	d.people = idx.People()
	d.states = idx.States()
	d.resolver = query.NewResolver(d.states)

	link := d.link
	link.Query = d.rawQuery
	d.criteria = d.resolver.Bootstrap(link)
	d.status = StatusReady
	return d
}

// Failed moves the page to the terminal Unavailable state.
func (d Directory) Failed(err error) Directory {
	if d.status == StatusUnavailable {
		return d
	}
	return Directory{status: StatusUnavailable, link: d.link, rawQuery: d.rawQuery, err: err}
}

// SelectState changes the state filter. An unknown state clears it, and the
// current city is kept only if it is an option of the new state.
func (d Directory) SelectState(state string) Directory {
	if d.status != StatusReady {
		return d
	}
	if !d.resolver.KnownState(state) {
		state = ""
	}
	d.criteria.State = state
	d.criteria.City = d.resolver.Reconcile(state, d.criteria.City)
	return d
}

// SelectCity changes the city filter, clearing it when the city is not an
// option of the current state.
func (d Directory) SelectCity(city query.CitySelection) Directory {
	if d.status != StatusReady {
		return d
	}
	d.criteria.City = d.resolver.Reconcile(d.criteria.State, city)
	return d
}

// Search sets the search text. Text entered while loading is applied when
// the data arrives.
func (d Directory) Search(text string) Directory {
	switch d.status {
	case StatusLoading:
		d.rawQuery = text
	case StatusReady:
		d.rawQuery = text
		d.criteria = query.NewCriteria(d.criteria.State, d.criteria.City, text)
	}
	return d
}

// Status returns the lifecycle state.
func (d Directory) Status() Status { return d.status }

// Criteria returns the active filter.
func (d Directory) Criteria() query.Criteria { return d.criteria }

// Err returns the load failure of an Unavailable page.
func (d Directory) Err() error { return d.err }

// DirectoryView is the render-ready projection of the directory page.
type DirectoryView struct {
	Status      Status
	Rows        []model.PersonRecord
	Shown       int
	Total       int
	States      []model.StateAggregate
	State       string
	City        query.CitySelection
	CityOptions []model.CityAggregate
	CityEnabled bool
	Query       string
	Empty       bool
	Message     string
}

// View projects the page.
func (d Directory) View() DirectoryView {
	v := DirectoryView{Status: d.status, Query: d.rawQuery}

	switch d.status {
	case StatusLoading:
		v.Message = MessageLoading
		return v
	case StatusUnavailable:
		v.Message = MessageUnavailable
		return v
	}

	v.Rows = query.Filter(d.people, d.criteria)
	v.Shown = len(v.Rows)
	v.Total = len(d.people)
	v.States = d.states
	v.State = d.criteria.State
	v.City = d.criteria.City
	v.CityOptions = d.resolver.OptionsFor(d.criteria.State)
	v.CityEnabled = d.resolver.KnownState(d.criteria.State)
	if v.Shown == 0 {
		v.Empty = true
		v.Message = MessageNoMatches
	}
	return v
}

// CountLabel returns the results summary line.
func (v DirectoryView) CountLabel() string {
	switch v.Status {
	case StatusLoading:
		return MessageLoading
	case StatusUnavailable:
		return "Unable to load the directory data. Check the data files."
	}
	return fmt.Sprintf("Showing %d of %d entries", v.Shown, v.Total)
}
