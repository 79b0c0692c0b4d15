package page

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/millionaires/internal/dataset"
	"github.com/sells-group/millionaires/internal/model"
	"github.com/sells-group/millionaires/internal/query"
)

// NotableSources are the files the notable page needs.
var NotableSources = []dataset.Source{dataset.SourcePeople}

// Notable is the curated list of well-known individuals.
type Notable struct {
	status  Status
	matcher *query.Notable
	rows    []model.PersonRecord
	err     error
}

// NewNotable returns a loading notable page that selects with matcher.
func NewNotable(matcher *query.Notable) Notable {
	return Notable{status: StatusLoading, matcher: matcher}
}

// Loaded moves a loading page to Ready.
func (n Notable) Loaded(idx *dataset.Index) Notable {
	if n.status != StatusLoading {
		return n
	}
	for _, src := range NotableSources {
		if !idx.Has(src) {
			return n.Failed(eris.Errorf("page: notable requires %s", src))
		}
	}
	n.rows = n.matcher.Select(idx.People())
	n.status = StatusReady
	return n
}

// Failed moves the page to the terminal Unavailable state.
func (n Notable) Failed(err error) Notable {
	if n.status == StatusUnavailable {
		return n
	}
	return Notable{status: StatusUnavailable, matcher: n.matcher, err: err}
}

// Status returns the lifecycle state.
func (n Notable) Status() Status { return n.status }

// Err returns the load failure of an Unavailable page.
func (n Notable) Err() error { return n.err }

// NotableView is the render-ready projection of the notable page.
type NotableView struct {
	Status  Status
	Rows    []model.PersonRecord
	Empty   bool
	Message string
}

// View projects the page.
func (n Notable) View() NotableView {
	v := NotableView{Status: n.status}
	switch n.status {
	case StatusLoading:
		v.Message = MessageLoading
	case StatusUnavailable:
		v.Message = MessageUnavailable
	default:
		v.Rows = append([]model.PersonRecord(nil), n.rows...)
		if len(v.Rows) == 0 {
			v.Empty = true
			v.Message = MessageNoMatches
		}
	}
	return v
}
