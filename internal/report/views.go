package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sells-group/millionaires/internal/model"
	"github.com/sells-group/millionaires/internal/page"
	"github.com/sells-group/millionaires/internal/query"
)

var personColumns = []Column{{Name: "Name"}, {Name: "State"}, {Name: "City"}, {Name: "Description"}}

// PeopleTable lists person records. Missing cities print as Unknown.
func PeopleTable(title string, people []model.PersonRecord, note string) Table {
	t := Table{Title: title, Columns: personColumns, Note: note}
	for _, p := range people {
		t.Rows = append(t.Rows, []string{p.Name, p.State, p.CityLabel(), p.Desc})
	}
	return t
}

// Directory reports the current directory results.
func Directory(v page.DirectoryView) *Report {
	r := &Report{Title: "Directory", Summary: v.CountLabel()}
	if v.Status != page.StatusReady {
		return r
	}
	if filter := describeFilter(v); filter != "" {
		r.Summary = v.CountLabel() + " (" + filter + ")"
	}
	r.Tables = append(r.Tables, PeopleTable("Entries", v.Rows, page.MessageNoMatches))
	return r
}

func describeFilter(v page.DirectoryView) string {
	var parts []string
	if v.State != "" {
		parts = append(parts, "state "+v.State)
	}
	if !v.City.IsAny() {
		parts = append(parts, "city "+model.DisplayCity(v.City.City()))
	}
	if v.Query != "" {
		parts = append(parts, fmt.Sprintf("search %q", v.Query))
	}
	return strings.Join(parts, ", ")
}

// Stats reports the state, city, and industry tables of the stats page.
func Stats(v page.StatsView) *Report {
	r := &Report{Title: "Statistics"}
	if v.Status != page.StatusReady {
		r.Summary = v.Message
		return r
	}

	states := Table{
		Title:   "People by state (" + sortLabel(v.StateSort) + ")",
		Columns: []Column{{Name: "State"}, {Name: "Count", Numeric: true}},
		Note:    v.StateMessage,
	}
	for _, s := range v.States {
		states.Rows = append(states.Rows, []string{s.State, strconv.Itoa(s.Count)})
	}

	cityTitle := "Cities"
	if v.SelectedState != "" {
		cityTitle = "Cities in " + v.SelectedState + " (" + sortLabel(v.CitySort) + ")"
	}
	cities := Table{
		Title:   cityTitle,
		Columns: []Column{{Name: "City"}, {Name: "Count", Numeric: true}},
		Note:    v.CityMessage,
	}
	for _, c := range v.Cities {
		cities.Rows = append(cities.Rows, []string{c.Label, strconv.Itoa(c.Count)})
	}

	industries := Table{
		Title:   "People by industry",
		Columns: []Column{{Name: "Industry"}, {Name: "Count", Numeric: true}},
		Note:    v.IndustryMessage,
	}
	for _, i := range v.Industries {
		industries.Rows = append(industries.Rows, []string{i.Category, strconv.Itoa(i.Count)})
	}

	r.Tables = []Table{states, cities, industries}
	return r
}

// Notable reports the curated list.
func Notable(v page.NotableView) *Report {
	r := &Report{Title: "Notable individuals"}
	if v.Status != page.StatusReady {
		r.Summary = v.Message
		return r
	}
	r.Summary = fmt.Sprintf("Showing %d entries", len(v.Rows))
	r.Tables = []Table{PeopleTable("Entries", v.Rows, page.MessageNoMatches)}
	return r
}

func sortLabel(s query.SortSpec) string {
	return string(s.Key) + " " + string(s.Dir)
}
