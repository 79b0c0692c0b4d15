package build

import (
	"bufio"
	"cmp"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/millionaires/internal/counts"
	"github.com/sells-group/millionaires/internal/model"
)

// ReadStateCityCounts builds state aggregates from the city section of a
// counts file. Every state in totals gets an entry carrying its total, with
// cities ordered by descending count and then city name; states without a
// city section get no cities. Entries are ordered by state.
func ReadStateCityCounts(r io.Reader, totals []model.StateTotal) (model.StateCityCounts, error) {
	sections, err := counts.ReadCitySections(r)
	if err != nil {
		return model.StateCityCounts{}, eris.Wrap(err, "build: read state city counts")
	}

	states := make([]model.StateAggregate, 0, len(totals))
	for _, t := range totals {
		lines := slices.Clone(sections[t.State])
		slices.SortStableFunc(lines, func(a, b counts.CityCount) int {
			if c := cmp.Compare(b.Count, a.Count); c != 0 {
				return c
			}
			return strings.Compare(a.City, b.City)
		})

		cities := make([]model.CityAggregate, 0, len(lines))
		for _, l := range lines {
			cities = append(cities, model.CityAggregate{City: cityValue(l.City), Count: l.Count})
		}
		states = append(states, model.StateAggregate{State: t.State, Count: t.Count, Cities: cities})
	}

	slices.SortStableFunc(states, func(a, b model.StateAggregate) int {
		return strings.Compare(a.State, b.State)
	})
	return model.StateCityCounts{States: states}, nil
}

// SortedTotals returns totals ordered by state.
func SortedTotals(totals []model.StateTotal) []model.StateTotal {
	out := slices.Clone(totals)
	slices.SortStableFunc(out, func(a, b model.StateTotal) int {
		return strings.Compare(a.State, b.State)
	})
	if out == nil {
		out = []model.StateTotal{}
	}
	return out
}

// ReadIndustryTotals parses "category|count" lines, ordered by descending
// count and then category. Lines that do not parse are skipped.
func ReadIndustryTotals(r io.Reader) ([]model.IndustryAggregate, error) {
	out := make([]model.IndustryAggregate, 0)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		category, countPart, found := strings.Cut(line, "|")
		if !found {
			continue
		}
		n, ok := parseCount(countPart)
		if !ok {
			continue
		}
		out = append(out, model.IndustryAggregate{Category: strings.TrimSpace(category), Count: n})
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "build: read industry totals")
	}

	slices.SortStableFunc(out, func(a, b model.IndustryAggregate) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return out, nil
}

func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
