package counts

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/millionaires/internal/model"
	"github.com/sells-group/millionaires/internal/textnorm"
)

// ReadStateTotals parses the state section of a counts file. States are
// canonicalized with textnorm.NormalizeState and returned in first-seen
// order; a repeated state keeps its position and takes the later count.
// Lines that do not parse are skipped.
func ReadStateTotals(r io.Reader) ([]model.StateTotal, error) {
	var out []model.StateTotal
	pos := make(map[string]int)
	inSection := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			if inSection {
				break
			}
			continue
		}

		lower := strings.ToLower(line)
		if lower == strings.ToLower(HeadingStates) {
			inSection = true
			continue
		}
		if strings.HasPrefix(lower, strings.ToLower(HeadingCities)) {
			break
		}
		if !inSection {
			continue
		}

		label, count, ok := splitCount(line, ":")
		if !ok {
			continue
		}
		state := textnorm.NormalizeState(label)
		if state == "" {
			continue
		}
		if i, seen := pos[state]; seen {
			out[i].Count = count
			continue
		}
		pos[state] = len(out)
		out = append(out, model.StateTotal{State: state, Count: count})
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "counts: read state totals")
	}
	return out, nil
}

// TotalsMap indexes totals by state.
func TotalsMap(totals []model.StateTotal) map[string]int {
	m := make(map[string]int, len(totals))
	for _, t := range totals {
		m[t.State] = t.Count
	}
	return m
}

// CityCount is one city line of a counts file.
type CityCount struct {
	City  string
	Count int
}

// ReadCitySections parses the state and city section of a counts file.
// Indented lines are cities of the most recent state heading; a repeated
// heading starts that state over.
func ReadCitySections(r io.Reader) (map[string][]CityCount, error) {
	out := make(map[string][]CityCount)
	inSection := false
	current := ""

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		raw := sc.Text()
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, HeadingCities) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}

		if strings.HasPrefix(raw, " ") {
			if current == "" {
				continue
			}
			city, count, ok := splitCount(line, ":")
			if !ok {
				continue
			}
			out[current] = append(out[current], CityCount{City: city, Count: count})
			continue
		}
		current = textnorm.NormalizeState(line)
		out[current] = []CityCount{}
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "counts: read city sections")
	}
	return out, nil
}

// splitCount splits "label<sep>count" at the first separator. Counts must
// be non-negative integers.
func splitCount(line, sep string) (string, int, bool) {
	label, countPart, found := strings.Cut(line, sep)
	if !found {
		return "", 0, false
	}
	count, err := strconv.Atoi(strings.TrimSpace(countPart))
	if err != nil || count < 0 {
		return "", 0, false
	}
	return strings.TrimSpace(label), count, true
}
