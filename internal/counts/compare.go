package counts

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/millionaires/internal/textnorm"
)

// NoDifferences is printed when a comparison finds nothing to report.
const NoDifferences = "No differences found."

// ReadLocationTotals sums "state|category|count" rows whose category is
// "total". A combined "A AND B" label with a zero count registers each part
// instead of the combined label.
func ReadLocationTotals(r io.Reader) (map[string]int, error) {
	totals := make(map[string]int)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 3 {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(parts[1]), "total") {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			continue
		}

		label := textnorm.NormalizeState(parts[0])
		if strings.Contains(label, " AND ") && count == 0 {
			for _, part := range strings.Split(label, " AND ") {
				totals[textnorm.NormalizeState(part)] += count
			}
			continue
		}
		totals[label] += count
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "counts: read location totals")
	}
	return totals, nil
}

// Diff is one state's comparison. A nil side means the state is missing
// from that source.
type Diff struct {
	State string
	Count *int
	Total *int
}

// Delta returns Count minus Total, or nil when either side is missing.
func (d Diff) Delta() *int {
	if d.Count == nil || d.Total == nil {
		return nil
	}
	v := *d.Count - *d.Total
	return &v
}

// Compare lines up counts against totals over the union of states in
// state order. Unless showAll is set, only states that differ are kept.
func Compare(counts, totals map[string]int, showAll bool) []Diff {
	seen := make(map[string]bool, len(counts)+len(totals))
	var states []string
	for _, m := range []map[string]int{counts, totals} {
		for s := range m {
			if !seen[s] {
				seen[s] = true
				states = append(states, s)
			}
		}
	}
	slices.Sort(states)

	var out []Diff
	for _, s := range states {
		d := Diff{State: s}
		if v, ok := counts[s]; ok {
			d.Count = &v
		}
		if v, ok := totals[s]; ok {
			d.Total = &v
		}
		if !showAll && d.Count != nil && d.Total != nil && *d.Count == *d.Total {
			continue
		}
		out = append(out, d)
	}
	return out
}

// FormatDiffs renders diffs as a fixed-width table. Missing values print as
// MISSING and an undefined difference as NA.
func FormatDiffs(diffs []Diff) string {
	if len(diffs) == 0 {
		return NoDifferences
	}

	type line struct{ state, count, total, diff string }
	lines := make([]line, len(diffs))
	stateW, countW, totalW, diffW := len("STATE"), len("COUNTS"), len("LOCATION_TOTAL"), len("DIFF")
	for i, d := range diffs {
		l := line{
			state: d.State,
			count: formatValue(d.Count, "MISSING"),
			total: formatValue(d.Total, "MISSING"),
			diff:  formatValue(d.Delta(), "NA"),
		}
		stateW = max(stateW, len(l.state))
		countW = max(countW, len(l.count))
		totalW = max(totalW, len(l.total))
		diffW = max(diffW, len(l.diff))
		lines[i] = l
	}

	row := func(state, count, total, diff string) string {
		return fmt.Sprintf("%-*s  %*s  %*s  %*s", stateW, state, countW, count, totalW, total, diffW, diff)
	}
	out := []string{row("STATE", "COUNTS", "LOCATION_TOTAL", "DIFF")}
	for _, l := range lines {
		out = append(out, row(l.state, l.count, l.total, l.diff))
	}
	return strings.Join(out, "\n")
}

func formatValue(v *int, missing string) string {
	if v == nil {
		return missing
	}
	return strconv.Itoa(*v)
}
