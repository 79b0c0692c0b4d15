// Package counts tallies people per state and per state and city, writes
// the sectioned counts file consumed by the site build, and compares those
// totals against an independent location tally.
package counts

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/millionaires/internal/fetcher"
)

// BlankCity labels rows without a city.
const BlankCity = "(blank)"

// Section headings of the counts file.
const (
	HeadingStates = "Counts by state"
	HeadingCities = "Counts by state and city"
)

// Key identifies one state and city pair.
type Key struct {
	State string
	City  string
}

// Counts holds per-state and per-city tallies.
type Counts struct {
	States map[string]int
	Cities map[Key]int
}

// NewCounts returns empty tallies.
func NewCounts() *Counts {
	return &Counts{States: make(map[string]int), Cities: make(map[Key]int)}
}

// Add counts one row. Rows without a state are ignored.
func (c *Counts) Add(state, city string) {
	state = strings.TrimSpace(state)
	city = strings.TrimSpace(city)
	if state == "" {
		return
	}
	if city == "" {
		city = BlankCity
	}
	c.States[state]++
	c.Cities[Key{State: state, City: city}]++
}

// Total returns the number of counted rows.
func (c *Counts) Total() int {
	n := 0
	for _, v := range c.States {
		n += v
	}
	return n
}

// Count reads a delimited people file and tallies its State and City
// columns. The delimiter is '|' when the header contains one and ','
// otherwise. Rows too short to hold both columns are skipped.
func Count(ctx context.Context, r io.Reader) (*Counts, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rows, errs := fetcher.StreamCSV(ctx, r, fetcher.CSVOptions{TrimSpace: true})
	c := NewCounts()

	header, ok := <-rows
	if !ok {
		if err := <-errs; err != nil {
			return nil, eris.Wrap(err, "counts: read header")
		}
		return c, nil
	}

	stateIdx := columnIndex(header, "State")
	cityIdx := columnIndex(header, "City")
	if stateIdx < 0 || cityIdx < 0 {
		return nil, eris.New("counts: could not find 'State' and 'City' columns in header")
	}
	need := max(stateIdx, cityIdx)

	skipped := 0
	for row := range rows {
		if len(row) <= need {
			skipped++
			continue
		}
		c.Add(row[stateIdx], row[cityIdx])
	}
	if err := <-errs; err != nil {
		return nil, eris.Wrap(err, "counts: read rows")
	}

	zap.L().Debug("counts: tallied",
		zap.Int("rows", c.Total()),
		zap.Int("states", len(c.States)),
		zap.Int("skipped", skipped),
	)
	return c, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// Write emits the counts file: state totals in state order, then each
// state's city totals in city order.
func (c *Counts) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	states := make([]string, 0, len(c.States))
	for s := range c.States {
		states = append(states, s)
	}
	slices.Sort(states)

	fmt.Fprintln(bw, HeadingStates)
	for _, s := range states {
		fmt.Fprintf(bw, "%s: %d\n", s, c.States[s])
	}

	grouped := make(map[string][]Key)
	for k := range c.Cities {
		grouped[k.State] = append(grouped[k.State], k)
	}

	fmt.Fprintf(bw, "\n%s\n", HeadingCities)
	for _, s := range states {
		keys := grouped[s]
		slices.SortFunc(keys, func(a, b Key) int { return strings.Compare(a.City, b.City) })
		fmt.Fprintf(bw, "\n%s\n", s)
		for _, k := range keys {
			fmt.Fprintf(bw, "  %s: %d\n", k.City, c.Cities[k])
		}
	}

	return eris.Wrap(bw.Flush(), "counts: write")
}
