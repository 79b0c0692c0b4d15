package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the column an aggregate table is ordered by.
type SortKey string

const (
	KeyLabel SortKey = "label"
	KeyCount SortKey = "count"
)

// ParseSortKey accepts a key name as used by the command line and table
// headers.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "label", "name", "state", "city", "category":
		return KeyLabel, nil
	case "count", "total":
		return KeyCount, nil
	}
	return "", eris.Errorf("query: unknown sort key %q", s)
}

// Direction is a sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// DefaultDirection is the direction a key starts in when first selected:
// labels ascending, counts descending.
func DefaultDirection(key SortKey) Direction {
	if key == KeyCount {
		return Desc
	}
	return Asc
}

// SortSpec is the active key and direction of one table.
type SortSpec struct {
	Key SortKey
	Dir Direction
}

// DefaultSort returns key in its default direction.
func DefaultSort(key SortKey) SortSpec {
	return SortSpec{Key: key, Dir: DefaultDirection(key)}
}

// Toggle applies a click on key: the active key flips direction, any other
// key becomes active in its default direction.
func (s SortSpec) Toggle(key SortKey) SortSpec {
	if s.Key == key {
		return SortSpec{Key: key, Dir: s.Dir.Flip()}
	}
	return DefaultSort(key)
}

// Row is an aggregate table row.
type Row interface {
	SortLabel() string
	SortCount() int
}

// Sort returns a sorted copy of rows. Labels use English collation. A label
// sort breaks ties on count and then original position, and its descending
// order is the exact reverse of the ascending one. A count sort orders counts
// in the requested direction and always breaks ties by label A to Z, then by
// original position.
func Sort[R Row](rows []R, spec SortSpec) []R {
	type entry struct {
		row   R
		label string
		count int
		pos   int
	}

	entries := make([]entry, len(rows))
	for i, r := range rows {
		entries[i] = entry{row: r, label: r.SortLabel(), count: r.SortCount(), pos: i}
	}

	col := collate.New(language.English)
	byLabel := func(a, b entry) int { return col.CompareString(a.label, b.label) }
	byCount := func(a, b entry) int { return cmp.Compare(a.count, b.count) }

	if spec.Key == KeyCount {
		slices.SortFunc(entries, func(a, b entry) int {
			c := byCount(a, b)
			if spec.Dir == Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
			if c := byLabel(a, b); c != 0 {
				return c
			}
			return cmp.Compare(a.pos, b.pos)
		})
	} else {
		slices.SortFunc(entries, func(a, b entry) int {
			if c := byLabel(a, b); c != 0 {
				return c
			}
			if c := byCount(a, b); c != 0 {
				return c
			}
			return cmp.Compare(a.pos, b.pos)
		})
		if spec.Dir == Desc {
			slices.Reverse(entries)
		}
	}

	out := make([]R, len(entries))
	for i, e := range entries {
		out[i] = e.row
	}
	return out
}
