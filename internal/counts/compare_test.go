package counts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestReadLocationTotals(t *testing.T) {
	in := `NEW YORK|total|10
NEW YORK|banking|4
New York City|Total|2
MAINE AND VERMONT|total|0
OHIO|total|x
too|short
`
	got, err := ReadLocationTotals(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"NEW YORK": 12, "MAINE": 0, "VERMONT": 0}, got)
}

func TestReadLocationTotals_CombinedNonZero(t *testing.T) {
	got, err := ReadLocationTotals(strings.NewReader("MAINE AND VERMONT|total|3\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"MAINE AND VERMONT": 3}, got)
}

func TestCompare(t *testing.T) {
	counts := map[string]int{"NEW YORK": 12, "OHIO": 3, "MAINE": 1}
	totals := map[string]int{"NEW YORK": 12, "OHIO": 5, "TEXAS": 2}

	diffs := Compare(counts, totals, false)
	require.Len(t, diffs, 3)
	assert.Equal(t, Diff{State: "MAINE", Count: intp(1)}, diffs[0])
	assert.Equal(t, Diff{State: "OHIO", Count: intp(3), Total: intp(5)}, diffs[1])
	assert.Equal(t, Diff{State: "TEXAS", Total: intp(2)}, diffs[2])
	assert.Equal(t, -2, *diffs[1].Delta())
	assert.Nil(t, diffs[0].Delta())

	all := Compare(counts, totals, true)
	assert.Len(t, all, 4)
	assert.Equal(t, "NEW YORK", all[1].State)
}

func TestFormatDiffs(t *testing.T) {
	diffs := []Diff{
		{State: "MAINE", Count: intp(1)},
		{State: "OHIO", Count: intp(3), Total: intp(5)},
	}
	want := strings.Join([]string{
		"STATE  COUNTS  LOCATION_TOTAL  DIFF",
		"MAINE       1         MISSING    NA",
		"OHIO        3               5    -2",
	}, "\n")
	assert.Equal(t, want, FormatDiffs(diffs))
}

func TestFormatDiffs_Empty(t *testing.T) {
	assert.Equal(t, NoDifferences, FormatDiffs(nil))
}
