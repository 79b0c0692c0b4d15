package counts

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peopleCSV = `State|City|Name|Description
NEW YORK|New York|Jay Gould|Railroads
NEW YORK|New York|Russell Sage|Finance
NEW YORK||Erin Gould|Real estate
CALIFORNIA|San Francisco|Leland Stanford|Railroads
|Nowhere|Stateless|Skipped
short
`

func TestCount(t *testing.T) {
	c, err := Count(context.Background(), strings.NewReader(peopleCSV))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"NEW YORK": 3, "CALIFORNIA": 1}, c.States)
	assert.Equal(t, 2, c.Cities[Key{"NEW YORK", "New York"}])
	assert.Equal(t, 1, c.Cities[Key{"NEW YORK", BlankCity}])
	assert.Equal(t, 1, c.Cities[Key{"CALIFORNIA", "San Francisco"}])
	assert.Equal(t, 4, c.Total())
}

func TestCount_CommaAndHeaderCase(t *testing.T) {
	in := "name, STATE ,city\nAstor,NEW YORK,New York\nCrocker,CALIFORNIA,\n"
	c, err := Count(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"NEW YORK": 1, "CALIFORNIA": 1}, c.States)
	assert.Equal(t, 1, c.Cities[Key{"CALIFORNIA", BlankCity}])
}

func TestCount_MissingColumns(t *testing.T) {
	_, err := Count(context.Background(), strings.NewReader("Name|Town\nA|B\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find 'State' and 'City' columns")
}

func TestCount_Empty(t *testing.T) {
	c, err := Count(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.States)
}

func TestCount_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Count(ctx, strings.NewReader(peopleCSV))
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	c, err := Count(context.Background(), strings.NewReader(peopleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))

	want := `Counts by state
CALIFORNIA: 1
NEW YORK: 3

Counts by state and city

CALIFORNIA
  San Francisco: 1

NEW YORK
  (blank): 1
  New York: 2
`
	assert.Equal(t, want, buf.String())
}

func TestWrite_RoundTrip(t *testing.T) {
	c, err := Count(context.Background(), strings.NewReader(peopleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))

	totals, err := ReadStateTotals(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, c.States, TotalsMap(totals))

	cities, err := ReadCitySections(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []CityCount{{City: "(blank)", Count: 1}, {City: "New York", Count: 2}}, cities["NEW YORK"])
}
