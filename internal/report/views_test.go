package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/millionaires/internal/dataset"
	"github.com/sells-group/millionaires/internal/model"
	"github.com/sells-group/millionaires/internal/page"
	"github.com/sells-group/millionaires/internal/query"
	"github.com/sells-group/millionaires/internal/textnorm"
)

func person(name, state string, city *string, desc string) model.PersonRecord {
	return model.PersonRecord{
		Name: name, State: state, City: city, Desc: desc,
		NameNorm: textnorm.Normalize(name), DescNorm: textnorm.Normalize(desc),
	}
}

func fixtureIndex() *dataset.Index {
	people := []model.PersonRecord{
		person("Jay Gould", "NY", model.CityPtr("New York"), "Railroads"),
		person("Bob Jones", "CA", nil, "Mining"),
	}
	states := []model.StateAggregate{
		{State: "CA", Count: 1, Cities: []model.CityAggregate{{City: nil, Count: 1}}},
		{State: "NY", Count: 1, Cities: []model.CityAggregate{{City: model.CityPtr("New York"), Count: 1}}},
	}
	industries := []model.IndustryAggregate{{Category: "Railroads", Count: 1}, {Category: "Mining", Count: 1}}
	return dataset.NewIndex(people, states, industries)
}

func TestDirectoryReport(t *testing.T) {
	v := page.NewDirectory(query.DeepLink{State: "CA", Query: "mining"}).Loaded(fixtureIndex()).View()
	r := Directory(v)

	assert.Equal(t, `Showing 1 of 2 entries (state CA, search "mining")`, r.Summary)
	require.Len(t, r.Tables, 1)
	assert.Equal(t, [][]string{{"Bob Jones", "CA", "Unknown", "Mining"}}, r.Tables[0].Rows)
}

func TestDirectoryReport_Unavailable(t *testing.T) {
	r := Directory(page.NewDirectory(query.DeepLink{}).Loaded(nil).View())
	assert.Empty(t, r.Tables)
	assert.Contains(t, r.Summary, "Unable to load")
}

func TestStatsReport(t *testing.T) {
	v := page.NewStats().Loaded(fixtureIndex()).SelectState("NY").View()
	r := Stats(v)

	require.Len(t, r.Tables, 3)
	assert.Equal(t, "People by state (label asc)", r.Tables[0].Title)
	assert.Equal(t, [][]string{{"CA", "1"}, {"NY", "1"}}, r.Tables[0].Rows)
	assert.Equal(t, "Cities in NY (count desc)", r.Tables[1].Title)
	assert.Equal(t, [][]string{{"New York", "1"}}, r.Tables[1].Rows)
	assert.Equal(t, [][]string{{"Railroads", "1"}, {"Mining", "1"}}, r.Tables[2].Rows)
}

func TestStatsReport_NoState(t *testing.T) {
	r := Stats(page.NewStats().Loaded(fixtureIndex()).View())
	assert.Equal(t, "Cities", r.Tables[1].Title)
	assert.Empty(t, r.Tables[1].Rows)
	assert.Equal(t, page.MessageChooseState, r.Tables[1].Note)
}

func TestNotableReport(t *testing.T) {
	v := page.NewNotable(query.NewNotable([]string{"Jay Gould"})).Loaded(fixtureIndex()).View()
	r := Notable(v)
	assert.Equal(t, "Showing 1 entries", r.Summary)
	assert.Equal(t, [][]string{{"Jay Gould", "NY", "New York", "Railroads"}}, r.Tables[0].Rows)
}
