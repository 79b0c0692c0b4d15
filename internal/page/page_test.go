package page

import (
	"testing"

	"github.com/sells-group/millionaires/internal/dataset"
	"github.com/sells-group/millionaires/internal/model"
	"github.com/sells-group/millionaires/internal/textnorm"
)

func person(name, state string, city *string, desc string) model.PersonRecord {
	return model.PersonRecord{
		Name:     name,
		State:    state,
		City:     city,
		Desc:     desc,
		NameNorm: textnorm.Normalize(name),
		DescNorm: textnorm.Normalize(desc),
	}
}

func fixtureIndex(t *testing.T) *dataset.Index {
	t.Helper()
	people := []model.PersonRecord{
		person("Alice Smith", "NY", model.CityPtr("Buffalo"), "Banker"),
		person("Bob Jones", "CA", nil, "Railroad"),
		person("Carol Banks", "NY", model.CityPtr("Albany"), "Shipping"),
		person("Jay Gould", "NY", model.CityPtr("New York"), "Railroads"),
		person("Erin Gould", "NY", nil, "Real estate"),
	}
	states := []model.StateAggregate{
		{State: "CA", Count: 1, Cities: []model.CityAggregate{{City: nil, Count: 1}}},
		{State: "NY", Count: 4, Cities: []model.CityAggregate{
			{City: model.CityPtr("New York"), Count: 1},
			{City: model.CityPtr("Albany"), Count: 1},
			{City: model.CityPtr("Buffalo"), Count: 1},
			{City: nil, Count: 1},
		}},
		{State: "WY", Count: 0, Cities: []model.CityAggregate{}},
	}
	industries := []model.IndustryAggregate{
		{Category: "Railroads", Count: 2},
		{Category: "Banking", Count: 1},
	}
	return dataset.NewIndex(people, states, industries)
}

func names(records []model.PersonRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}
