package model

// CityAggregate counts records for one city within a state. A nil City counts
// records whose city is unknown.
type CityAggregate struct {
	City  *string `json:"city"`
	Count int     `json:"count"`
}

// SortLabel returns the city's display label.
func (c CityAggregate) SortLabel() string { return DisplayCity(c.City) }

// SortCount returns the city's record count.
func (c CityAggregate) SortCount() int { return c.Count }

// StateAggregate counts records for one state and its cities.
type StateAggregate struct {
	State  string          `json:"state"`
	Count  int             `json:"count"`
	Cities []CityAggregate `json:"cities"`
}

// SortLabel returns the state code.
func (s StateAggregate) SortLabel() string { return s.State }

// SortCount returns the state's record count.
func (s StateAggregate) SortCount() int { return s.Count }

// HasCity reports whether city is one of the state's city options.
func (s StateAggregate) HasCity(city *string) bool {
	for _, c := range s.Cities {
		if SameCity(c.City, city) {
			return true
		}
	}
	return false
}

// StateCityCounts is the document stored in state_city_counts.json.
type StateCityCounts struct {
	States []StateAggregate `json:"states"`
}

// IndustryAggregate counts records for one industry category.
type IndustryAggregate struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// SortLabel returns the category name.
func (i IndustryAggregate) SortLabel() string { return i.Category }

// SortCount returns the category's record count.
func (i IndustryAggregate) SortCount() int { return i.Count }

// StateTotal is one row of state_totals.json.
type StateTotal struct {
	State string `json:"state"`
	Count int    `json:"count"`
}
