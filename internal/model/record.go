// Package model defines the directory records and the count aggregates built from them.
package model

import "strings"

// UnknownCity is the display label for a record or aggregate without a city.
const UnknownCity = "Unknown"

// PersonRecord is one directory entry. NameNorm and DescNorm hold the
// normalized forms of Name and Desc and are computed when the index is built.
type PersonRecord struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	State    string  `json:"state"`
	City     *string `json:"city"`
	Desc     string  `json:"desc"`
	NameNorm string  `json:"name_norm"`
	DescNorm string  `json:"desc_norm"`
}

// CityLabel returns the display label for the record's city.
func (p PersonRecord) CityLabel() string {
	return DisplayCity(p.City)
}

// DisplayCity renders a nullable city. Missing cities, empty strings, and the
// literal "null" all display as UnknownCity.
func DisplayCity(city *string) string {
	if city == nil || *city == "" || strings.EqualFold(*city, "null") {
		return UnknownCity
	}
	return *city
}

// CityPtr returns a pointer to a copy of city.
func CityPtr(city string) *string {
	return &city
}

// SameCity reports whether two nullable cities are equal, treating two nil
// values as equal.
func SameCity(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
