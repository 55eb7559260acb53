// Package domain holds DTOs for filters http and service contracts
package domain

// Filter is one row of a static filter table
type Filter struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// AllFiltersOut groups every static filter table in one payload
type AllFiltersOut struct {
	Damage      []Filter `json:"damage"`
	Document    []Filter `json:"document"`
	Drive       []Filter `json:"drive"`
	Status      []Filter `json:"status"`
	Transmission []Filter `json:"transmission"`
	VehicleType []Filter `json:"vehicle_type"`
}

// TitleIndicatorOut carries the dot color for a title name
// colors: grey, green, yellow, red, red red, black
type TitleIndicatorOut struct {
	Color string `json:"color"`
}
