package models

import "strings"

// Address is the resolved location of an institution.
//
// Invariants:
//   - Latitude and Longitude are either both set or both nil; geocoding is
//     optional enrichment and may fail while the postal lookup succeeds
//   - Street, City and Region come from the authoritative postal lookup
type Address struct {
	Street       string   `json:"street"`
	Neighborhood string   `json:"neighborhood"`
	City         string   `json:"city"`
	Region       string   `json:"region"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// SetCoordinates sets both coordinates together.
func (a *Address) SetCoordinates(c Coordinates) {
	lat, lon := c.Latitude, c.Longitude
	a.Latitude = &lat
	a.Longitude = &lon
}

// ClearCoordinates drops both coordinates together.
func (a *Address) ClearCoordinates() {
	a.Latitude = nil
	a.Longitude = nil
}

func (a Address) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// IsComplete reports whether the address is good enough to register an institution.
func (a Address) IsComplete() bool {
	return a.Street != ""
}

// GeocodeQuery is the free-text query sent to the geocoder: street, city, region.
func (a Address) GeocodeQuery() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.City, a.Region} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Coordinates is one geocoder candidate.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PostalAddress is the stage-one result of a postal code lookup.
type PostalAddress struct {
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	Region       string `json:"region"`
}

// Address converts a postal lookup into an Address without coordinates.
func (p PostalAddress) Address() Address {
	return Address{
		Street:       p.Street,
		Neighborhood: p.Neighborhood,
		City:         p.City,
		Region:       p.Region,
	}
}

// Resolution is the outcome of the two-stage pipeline for one postal code.
// Geocoded is false when coordinates could not be obtained; the resolution is
// still successful in that case.
type Resolution struct {
	PostalCode string  `json:"postal_code"`
	Address    Address `json:"address"`
	Geocoded   bool    `json:"geocoded"`
	Token      uint64  `json:"token,omitempty"`
}
