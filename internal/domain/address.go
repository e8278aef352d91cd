package domain

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

const (
	MaxStreetLength     = 50
	MaxAnnexLength      = 3
	MaxPostalCodeLength = 7
)

// Address is a postal address record. AddressID is assigned by storage.
type Address struct {
	AddressID   int64  `json:"addressId"`
	Street      string `json:"street,omitempty"`
	HouseNumber int    `json:"houseNumber"`
	Annex       string `json:"annex,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

// Validate checks the column length limits of the address table.
func (a Address) Validate() error {
	limits := []struct {
		name  string
		value string
		max   int
	}{
		{"street", a.Street, MaxStreetLength},
		{"annex", a.Annex, MaxAnnexLength},
		{"postalCode", a.PostalCode, MaxPostalCodeLength},
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidAddress, l.name, l.max)
		}
	}
	return nil
}

// Formatted renders the address as a single line suitable for geocoding,
// e.g. "Main Street 12a, 1234 AB Amsterdam, Netherlands".
func (a Address) Formatted() string {
	return a.Street + " " + strconv.Itoa(a.HouseNumber) + a.Annex + ", " +
		a.PostalCode + " " + a.City + ", " + a.Country
}

// GeoCoordinate is a latitude/longitude pair in degrees.
type GeoCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Distance is the result of a distance calculation between two addresses.
type Distance struct {
	From       int64   `json:"from"`
	To         int64   `json:"to"`
	DistanceKm float64 `json:"distanceKm"`
}
