package models

import (
	"fmt"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/utils"
)

// Country identifies whose address conventions apply. Only Australia is
// modelled.
type Country string

const CountryAustralia Country = "australia"

var countryAliases = map[string]Country{
	"australia": CountryAustralia,
	"aus":       CountryAustralia,
	"au":        CountryAustralia,
}

// ParseCountry accepts the full name or the usual short codes.
func ParseCountry(raw string) (Country, error) {
	if c, ok := countryAliases[utils.NormalizeWords(raw)]; ok {
		return c, nil
	}
	return "", apperrors.NewParseError("country", raw, "", fmt.Errorf("cannot parse address for country %q", raw))
}

func (c Country) String() string {
	return string(c)
}

// States lists the state and territory codes accepted in Australian addresses.
var States = map[string]bool{
	"NSW": true,
	"VIC": true,
	"QLD": true,
	"SA":  true,
	"WA":  true,
	"TAS": true,
	"NT":  true,
	"ACT": true,
}

// PostcodeEntry is one row of a country's postcode table.
type PostcodeEntry struct {
	Postcode uint32 `json:"postcode"`
	Suburb   string `json:"suburb"`
}

// Location scopes the flat-file stores: one file per suburb.
type Location struct {
	Country Country `json:"country"`
	State   string  `json:"state"`
	Suburb  string  `json:"suburb"`
}
