package models

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/utils"
)

// Address is the canonical, comparable form of a street address. Two
// addresses are the same property iff every field is equal, so the struct is
// used directly as a map key for joins and de-duplication. An empty
// UnitNumber means the address has no unit.
type Address struct {
	UnitNumber   string
	StreetNumber string
	StreetName   string
	Suburb       string
	Postcode     uint32
	State        string
	Country      Country
}

// PostcodeLookup resolves a suburb to its postcode for a country.
type PostcodeLookup interface {
	FindPostcode(ctx context.Context, suburb string, country Country) (uint32, error)
}

// AddressComponents are the loose parts of an address before validation.
type AddressComponents struct {
	UnitNumber   string  `json:"unit_number"`
	StreetNumber string  `json:"street_number"`
	StreetName   string  `json:"street_name"`
	Suburb       string  `json:"suburb"`
	Postcode     uint32  `json:"postcode"`
	State        string  `json:"state"`
	Country      Country `json:"country"`
}

// NewAddress normalises the components and checks that the postcode belongs
// to the suburb. Lookup failures are returned unchanged; a mismatch is a
// ValidationError.
func NewAddress(ctx context.Context, c AddressComponents, lookup PostcodeLookup) (Address, error) {
	addr := Address{
		UnitNumber:   utils.Upper(strings.TrimSpace(c.UnitNumber)),
		StreetNumber: utils.Upper(strings.TrimSpace(c.StreetNumber)),
		StreetName:   utils.Upper(utils.CollapseSpaces(c.StreetName)),
		Suburb:       utils.NormalizeSuburb(c.Suburb),
		Postcode:     c.Postcode,
		State:        utils.Upper(strings.TrimSpace(c.State)),
		Country:      c.Country,
	}
	if addr.Country == "" {
		addr.Country = CountryAustralia
	}

	if addr.StreetNumber == "" || addr.StreetName == "" {
		return Address{}, apperrors.NewValidationError("street", addr.StreetNumber+" "+addr.StreetName, "street number and name are required", nil)
	}
	if !States[addr.State] {
		return Address{}, apperrors.NewValidationError("state", c.State, "not a recognised state code", nil)
	}

	expected, err := lookup.FindPostcode(ctx, addr.Suburb, addr.Country)
	if err != nil {
		return Address{}, err
	}
	if expected != addr.Postcode {
		return Address{}, apperrors.NewValidationError(
			"postcode",
			strconv.FormatUint(uint64(addr.Postcode), 10),
			fmt.Sprintf("does not match suburb %s (expected %d)", addr.Suburb, expected),
			nil,
		)
	}
	return addr, nil
}

func (a Address) HasUnit() bool {
	return a.UnitNumber != ""
}

// Components returns the address as loose components.
func (a Address) Components() AddressComponents {
	return AddressComponents{
		UnitNumber:   a.UnitNumber,
		StreetNumber: a.StreetNumber,
		StreetName:   a.StreetName,
		Suburb:       a.Suburb,
		Postcode:     a.Postcode,
		State:        a.State,
		Country:      a.Country,
	}
}

// String renders "[unit/]number street, SUBURB, STATE postcode", the form
// the address parser reads back to an equal Address.
func (a Address) String() string {
	var b strings.Builder
	if a.HasUnit() {
		b.WriteString(a.UnitNumber)
		b.WriteByte('/')
	}
	fmt.Fprintf(&b, "%s %s, %s, %s %d", a.StreetNumber, a.StreetName, utils.DisplaySuburb(a.Suburb), a.State, a.Postcode)
	return b.String()
}

type addressJSON struct {
	UnitNumber   *string `json:"unit_number"`
	StreetNumber string  `json:"street_number"`
	StreetName   string  `json:"street_name"`
	Suburb       string  `json:"suburb"`
	Postcode     uint32  `json:"postcode"`
	State        string  `json:"state"`
	Country      Country `json:"country"`
}

func (a Address) MarshalJSON() ([]byte, error) {
	out := addressJSON{
		StreetNumber: a.StreetNumber,
		StreetName:   a.StreetName,
		Suburb:       a.Suburb,
		Postcode:     a.Postcode,
		State:        a.State,
		Country:      a.Country,
	}
	if a.HasUnit() {
		unit := a.UnitNumber
		out.UnitNumber = &unit
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts unit and street numbers written either as JSON
// numbers or strings, since older files store them as integers.
func (a *Address) UnmarshalJSON(data []byte) error {
	var raw struct {
		UnitNumber   json.RawMessage `json:"unit_number"`
		StreetNumber json.RawMessage `json:"street_number"`
		StreetName   string          `json:"street_name"`
		Suburb       string          `json:"suburb"`
		Postcode     uint32          `json:"postcode"`
		State        string          `json:"state"`
		Country      Country         `json:"country"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	unit, err := looseString(raw.UnitNumber)
	if err != nil {
		return fmt.Errorf("unit_number: %w", err)
	}
	number, err := looseString(raw.StreetNumber)
	if err != nil {
		return fmt.Errorf("street_number: %w", err)
	}
	*a = Address{
		UnitNumber:   unit,
		StreetNumber: number,
		StreetName:   raw.StreetName,
		Suburb:       raw.Suburb,
		Postcode:     raw.Postcode,
		State:        raw.State,
		Country:      raw.Country,
	}
	return nil
}

func looseString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
