package validators

import (
	"context"
	"strconv"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/utils"
)

type propertyInfoValidator struct {
	lookup models.PostcodeLookup
}

// NewPropertyInfoValidator validates addresses against lookup. A nil lookup
// skips the postcode check and validates the remaining fields only.
func NewPropertyInfoValidator(lookup models.PostcodeLookup) PropertyInfoValidator {
	return &propertyInfoValidator{lookup: lookup}
}

func (v *propertyInfoValidator) Validate(ctx context.Context, info models.PropertyInfo) error {
	if v.lookup != nil {
		if _, err := models.NewAddress(ctx, info.Address.Components(), v.lookup); err != nil {
			return err
		}
	} else if !models.States[info.Address.State] {
		return apperrors.NewValidationError("state", info.Address.State, "not a recognised state code", nil)
	}

	counts := []struct {
		field string
		value *int
	}{
		{"beds", info.Beds},
		{"baths", info.Baths},
		{"cars", info.Cars},
		{"floors", info.Floors},
	}
	for _, c := range counts {
		if c.value != nil && *c.value < 0 {
			return apperrors.NewValidationError(c.field, strconv.Itoa(*c.value), "must not be negative", nil)
		}
	}

	sizes := []struct {
		field string
		value *float64
	}{
		{"property_size_m2", info.PropertySizeM2},
		{"land_size_m2", info.LandSizeM2},
	}
	for _, s := range sizes {
		if s.value != nil && *s.value < 0 {
			return apperrors.NewValidationError(s.field, strconv.FormatFloat(*s.value, 'f', -1, 64), "must not be negative", nil)
		}
	}

	if pt := info.PropertyType; pt != nil {
		if _, err := models.NewPropertyType(string(pt.Category), string(pt.Sub)); err != nil {
			return apperrors.NewValidationError("property_type", pt.String(), "not in the taxonomy", err)
		}
	}
	return nil
}

type locationValidator struct{}

func NewLocationValidator() LocationValidator {
	return &locationValidator{}
}

func (v *locationValidator) ValidateLocation(loc models.Location) error {
	if _, err := models.ParseCountry(string(loc.Country)); err != nil {
		return err
	}
	if !models.States[utils.Upper(loc.State)] {
		return apperrors.NewValidationError("state", loc.State, "not a recognised state code", nil)
	}
	if utils.NormalizeSuburb(loc.Suburb) == "" {
		return apperrors.NewValidationError("suburb", loc.Suburb, "suburb is required", nil)
	}
	return nil
}
