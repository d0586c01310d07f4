package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/utils"
)

// Category is the parent level of the property type taxonomy.
type Category string

const (
	CategoryLand              Category = "land"
	CategoryFreeStandingHouse Category = "free_standing_house"
	CategoryTownHouse         Category = "town_house"
	CategoryApartment         Category = "apartment"
)

// SubCategory is the optional second level. The zero value is the
// "general" variant of a category.
type SubCategory string

const (
	SubCategoryGeneral      SubCategory = ""
	SubCategoryNewBuild     SubCategory = "new_build"
	SubCategoryModern       SubCategory = "modern"
	SubCategoryVictorian    SubCategory = "victorian"
	SubCategoryFederation   SubCategory = "federation"
	SubCategorySixtiesBrick SubCategory = "sixties_brick"
	SubCategorySkyScrapper  SubCategory = "sky_scrapper"
)

// Categories lists the parents in declaration order.
var Categories = []Category{
	CategoryLand,
	CategoryFreeStandingHouse,
	CategoryTownHouse,
	CategoryApartment,
}

var allowedSubCategories = map[Category][]SubCategory{
	CategoryLand:              {SubCategoryNewBuild},
	CategoryFreeStandingHouse: {SubCategoryModern, SubCategoryVictorian, SubCategoryFederation},
	CategoryTownHouse:         {SubCategoryVictorian, SubCategoryModern},
	CategoryApartment:         {SubCategorySixtiesBrick, SubCategoryModern, SubCategorySkyScrapper},
}

// AllowedSubCategories returns the closed sub-category set for c, or nil
// when c is not a known category.
func AllowedSubCategories(c Category) []SubCategory {
	subs, ok := allowedSubCategories[c]
	if !ok {
		return nil
	}
	return append([]SubCategory(nil), subs...)
}

// PropertyType is a (category, sub-category) pair. Values are comparable.
type PropertyType struct {
	Category Category
	Sub      SubCategory
}

// NewPropertyType validates a pair. An unknown parent wraps
// ErrUnknownParent; a sub-category outside the parent's set wraps
// ErrUnknownSubCategory.
func NewPropertyType(parent, sub string) (PropertyType, error) {
	category := Category(strings.ToLower(strings.TrimSpace(parent)))
	subs, ok := allowedSubCategories[category]
	if !ok {
		return PropertyType{}, &apperrors.TaxonomyError{Parent: parent, Sub: sub, Err: apperrors.ErrUnknownParent}
	}

	subCategory := SubCategory(strings.ToLower(strings.TrimSpace(sub)))
	if isNullSub(string(subCategory)) {
		return PropertyType{Category: category}, nil
	}
	for _, allowed := range subs {
		if subCategory == allowed {
			return PropertyType{Category: category, Sub: subCategory}, nil
		}
	}
	return PropertyType{}, &apperrors.TaxonomyError{Parent: parent, Sub: sub, Err: apperrors.ErrUnknownSubCategory}
}

// General returns the null sub-category variant of c.
func General(c Category) PropertyType {
	return PropertyType{Category: c}
}

func (p PropertyType) IsGeneral() bool {
	return p.Sub == SubCategoryGeneral
}

// String is "category" for general values and "category.sub" otherwise.
func (p PropertyType) String() string {
	if p.IsGeneral() {
		return string(p.Category)
	}
	return string(p.Category) + "." + string(p.Sub)
}

// Ptr returns a pointer to a copy of p.
func (p PropertyType) Ptr() *PropertyType {
	return &p
}

// MarshalJSON writes the two element form ["apartment", null].
func (p PropertyType) MarshalJSON() ([]byte, error) {
	pair := [2]*string{}
	category := string(p.Category)
	pair[0] = &category
	if !p.IsGeneral() {
		sub := string(p.Sub)
		pair[1] = &sub
	}
	return json.Marshal(pair)
}

// UnmarshalJSON reads the two element form. A sub-category of null, "" or
// "None" decodes to the general variant.
func (p *PropertyType) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var pair []*string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("property_type must be a [category, sub-category] pair: %w", err)
	}
	if len(pair) == 0 || len(pair) > 2 || pair[0] == nil {
		return fmt.Errorf("property_type must be a [category, sub-category] pair, got %s", string(data))
	}
	sub := ""
	if len(pair) == 2 && pair[1] != nil {
		sub = *pair[1]
	}
	parsed, err := NewPropertyType(*pair[0], sub)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func isNullSub(s string) bool {
	switch s {
	case "", "none", "null", "general":
		return true
	}
	return false
}

// LabelMapping selects how listing-site category labels map onto the
// taxonomy.
type LabelMapping int

const (
	// LabelMappingObserved reproduces the historical data, where "house",
	// "townhouse" and "unit/apmt" were all filed as apartments.
	LabelMappingObserved LabelMapping = iota
	// LabelMappingByCategory files each label under its own category.
	LabelMappingByCategory
)

func (m LabelMapping) String() string {
	if m == LabelMappingByCategory {
		return "by_category"
	}
	return "observed"
}

func ParseLabelMapping(s string) (LabelMapping, error) {
	switch utils.NormalizeLabel(s) {
	case "", "observed":
		return LabelMappingObserved, nil
	case "by_category":
		return LabelMappingByCategory, nil
	default:
		return LabelMappingObserved, fmt.Errorf("unknown label mapping %q", s)
	}
}

var siteLabels = map[LabelMapping]map[string]Category{
	LabelMappingObserved: {
		"unit/apmt":         CategoryApartment,
		"townhouse":         CategoryApartment,
		"house":             CategoryApartment,
		"land":              CategoryLand,
		"sales residential": CategoryFreeStandingHouse,
	},
	LabelMappingByCategory: {
		"unit/apmt":         CategoryApartment,
		"townhouse":         CategoryTownHouse,
		"house":             CategoryFreeStandingHouse,
		"land":              CategoryLand,
		"sales residential": CategoryFreeStandingHouse,
	},
}

// ParsePropertyType reads either the canonical "category" or
// "category.sub" form, or one of the listing site's category labels. Labels
// only ever produce the general variant of a category.
func ParsePropertyType(raw string, mapping LabelMapping) (PropertyType, error) {
	cleaned := utils.NormalizeWords(raw)

	parent, sub, _ := strings.Cut(cleaned, ".")
	if _, known := allowedSubCategories[Category(parent)]; known {
		return NewPropertyType(parent, sub)
	}

	labels, ok := siteLabels[mapping]
	if !ok {
		labels = siteLabels[LabelMappingObserved]
	}
	if category, ok := labels[cleaned]; ok {
		return General(category), nil
	}
	return PropertyType{}, apperrors.NewParseError("property_type", raw, cleaned, fmt.Errorf("unknown property type label %q", cleaned))
}

// UnionPropertyType returns the first non-nil value, or nil.
func UnionPropertyType(values ...*PropertyType) *PropertyType {
	return FirstNonNil(values...)
}
