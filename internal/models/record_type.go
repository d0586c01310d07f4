package models

import (
	"fmt"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/utils"
)

// RecordType is the sale process behind one price observation.
type RecordType string

const (
	RecordTypeAuction     RecordType = "auction"
	RecordTypePrivateSale RecordType = "private_sale"
	RecordTypeEnquiry     RecordType = "enquiry"
	RecordTypeNoSale      RecordType = "no_sale"
	RecordTypeRent        RecordType = "rent"
)

// RecordTypes lists every record type in declaration order.
var RecordTypes = []RecordType{
	RecordTypeAuction,
	RecordTypePrivateSale,
	RecordTypeEnquiry,
	RecordTypeNoSale,
	RecordTypeRent,
}

// recordTypeSynonyms maps listing-site wording onto record types.
var recordTypeSynonyms = map[string]RecordType{
	"auction":        RecordTypeAuction,
	"by_negotiation": RecordTypePrivateSale,
	"price_guide":    RecordTypeEnquiry,
	"contact":        RecordTypeEnquiry,
	"in_excess_of":   RecordTypeEnquiry,
	"week":           RecordTypeRent,
}

// ErrorMode selects what a parser does with text it cannot classify.
type ErrorMode int

const (
	// ErrorModeStrict fails with a ParseError.
	ErrorModeStrict ErrorMode = iota
	// ErrorModeLenient reports absence with a nil result.
	ErrorModeLenient
	// ErrorModeCoerce is reserved. Parsers reject it with
	// ErrCoerceNotImplemented.
	ErrorModeCoerce
)

func (m ErrorMode) String() string {
	switch m {
	case ErrorModeStrict:
		return "strict"
	case ErrorModeLenient:
		return "lenient"
	case ErrorModeCoerce:
		return "coerce"
	default:
		return fmt.Sprintf("ErrorMode(%d)", int(m))
	}
}

// ParseErrorMode reads the names used in config and query strings. The
// names "raise" and "null" are accepted as aliases.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch utils.NormalizeLabel(s) {
	case "", "strict", "raise":
		return ErrorModeStrict, nil
	case "lenient", "null":
		return ErrorModeLenient, nil
	case "coerce":
		return ErrorModeCoerce, nil
	default:
		return ErrorModeStrict, fmt.Errorf("unknown error mode %q", s)
	}
}

func (r RecordType) Valid() bool {
	for _, known := range RecordTypes {
		if r == known {
			return true
		}
	}
	return false
}

func (r RecordType) String() string {
	return string(r)
}

// Ptr returns a pointer to a copy of r.
func (r RecordType) Ptr() *RecordType {
	return &r
}

// ParseRecordType classifies a label such as "  Private Sale " or
// "By Negotiation". A nil result with a nil error means the label was not
// recognised and mode is ErrorModeLenient.
func ParseRecordType(raw string, mode ErrorMode) (*RecordType, error) {
	if mode == ErrorModeCoerce {
		return nil, apperrors.ErrCoerceNotImplemented
	}

	cleaned := utils.NormalizeLabel(raw)
	if rt := RecordType(cleaned); rt.Valid() {
		return &rt, nil
	}
	if rt, ok := recordTypeSynonyms[cleaned]; ok {
		return &rt, nil
	}

	switch mode {
	case ErrorModeLenient:
		return nil, nil
	case ErrorModeStrict:
		return nil, apperrors.NewParseError("record_type", raw, cleaned, fmt.Errorf("unknown record type %q", cleaned))
	default:
		return nil, fmt.Errorf("unsupported error mode %v", mode)
	}
}

func (r RecordType) MarshalText() ([]byte, error) {
	return []byte(r), nil
}

func (r *RecordType) UnmarshalText(text []byte) error {
	parsed, err := ParseRecordType(string(text), ErrorModeStrict)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}
