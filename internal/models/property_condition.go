package models

import (
	apperrors "homeinsight-listings/internal/errors"
)

// PropertyCondition is declared so the field exists in stored rows, but no
// condition taxonomy has been defined yet and parsing always fails.
type PropertyCondition string

func ParsePropertyCondition(raw string) (PropertyCondition, error) {
	return "", apperrors.NewParseError("condition", raw, "", apperrors.ErrConditionUnsupported)
}

func (c *PropertyCondition) UnmarshalText(text []byte) error {
	parsed, err := ParsePropertyCondition(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
