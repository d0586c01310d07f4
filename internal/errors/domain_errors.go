package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks across packages.
var (
	ErrNotFound             = stderrors.New("not found")
	ErrUnknownParent        = stderrors.New("unknown property type category")
	ErrUnknownSubCategory   = stderrors.New("unknown sub-category for property type category")
	ErrCoerceNotImplemented = stderrors.New("coerce error mode is not implemented")
	ErrConditionUnsupported = stderrors.New("property condition parsing is not implemented")
)

// LookupError is returned when a suburb or postcode is absent from the
// directory for a country.
type LookupError struct {
	Country string
	Key     string
	Value   string
}

func NewLookupError(country, key, value string) *LookupError {
	return &LookupError{Country: country, Key: key, Value: value}
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("could not find %s %q for country %q", e.Key, e.Value, e.Country)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}

// ParseError reports free text that did not fit the expected grammar. Input
// is the original text and Cleaned the intermediate form the parser worked
// on, so batch failures can be diagnosed from logs alone.
type ParseError struct {
	What    string
	Input   string
	Cleaned string
	Err     error
}

func NewParseError(what, input, cleaned string, err error) *ParseError {
	return &ParseError{What: what, Input: input, Cleaned: cleaned, Err: err}
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cannot parse %s", e.What)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	for _, note := range e.Notes() {
		b.WriteString("; ")
		b.WriteString(note)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Notes returns the original input and the cleaned text the parser
// worked on, in that order. Both are always present.
func (e *ParseError) Notes() []string {
	return []string{
		fmt.Sprintf("input: %q", e.Input),
		fmt.Sprintf("cleaned: %q", e.Cleaned),
	}
}

// ValidationError is a consistency failure on already structured data.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func NewValidationError(field, value, reason string, err error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason, Err: err}
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TaxonomyError wraps ErrUnknownParent or ErrUnknownSubCategory.
type TaxonomyError struct {
	Parent string
	Sub    string
	Err    error
}

func (e *TaxonomyError) Error() string {
	if stderrors.Is(e.Err, ErrUnknownParent) {
		return fmt.Sprintf("%v: %q", e.Err, e.Parent)
	}
	return fmt.Sprintf("%v: %q is not a sub-category of %q", e.Err, e.Sub, e.Parent)
}

func (e *TaxonomyError) Unwrap() error {
	return e.Err
}
