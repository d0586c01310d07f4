package utils

import (
	"errors"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/pkg/metrics"
)

// RecordParseFailure counts err under its parse kind. Errors that are not
// parse, taxonomy or lookup failures are counted as "other".
func RecordParseFailure(err error) {
	if err == nil {
		return
	}
	metrics.ParseFailuresTotal.WithLabelValues(FailureKind(err)).Inc()
}

// FailureKind classifies err for metrics and run summaries.
func FailureKind(err error) string {
	var (
		parseErr      *apperrors.ParseError
		validationErr *apperrors.ValidationError
		taxonomyErr   *apperrors.TaxonomyError
	)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return "lookup"
	case errors.As(err, &parseErr):
		return parseErr.What
	case errors.As(err, &taxonomyErr):
		return "property_type"
	case errors.As(err, &validationErr):
		return "validation"
	default:
		return "other"
	}
}

func RecordListingOutcome(status string) {
	metrics.ListingsProcessedTotal.WithLabelValues(status).Inc()
}
