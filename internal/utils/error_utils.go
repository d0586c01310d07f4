package utils

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/pkg/cache"
	"homeinsight-listings/pkg/logger"
)

// LogAndMapError logs technical details and returns a user-friendly AppError.
func LogAndMapError(err error, operation string, params ...interface{}) *apperrors.AppError {
	appErr := apperrors.MapError(err)
	if appErr == nil {
		return nil
	}

	details := make([]string, 0, len(params)/2)
	for i := 0; i+1 < len(params); i += 2 {
		details = append(details, fmt.Sprintf("%v=%v", params[i], params[i+1]))
	}
	sort.Strings(details)

	logger.L().Errorf("operation=%s code=%s %s error=%s",
		operation, appErr.Code, strings.Join(details, " "), appErr.TechnicalMessage)

	var parseErr *apperrors.ParseError
	if errors.As(err, &parseErr) {
		for _, note := range parseErr.Notes() {
			logger.L().Debugf("operation=%s note: %s", operation, note)
		}
	}
	return appErr
}

// WrapError adds context to an error while preserving the original.
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(message, args...), err)
}

// IsRetryableError determines if an error is transient and worth retrying.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if cache.IsRetryable(err) {
		return true
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus == http.StatusServiceUnavailable
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "connection")
}
