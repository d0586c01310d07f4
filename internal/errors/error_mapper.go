package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()

	var (
		parseErr      *ParseError
		validationErr *ValidationError
		taxonomyErr   *TaxonomyError
	)

	switch {
	case stderrors.Is(err, ErrNotFound):
		return NewAppError(technicalMessage, MsgNotFound, ErrCodeNotFound, http.StatusNotFound, err)
	case stderrors.As(err, &parseErr) && parseErr.What == "address":
		return NewAppError(technicalMessage, MsgInvalidAddress, ErrCodeInvalidAddress, http.StatusUnprocessableEntity, err)
	case stderrors.Is(err, ErrCoerceNotImplemented), stderrors.Is(err, ErrConditionUnsupported):
		return NewAppError(technicalMessage, MsgNotImplemented, ErrCodeNotImplemented, http.StatusNotImplemented, err)
	case stderrors.As(err, &parseErr):
		return NewAppError(technicalMessage, MsgParseFailed, ErrCodeParseFailed, http.StatusUnprocessableEntity, err)
	case stderrors.As(err, &validationErr), stderrors.As(err, &taxonomyErr):
		return NewAppError(technicalMessage, MsgValidationFailed, ErrCodeValidationFailed, http.StatusUnprocessableEntity, err)
	case strings.Contains(technicalMessage, "cache operation"):
		return NewAppError(technicalMessage, MsgServiceUnavailable, ErrCodeServiceUnavailable, http.StatusServiceUnavailable, err)
	default:
		return NewAppError(technicalMessage, MsgInternalError, ErrCodeInternal, http.StatusInternalServerError, err)
	}
}

// BadRequest wraps a request binding failure.
func BadRequest(err error) *AppError {
	return NewAppError(err.Error(), MsgInvalidParameters, ErrCodeInvalidParameters, http.StatusBadRequest, err)
}

// RateLimited is returned to clients over their request budget.
func RateLimited() *AppError {
	return NewAppError("rate limit exceeded", MsgRateLimited, ErrCodeRateLimited, http.StatusTooManyRequests, nil)
}
