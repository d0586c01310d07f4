package utils

import (
	"errors"
	"io/fs"
	"net/http"
	"testing"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/pkg/cache"
)

func TestWrapError(t *testing.T) {
	if WrapError(nil, "ignored") != nil {
		t.Error("WrapError(nil) should be nil")
	}
	err := WrapError(fs.ErrNotExist, "read %s", "ASCOT_VALE")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("WrapError lost the cause: %v", err)
	}
	if err.Error() != "read ASCOT_VALE: file does not exist" {
		t.Errorf("WrapError == %q", err.Error())
	}
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		err    error
		expect bool
	}{
		{nil, false},
		{cache.NewCacheError("hgetall", "k", errors.New("boom"), true), true},
		{cache.NewCacheError("hset", "k", errors.New("boom"), false), false},
		{apperrors.NewAppError("down", "", "", http.StatusServiceUnavailable, nil), true},
		{apperrors.NewAppError("bad", "", "", http.StatusBadRequest, nil), false},
		{errors.New("dial tcp: connection refused"), true},
		{apperrors.NewLookupError("australia", "suburb", "X"), false},
	}
	for _, c := range cases {
		if got := IsRetryableError(c.err); got != c.expect {
			t.Errorf("IsRetryableError(%v) == %v, expected %v", c.err, got, c.expect)
		}
	}
}

func TestLogAndMapError(t *testing.T) {
	if LogAndMapError(nil, "noop") != nil {
		t.Error("LogAndMapError(nil) should be nil")
	}
	err := apperrors.NewParseError("address", "nowhere", "NOWHERE", errors.New("no postcode"))
	appErr := LogAndMapError(err, "parse", "country", "australia")
	if appErr.Code != apperrors.ErrCodeInvalidAddress || appErr.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("LogAndMapError == %+v", appErr)
	}
}
