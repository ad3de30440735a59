package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"top250/errs"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *errs.Error
		expected string
	}{
		{
			name:     "invalid argument",
			err:      &errs.Error{Code: errs.EINVALID, Message: "movie: title is required"},
			expected: "application error: code=invalid message=movie: title is required",
		},
		{
			name:     "conflict",
			err:      &errs.Error{Code: errs.ECONFLICT, Message: "user: username or email already registered"},
			expected: "application error: code=conflict message=user: username or email already registered",
		},
		{
			name:     "empty message",
			err:      &errs.Error{Code: errs.EINTERNAL},
			expected: "application error: code=internal message=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "not found", err: errs.Errorf(errs.ENOTFOUND, "movie: not found"), expected: errs.ENOTFOUND},
		{name: "unauthorized", err: errs.Errorf(errs.EUNAUTHORIZED, "bad credentials"), expected: errs.EUNAUTHORIZED},
		{name: "plain error is internal", err: errors.New("connection reset"), expected: errs.EINTERNAL},
		{
			name:     "wrapped application error",
			err:      fmt.Errorf("mongodb: find movie: %w", errs.Errorf(errs.EINVALID, "movie: invalid id")),
			expected: errs.EINVALID,
		},
		{
			name:     "joined application error",
			err:      errors.Join(errs.Errorf(errs.ECONFLICT, "duplicate")),
			expected: errs.ECONFLICT,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errs.ErrorCode(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "application error", err: errs.Errorf(errs.EINVALID, "movie: year is required"), expected: "movie: year is required"},
		{name: "plain error is hidden", err: errors.New("disk write error"), expected: "Internal error."},
		{
			name:     "wrapped application error",
			err:      fmt.Errorf("postgres: %w", errs.Errorf(errs.ENOTFOUND, "movie: not found")),
			expected: "movie: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errs.ErrorMessage(tt.err))
		})
	}
}

func TestErrorf(t *testing.T) {
	err := errs.Errorf(errs.EINVALID, "limit %q is not a number", "abc")

	assert.Equal(t, errs.EINVALID, err.Code)
	assert.Equal(t, `limit "abc" is not a number`, err.Message)
	assert.Equal(t, `application error: code=invalid message=limit "abc" is not a number`, err.Error())
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, "conflict", errs.ECONFLICT)
	assert.Equal(t, "internal", errs.EINTERNAL)
	assert.Equal(t, "invalid", errs.EINVALID)
	assert.Equal(t, "not_found", errs.ENOTFOUND)
	assert.Equal(t, "not_implemented", errs.ENOTIMPLEMENTED)
	assert.Equal(t, "unauthorized", errs.EUNAUTHORIZED)
}
