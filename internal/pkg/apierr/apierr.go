package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// From maps an arbitrary service error onto a transport error. Known database
// failure shapes get friendlier codes; anything else is a plain 500.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission denied") || strings.Contains(msg, "row-level security"):
		return New(http.StatusForbidden, "permission_denied", err)
	case strings.Contains(msg, "invalid credentials") ||
		strings.Contains(msg, "refresh token expired") ||
		strings.Contains(msg, "unknown refresh token"):
		return New(http.StatusUnauthorized, "unauthorized", err)
	case strings.Contains(msg, "not found") || strings.Contains(msg, "unknown template"):
		return New(http.StatusNotFound, "not_found", err)
	case strings.Contains(msg, "required") ||
		strings.Contains(msg, "invalid ") ||
		strings.Contains(msg, "already in use") ||
		strings.Contains(msg, "already registered"):
		return New(http.StatusBadRequest, "invalid_request", err)
	case isSchemaDrift(msg):
		return New(http.StatusNotImplemented, "feature_not_migrated", err)
	default:
		return New(http.StatusInternalServerError, "internal_error", err)
	}
}

// isSchemaDrift recognizes queries that reference a column or relation the
// remote schema does not have yet (postgres 42703/42P01 message shapes).
// Callers degrade the feature instead of hard-failing.
func isSchemaDrift(msg string) bool {
	if strings.Contains(msg, "does not exist") &&
		(strings.Contains(msg, "column") || strings.Contains(msg, "relation")) {
		return true
	}
	return strings.Contains(msg, "sqlstate 42703") || strings.Contains(msg, "sqlstate 42p01")
}
