package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromNil(t *testing.T) {
	if got := From(nil); got != nil {
		t.Fatalf("From(nil) = %v", got)
	}
}

func TestFromPassesThroughTypedError(t *testing.T) {
	orig := New(http.StatusTeapot, "teapot", errors.New("short and stout"))
	wrapped := fmt.Errorf("outer: %w", orig)
	if got := From(wrapped); got != orig {
		t.Fatalf("From did not unwrap typed error: %v", got)
	}
}

func TestFromStatusMapping(t *testing.T) {
	cases := []struct {
		msg    string
		status int
		code   string
	}{
		{"permission denied: user is not an admin", http.StatusForbidden, "permission_denied"},
		{"new row violates row-level security policy", http.StatusForbidden, "permission_denied"},
		{"invalid credentials", http.StatusUnauthorized, "unauthorized"},
		{"refresh token expired", http.StatusUnauthorized, "unauthorized"},
		{"unknown refresh token", http.StatusUnauthorized, "unauthorized"},
		{"case abc not found", http.StatusNotFound, "not_found"},
		{"unknown template ref", http.StatusNotFound, "not_found"},
		{"title required", http.StatusBadRequest, "invalid_request"},
		{"invalid status value", http.StatusBadRequest, "invalid_request"},
		{"slug already in use", http.StatusBadRequest, "invalid_request"},
		{"email already registered", http.StatusBadRequest, "invalid_request"},
		{`column "playback_id" does not exist`, http.StatusNotImplemented, "feature_not_migrated"},
		{"ERROR: something (SQLSTATE 42P01)", http.StatusNotImplemented, "feature_not_migrated"},
		{"dial tcp: connection refused", http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		got := From(errors.New(tc.msg))
		if got.Status != tc.status || got.Code != tc.code {
			t.Errorf("From(%q) = %d/%s, want %d/%s", tc.msg, got.Status, got.Code, tc.status, tc.code)
		}
	}
}
