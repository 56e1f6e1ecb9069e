package services

import (
	"testing"

	"github.com/onmx/studio-backend/internal/domain"
)

func TestKindFromMime(t *testing.T) {
	cases := []struct {
		mime string
		want string
	}{
		{"image/png", domain.MediaKindImage},
		{"image/jpeg", domain.MediaKindImage},
		{"video/mp4", domain.MediaKindVideo},
		{"application/pdf", domain.MediaKindFile},
		{"", domain.MediaKindFile},
	}
	for _, tc := range cases {
		if got := kindFromMime(tc.mime); got != tc.want {
			t.Errorf("kindFromMime(%q) = %q, want %q", tc.mime, got, tc.want)
		}
	}
}

func TestStatusFromRemote(t *testing.T) {
	cases := []struct {
		remote string
		want   string
	}{
		{"preparing", domain.MediaStatusPreparing},
		{"ready", domain.MediaStatusReady},
		{"errored", domain.MediaStatusErrored},
		{"created", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := statusFromRemote(tc.remote); got != tc.want {
			t.Errorf("statusFromRemote(%q) = %q, want %q", tc.remote, got, tc.want)
		}
	}
}
