package server

import (
	"net/http"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{7.9, "0:07"},
		{60, "1:00"},
		{83, "1:23"},
		{192.4, "3:12"},
		{3675, "61:15"},
		{-5, "0:00"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.seconds); got != tc.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestUploadMediaWithoutBackend(t *testing.T) {
	h, _, _ := newTestHandler()

	rr := doRequest(t, h, http.MethodPost, "/api/media/upload", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without media backend, got %d", rr.Code)
	}
}
