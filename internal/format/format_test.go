package format_test

import (
	"testing"
	"time"

	"github.com/jtohta/creative-direction-decks-skill/internal/format"
)

func TestSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 bytes"},
		{1023, "1023 bytes"},
		{1024, "1.0 KB"},
		{14540, "14.2 KB"},
		{1024 * 1024, "1.0 MB"},
		{3250585, "3.1 MB"},
	}
	for _, tt := range tests {
		if got := format.Size(tt.bytes); got != tt.want {
			t.Errorf("Size(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestElapsed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0ms"},
		{850 * time.Millisecond, "850ms"},
		{time.Second, "1.0s"},
		{12400 * time.Millisecond, "12.4s"},
		{time.Minute, "1m00s"},
		{125 * time.Second, "2m05s"},
		{61*time.Minute + 500*time.Millisecond, "61m01s"},
	}
	for _, tt := range tests {
		if got := format.Elapsed(tt.d); got != tt.want {
			t.Errorf("Elapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
