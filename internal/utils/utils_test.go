package utils

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	writeError(&buf, "Failed to open camera", errors.New("device busy"))

	out := buf.String()
	if !strings.Contains(out, "SMILECAM ERROR: Failed to open camera") {
		t.Errorf("Missing context line in %q", out)
	}
	if !strings.Contains(out, "DETAILS: device busy") {
		t.Errorf("Missing details line in %q", out)
	}

	// A nil error prints the context only
	buf.Reset()
	writeError(&buf, "Nothing to export", nil)
	if strings.Contains(buf.String(), "DETAILS") {
		t.Errorf("Unexpected details for nil error: %q", buf.String())
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
		{2048 * 1024 * 1024 * 1024, "2048.0 GB"},
	}
	for _, tt := range tests {
		if got := HumanSize(tt.in); got != tt.want {
			t.Errorf("HumanSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
