package cmd

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/andresmejia3/smilecam/internal/config"
	"github.com/andresmejia3/smilecam/internal/gallery"
	"github.com/andresmejia3/smilecam/internal/types"
	"github.com/spf13/cobra"
)

func parseRunFlags(t *testing.T, args ...string) (*cobra.Command, runOptions) {
	t.Helper()
	var o runOptions
	cmd := &cobra.Command{Use: "run"}
	bindRunFlags(cmd, &o)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return cmd, o
}

func TestApplyRunFlags(t *testing.T) {
	base := config.Default()
	base.CameraIndex = 2
	base.SmileThreshold = 15

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, c config.Config)
	}{
		{
			name: "No flags keeps the config file values",
			args: nil,
			check: func(t *testing.T, c config.Config) {
				if c != base {
					t.Errorf("config changed without flags: %+v", c)
				}
			},
		},
		{
			name: "Explicit zero overrides",
			args: []string{"--camera", "0", "--cooldown", "0"},
			check: func(t *testing.T, c config.Config) {
				if c.CameraIndex != 0 || c.CaptureCooldown != 0 {
					t.Errorf("CameraIndex = %d, CaptureCooldown = %v; want 0, 0", c.CameraIndex, c.CaptureCooldown)
				}
				if c.SmileThreshold != 15 {
					t.Errorf("SmileThreshold = %d, want untouched 15", c.SmileThreshold)
				}
			},
		},
		{
			name: "Short flags",
			args: []string{"-o", "/tmp/smiles", "-t", "40"},
			check: func(t *testing.T, c config.Config) {
				if c.OutputDir != "/tmp/smiles" || c.SmileThreshold != 40 {
					t.Errorf("OutputDir = %q, SmileThreshold = %d", c.OutputDir, c.SmileThreshold)
				}
			},
		},
		{
			name: "Headless and no-auto",
			args: []string{"--headless", "--no-auto"},
			check: func(t *testing.T, c config.Config) {
				if c.DisplayWindow || c.AutoCapture {
					t.Errorf("DisplayWindow = %v, AutoCapture = %v; want false, false", c.DisplayWindow, c.AutoCapture)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, o := parseRunFlags(t, tt.args...)
			tt.check(t, applyRunFlags(cmd, base, o))
		})
	}
}

func TestDBURLFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "")
	if got := dbURLFromEnv(); got != "" {
		t.Errorf("dbURLFromEnv() without host = %q, want empty", got)
	}

	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USER", "smile")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "")
	t.Setenv("POSTGRES_PORT", "")
	want := "postgres://smile:secret@db:5432/smilecam"
	if got := dbURLFromEnv(); got != want {
		t.Errorf("dbURLFromEnv() = %q, want %q", got, want)
	}
}

func TestConfirm(t *testing.T) {
	tests := map[string]bool{"y\n": true, "YES\n": true, " yes \n": true, "n\n": false, "\n": false, "": false}
	for in, want := range tests {
		var out bytes.Buffer
		if got := confirm(bufio.NewReader(strings.NewReader(in)), &out, "Sure?"); got != want {
			t.Errorf("confirm(%q) = %v, want %v", in, got, want)
		}
		if !strings.Contains(out.String(), "Sure? [y/N]") {
			t.Errorf("prompt not written: %q", out.String())
		}
	}
}

func TestWriteCaptures(t *testing.T) {
	taken := time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local)
	var buf bytes.Buffer
	writeCaptures(&buf, []types.Capture{
		{Name: "smile_20240309_140500.jpg", TakenAt: taken, Size: 2048, Trigger: "manual"},
		{Name: "smile_20240309_140400.jpg", TakenAt: taken.Add(-time.Minute), Size: 10},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + rule + 2 rows:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "2024-03-09 14:05:00") || !strings.Contains(lines[2], "2.0 KB") || !strings.Contains(lines[2], "manual") {
		t.Errorf("row = %q", lines[2])
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[3]), "-") {
		t.Errorf("missing trigger placeholder in %q", lines[3])
	}
}

func TestWriteSessions(t *testing.T) {
	start := time.Date(2024, 3, 9, 14, 0, 0, 0, time.Local)
	end := start.Add(10 * time.Minute)
	var buf bytes.Buffer
	writeSessions(&buf, []types.Session{
		{ID: "a", StartedAt: start, EndedAt: &end, CaptureCount: 3},
		{ID: "b", StartedAt: end},
	})
	out := buf.String()
	if !strings.Contains(out, "2024-03-09 14:10:00") || !strings.Contains(out, "running") {
		t.Errorf("sessions table:\n%s", out)
	}
}

func TestFmtTime(t *testing.T) {
	if got := fmtTime(time.Time{}); got != "-" {
		t.Errorf("fmtTime(zero) = %q, want -", got)
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"run", "list", "delete", "reset", "export", "serve"} {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestValidateExportOptions(t *testing.T) {
	if err := validateExportOptions(gallery.ExportOptions{ThumbSize: 0}); err != nil {
		t.Errorf("ThumbSize 0: unexpected error %v", err)
	}
	if err := validateExportOptions(gallery.ExportOptions{ThumbSize: 128}); err != nil {
		t.Errorf("ThumbSize 128: unexpected error %v", err)
	}

	// The options passed in are checked, not the flag variable
	exportThumbSize = 0
	if err := runExport(t.TempDir(), gallery.ExportOptions{ThumbSize: -1}); err == nil {
		t.Error("runExport accepted a negative thumbnail size")
	}
}
