package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.OutputDir != "captured_smiles" {
		t.Errorf("OutputDir = %q, want captured_smiles", cfg.OutputDir)
	}
	if cfg.CaptureCooldown != 2.0 {
		t.Errorf("CaptureCooldown = %v, want 2.0", cfg.CaptureCooldown)
	}
	if cfg.SmileThreshold != 30 {
		t.Errorf("SmileThreshold = %d, want 30", cfg.SmileThreshold)
	}
	if cfg.CameraIndex != 0 {
		t.Errorf("CameraIndex = %d, want 0", cfg.CameraIndex)
	}
	if cfg.Resolution != [2]int{640, 480} {
		t.Errorf("Resolution = %v, want [640 480]", cfg.Resolution)
	}
	if !cfg.DisplayWindow {
		t.Error("DisplayWindow should default to true")
	}
	if !cfg.AutoCapture {
		t.Error("AutoCapture should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestParseMerge(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		check func(t *testing.T, c Config)
	}{
		{
			name: "only smile threshold",
			json: `{"smile_threshold": 15}`,
			check: func(t *testing.T, c Config) {
				want := Default()
				want.SmileThreshold = 15
				if c != want {
					t.Errorf("got %+v, want %+v", c, want)
				}
			},
		},
		{
			name: "empty object is pure defaults",
			json: `{}`,
			check: func(t *testing.T, c Config) {
				if c != Default() {
					t.Errorf("got %+v, want defaults", c)
				}
			},
		},
		{
			name: "every documented key",
			json: `{"output_dir": "out", "capture_cooldown": 0.5, "smile_threshold": 22,
				"camera_index": 2, "resolution": [1280, 720], "display_window": false}`,
			check: func(t *testing.T, c Config) {
				if c.OutputDir != "out" || c.CaptureCooldown != 0.5 || c.SmileThreshold != 22 ||
					c.CameraIndex != 2 || c.Resolution != [2]int{1280, 720} || c.DisplayWindow {
					t.Errorf("file values not applied: %+v", c)
				}
				if c.FaceCascade != Default().FaceCascade {
					t.Errorf("FaceCascade = %q, want default", c.FaceCascade)
				}
			},
		},
		{
			name: "unknown keys ignored",
			json: `{"flash": true, "camera_index": 1}`,
			check: func(t *testing.T, c Config) {
				if c.CameraIndex != 1 {
					t.Errorf("CameraIndex = %d, want 1", c.CameraIndex)
				}
			},
		},
		{
			name: "auto capture toggle",
			json: `{"auto_capture": false}`,
			check: func(t *testing.T, c Config) {
				if c.AutoCapture {
					t.Error("AutoCapture should be false")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.json))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file gives defaults", func(t *testing.T) {
		c, err := Load(filepath.Join(dir, "nope.json"))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if c != Default() {
			t.Errorf("got %+v, want defaults", c)
		}
	})

	t.Run("file values override", func(t *testing.T) {
		path := filepath.Join(dir, "config.json")
		if err := os.WriteFile(path, []byte(`{"capture_cooldown": 5, "output_dir": "smiles"}`), 0644); err != nil {
			t.Fatal(err)
		}
		c, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if c.Cooldown() != 5*time.Second {
			t.Errorf("Cooldown() = %v, want 5s", c.Cooldown())
		}
		if c.OutputDir != "smiles" {
			t.Errorf("OutputDir = %q, want smiles", c.OutputDir)
		}
		if c.SmileThreshold != 30 {
			t.Errorf("SmileThreshold = %d, want default 30", c.SmileThreshold)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte(`{"smile_threshold": `), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})
}

func TestValidate(t *testing.T) {
	c := Default()
	c.SmileThreshold = 0
	c.Resolution = [2]int{0, 480}
	c.CaptureCooldown = -1

	err := c.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"smile_threshold", "resolution", "capture_cooldown"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestCooldownFractional(t *testing.T) {
	c := Default()
	c.CaptureCooldown = 1.5
	if c.Cooldown() != 1500*time.Millisecond {
		t.Errorf("Cooldown() = %v, want 1.5s", c.Cooldown())
	}
}
