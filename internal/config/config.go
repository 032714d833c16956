// Package config loads the smilecam JSON configuration.
//
// Every key is optional. Keys present in the file override the defaults,
// absent keys keep them and unknown keys are ignored.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// DefaultPath is where the run command looks for a config file.
const DefaultPath = "config.json"

// Config holds the camera and capture settings. It is loaded once at
// startup and treated as read-only afterwards.
type Config struct {
	OutputDir       string  `json:"output_dir"`
	CaptureCooldown float64 `json:"capture_cooldown"` // seconds
	SmileThreshold  int     `json:"smile_threshold"`  // min neighbours for the smile cascade
	CameraIndex     int     `json:"camera_index"`
	Resolution      [2]int  `json:"resolution"` // [width, height]
	DisplayWindow   bool    `json:"display_window"`

	AutoCapture  bool   `json:"auto_capture"`
	FaceCascade  string `json:"face_cascade"`
	SmileCascade string `json:"smile_cascade"`
	JPEGQuality  int    `json:"jpeg_quality"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		OutputDir:       "captured_smiles",
		CaptureCooldown: 2.0,
		SmileThreshold:  30,
		CameraIndex:     0,
		Resolution:      [2]int{640, 480},
		DisplayWindow:   true,

		AutoCapture:  true,
		FaceCascade:  "data/haarcascade_frontalface_default.xml",
		SmileCascade: "data/haarcascade_smile.xml",
		JPEGQuality:  95,
	}
}

// Load reads path and merges it over Default. A missing file is not an
// error; the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err = Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse merges a JSON object over Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	// Unmarshal only touches fields whose keys are present, which is the merge.
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate reports every out-of-range value at once.
func (c Config) Validate() error {
	var errs []error
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir must not be empty"))
	}
	if c.CaptureCooldown < 0 {
		errs = append(errs, fmt.Errorf("capture_cooldown must be >= 0, got %g", c.CaptureCooldown))
	}
	if c.SmileThreshold < 1 {
		errs = append(errs, fmt.Errorf("smile_threshold must be >= 1, got %d", c.SmileThreshold))
	}
	if c.CameraIndex < 0 {
		errs = append(errs, fmt.Errorf("camera_index must be >= 0, got %d", c.CameraIndex))
	}
	if c.Width() <= 0 || c.Height() <= 0 {
		errs = append(errs, fmt.Errorf("resolution must be positive, got %dx%d", c.Width(), c.Height()))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg_quality must be between 1 and 100, got %d", c.JPEGQuality))
	}
	return errors.Join(errs...)
}

// Cooldown returns CaptureCooldown as a duration.
func (c Config) Cooldown() time.Duration {
	return time.Duration(c.CaptureCooldown * float64(time.Second))
}

// Width is the requested frame width.
func (c Config) Width() int { return c.Resolution[0] }

// Height is the requested frame height.
func (c Config) Height() int { return c.Resolution[1] }
