package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/andresmejia3/smilecam/internal/camera"
	"github.com/andresmejia3/smilecam/internal/capture"
	"github.com/andresmejia3/smilecam/internal/config"
	"github.com/andresmejia3/smilecam/internal/log"
	"github.com/andresmejia3/smilecam/internal/runner"
	"github.com/andresmejia3/smilecam/internal/smile"
	"github.com/spf13/cobra"
)

// runOptions are command line overrides for the config file.
type runOptions struct {
	CameraIndex    int
	OutputDir      string
	Cooldown       float64
	SmileThreshold int
	Headless       bool
	NoAutoCapture  bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the camera and capture smiles",
	Long:  "Opens the webcam and saves a photo whenever a smile is detected outside the cooldown. Press 'q' to quit, 's' to capture manually.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCamera(cmd, runOpts)
	},
}

func init() {
	bindRunFlags(runCmd, &runOpts)
	rootCmd.AddCommand(runCmd)
}

func bindRunFlags(cmd *cobra.Command, o *runOptions) {
	cmd.Flags().IntVarP(&o.CameraIndex, "camera", "c", 0, "Camera device index (overrides camera_index)")
	cmd.Flags().StringVarP(&o.OutputDir, "output", "o", "", "Directory for captured photos (overrides output_dir)")
	cmd.Flags().Float64Var(&o.Cooldown, "cooldown", 0, "Seconds between automatic captures (overrides capture_cooldown)")
	cmd.Flags().IntVarP(&o.SmileThreshold, "threshold", "t", 0, "Smile sensitivity, higher is stricter (overrides smile_threshold)")
	cmd.Flags().BoolVar(&o.Headless, "headless", false, "Do not open a preview window; read q/s from the terminal")
	cmd.Flags().BoolVar(&o.NoAutoCapture, "no-auto", false, "Disable automatic capture; only 's' saves photos")
}

// applyRunFlags returns c with every flag the user actually set applied on top.
func applyRunFlags(cmd *cobra.Command, c config.Config, o runOptions) config.Config {
	changed := cmd.Flags().Changed
	if changed("camera") {
		c.CameraIndex = o.CameraIndex
	}
	if changed("output") {
		c.OutputDir = o.OutputDir
	}
	if changed("cooldown") {
		c.CaptureCooldown = o.Cooldown
	}
	if changed("threshold") {
		c.SmileThreshold = o.SmileThreshold
	}
	if changed("headless") && o.Headless {
		c.DisplayWindow = false
	}
	if changed("no-auto") && o.NoAutoCapture {
		c.AutoCapture = false
	}
	return c
}

// runCamera wires the camera loop: output directory, cascades, device,
// display surface and the optional catalog session.
func runCamera(cmd *cobra.Command, o runOptions) error {
	ctx := cmd.Context()
	c := applyRunFlags(cmd, Cfg, o)
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sink, err := capture.NewDirSink(c.OutputDir, c.JPEGQuality)
	if err != nil {
		return err
	}

	faces, err := camera.LoadCascade(c.FaceCascade)
	if err != nil {
		return fmt.Errorf("face cascade: %w", err)
	}
	defer faces.Close()

	smiles, err := camera.LoadCascade(c.SmileCascade)
	if err != nil {
		return fmt.Errorf("smile cascade: %w", err)
	}
	defer smiles.Close()

	src, err := camera.Open(c.CameraIndex, c.Width(), c.Height())
	if err != nil {
		return err
	}

	var surface runner.Surface
	if c.DisplayWindow {
		surface = camera.NewWindow(camera.WindowTitle)
	} else {
		surface = runner.StdinSurface()
	}

	opts := []runner.Option{runner.WithLogger(log.With("component", "runner"))}
	var sessionID string
	if DB != nil {
		sessionID, err = DB.StartSession(ctx, time.Now())
		if err != nil {
			log.Warn("failed to start catalog session, captures will not be catalogued", "error", err)
		} else {
			opts = append(opts, runner.WithRecorder(DB, sessionID))
		}
	}

	printBanner(c)

	loop := runner.New(src, surface,
		smile.NewPass(faces, smiles, c.SmileThreshold),
		capture.NewGate(c.Cooldown(), c.AutoCapture),
		sink, opts...)
	sum := loop.Run(ctx)

	switch sum.Reason {
	case runner.StopQuit:
		fmt.Fprintln(os.Stderr, "\nQuitting...")
	case runner.StopInterrupted:
		fmt.Fprintln(os.Stderr, "\n\nInterrupted by user")
	}
	fmt.Fprintf(os.Stderr, "\nTotal captures: %d\n", sum.Captures)
	fmt.Fprintln(os.Stderr, "Camera stopped.")

	if sessionID != "" {
		if err := DB.EndSession(context.Background(), sessionID, time.Now(), sum.Captures); err != nil {
			log.Warn("failed to close catalog session", "session", sessionID, "error", err)
		}
	}
	return nil
}

func printBanner(c config.Config) {
	line := strings.Repeat("=", 50)
	fmt.Fprintln(os.Stderr, "😊 Smile Detection Camera Started!")
	fmt.Fprintln(os.Stderr, line)
	fmt.Fprintf(os.Stderr, "Output directory: %s\n", c.OutputDir)
	fmt.Fprintf(os.Stderr, "Capture cooldown: %gs\n", c.CaptureCooldown)
	if !c.AutoCapture {
		fmt.Fprintln(os.Stderr, "Auto capture:     off")
	}
	if c.DisplayWindow {
		fmt.Fprintln(os.Stderr, "Press 'q' to quit, 's' to manually capture")
	} else {
		fmt.Fprintln(os.Stderr, "Type 'q' + Enter to quit, 's' + Enter to manually capture")
	}
	fmt.Fprintln(os.Stderr, line)
}
