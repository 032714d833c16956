// Package runner drives the camera loop: read a frame, look for smiles, let
// the capture gate decide, show the result and react to a key press.
package runner

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/andresmejia3/smilecam/internal/capture"
	"github.com/andresmejia3/smilecam/internal/smile"
	"github.com/andresmejia3/smilecam/internal/types"
)

// Interactive keys.
const (
	KeyNone    = -1
	KeyQuit    = 'q'
	KeyCapture = 's'
)

// Status overlay colours.
var (
	StatusColor   = color.RGBA{R: 255, G: 255, B: 0, A: 0}
	CooldownColor = color.RGBA{R: 255, G: 165, B: 0, A: 0}
)

// Frame is a camera frame that can also be written to disk.
type Frame interface {
	smile.Frame
	capture.Encoder
}

// Source supplies frames. A frame stays valid until the next Read.
type Source interface {
	Read() (Frame, bool)
	Close() error
}

// Surface displays annotated frames and reports key presses.
type Surface interface {
	Show(frame smile.Frame)
	// PollKey waits briefly for a key and returns KeyNone if there was none.
	PollKey() int
	Close() error
}

// Sink persists a frame.
type Sink interface {
	Save(img capture.Encoder, at time.Time) (string, error)
}

// Recorder catalogues saved captures.
type Recorder interface {
	RecordCapture(ctx context.Context, c types.Capture) (int64, error)
}

// State of the loop.
type State int

const (
	Running State = iota
	Quitting
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Quitting:
		return "quitting"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StopReason says why the loop ended.
type StopReason string

const (
	StopQuit        StopReason = "quit"
	StopInterrupted StopReason = "interrupted"
	StopReadFailure StopReason = "read-failure"
)

// Summary is reported once the loop has stopped.
type Summary struct {
	Frames   int
	Captures int
	Reason   StopReason
}

// Loop owns the source and surface for the duration of Run and releases
// both exactly once when it stops.
type Loop struct {
	source  Source
	surface Surface
	pass    *smile.Pass
	gate    *capture.Gate
	sink    Sink

	recorder  Recorder
	sessionID string
	now       func() time.Time
	log       *slog.Logger
	onCapture func(types.Capture)

	state State
}

// Option configures a Loop.
type Option func(*Loop)

// WithRecorder catalogues every capture under sessionID.
func WithRecorder(r Recorder, sessionID string) Option {
	return func(l *Loop) {
		l.recorder = r
		l.sessionID = sessionID
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loop) { l.log = log }
}

// OnCapture registers a callback invoked after every successful capture.
func OnCapture(fn func(types.Capture)) Option {
	return func(l *Loop) { l.onCapture = fn }
}

// New wires a loop. Run must be called at most once.
func New(src Source, surface Surface, pass *smile.Pass, gate *capture.Gate, sink Sink, opts ...Option) *Loop {
	l := &Loop{
		source:  src,
		surface: surface,
		pass:    pass,
		gate:    gate,
		sink:    sink,
		now:     time.Now,
		log:     slog.Default(),
		state:   Stopped,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current state.
func (l *Loop) State() State { return l.state }

// Run processes frames until the quit key, a read failure or ctx is done.
func (l *Loop) Run(ctx context.Context) (sum Summary) {
	l.state = Running
	defer func() {
		l.state = Quitting
		l.shutdown()
		l.state = Stopped
		sum.Captures = l.gate.Count()
	}()

	for {
		if ctx.Err() != nil {
			l.log.Info("interrupted, stopping camera loop")
			sum.Reason = StopInterrupted
			return sum
		}

		frame, ok := l.source.Read()
		if !ok {
			l.log.Warn("failed to read frame from camera")
			sum.Reason = StopReadFailure
			return sum
		}
		sum.Frames++

		if quit := l.step(ctx, frame); quit {
			l.log.Info("quit requested")
			sum.Reason = StopQuit
			return sum
		}
	}
}

// step handles one frame and reports whether the quit key was pressed.
func (l *Loop) step(ctx context.Context, frame Frame) bool {
	now := l.now()

	annotated, res := l.pass.Run(frame)
	defer annotated.Close()

	decision := l.gate.Evaluate(res.Smiling, now)
	if decision.Capture {
		l.capture(ctx, frame, now, capture.TriggerSmile)
	}

	DrawStatus(annotated, l.gate.Count(), decision.CoolingDown)
	l.surface.Show(annotated)

	switch l.surface.PollKey() {
	case KeyQuit:
		return true
	case KeyCapture:
		l.capture(ctx, frame, now, capture.TriggerManual)
	}
	return false
}

// capture writes the clean frame and advances the gate only if the write
// succeeded.
func (l *Loop) capture(ctx context.Context, frame Frame, now time.Time, trigger capture.Trigger) {
	path, err := l.sink.Save(frame, now)
	if err != nil {
		l.log.Error("capture failed", "trigger", trigger, "error", err)
		return
	}

	var count int
	if trigger == capture.TriggerManual {
		count = l.gate.Manual(now)
	} else {
		count = l.gate.Record(now)
	}

	c := types.Capture{
		SessionID: l.sessionID,
		Name:      filepath.Base(path),
		Path:      path,
		TakenAt:   now,
		Trigger:   string(trigger),
	}
	l.log.Info("captured", "file", c.Name, "trigger", trigger, "count", count)

	if l.recorder != nil {
		// The catalog write must not be lost just because shutdown has started.
		if _, err := l.recorder.RecordCapture(context.WithoutCancel(ctx), c); err != nil {
			l.log.Warn("failed to catalog capture", "file", c.Name, "error", err)
		}
	}
	if l.onCapture != nil {
		l.onCapture(c)
	}
}

func (l *Loop) shutdown() {
	if err := l.source.Close(); err != nil {
		l.log.Warn("failed to release camera", "error", err)
	}
	if err := l.surface.Close(); err != nil {
		l.log.Warn("failed to close display", "error", err)
	}
}

// DrawStatus renders the capture counter and, while a smile is being held
// back by the cooldown, a cooldown notice.
func DrawStatus(frame smile.Frame, captures int, coolingDown bool) {
	frame.Text("Captures: "+strconv.Itoa(captures), image.Pt(10, 30), 0.7, StatusColor, 2)
	if coolingDown {
		frame.Text("Cooldown...", image.Pt(10, 60), 0.7, CooldownColor, 2)
	}
}
