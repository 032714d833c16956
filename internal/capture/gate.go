// Package capture decides when a frame is persisted and writes it to disk.
package capture

import "time"

// Trigger says why a capture happened.
type Trigger string

const (
	TriggerSmile  Trigger = "smile"
	TriggerManual Trigger = "manual"
)

// Decision is the gate's verdict for one frame.
type Decision struct {
	// Capture is true when the frame should be saved automatically.
	Capture bool
	// CoolingDown is true when a smile was seen but the cooldown has not elapsed.
	CoolingDown bool
}

// Gate holds the only cross-frame state of the camera loop: the time of the
// last capture and the number of captures this run. It is not safe for
// concurrent use.
type Gate struct {
	cooldown time.Duration
	auto     bool
	last     time.Time
	count    int
}

// NewGate creates a gate. With auto false, Evaluate never asks for a capture
// and only manual captures happen.
func NewGate(cooldown time.Duration, auto bool) *Gate {
	return &Gate{cooldown: cooldown, auto: auto}
}

// Evaluate decides whether the current frame should be captured. It does not
// change state; call Record once the frame has been written.
func (g *Gate) Evaluate(smiling bool, now time.Time) Decision {
	if !smiling {
		return Decision{}
	}
	// Sub saturates, so a zero last time always counts as elapsed.
	elapsed := now.Sub(g.last) >= g.cooldown
	return Decision{
		Capture:     elapsed && g.auto,
		CoolingDown: !elapsed && g.auto,
	}
}

// Record marks a successful capture at now.
func (g *Gate) Record(now time.Time) int {
	g.last = now
	g.count++
	return g.count
}

// Manual records a user-requested capture. It ignores the cooldown but still
// moves the reference point, so the next automatic capture waits a full
// cooldown from now.
func (g *Gate) Manual(now time.Time) int {
	return g.Record(now)
}

// Count returns the captures recorded so far.
func (g *Gate) Count() int { return g.count }

// Last returns the time of the last capture, zero if none.
func (g *Gate) Last() time.Time { return g.last }

// Cooldown returns the configured cooldown.
func (g *Gate) Cooldown() time.Duration { return g.cooldown }
