package capture

import (
	"math/rand"
	"testing"
	"time"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func at(seconds float64) time.Time {
	return t0.Add(time.Duration(seconds * float64(time.Second)))
}

func TestGate_FirstSmileCapturesImmediately(t *testing.T) {
	g := NewGate(2*time.Second, true)

	d := g.Evaluate(true, t0)
	if !d.Capture {
		t.Fatal("first smile should capture")
	}
	if d.CoolingDown {
		t.Error("first smile should not be cooling down")
	}
}

func TestGate_NoSmileNoCapture(t *testing.T) {
	g := NewGate(0, true)
	if d := g.Evaluate(false, t0); d.Capture || d.CoolingDown {
		t.Errorf("no smile should give empty decision, got %+v", d)
	}
}

// Continuous smile sampled every 100ms with a 2s cooldown: captures land on
// t=0 and t=2.0 and never in between.
func TestGate_ContinuousSmileScenario(t *testing.T) {
	g := NewGate(2*time.Second, true)

	var captures []float64
	for i := 0; i <= 25; i++ {
		now := t0.Add(time.Duration(i) * 100 * time.Millisecond)
		if g.Evaluate(true, now).Capture {
			g.Record(now)
			captures = append(captures, now.Sub(t0).Seconds())
		}
	}

	want := []float64{0, 2.0}
	if len(captures) != len(want) {
		t.Fatalf("captures at %v, want %v", captures, want)
	}
	for i := range want {
		if captures[i] != want[i] {
			t.Errorf("capture %d at %.1fs, want %.1fs", i, captures[i], want[i])
		}
	}
}

func TestGate_CoolingDownFlag(t *testing.T) {
	g := NewGate(2*time.Second, true)
	g.Record(t0)

	tests := []struct {
		name        string
		now         time.Time
		wantCapture bool
		wantCooling bool
	}{
		{"half a second later", at(0.5), false, true},
		{"just before cooldown", at(1.9), false, true},
		{"exactly at cooldown", at(2.0), true, false},
		{"after cooldown", at(3.0), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.Evaluate(true, tt.now)
			if d.Capture != tt.wantCapture || d.CoolingDown != tt.wantCooling {
				t.Errorf("Evaluate() = %+v, want capture=%v cooling=%v", d, tt.wantCapture, tt.wantCooling)
			}
		})
	}
}

func TestGate_NeverTwiceWithinCooldown(t *testing.T) {
	const cooldown = 2 * time.Second
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		g := NewGate(cooldown, true)
		now := t0
		var lastAuto time.Time
		haveAuto := false

		for step := 0; step < 300; step++ {
			now = now.Add(time.Duration(rng.Intn(400)) * time.Millisecond)
			smiling := rng.Intn(3) > 0

			if g.Evaluate(smiling, now).Capture {
				if haveAuto && now.Sub(lastAuto) < cooldown {
					t.Fatalf("run %d: automatic captures %v apart, cooldown %v", run, now.Sub(lastAuto), cooldown)
				}
				g.Record(now)
				lastAuto = now
				haveAuto = true
			}
		}
	}
}

func TestGate_ManualAlwaysSucceeds(t *testing.T) {
	g := NewGate(10*time.Second, true)
	g.Record(t0)

	if n := g.Manual(at(0.1)); n != 2 {
		t.Errorf("Manual() count = %d, want 2", n)
	}
	if n := g.Manual(at(0.2)); n != 3 {
		t.Errorf("Manual() count = %d, want 3", n)
	}
	if g.Last() != at(0.2) {
		t.Errorf("Last() = %v, want %v", g.Last(), at(0.2))
	}
}

// A manual capture pushes back the next automatic one. This coupling is
// intentional; see DESIGN.md.
func TestGate_ManualResetsCooldown(t *testing.T) {
	g := NewGate(2*time.Second, true)

	g.Record(t0)
	g.Manual(at(1.5))

	if d := g.Evaluate(true, at(2.5)); d.Capture {
		t.Error("auto capture at 2.5s should be suppressed by manual capture at 1.5s")
	}
	if d := g.Evaluate(true, at(3.5)); !d.Capture {
		t.Error("auto capture should resume a full cooldown after the manual capture")
	}
}

func TestGate_AutoCaptureDisabled(t *testing.T) {
	g := NewGate(0, false)

	if d := g.Evaluate(true, t0); d.Capture {
		t.Error("auto capture disabled but gate triggered")
	}
	if n := g.Manual(t0); n != 1 {
		t.Errorf("Manual() = %d, want 1", n)
	}
}

func TestGate_NoCooldownNoticeWithoutAutoCapture(t *testing.T) {
	g := NewGate(2*time.Second, false)
	g.Manual(t0)

	d := g.Evaluate(true, t0.Add(500*time.Millisecond))
	if d.CoolingDown || d.Capture {
		t.Errorf("Evaluate() = %+v, want empty decision when auto capture is off", d)
	}

	// Same situation with auto capture on does report the cooldown
	g = NewGate(2*time.Second, true)
	g.Manual(t0)
	if d := g.Evaluate(true, t0.Add(500*time.Millisecond)); !d.CoolingDown {
		t.Error("expected CoolingDown with auto capture enabled")
	}
}

func TestGate_ZeroCooldown(t *testing.T) {
	g := NewGate(0, true)
	for i := 0; i < 3; i++ {
		if !g.Evaluate(true, t0).Capture {
			t.Fatalf("iteration %d: zero cooldown should always capture", i)
		}
		g.Record(t0)
	}
	if g.Count() != 3 {
		t.Errorf("Count() = %d, want 3", g.Count())
	}
}
