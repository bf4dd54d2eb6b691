package animation

import (
	"math"
	"testing"
	"time"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func TestUpdateFirstCallSetsBaseline(t *testing.T) {
	c := NewClock(DefaultConfig())
	start := time.Unix(1000, 0)

	c.Update(start)
	if c.Degrees() != 0 {
		t.Fatalf("Degrees() after first Update = %f, want 0", c.Degrees())
	}

	c.Update(start.Add(2 * time.Second))
	if !near(c.Degrees(), 30) {
		t.Errorf("Degrees() = %f, want 30", c.Degrees())
	}
}

func TestAdvanceGranularityInvariant(t *testing.T) {
	steps := []time.Duration{
		16 * time.Millisecond,
		17 * time.Millisecond,
		250 * time.Millisecond,
		3 * time.Second,
		1 * time.Millisecond,
		40 * time.Second,
	}
	var total time.Duration
	for _, d := range steps {
		total += d
	}

	coarse := NewClock(DefaultConfig())
	coarse.Advance(total)

	fine := NewClock(DefaultConfig())
	for _, d := range steps {
		fine.Advance(d)
	}

	finer := NewClock(DefaultConfig())
	for _, d := range steps {
		finer.Advance(d / 2)
		finer.Advance(d - d/2)
	}

	want := math.Mod(DefaultRatePerSecond*total.Seconds(), 360)
	for name, c := range map[string]*Clock{"coarse": coarse, "fine": fine, "finer": finer} {
		if math.Abs(c.Degrees()-want) > 1e-6 {
			t.Errorf("%s: Degrees() = %f, want %f", name, c.Degrees(), want)
		}
	}
}

func TestUpdateMatchesAdvance(t *testing.T) {
	byUpdate := NewClock(DefaultConfig())
	byAdvance := NewClock(DefaultConfig())

	now := time.Unix(0, 0)
	byUpdate.Update(now)
	for _, ms := range []int{16, 33, 8, 100, 16} {
		d := time.Duration(ms) * time.Millisecond
		now = now.Add(d)
		byUpdate.Update(now)
		byAdvance.Advance(d)
	}

	if !near(byUpdate.Degrees(), byAdvance.Degrees()) {
		t.Errorf("Update = %f, Advance = %f", byUpdate.Degrees(), byAdvance.Degrees())
	}
}

func TestAngleWrapsAt360(t *testing.T) {
	c := NewClock(Config{RatePerSecond: 90, AutoRotate: true})
	c.Advance(5 * time.Second) // 450 degrees

	if !near(c.Degrees(), 90) {
		t.Errorf("Degrees() = %f, want 90", c.Degrees())
	}
}

func TestManualMode(t *testing.T) {
	c := NewClock(Config{RatePerSecond: 15, ManualStep: 5, AutoRotate: false})

	c.Advance(10 * time.Second)
	c.Update(time.Now())
	if c.Degrees() != 0 {
		t.Fatalf("manual clock moved with time: %f", c.Degrees())
	}

	c.StepManual(3)
	if !near(c.Degrees(), 15) {
		t.Errorf("after +3 steps: %f, want 15", c.Degrees())
	}
	c.StepManual(-4)
	if !near(c.Degrees(), 355) {
		t.Errorf("after -4 steps: %f, want 355", c.Degrees())
	}
}

func TestStepManualIgnoredInAutoMode(t *testing.T) {
	c := NewClock(DefaultConfig())
	c.StepManual(10)
	if c.Degrees() != 0 {
		t.Errorf("Degrees() = %f, want 0", c.Degrees())
	}
}

func TestSwitchToManualKeepsAngle(t *testing.T) {
	c := NewClock(DefaultConfig())
	c.Advance(4 * time.Second) // 60 degrees

	if auto := c.ToggleAutoRotate(); auto {
		t.Fatal("ToggleAutoRotate() = true, want false")
	}
	if !near(c.Degrees(), 60) {
		t.Errorf("Degrees() after switch = %f, want 60", c.Degrees())
	}
}

func TestSwitchToAutoResetsBaseline(t *testing.T) {
	c := NewClock(DefaultConfig())
	start := time.Unix(0, 0)
	c.Update(start)
	c.Update(start.Add(time.Second)) // 15 degrees

	c.SetAutoRotate(false)
	c.StepManual(1) // 20 degrees

	// A long pause in manual mode must not be replayed.
	resume := start.Add(time.Hour)
	c.SetAutoRotate(true)
	c.Update(resume)
	if !near(c.Degrees(), 20) {
		t.Fatalf("Degrees() after resume = %f, want 20", c.Degrees())
	}

	c.Update(resume.Add(2 * time.Second))
	if !near(c.Degrees(), 50) {
		t.Errorf("Degrees() = %f, want 50", c.Degrees())
	}
}

func TestRadians(t *testing.T) {
	c := NewClock(Config{RatePerSecond: 90, AutoRotate: true})
	c.Advance(2 * time.Second)

	if got := c.Radians(); math.Abs(float64(got)-math.Pi) > 1e-6 {
		t.Errorf("Radians() = %f, want pi", got)
	}
}
