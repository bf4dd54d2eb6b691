// Package animation turns elapsed wall time into the model's rotation angle.
package animation

import (
	"math"
	"time"
)

// Default clock settings.
const (
	DefaultRatePerSecond = 15.0 // degrees per second
	DefaultManualStep    = 5.0  // degrees per key press
)

// Config configures a Clock.
type Config struct {
	RatePerSecond float64 // auto-rotation speed in degrees per second
	ManualStep    float64 // degrees added per manual step
	AutoRotate    bool    // start in automatic mode
}

// DefaultConfig returns the clock settings used by the viewer.
func DefaultConfig() Config {
	return Config{
		RatePerSecond: DefaultRatePerSecond,
		ManualStep:    DefaultManualStep,
		AutoRotate:    true,
	}
}

// Clock accumulates the rotation angle. In automatic mode the angle grows by
// RatePerSecond for every second of wall time; in manual mode it only moves
// when StepManual is called.
//
// Angles are kept in float64 and wrapped to [0, 360) so that long sessions do
// not lose precision.
type Clock struct {
	cfg Config

	autoRotate      bool
	rotationDegrees float64
	manualDegrees   float64

	last    time.Time
	hasLast bool
}

// NewClock returns a clock at angle 0.
func NewClock(cfg Config) *Clock {
	return &Clock{cfg: cfg, autoRotate: cfg.AutoRotate}
}

// Update advances the automatic angle by the wall time elapsed since the
// previous Update. The first call after construction, or after switching back
// to automatic mode, only records the baseline. Update is a no-op in manual
// mode.
func (c *Clock) Update(now time.Time) {
	if !c.autoRotate {
		return
	}
	if !c.hasLast {
		c.last = now
		c.hasLast = true
		return
	}
	dt := now.Sub(c.last)
	c.last = now
	if dt > 0 {
		c.Advance(dt)
	}
}

// Advance adds RatePerSecond*dt to the automatic angle.
func (c *Clock) Advance(dt time.Duration) {
	if !c.autoRotate {
		return
	}
	c.rotationDegrees = wrap(c.rotationDegrees + c.cfg.RatePerSecond*dt.Seconds())
}

// StepManual moves the manual angle by n steps (negative n turns back).
// It has no effect in automatic mode.
func (c *Clock) StepManual(n int) {
	if c.autoRotate {
		return
	}
	c.manualDegrees = wrap(c.manualDegrees + float64(n)*c.cfg.ManualStep)
}

// SetAutoRotate switches modes. Entering manual mode starts from the current
// automatic angle; entering automatic mode continues from the manual angle
// and drops the time baseline so the pause is not replayed.
func (c *Clock) SetAutoRotate(auto bool) {
	if auto == c.autoRotate {
		return
	}
	if auto {
		c.rotationDegrees = c.manualDegrees
		c.hasLast = false
	} else {
		c.manualDegrees = c.rotationDegrees
	}
	c.autoRotate = auto
}

// ToggleAutoRotate flips the mode and returns the new setting.
func (c *Clock) ToggleAutoRotate() bool {
	c.SetAutoRotate(!c.autoRotate)
	return c.autoRotate
}

// AutoRotate reports whether the clock is in automatic mode.
func (c *Clock) AutoRotate() bool {
	return c.autoRotate
}

// Degrees returns the active angle in [0, 360).
func (c *Clock) Degrees() float64 {
	if c.autoRotate {
		return c.rotationDegrees
	}
	return c.manualDegrees
}

// Radians returns the active angle converted for the render passes.
func (c *Clock) Radians() float32 {
	return float32(c.Degrees() * math.Pi / 180)
}

func wrap(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
