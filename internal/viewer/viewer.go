// Package viewer runs the frame loop: input, clock, render, present.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/shadowmesh/internal/engine/animation"
	"github.com/Faultbox/shadowmesh/internal/engine/input"
	"github.com/Faultbox/shadowmesh/internal/logger"
)

// Surface is the window the frames are presented to.
type Surface interface {
	SwapBuffers()
	DrawableSize() (int, int)
	SetTitle(title string)
}

// EventSource delivers input once per frame.
type EventSource interface {
	Update() bool
	Events() []input.Event
}

// FrameRenderer draws a frame for a rotation angle in radians.
type FrameRenderer interface {
	Resize(width, height int)
	RenderFrame(angle float32) error
}

// Viewer is the main loop.
type Viewer struct {
	surface  Surface
	events   EventSource
	renderer FrameRenderer
	clock    *animation.Clock
	log      *zap.Logger
	title    string

	running  bool
	frames   int
	fpsStart time.Time
	now      func() time.Time
}

// New creates a viewer. The caller keeps ownership of every collaborator.
func New(title string, surface Surface, events EventSource, r FrameRenderer, clock *animation.Clock) *Viewer {
	return &Viewer{
		surface:  surface,
		events:   events,
		renderer: r,
		clock:    clock,
		log:      logger.Named("viewer"),
		title:    title,
		running:  true,
		now:      time.Now,
	}
}

// Run loops until a quit event arrives or a frame fails.
func (v *Viewer) Run() error {
	v.fpsStart = v.now()

	v.log.Info("starting frame loop",
		zap.Bool("auto_rotate", v.clock.AutoRotate()),
	)

	for v.running {
		if err := v.Frame(v.now()); err != nil {
			return err
		}
	}

	v.log.Info("frame loop stopped")
	return nil
}

// Running reports whether the loop should continue.
func (v *Viewer) Running() bool {
	return v.running
}

// Frame runs one iteration of the loop at time now.
func (v *Viewer) Frame(now time.Time) error {
	// 1. Process input
	quit := v.events.Update()
	for _, ev := range v.events.Events() {
		v.handle(ev)
	}
	if quit || !v.running {
		v.running = false
		return nil
	}

	// 2. Advance the rotation
	v.clock.Update(now)

	// 3. Render
	if err := v.renderer.RenderFrame(v.clock.Radians()); err != nil {
		return fmt.Errorf("render error: %w", err)
	}

	// 4. Present
	v.surface.SwapBuffers()

	v.countFrame(now)
	return nil
}

func (v *Viewer) handle(ev input.Event) {
	switch ev.Action {
	case input.ActionQuit:
		v.running = false

	case input.ActionResize:
		// Event sizes are in screen coordinates; the viewport needs pixels.
		w, h := v.surface.DrawableSize()
		v.renderer.Resize(w, h)
		v.log.Debug("resized", zap.Int("width", w), zap.Int("height", h))

	case input.ActionToggleRotation:
		auto := v.clock.ToggleAutoRotate()
		v.log.Info("rotation mode changed",
			zap.Bool("auto_rotate", auto),
			zap.Float64("degrees", v.clock.Degrees()),
		)

	case input.ActionStepBackward, input.ActionStepForward:
		if v.clock.AutoRotate() {
			return
		}
		n := 1
		if ev.Action == input.ActionStepBackward {
			n = -1
		}
		v.clock.StepManual(n)
		v.log.Debug("manual step", zap.Float64("degrees", v.clock.Degrees()))
	}
}

func (v *Viewer) countFrame(now time.Time) {
	v.frames++
	elapsed := now.Sub(v.fpsStart)
	if elapsed < time.Second {
		return
	}

	fps := float64(v.frames) / elapsed.Seconds()
	v.log.Debug("fps",
		zap.Int("frames", v.frames),
		zap.String("frame_time", fmt.Sprintf("%.2fms", elapsed.Seconds()*1000/float64(v.frames))),
	)
	v.surface.SetTitle(fmt.Sprintf("%s - %.0f FPS", v.title, fps))

	v.frames = 0
	v.fpsStart = now
}
