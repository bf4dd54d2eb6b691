// Package input turns SDL2 events into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is what the viewer should do in response to an event.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResize
	ActionToggleRotation
	ActionStepBackward
	ActionStepForward
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionResize:
		return "resize"
	case ActionToggleRotation:
		return "toggle-rotation"
	case ActionStepBackward:
		return "step-backward"
	case ActionStepForward:
		return "step-forward"
	default:
		return "none"
	}
}

// Event represents a processed input event.
type Event struct {
	Action Action
	Width  int // ActionResize only
	Height int
}

// Keymap binds key codes to actions.
type Keymap map[sdl.Keycode]Action

// DefaultKeymap returns the viewer's key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		sdl.K_ESCAPE: ActionQuit,
		sdl.K_q:      ActionQuit,
		sdl.K_SPACE:  ActionToggleRotation,
		sdl.K_LEFT:   ActionStepBackward,
		sdl.K_RIGHT:  ActionStepForward,
	}
}

// repeatable actions keep firing while their key is held.
func (a Action) repeatable() bool {
	return a == ActionStepBackward || a == ActionStepForward
}

// Input handles all input processing.
type Input struct {
	keymap Keymap
	events []Event
}

// New creates a new input handler. A nil keymap selects DefaultKeymap.
func New(keymap Keymap) *Input {
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	return &Input{
		keymap: keymap,
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := i.Translate(event); ok {
			i.events = append(i.events, ev)
			quit = quit || ev.Action == ActionQuit
		}
	}
	return quit
}

// Translate maps a single SDL event. ok is false for events the viewer
// ignores.
func (i *Input) Translate(event sdl.Event) (ev Event, ok bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Action: ActionQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Action: ActionResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return Event{}, false
		}
		action, bound := i.keymap[e.Keysym.Sym]
		if !bound || (e.Repeat != 0 && !action.repeatable()) {
			return Event{}, false
		}
		return Event{Action: action}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
