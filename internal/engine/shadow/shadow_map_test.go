package shadow

import (
	"errors"
	"testing"

	"github.com/Faultbox/shadowmesh/internal/engine/gpu"
	"github.com/Faultbox/shadowmesh/internal/engine/gpu/gputest"
)

func TestNewMapDefaultResolution(t *testing.T) {
	sm, err := NewMap(gputest.NewRecorder(), 0)
	if err != nil {
		t.Fatalf("NewMap failed: %v", err)
	}
	if sm.Resolution() != DefaultResolution {
		t.Errorf("Resolution() = %d, want %d", sm.Resolution(), DefaultResolution)
	}
	if !sm.IsValid() {
		t.Error("expected valid map")
	}
}

func TestNewMapFailure(t *testing.T) {
	rec := gputest.NewRecorder()
	rec.FailDepthTarget = true

	sm, err := NewMap(rec, 1024)
	if !errors.Is(err, gputest.ErrInjected) {
		t.Fatalf("NewMap error = %v, want ErrInjected", err)
	}
	if sm.IsValid() {
		t.Error("nil map reported valid")
	}
}

func TestBindUnbindState(t *testing.T) {
	rec := gputest.NewRecorder()
	sm, err := NewMap(rec, 1024)
	if err != nil {
		t.Fatalf("NewMap failed: %v", err)
	}
	rec.Reset()

	sm.Bind()
	sm.Unbind(800, 600)

	want := []string{
		gputest.OpBindFramebuffer,
		gputest.OpViewport,
		gputest.OpClear,
		gputest.OpEnableDepthTest,
		gputest.OpEnableCulling,
		gputest.OpBindFramebuffer,
		gputest.OpViewport,
		gputest.OpEnableCulling,
	}
	got := rec.Ops()
	if len(got) != len(want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ops = %v, want %v", got, want)
		}
	}

	c := rec.Calls
	if c[0].Handle == 0 {
		t.Error("Bind should bind the depth framebuffer")
	}
	if c[1].Rect != [4]int32{0, 0, 1024, 1024} {
		t.Errorf("shadow viewport = %v", c[1].Rect)
	}
	if c[2].Mask != gpu.ClearDepth {
		t.Errorf("clear mask = %b, want depth only", c[2].Mask)
	}
	if c[4].Face != gpu.CullFront {
		t.Errorf("culling during pass = %v, want front", c[4].Face)
	}
	if c[5].Handle != 0 {
		t.Error("Unbind should restore the window framebuffer")
	}
	if c[6].Rect != [4]int32{0, 0, 800, 600} {
		t.Errorf("restored viewport = %v", c[6].Rect)
	}
	if c[7].Face != gpu.CullBack {
		t.Errorf("culling after pass = %v, want back", c[7].Face)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	rec := gputest.NewRecorder()
	sm, err := NewMap(rec, 512)
	if err != nil {
		t.Fatalf("NewMap failed: %v", err)
	}

	sm.Destroy()
	sm.Destroy()
	if got := rec.Count(gputest.OpDeleteDepthTarget); got != 1 {
		t.Errorf("DeleteDepthTarget called %d times, want 1", got)
	}
	if rec.Live() != 0 {
		t.Errorf("%d handles still live", rec.Live())
	}
}
