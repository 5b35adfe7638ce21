package envelope

import (
	"testing"

	"github.com/cwbudde/algo-envelope/internal/testutil"
)

func TestProcess(t *testing.T) {
	g := New(2.0, 2.0, 0.5, 2.0, 0.0, 1.0, 0.0)

	idle := []float64{9, 9, 9}
	if n := g.Process(idle); n != 0 {
		t.Fatalf("Process() before note-on = %d, want 0", n)
	}
	testutil.RequireSliceNearlyEqual(t, idle, []float64{0, 0, 0}, 0)

	g.NoteOn()
	buf := make([]float64, 6)
	if n := g.Process(buf); n != 6 {
		t.Fatalf("Process() = %d, want 6", n)
	}
	testutil.RequireSliceNearlyEqual(t, buf, []float64{0, 0.5, 1, 0.75, 0.5, 0.5}, 1e-12)

	g.NoteOff()
	tail := make([]float64, 5)
	if n := g.Process(tail); n != 2 {
		t.Fatalf("Process() during release = %d, want 2", n)
	}
	testutil.RequireSliceNearlyEqual(t, tail, []float64{0.5, 0.25, 0, 0, 0}, 1e-12)
	if !g.IsReady() {
		t.Fatalf("state = %v, want Ready after Done", g.State())
	}
}

func TestProcessInteger(t *testing.T) {
	g := New[int16](4, 1, 50, 2, 0, 100, 0)
	g.NoteOn()

	buf := make([]int16, 7)
	g.Process(buf)
	testutil.RequireSliceNearlyEqual(t, buf, []int16{0, 25, 50, 75, 100, 50, 50}, 0)
}

func TestApply(t *testing.T) {
	g := New(2.0, 2.0, 0.5, 2.0, 0.0, 1.0, 0.0)
	g.NoteOn()

	buf := testutil.Constant(2, 6)
	if n := Apply(g, buf); n != 6 {
		t.Fatalf("Apply() = %d, want 6", n)
	}
	testutil.RequireSliceNearlyEqual(t, buf, []float64{0, 1, 2, 1.5, 1, 1}, 1e-12)

	g.NoteOff()
	sine := testutil.DeterministicSine(1000, 48000, 1, 4)
	want := []float64{sine[0] * 0.5, sine[1] * 0.25, 0, 0}
	if n := Apply(g, sine); n != 2 {
		t.Fatalf("Apply() during release = %d, want 2", n)
	}
	testutil.RequireSliceNearlyEqual(t, sine, want, 1e-12)

	if n := Apply(g, nil); n != 0 {
		t.Fatalf("Apply(nil) = %d, want 0", n)
	}
}

func TestRender(t *testing.T) {
	g := New(2.0, 2.0, 0.5, 2.0, 0.0, 1.0, 0.0)

	out := Render(g, 6, 0)
	testutil.RequireSliceNearlyEqual(t, out, []float64{0, 0.5, 1, 0.75, 0.5, 0.5, 0.5, 0.25}, 1e-12)
	testutil.RequireNonNegative(t, out)
	if !g.IsDone() {
		t.Fatalf("state = %v, want Done", g.State())
	}
}

func TestRenderLimit(t *testing.T) {
	g := New(2.0, 2.0, 0.5, 2.0, 0.0, 1.0, 0.0)

	if out := Render(g, 100, 10); len(out) != 10 {
		t.Fatalf("len(Render()) = %d, want 10", len(out))
	}

	short := Render(g, 1, 3)
	testutil.RequireSliceNearlyEqual(t, short, []float64{0, 0.5, 0.25}, 1e-12)
}

func TestRenderStopsOnStalledRelease(t *testing.T) {
	// The release slope is too small to move a level of 0.5.
	g := New(1.0, 1.0, 0.5, 1e300, 0.0, 1.0, 0.0)

	out := Render(g, 4, 0)
	testutil.RequireSliceNearlyEqual(t, out, []float64{0, 1, 0.5, 0.5, 0.5}, 0)
	if g.State() != StateRelease {
		t.Fatalf("state = %v, want Release", g.State())
	}
}
