package envelope

import (
	"iter"

	"github.com/cwbudde/algo-envelope/dsp/core"
)

// Generator is a linear ADSR envelope over T.
//
// Stage durations (attack, decay, release) are expressed in steps, i.e.
// calls to Next; a stage covers its level distance in that many steps.
// Levels (initial, peak, sustain, end) live in the normal range of T.
//
// The zero value is not usable; create generators with New or NewFromTimes.
type Generator[T core.Number] struct {
	// Stage durations, always > 0.
	attack  T
	decay   T
	release T

	// Levels, always within [0, core.UnitMax[T]()].
	sustain T
	initial T
	peak    T
	end     T

	state  State
	slope  T
	value  T
	noteOn bool

	// Last slopes computed by the setters.
	attackSlope  T
	decaySlope   T
	releaseSlope T
}

// New creates a generator in StateReady.
//
// attack, decay and release are clamped with core.ClampPositive; sustain,
// initial, peak and end with core.ClampUnitRange. The output starts at the
// clamped initial level.
func New[T core.Number](attack, decay, sustain, release, initial, peak, end T) *Generator[T] {
	g := &Generator[T]{
		attack:  core.ClampPositive(attack),
		decay:   core.ClampPositive(decay),
		release: core.ClampPositive(release),
		sustain: core.ClampUnitRange(sustain),
		initial: core.ClampUnitRange(initial),
		peak:    core.ClampUnitRange(peak),
		end:     core.ClampUnitRange(end),
		state:   StateReady,
	}
	g.value = g.initial

	return g
}

// Reset returns to StateReady with the output at the initial level and the
// note off. Calling it repeatedly has no further effect.
func (g *Generator[T]) Reset() {
	g.slope = 0
	g.value = g.initial
	g.noteOn = false
	g.state = StateReady
}

// NoteOn restarts the envelope from the initial level, even mid-cycle.
// The attack stage begins on the next call to Next.
func (g *Generator[T]) NoteOn() {
	g.Reset()
	g.noteOn = true
}

// NoteOff jumps to StateRelease from any stage. The release continues from
// the current output with slope (end - sustain) / release.
func (g *Generator[T]) NoteOff() {
	g.noteOn = false
	g.state = StateRelease
	g.slope = g.calcReleaseSlope()
}

// SetAttack sets the attack duration. The new slope applies immediately if
// the generator is attacking.
func (g *Generator[T]) SetAttack(value T) {
	g.attack = core.ClampPositive(value)
	g.attackSlope = g.calcAttackSlope()
	if g.state == StateAttack {
		g.slope = g.attackSlope
	}
}

// SetDecay sets the decay duration. The new slope applies immediately if
// the generator is decaying.
func (g *Generator[T]) SetDecay(value T) {
	g.decay = core.ClampPositive(value)
	g.decaySlope = g.calcDecaySlope()
	if g.state == StateDecay {
		g.slope = g.decaySlope
	}
}

// SetSustain sets the sustain level. It does not touch the live slope; a
// running decay keeps its slope until the next stage entry.
func (g *Generator[T]) SetSustain(value T) {
	g.sustain = core.ClampUnitRange(value)
}

// SetRelease sets the release duration. The new slope applies immediately
// if the generator is releasing.
func (g *Generator[T]) SetRelease(value T) {
	g.release = core.ClampPositive(value)
	g.releaseSlope = g.calcReleaseSlope()
	if g.state == StateRelease {
		g.slope = g.releaseSlope
	}
}

// SetInitial sets the initial level. During the attack stage the cached
// attack slope is recomputed; the running attack keeps its slope.
func (g *Generator[T]) SetInitial(value T) {
	g.initial = core.ClampUnitRange(value)
	if g.state == StateAttack {
		g.attackSlope = g.calcAttackSlope()
	}
}

// SetPeak sets the peak level. During the decay stage the cached decay
// slope is recomputed; the running decay keeps its slope.
func (g *Generator[T]) SetPeak(value T) {
	g.peak = core.ClampUnitRange(value)
	if g.state == StateDecay {
		g.decaySlope = g.calcDecaySlope()
	}
}

// SetEnd sets the end level. During the release stage the cached release
// slope is recomputed; the running release keeps its slope.
func (g *Generator[T]) SetEnd(value T) {
	g.end = core.ClampUnitRange(value)
	if g.state == StateRelease {
		g.releaseSlope = g.calcReleaseSlope()
	}
}

// IsDone reports whether the release has finished.
func (g *Generator[T]) IsDone() bool { return g.state == StateDone }

// IsReady reports whether the generator waits for a note-on.
func (g *Generator[T]) IsReady() bool { return g.state == StateReady }

// State returns the current stage.
func (g *Generator[T]) State() State { return g.state }

// Value returns the level the next emitting step will produce.
func (g *Generator[T]) Value() T { return g.value }

// Slope returns the per-step increment of the current stage.
func (g *Generator[T]) Slope() T { return g.slope }

// NoteIsOn reports whether a note-on is pending without a note-off.
func (g *Generator[T]) NoteIsOn() bool { return g.noteOn }

// Attack returns the attack duration in steps.
func (g *Generator[T]) Attack() T { return g.attack }

// Decay returns the decay duration in steps.
func (g *Generator[T]) Decay() T { return g.decay }

// Sustain returns the sustain level.
func (g *Generator[T]) Sustain() T { return g.sustain }

// Release returns the release duration in steps.
func (g *Generator[T]) Release() T { return g.release }

// Initial returns the initial level.
func (g *Generator[T]) Initial() T { return g.initial }

// Peak returns the peak level.
func (g *Generator[T]) Peak() T { return g.peak }

// End returns the end level.
func (g *Generator[T]) End() T { return g.end }

// Next advances the envelope by one step.
//
// The stage transition is evaluated first, then the output: while
// releasing, or while the note is on, the current level is returned and
// advanced by the slope. Otherwise ok is false. The level never drops
// below zero.
func (g *Generator[T]) Next() (value T, ok bool) {
	switch g.state {
	case StateReady:
		if g.noteOn {
			g.state = StateAttack
			g.slope = g.calcAttackSlope()
		}
	case StateAttack:
		if crossed(g.initial, g.peak, g.value) {
			g.state = StateDecay
			g.slope = g.calcDecaySlope()
		}
	case StateDecay:
		if crossed(g.peak, g.sustain, g.value) {
			g.state = StateSustain
			g.slope = 0
		}
	case StateSustain:
		if !g.noteOn {
			g.state = StateRelease
			g.slope = g.calcReleaseSlope()
		} else {
			g.value = g.sustain
		}
	case StateRelease:
		if releaseCrossed(g.sustain, g.end, g.value) {
			g.state = StateDone
			g.slope = 0
		}
	case StateDone:
		g.Reset()
	}

	if g.state == StateRelease || g.noteOn {
		value, ok = g.value, true
		g.value = advance(g.value, g.slope)
	}
	if g.value < 0 {
		g.value = 0
	}

	return value, ok
}

// Stalled reports whether the release can no longer reach its end level
// because the slope is too small to change the output. Every further step
// would emit the same value.
func (g *Generator[T]) Stalled() bool {
	if g.state != StateRelease || releaseCrossed(g.sustain, g.end, g.value) {
		return false
	}
	next := advance(g.value, g.slope)
	if next < 0 {
		next = 0
	}
	return next == g.value
}

// All returns the envelope as a sequence that pulls Next until a step
// produces no value. Breaking out of the loop leaves the generator at the
// last pulled step.
func (g *Generator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := g.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// crossed reports whether value has reached target on a segment that
// starts at from. Falling segments end at or below target, rising or flat
// ones at or above it.
func crossed[T core.Number](from, target, value T) bool {
	if from > target {
		return value <= target
	}
	return value >= target
}

// advance returns value+slope, saturating at the type maximum for integers.
func advance[T core.Number](value, slope T) T {
	if !core.IsFloat[T]() && slope > 0 && value > core.MaxValue[T]()-slope {
		return core.MaxValue[T]()
	}
	return value + slope
}

// releaseCrossed is crossed with flat segments treated as falling, so a
// release with end == sustain finishes from any level at or below end.
func releaseCrossed[T core.Number](from, target, value T) bool {
	if target > from {
		return value >= target
	}
	return value <= target
}

func (g *Generator[T]) calcAttackSlope() T {
	return (g.peak - g.initial) / g.attack
}

func (g *Generator[T]) calcDecaySlope() T {
	return (g.sustain - g.peak) / g.decay
}

func (g *Generator[T]) calcReleaseSlope() T {
	return (g.end - g.sustain) / g.release
}
