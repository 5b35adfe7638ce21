package envelope

import "github.com/cwbudde/algo-envelope/dsp/core"

// Envelope is the control surface of a pull-based envelope.
type Envelope[T core.Number] interface {
	Reset()
	NoteOn()
	NoteOff()

	SetAttack(value T)
	SetDecay(value T)
	SetSustain(value T)
	SetRelease(value T)
	SetInitial(value T)
	SetPeak(value T)
	SetEnd(value T)

	IsDone() bool
	IsReady() bool

	// Next advances one step. ok is false when the step produced no value.
	Next() (value T, ok bool)
}

var (
	_ Envelope[float64] = (*Generator[float64])(nil)
	_ Envelope[float32] = (*Generator[float32])(nil)
	_ Envelope[int32]   = (*Generator[int32])(nil)
)
