package envelope

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-envelope/dsp/core"
)

// gainBuf holds pooled scratch memory for Apply.
type gainBuf struct {
	data []float64
}

var gainPool = sync.Pool{
	New: func() any { return &gainBuf{} },
}

// Process fills dst with consecutive envelope steps. Steps that produce no
// value are written as 0. It returns the number of steps that produced a
// value.
func (g *Generator[T]) Process(dst []T) int {
	produced := 0
	for i := range dst {
		v, ok := g.Next()
		if !ok {
			dst[i] = 0
			continue
		}
		dst[i] = v
		produced++
	}
	return produced
}

// Apply multiplies buf in place by the next len(buf) envelope steps and
// returns the number of steps that produced a value. Silent steps zero
// the corresponding samples.
func Apply(g *Generator[float64], buf []float64) int {
	if len(buf) == 0 {
		return 0
	}

	scratch := gainPool.Get().(*gainBuf)
	scratch.data = core.EnsureLen(scratch.data, len(buf))

	produced := g.Process(scratch.data)
	vecmath.MulBlockInPlace(buf, scratch.data)

	gainPool.Put(scratch)
	return produced
}

// Render triggers g, holds the note for holdSamples produced steps, releases
// it and collects values until the envelope finishes. At most maxSamples
// values are returned; maxSamples <= 0 means no limit. A release whose
// level stops moving ends the render early, leaving g in StateRelease.
func Render(g *Generator[float64], holdSamples, maxSamples int) []float64 {
	var out []float64
	if maxSamples > 0 {
		out = make([]float64, 0, maxSamples)
	}

	full := func() bool { return maxSamples > 0 && len(out) >= maxSamples }

	g.NoteOn()
	for i := 0; i < holdSamples && !full(); i++ {
		v, _ := g.Next()
		out = append(out, v)
	}

	g.NoteOff()
	for !full() {
		v, ok := g.Next()
		if !ok {
			break
		}
		out = append(out, v)
		if g.Stalled() {
			break
		}
	}

	return out
}
