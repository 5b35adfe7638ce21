package envelope

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-envelope/dsp/core"
)

// Times describes an envelope with stage durations in wall-clock units.
type Times struct {
	Attack  time.Duration
	Decay   time.Duration
	Release time.Duration

	Sustain float64
	Initial float64
	Peak    float64
	End     float64
}

// DefaultTimes returns 50 ms stages rising from 0 to full scale, sustaining
// at 0.75 and releasing back to 0.
func DefaultTimes() Times {
	return Times{
		Attack:  50 * time.Millisecond,
		Decay:   50 * time.Millisecond,
		Release: 50 * time.Millisecond,
		Sustain: 0.75,
		Initial: 0,
		Peak:    1,
		End:     0,
	}
}

// NewFromTimes creates a float64 generator whose stage durations are
// converted to samples at cfg.SampleRate. Only an invalid sample rate is
// rejected; the remaining parameters are clamped as in New.
func NewFromTimes(cfg core.ProcessorConfig, t Times) (*Generator[float64], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}

	return New(
		cfg.Samples(t.Attack),
		cfg.Samples(t.Decay),
		t.Sustain,
		cfg.Samples(t.Release),
		t.Initial,
		t.Peak,
		t.End,
	), nil
}
