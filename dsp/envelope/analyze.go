package envelope

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-envelope/dsp/core"
)

const (
	minAnalysisFFTSize = 64

	// Energy above this fraction of the sample rate counts as splatter.
	splatterCutoffRatio = 0.01
)

// Analysis holds level and spectral statistics of a rendered envelope.
type Analysis struct {
	// Length is the number of analysed samples.
	Length int
	// PeakLevel is the largest level and PeakIndex its first position.
	PeakLevel float64
	PeakIndex int
	// MeanLevel is sum(x[n]) / N, the coherent gain of the envelope used as
	// a window.
	MeanLevel float64
	// ENBW is the equivalent noise bandwidth in bins of length N.
	ENBW float64
	// FFTSize is the zero-padded transform length.
	FFTSize int
	// CentroidHz is the power-weighted mean frequency of the spectrum.
	CentroidHz float64
	// SplatterdB is the energy above 1 % of the sample rate relative to the
	// total energy. -Inf when there is none.
	SplatterdB float64
}

// Analyze computes statistics of an envelope rendered at sampleRate.
//
// The spectrum is taken from a zero-padded power-of-two FFT of levels.
// Short attack and release segments spread energy to higher frequencies,
// which shows up as a higher centroid and splatter.
func Analyze(levels []float64, sampleRate float64) (Analysis, error) {
	if len(levels) == 0 {
		return Analysis{}, ErrEmptyInput
	}

	if err := (core.ProcessorConfig{SampleRate: sampleRate}).Validate(); err != nil {
		return Analysis{}, fmt.Errorf("envelope: %w", err)
	}

	n := len(levels)
	a := Analysis{Length: n}

	sum := 0.0
	sumSq := 0.0
	for i, v := range levels {
		if i == 0 || v > a.PeakLevel {
			a.PeakLevel = v
			a.PeakIndex = i
		}
		sum += v
		sumSq += v * v
	}
	if sumSq == 0 {
		return Analysis{}, ErrSilentInput
	}

	a.MeanLevel = sum / float64(n)
	if sum != 0 {
		a.ENBW = float64(n) * sumSq / (sum * sum)
	} else {
		a.ENBW = math.Inf(1)
	}

	power, fftSize, err := powerSpectrum(levels)
	if err != nil {
		return Analysis{}, err
	}
	a.FFTSize = fftSize

	binHz := sampleRate / float64(fftSize)
	cutoff := splatterCutoffRatio * sampleRate

	total := 0.0
	weighted := 0.0
	above := 0.0
	for k, p := range power {
		f := float64(k) * binHz
		total += p
		weighted += f * p
		if f > cutoff {
			above += p
		}
	}

	if total > 0 {
		a.CentroidHz = weighted / total
		a.SplatterdB = core.LinearPowerToDB(above / total)
	} else {
		a.SplatterdB = math.Inf(-1)
	}

	return a, nil
}

// powerSpectrum returns |X[k]|^2 for the non-negative frequency bins of the
// zero-padded FFT of x.
func powerSpectrum(x []float64) ([]float64, int, error) {
	fftSize := core.NextPowerOf2(len(x))
	if fftSize < minAnalysisFFTSize {
		fftSize = minAnalysisFFTSize
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, 0, fmt.Errorf("envelope: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, 0, fmt.Errorf("envelope: FFT failed: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	return power, fftSize, nil
}
