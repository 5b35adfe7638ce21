// Command envdemo steps an ADSR envelope and prints every produced value.
//
// Usage:
//
//	envdemo [flags]
//
// The envelope is triggered, held for -hold (wall clock) or -hold-samples
// (deterministic) and then released; the run stops when the envelope is done.
//
// Examples:
//
//	envdemo
//	envdemo -hold-samples 4410 -quiet -analyze
//	envdemo -attack 5ms -decay 200ms -sustain-db -12 -release 1s
//	envdemo -i
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-envelope/dsp/core"
	"github.com/cwbudde/algo-envelope/dsp/envelope"
)

type runConfig struct {
	hold        time.Duration
	holdSamples int
	maxSamples  int
	quiet       bool
}

func main() {
	def := envelope.DefaultTimes()

	rate := flag.Float64("rate", 44100, "sample rate in Hz")
	attack := flag.Duration("attack", def.Attack, "attack time")
	decay := flag.Duration("decay", def.Decay, "decay time")
	release := flag.Duration("release", def.Release, "release time")
	sustain := flag.Float64("sustain", def.Sustain, "sustain level [0,1]")
	sustainDB := flag.Float64("sustain-db", math.NaN(), "sustain level in dB, overrides -sustain")
	initial := flag.Float64("initial", def.Initial, "initial level [0,1]")
	peak := flag.Float64("peak", def.Peak, "peak level [0,1]")
	end := flag.Float64("end", def.End, "end level [0,1]")
	hold := flag.Duration("hold", 50*time.Millisecond, "wall-clock time before note-off")
	holdSamples := flag.Int("hold-samples", 0, "samples before note-off, overrides -hold when > 0")
	maxSamples := flag.Int("max", 10*44100, "stop after this many samples (0 = no limit)")
	quiet := flag.Bool("quiet", false, "do not print per-sample values")
	analyze := flag.Bool("analyze", false, "print level and spectral statistics of the run")
	interactive := flag.Bool("i", false, "start an interactive shell instead of a run")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: envdemo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Steps an ADSR envelope sample by sample and prints state and level.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  envdemo\n")
		fmt.Fprintf(os.Stderr, "  envdemo -hold-samples 4410 -quiet -analyze\n")
		fmt.Fprintf(os.Stderr, "  envdemo -attack 5ms -sustain-db -12 -release 1s\n")
		fmt.Fprintf(os.Stderr, "  envdemo -i\n")
	}
	flag.Parse()

	cfg := core.ApplyProcessorOptions(core.WithSampleRate(*rate))
	if *rate != cfg.SampleRate {
		fmt.Fprintf(os.Stderr, "error: sample rate must be > 0: %v\n", *rate)
		os.Exit(1)
	}

	times := envelope.Times{
		Attack:  *attack,
		Decay:   *decay,
		Release: *release,
		Sustain: *sustain,
		Initial: *initial,
		Peak:    *peak,
		End:     *end,
	}
	if !math.IsNaN(*sustainDB) {
		times.Sustain = core.DBToLinear(*sustainDB)
	}

	gen, err := envelope.NewFromTimes(cfg, times)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := repl(newShell(gen, cfg, os.Stdout)); err != nil && err != io.EOF {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	levels := run(os.Stdout, gen, runConfig{
		hold:        *hold,
		holdSamples: *holdSamples,
		maxSamples:  *maxSamples,
		quiet:       *quiet,
	})

	if *analyze {
		if err := printAnalysis(os.Stdout, levels, cfg.SampleRate); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// run triggers gen, releases it once the hold has elapsed and prints every
// produced value. It returns the produced values.
func run(w io.Writer, gen *envelope.Generator[float64], rc runConfig) []float64 {
	var levels []float64

	gen.NoteOn()
	start := time.Now()
	released := false

	for v := range gen.All() {
		if !rc.quiet {
			if _, err := fmt.Fprintf(w, "%d: %-7v %.6f\n", len(levels), gen.State(), v); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output: %v\n", err)
				return levels
			}
		}
		levels = append(levels, v)

		if !released && holdElapsed(rc, len(levels), start) {
			gen.NoteOff()
			released = true
		}
		if gen.IsDone() || gen.Stalled() || (rc.maxSamples > 0 && len(levels) >= rc.maxSamples) {
			break
		}
	}

	return levels
}

func holdElapsed(rc runConfig, produced int, start time.Time) bool {
	if rc.holdSamples > 0 {
		return produced >= rc.holdSamples
	}
	return time.Since(start) >= rc.hold
}

func printAnalysis(w io.Writer, levels []float64, sampleRate float64) error {
	a, err := envelope.Analyze(levels, sampleRate)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Samples\tPeak\tPeak At\tMean\tENBW [bins]\tFFT\tCentroid [Hz]\tSplatter [dB]\n")
	fmt.Fprintf(tw, "-------\t----\t-------\t----\t-----------\t---\t-------------\t-------------\n")
	fmt.Fprintf(tw, "%d\t%.6f\t%d\t%.6f\t%.4f\t%d\t%.2f\t%.2f\n",
		a.Length,
		a.PeakLevel,
		a.PeakIndex,
		a.MeanLevel,
		a.ENBW,
		a.FFTSize,
		a.CentroidHz,
		a.SplatterdB,
	)
	return tw.Flush()
}
