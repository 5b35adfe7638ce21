package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/cwbudde/algo-envelope/dsp/core"
	"github.com/cwbudde/algo-envelope/dsp/envelope"
)

var errQuit = errors.New("quit")

type shell struct {
	gen   *envelope.Generator[float64]
	cfg   core.ProcessorConfig
	out   io.Writer
	steps int
}

func newShell(gen *envelope.Generator[float64], cfg core.ProcessorConfig, out io.Writer) *shell {
	return &shell{gen: gen, cfg: cfg, out: out}
}

type command struct {
	name  string
	run   func(*shell, []string) error
	arity int // -n means len(args) may be 0..n
	help  string
}

var commands = []command{
	{"on", onCommand, 0, "note on (restarts from the initial level)"},
	{"off", offCommand, 0, "note off (jumps to release)"},
	{"reset", resetCommand, 0, "return to ready"},
	{"step", stepCommand, -1, "step [n]: pull n values (default 1)"},
	{"set", setCommand, 2, "set <param> <value>: attack|decay|release take a duration or samples"},
	{"show", showCommand, 0, "print parameters and state"},
	{"quit", quitCommand, 0, "leave the shell"},
}

func init() {
	// help lists commands, so it cannot be part of the literal above.
	commands = append(commands, command{"help", helpCommand, 0, "list commands"})
}

// Setters dispatch through the Envelope interface.
var setters = map[string]func(envelope.Envelope[float64], float64){
	"attack":  envelope.Envelope[float64].SetAttack,
	"decay":   envelope.Envelope[float64].SetDecay,
	"sustain": envelope.Envelope[float64].SetSustain,
	"release": envelope.Envelope[float64].SetRelease,
	"initial": envelope.Envelope[float64].SetInitial,
	"peak":    envelope.Envelope[float64].SetPeak,
	"end":     envelope.Envelope[float64].SetEnd,
}

var durationParams = map[string]bool{"attack": true, "decay": true, "release": true}

func (s *shell) eval(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	if name == "exit" {
		name = "quit"
	}

	for _, cmd := range commands {
		if name != cmd.name {
			continue
		}
		if cmd.arity < 0 {
			if len(args) > -cmd.arity {
				return fmt.Errorf("%s: wrong number of arguments: want at most %v, got %v",
					cmd.name, -cmd.arity, len(args))
			}
		} else if len(args) != cmd.arity {
			return fmt.Errorf("%s: wrong number of arguments: want %v, got %v",
				cmd.name, cmd.arity, len(args))
		}
		if err := cmd.run(s, args); err != nil {
			if err == errQuit {
				return err
			}
			return fmt.Errorf("%s error: %w", cmd.name, err)
		}
		return nil
	}
	return fmt.Errorf("unknown command: %s (try help)", name)
}

func repl(s *shell) error {
	rl, err := readline.New("env> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		if err := s.eval(line); err == errQuit {
			return nil
		} else if err != nil {
			fmt.Fprintln(s.out, err)
		}
	}
}

func onCommand(s *shell, _ []string) error {
	s.gen.NoteOn()
	s.steps = 0
	return nil
}

func offCommand(s *shell, _ []string) error {
	s.gen.NoteOff()
	return nil
}

func resetCommand(s *shell, _ []string) error {
	s.gen.Reset()
	s.steps = 0
	return nil
}

func stepCommand(s *shell, args []string) error {
	n := 1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return fmt.Errorf("step count must be a positive integer: %q", args[0])
		}
		n = v
	}

	for i := 0; i < n; i++ {
		v, ok := s.gen.Next()
		if ok {
			fmt.Fprintf(s.out, "%d: %-7v %.6f\n", s.steps, s.gen.State(), v)
		} else {
			fmt.Fprintf(s.out, "%d: %-7v -\n", s.steps, s.gen.State())
		}
		s.steps++
	}
	return nil
}

func setCommand(s *shell, args []string) error {
	param := strings.ToLower(args[0])
	set, ok := setters[param]
	if !ok {
		return fmt.Errorf("unknown parameter: %s", param)
	}

	v, err := s.parseValue(param, args[1])
	if err != nil {
		return err
	}
	set(s.gen, v)
	return nil
}

// parseValue reads a level, or for stage durations either a Go duration
// ("20ms") or a plain sample count.
func (s *shell) parseValue(param, raw string) (float64, error) {
	if durationParams[param] {
		if d, err := time.ParseDuration(raw); err == nil {
			return s.cfg.Samples(d), nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q", param, raw)
	}
	return v, nil
}

func showCommand(s *shell, _ []string) error {
	g := s.gen
	fmt.Fprintf(s.out, "state=%v note=%v value=%.6f slope=%.6g\n", g.State(), g.NoteIsOn(), g.Value(), g.Slope())
	fmt.Fprintf(s.out, "attack=%.6g decay=%.6g release=%.6g samples @ %.0f Hz\n", g.Attack(), g.Decay(), g.Release(), s.cfg.SampleRate)
	fmt.Fprintf(s.out, "initial=%.6g peak=%.6g sustain=%.6g end=%.6g\n", g.Initial(), g.Peak(), g.Sustain(), g.End())
	return nil
}

func helpCommand(s *shell, _ []string) error {
	names := make([]string, 0, len(commands))
	byName := make(map[string]string, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.name)
		byName[cmd.name] = cmd.help
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(s.out, "  %-6s %s\n", n, byName[n])
	}
	return nil
}

func quitCommand(*shell, []string) error {
	return errQuit
}
