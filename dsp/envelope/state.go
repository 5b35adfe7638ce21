package envelope

// State identifies the current stage of a Generator.
type State int

const (
	// StateReady waits for a note-on.
	StateReady State = iota
	// StateAttack moves from the initial level towards the peak.
	StateAttack
	// StateDecay moves from the peak towards the sustain level.
	StateDecay
	// StateSustain holds the sustain level while the note is on.
	StateSustain
	// StateRelease moves towards the end level after a note-off.
	StateRelease
	// StateDone marks a finished release; the next pull resets to StateReady.
	StateDone
)

var stateNames = [...]string{
	StateReady:   "Ready",
	StateAttack:  "Attack",
	StateDecay:   "Decay",
	StateSustain: "Sustain",
	StateRelease: "Release",
	StateDone:    "Done",
}

// String returns the stage name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}
