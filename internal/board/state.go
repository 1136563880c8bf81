package board

import "fmt"

type State uint8

const (
	StateInitializing State = iota
	StatePlaying
	StatePaused
	StateVictory
	StateDefeat
	StateEnded // round limit reached
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"

	case StatePlaying:
		return "playing"

	case StatePaused:
		return "paused"

	case StateVictory:
		return "victory"

	case StateDefeat:
		return "defeat"

	case StateEnded:
		return "ended"

	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	for st := StateInitializing; st <= StateEnded; st++ {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", b)
}

// Finished reports whether no more actions will be accepted.
func (s State) Finished() bool {
	return s == StateVictory || s == StateDefeat || s == StateEnded
}
