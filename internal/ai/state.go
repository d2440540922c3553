package ai

import "fmt"

// State represents the tactical states of the AI fighter.
type State int

const (
	StateIdle State = iota
	StatePunch
	StateBlock
	StateMoveForward
	StateMoveBackward
)

var stateNames = map[State]string{
	StateIdle:         "IDLE",
	StatePunch:        "PUNCH",
	StateBlock:        "BLOCK",
	StateMoveForward:  "MOVE_FORWARD",
	StateMoveBackward: "MOVE_BACKWARD",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATE_%d", int(s))
}

// IsMovement reports whether the state translates the fighter.
func (s State) IsMovement() bool {
	return s == StateMoveForward || s == StateMoveBackward
}
