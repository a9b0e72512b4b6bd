package convert

import "fmt"

// State is the lifecycle position of one conversion request. Every request
// moves Probing -> Attempting -> (Succeeded | Failed); there is no other
// path and no way out of a terminal state.
type State int

const (
	StateProbing State = iota
	StateAttempting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateProbing:
		return "probing"
	case StateAttempting:
		return "attempting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// stateMachine tracks a single request's lifecycle. All transitions go
// through one function, so a request can never produce two terminal
// outcomes no matter which callback fires last.
type stateMachine struct {
	state   State
	attempt int
}

func newStateMachine() *stateMachine {
	return &stateMachine{state: StateProbing}
}

// transition moves to next, validating the edge. Attempting -> Attempting is
// legal and bumps the attempt counter.
func (m *stateMachine) transition(next State) error {
	if m.done() {
		return fmt.Errorf("request already %s, cannot move to %s", m.state, next)
	}

	switch {
	case m.state == StateProbing && next == StateAttempting:
	case m.state == StateAttempting && next == StateAttempting:
		m.attempt++
	case next == StateSucceeded || next == StateFailed:
	default:
		return fmt.Errorf("illegal transition %s -> %s", m.state, next)
	}

	m.state = next
	return nil
}

func (m *stateMachine) done() bool {
	return m.state == StateSucceeded || m.state == StateFailed
}
