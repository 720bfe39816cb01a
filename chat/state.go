package chat

import (
	"fmt"
	"sync"
)

// State is a phase of the chat session
type State int

const (
	StateStarting State = iota
	StateReady
	StateAwaitingInput
	StateProcessing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "STARTING"
	case StateReady:
		return "READY"
	case StateAwaitingInput:
		return "AWAITING_INPUT"
	case StateProcessing:
		return "PROCESSING"
	case StateDone:
		return "DONE"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// InvalidTransitionError is returned for a move the state machine forbids.
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

var validTransitions = map[State][]State{
	StateStarting:      {StateReady, StateDone},
	StateReady:         {StateAwaitingInput},
	StateAwaitingInput: {StateAwaitingInput, StateProcessing, StateDone},
	StateProcessing:    {StateAwaitingInput, StateDone},
}

type stateMachine struct {
	mu      sync.RWMutex
	current State
}

func newStateMachine() *stateMachine {
	return &stateMachine{current: StateStarting}
}

func (m *stateMachine) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func transitionValid(from, to State) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves to state, rejecting moves not in the table.
func (m *stateMachine) Transition(state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !transitionValid(m.current, state) {
		return &InvalidTransitionError{From: m.current, To: state}
	}
	m.current = state
	return nil
}
