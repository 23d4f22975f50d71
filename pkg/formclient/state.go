package formclient

import "fmt"

// State is the lifecycle of one form instance.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// Event drives a transition between states.
type Event string

const (
	EventSubmit    Event = "submit"
	EventSucceeded Event = "succeeded"
	EventFailed    Event = "failed"
	EventReset     Event = "reset"
)

var transitions = map[State]map[Event]State{
	StateIdle: {
		EventSubmit: StateSubmitting,
	},
	StateSubmitting: {
		EventSucceeded: StateSuccess,
		EventFailed:    StateError,
	},
	StateSuccess: {
		EventReset: StateIdle,
	},
	StateError: {
		EventReset: StateIdle,
	},
}

// next resolves the target state, or ErrInvalidTransition.
func next(from State, e Event) (State, error) {
	to, ok := transitions[from][e]
	if !ok {
		return from, fmt.Errorf("%w: %s --%s-->", ErrInvalidTransition, from, e)
	}
	return to, nil
}
