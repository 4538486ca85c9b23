package fsm

import "fmt"

type State string

type Event string

const (
	StateStart       State = "start"
	StatePrompted    State = "prompted"
	StateLineRead    State = "line_read"
	StateTokenized   State = "tokenized"
	StateParsed      State = "parsed"
	StateParseFailed State = "parse_failed"
	StateComputed    State = "computed"
	StateReported    State = "reported"
)

const (
	EventPrompt   Event = "prompt"
	EventRead     Event = "read"
	EventTokenize Event = "tokenize"
	EventParse    Event = "parse"
	EventReject   Event = "reject"
	EventCompute  Event = "compute"
	EventReport   Event = "report"
)

func Transition(current State, event Event) (State, error) {
	switch current {
	case StateStart:
		switch event {
		case EventPrompt:
			return StatePrompted, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StatePrompted:
		switch event {
		case EventRead:
			return StateLineRead, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateLineRead:
		switch event {
		case EventTokenize:
			return StateTokenized, nil
		case EventReject:
			return StateParseFailed, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateTokenized:
		switch event {
		case EventParse:
			return StateParsed, nil
		case EventReject:
			return StateParseFailed, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateParsed:
		switch event {
		case EventCompute:
			return StateComputed, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateComputed, StateParseFailed:
		switch event {
		case EventReport:
			return StateReported, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateReported:
		return current, invalidTransition(current, event)
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
}

// Terminal reports whether no further events are accepted from state.
func Terminal(state State) bool {
	return state == StateReported
}

func invalidTransition(state State, event Event) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}
