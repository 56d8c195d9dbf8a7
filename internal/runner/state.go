package runner

// State is the conversation loop state.
type State int

const (
	// StateAwaitUser blocks for the next line of user input.
	StateAwaitUser State = iota
	// StateContinueWithoutUser re-queries the model with fresh tool results.
	StateContinueWithoutUser
)

func (s State) String() string {
	switch s {
	case StateAwaitUser:
		return "await_user"
	case StateContinueWithoutUser:
		return "continue_without_user"
	default:
		return "unknown"
	}
}
