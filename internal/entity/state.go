package entity

// State is a lifecycle state of a game. ABANDONED, COMPLETED and DRAWN are
// terminal: once reached, no further transition is legal.
type State string

const (
	StateNew        State = "NEW"
	StateInProgress State = "IN_PROGRESS"
	StateSuspended  State = "SUSPENDED"
	StateAbandoned  State = "ABANDONED"
	StateCompleted  State = "COMPLETED"
	StateDrawn      State = "DRAWN"
)

// transitions lists every legal lifecycle edge. A state transitioning to
// itself is never legal, and terminal states have no outgoing edges.
var transitions = map[State][]State{
	StateNew:        {StateInProgress, StateSuspended, StateAbandoned},
	StateInProgress: {StateSuspended, StateAbandoned, StateCompleted, StateDrawn},
	StateSuspended:  {StateInProgress, StateAbandoned},
	StateAbandoned:  {},
	StateCompleted:  {},
	StateDrawn:      {},
}

// CanTransitionTo reports whether moving from the current state to target is
// a legal lifecycle transition.
func (that State) CanTransitionTo(target State) bool {
	for _, allowed := range transitions[that] {
		if allowed == target {
			return true
		}
	}

	return false
}

// IsTerminal reports whether the state has no legal outgoing transition.
func (that State) IsTerminal() bool {
	return len(transitions[that]) == 0 && that.IsValid()
}

// IsPlayable reports whether a turn may be played in this state.
func (that State) IsPlayable() bool {
	return that == StateNew || that == StateInProgress
}

func (that State) IsValid() bool {
	_, ok := transitions[that]
	return ok
}

func (that State) String() string {
	return string(that)
}
