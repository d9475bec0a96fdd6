package booking

import "fmt"

// Status represents the decision state of a booking.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusCanceled Status = "canceled"
)

// validTransitions is the booking state machine. A booking starts in
// waiting; the item owner decides it (approved/rejected) or the booker
// withdraws it (canceled). All decided states are terminal, so a decision
// can never be reversed by replaying a confirm.
var validTransitions = map[Status][]Status{
	StatusWaiting:  {StatusApproved, StatusRejected, StatusCanceled},
	StatusApproved: {},
	StatusRejected: {},
	StatusCanceled: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the
// target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

func (s Status) String() string {
	return string(s)
}

// State is the filter used when listing bookings: either a concrete status
// or a partition based on where now() falls relative to [start, end].
type State string

const (
	StateAll      State = "all"
	StateCurrent  State = "current" // start <= now <= end
	StatePast     State = "past"    // end < now
	StateFuture   State = "future"  // start > now
	StateWaiting  State = "waiting"
	StateRejected State = "rejected"
)

// ParseState converts a request string into a State. An empty string
// defaults to all.
func ParseState(s string) (State, error) {
	switch State(s) {
	case "":
		return StateAll, nil
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(s), nil
	default:
		return "", fmt.Errorf("unknown booking state: %q", s)
	}
}
