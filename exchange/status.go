package exchange

// party identifies which side of a transaction may invoke a transition.
type party int

const (
	partyOwner party = iota
	partyInitiator
	partyEither
)

// rule describes one legal edge of the transaction state machine.
type rule struct {
	allowed        party
	requireMessage bool // transition fails without a non-empty response message
	acceptMessage  bool // a supplied response message replaces the stored one
	release        bool // listing availability returns to available
}

// transitions is the full state machine. Absent edges, including anything
// out of a terminal status and same-state writes, are invalid transitions.
var transitions = map[Status]map[Status]rule{
	StatusPending: {
		StatusActive:    {allowed: partyOwner, requireMessage: true, acceptMessage: true},
		StatusRejected:  {allowed: partyOwner, acceptMessage: true, release: true},
		StatusCancelled: {allowed: partyInitiator, release: true},
	},
	StatusActive: {
		StatusCompleted: {allowed: partyOwner, release: true},
		StatusCancelled: {allowed: partyEither, release: true},
	},
}

func ruleFor(from, to Status) (rule, bool) {
	r, ok := transitions[from][to]
	return r, ok
}

func (r rule) permits(isOwner, isInitiator bool) bool {
	switch r.allowed {
	case partyOwner:
		return isOwner
	case partyInitiator:
		return isInitiator
	case partyEither:
		return isOwner || isInitiator
	default:
		return false
	}
}
