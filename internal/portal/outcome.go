package portal

// Outcome reports how a user action settled.
type Outcome int

const (
	// OutcomeSucceeded means the API answered success:true.
	OutcomeSucceeded Outcome = iota
	// OutcomeRejected means the API answered success:false.
	OutcomeRejected
	// OutcomeFailed means the request failed in transport or its body could not be decoded.
	OutcomeFailed
	// OutcomeBlocked means input validation stopped the action before any request.
	OutcomeBlocked
	// OutcomeBusy means the same action was already in flight.
	OutcomeBusy
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeBusy:
		return "busy"
	}
	return "unknown"
}
