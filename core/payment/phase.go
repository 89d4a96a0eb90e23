package payment

// Phase tracks a single payment handshake. A terminal phase is never
// left; a failed handshake requires a new, explicit one.
type Phase string

const (
	Created          Phase = "CREATED"
	Initiating       Phase = "INITIATING"
	InitiationFailed Phase = "INITIATION_FAILED"
	AwaitingGateway  Phase = "AWAITING_GATEWAY_CONFIRMATION"
	Reporting        Phase = "REPORTING"
	Completed        Phase = "COMPLETED"
	Failed           Phase = "FAILED"
)

func (p Phase) IsTerminal() bool {
	return p == Completed || p == Failed || p == InitiationFailed
}

// String representation (for logging)
func (p Phase) String() string {
	return string(p)
}

var phaseTransitions = map[Phase][]Phase{
	Created:         {Initiating},
	Initiating:      {AwaitingGateway, InitiationFailed},
	AwaitingGateway: {Reporting},
	Reporting:       {Completed, Failed},
}

func CanTransition(from, to Phase) bool {
	for _, next := range phaseTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
