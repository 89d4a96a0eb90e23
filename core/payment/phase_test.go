package payment

import "testing"

func TestPhaseTransitions(t *testing.T) {
	allowed := []struct{ from, to Phase }{
		{Created, Initiating},
		{Initiating, AwaitingGateway},
		{Initiating, InitiationFailed},
		{AwaitingGateway, Reporting},
		{Reporting, Completed},
		{Reporting, Failed},
	}
	for _, tr := range allowed {
		if !CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be allowed", tr.from, tr.to)
		}
	}

	denied := []struct{ from, to Phase }{
		{Created, AwaitingGateway},
		{Created, Completed},
		{Initiating, Completed},
		{Initiating, Failed},
		{AwaitingGateway, Completed},
		{Completed, Initiating},
		{Failed, Initiating},
		{InitiationFailed, Initiating},
	}
	for _, tr := range denied {
		if CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be denied", tr.from, tr.to)
		}
	}
}

func TestPhaseIsTerminal(t *testing.T) {
	for _, p := range []Phase{Completed, Failed, InitiationFailed} {
		if !p.IsTerminal() {
			t.Errorf("expected %s to be terminal", p)
		}
	}
	for _, p := range []Phase{Created, Initiating, AwaitingGateway, Reporting} {
		if p.IsTerminal() {
			t.Errorf("expected %s to be non-terminal", p)
		}
	}
}
