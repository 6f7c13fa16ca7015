package model

import "testing"

func TestAllStatusesAreValid(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.Valid() {
			t.Errorf("status %s reported invalid", s)
		}
	}
	if OrderStatus("SHIPPED").Valid() {
		t.Error("unknown status reported valid")
	}
	if OrderStatus("").Valid() {
		t.Error("empty status reported valid")
	}
}

func TestTerminalStatusesHaveNoExit(t *testing.T) {
	for _, s := range []OrderStatus{StatusDelivered, StatusFailed, StatusRefunded} {
		if !s.Terminal() {
			t.Errorf("status %s should be terminal", s)
		}
		if next := s.AllowedNext(); len(next) != 0 {
			t.Errorf("terminal status %s has outgoing transitions: %v", s, next)
		}
	}
	for _, to := range AllStatuses {
		if ValidTransition(StatusDelivered, to) {
			t.Errorf("DELIVERED -> %s should be rejected", to)
		}
		if ValidTransition(StatusRefunded, to) {
			t.Errorf("REFUNDED -> %s should be rejected", to)
		}
	}
}

func TestNoSelfLoops(t *testing.T) {
	for _, s := range AllStatuses {
		if ValidTransition(s, s) {
			t.Errorf("self loop allowed for %s", s)
		}
	}
}

func TestValidTransitionMatchesAllowedNext(t *testing.T) {
	for _, from := range AllStatuses {
		allowed := make(map[OrderStatus]bool)
		for _, s := range from.AllowedNext() {
			allowed[s] = true
		}
		for _, to := range AllStatuses {
			if got := ValidTransition(from, to); got != allowed[to] {
				t.Errorf("ValidTransition(%s, %s) = %v, AllowedNext disagrees", from, to, got)
			}
		}
	}
}

func TestHappyPathChain(t *testing.T) {
	chain := []OrderStatus{
		StatusNew, StatusQuoted, StatusPaid, StatusSlicing, StatusReadyToPrint,
		StatusPrinting, StatusPrintDone, StatusWaitingDelivery, StatusOutForDelivery,
		StatusDelivered,
	}
	for i := 0; i < len(chain)-1; i++ {
		if !ValidTransition(chain[i], chain[i+1]) {
			t.Errorf("happy path edge %s -> %s rejected", chain[i], chain[i+1])
		}
	}
}

func TestFailedReachableFromEveryNonTerminal(t *testing.T) {
	for _, from := range AllStatuses {
		want := !from.Terminal()
		if got := ValidTransition(from, StatusFailed); got != want {
			t.Errorf("ValidTransition(%s, FAILED) = %v, want %v", from, got, want)
		}
	}
}

func TestRefundedOnlyFromPaid(t *testing.T) {
	for _, from := range AllStatuses {
		want := from == StatusPaid
		if got := ValidTransition(from, StatusRefunded); got != want {
			t.Errorf("ValidTransition(%s, REFUNDED) = %v, want %v", from, got, want)
		}
	}
}

func TestSkippingStagesRejected(t *testing.T) {
	cases := []struct{ from, to OrderStatus }{
		{StatusNew, StatusPaid},
		{StatusQuoted, StatusSlicing},
		{StatusPaid, StatusDelivered},
		{StatusPrinting, StatusWaitingDelivery},
		{StatusSlicing, StatusNew},
	}
	for _, tc := range cases {
		if ValidTransition(tc.from, tc.to) {
			t.Errorf("%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestLabelsAndColorsCoverAllStatuses(t *testing.T) {
	for _, s := range AllStatuses {
		if s.Label() == "" {
			t.Errorf("status %s has no label", s)
		}
		if s.ColorClass() == "" {
			t.Errorf("status %s has no color class", s)
		}
	}
}

func TestAllowedNextForUnknownStatus(t *testing.T) {
	if next := OrderStatus("SHIPPED").AllowedNext(); next != nil {
		t.Errorf("unknown status yields transitions: %v", next)
	}
}

func TestForwardNextReturnsCopy(t *testing.T) {
	next := StatusPaid.ForwardNext()
	if len(next) != 2 {
		t.Fatalf("expected 2 forward edges for PAID, got %d", len(next))
	}
	next[0] = StatusNew
	again := StatusPaid.ForwardNext()
	if again[0] == StatusNew {
		t.Error("mutating ForwardNext result leaked into the graph")
	}
}
