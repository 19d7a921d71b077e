package exchange

import "testing"

func TestTransitionTable_TerminalStatesHaveNoEdges(t *testing.T) {
	for _, terminal := range []Status{StatusCompleted, StatusRejected, StatusCancelled} {
		if !terminal.IsTerminal() {
			t.Fatalf("%s should be terminal", terminal)
		}
		if edges := transitions[terminal]; len(edges) != 0 {
			t.Fatalf("%s should have no outgoing edges, found %d", terminal, len(edges))
		}
	}
}

func TestTransitionTable_NoSameStateEdges(t *testing.T) {
	for from, edges := range transitions {
		if _, ok := edges[from]; ok {
			t.Fatalf("%s has a same-state edge", from)
		}
	}
}

func TestTransitionTable_ReleaseOnEveryTerminalEdge(t *testing.T) {
	for from, edges := range transitions {
		for to, r := range edges {
			if to.IsTerminal() && !r.release {
				t.Fatalf("%s -> %s should release the listing", from, to)
			}
			if !to.IsTerminal() && r.release {
				t.Fatalf("%s -> %s should keep the listing reserved", from, to)
			}
		}
	}
}

func TestRule_Permits(t *testing.T) {
	cases := []struct {
		name        string
		from, to    Status
		isOwner     bool
		isInitiator bool
		want        bool
	}{
		{"owner accepts", StatusPending, StatusActive, true, false, true},
		{"initiator cannot accept", StatusPending, StatusActive, false, true, false},
		{"owner rejects", StatusPending, StatusRejected, true, false, true},
		{"initiator cannot reject", StatusPending, StatusRejected, false, true, false},
		{"initiator cancels pending", StatusPending, StatusCancelled, false, true, true},
		{"owner cannot cancel pending", StatusPending, StatusCancelled, true, false, false},
		{"owner completes", StatusActive, StatusCompleted, true, false, true},
		{"initiator cannot complete", StatusActive, StatusCompleted, false, true, false},
		{"owner cancels active", StatusActive, StatusCancelled, true, false, true},
		{"initiator cancels active", StatusActive, StatusCancelled, false, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := ruleFor(tc.from, tc.to)
			if !ok {
				t.Fatalf("missing rule for %s -> %s", tc.from, tc.to)
			}
			if got := r.permits(tc.isOwner, tc.isInitiator); got != tc.want {
				t.Fatalf("permits(owner=%v, initiator=%v) = %v, want %v", tc.isOwner, tc.isInitiator, got, tc.want)
			}
		})
	}
}

func TestRule_MessageHandling(t *testing.T) {
	accept, _ := ruleFor(StatusPending, StatusActive)
	if !accept.requireMessage || !accept.acceptMessage {
		t.Fatal("accept must require and store a response message")
	}

	reject, _ := ruleFor(StatusPending, StatusRejected)
	if reject.requireMessage || !reject.acceptMessage {
		t.Fatal("reject message must be optional but stored when supplied")
	}

	for _, edge := range []struct{ from, to Status }{
		{StatusPending, StatusCancelled},
		{StatusActive, StatusCompleted},
		{StatusActive, StatusCancelled},
	} {
		r, _ := ruleFor(edge.from, edge.to)
		if r.requireMessage || r.acceptMessage {
			t.Fatalf("%s -> %s must ignore response messages", edge.from, edge.to)
		}
	}
}
