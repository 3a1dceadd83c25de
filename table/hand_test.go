package table

import "testing"

func newHand(names ...string) (*HandSequence, []*Card) {
	h := NewHandSequence(NewBus())
	cards := make([]*Card, len(names))
	for i, n := range names {
		cards[i] = NewCard(n)
	}
	h.SetOrder(cards)
	return h, cards
}

func checkOrder(t *testing.T, h *HandSequence, want ...*Card) {
	t.Helper()
	got := h.Cards()
	if len(got) != len(want) {
		t.Fatalf("hand size %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("hand[%d] = %s, want %s", i, got[i].Name, want[i].Name)
		}
	}
	// Indices must always be exactly 0..n-1.
	for i, c := range got {
		if idx, ok := c.HandIndex(); !ok || idx != i {
			t.Fatalf("card %s index = %d,%v, want %d", c.Name, idx, ok, i)
		}
	}
}

func TestInsertAtClamps(t *testing.T) {
	h, cards := newHand("a", "b")
	x := NewCard("x")
	h.InsertAt(x, 99)
	checkOrder(t, h, cards[0], cards[1], x)
	y := NewCard("y")
	h.InsertAt(y, -5)
	checkOrder(t, h, y, cards[0], cards[1], x)
}

func TestInsertPoints(t *testing.T) {
	h, cards := newHand("a", "b")
	l, c, r := NewCard("l"), NewCard("c"), NewCard("r")
	h.Insert(l, InsertLeft)
	h.Insert(r, InsertRight)
	h.Insert(c, InsertCenter)
	checkOrder(t, h, l, cards[0], c, cards[1], r)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	h, cards := newHand("a", "b", "c")
	ghost := NewCard("ghost")
	if h.Remove(ghost) {
		t.Fatalf("removing an absent card reported success")
	}
	checkOrder(t, h, cards[0], cards[1], cards[2])
	if !h.Remove(cards[1]) {
		t.Fatalf("removing a present card failed")
	}
	checkOrder(t, h, cards[0], cards[2])
	if cards[1].InHand() {
		t.Fatalf("removed card still marked in hand")
	}
}

func TestMoveGroupToFront(t *testing.T) {
	// Hand = [A,B,C,D], move {B,C} to 0 -> [B,C,A,D].
	h, cards := newHand("a", "b", "c", "d")
	if !h.MoveGroupTo([]*Card{cards[1], cards[2]}, 0) {
		t.Fatalf("move group failed")
	}
	checkOrder(t, h, cards[1], cards[2], cards[0], cards[3])
}

func TestMoveGroupRoundTrip(t *testing.T) {
	h, cards := newHand("a", "b", "c", "d")
	group := []*Card{cards[1], cards[2]}
	if !h.MoveGroupTo(group, 2) {
		t.Fatalf("move group failed")
	}
	checkOrder(t, h, cards[0], cards[3], cards[1], cards[2])
	if !h.MoveGroupTo(group, 1) {
		t.Fatalf("move back failed")
	}
	checkOrder(t, h, cards[0], cards[1], cards[2], cards[3])
}

func TestMoveGroupClamped(t *testing.T) {
	h, cards := newHand("a", "b", "c", "d")
	if !h.MoveGroupTo([]*Card{cards[0], cards[1]}, 99) {
		t.Fatalf("move group failed")
	}
	checkOrder(t, h, cards[2], cards[3], cards[0], cards[1])
}

func TestMoveGroupUnorderedInputKeepsHandOrder(t *testing.T) {
	// Group membership is a set; relative order comes from the hand.
	h, cards := newHand("a", "b", "c", "d")
	if !h.MoveGroupTo([]*Card{cards[2], cards[1]}, 0) {
		t.Fatalf("move group failed")
	}
	checkOrder(t, h, cards[1], cards[2], cards[0], cards[3])
}

func TestMoveOneStepSwapsDisplaced(t *testing.T) {
	// [A,B,C,D] with {C,D} moving left displaces B to the vacated end.
	h, cards := newHand("a", "b", "c", "d")
	if !h.MoveOneStep(Left, []*Card{cards[2], cards[3]}) {
		t.Fatalf("move one step failed")
	}
	checkOrder(t, h, cards[0], cards[2], cards[3], cards[1])
}

func TestMoveOneStepRight(t *testing.T) {
	h, cards := newHand("a", "b", "c", "d")
	if !h.MoveOneStep(Right, []*Card{cards[0], cards[1]}) {
		t.Fatalf("move one step failed")
	}
	checkOrder(t, h, cards[2], cards[0], cards[1], cards[3])
}

func TestMoveOneStepBoundaryIsNoop(t *testing.T) {
	h, cards := newHand("a", "b", "c")
	if h.MoveOneStep(Left, []*Card{cards[0]}) {
		t.Fatalf("left move at index 0 should be a no-op")
	}
	if h.MoveOneStep(Right, []*Card{cards[2]}) {
		t.Fatalf("right move at the end should be a no-op")
	}
	checkOrder(t, h, cards[0], cards[1], cards[2])
}

func TestHandEvents(t *testing.T) {
	bus := NewBus()
	var orders int
	var moves [][2]int
	bus.On(EventHandOrderChanged, func(ev *Event) { orders++ })
	bus.On(EventCardIndexChanged, func(ev *Event) {
		moves = append(moves, [2]int{ev.OldIndex, ev.NewIndex})
	})
	h := NewHandSequence(bus)
	a, b := NewCard("a"), NewCard("b")
	h.SetOrder([]*Card{a, b})
	if orders != 1 {
		t.Fatalf("SetOrder emitted %d order events, want 1", orders)
	}
	moves = nil
	h.MoveGroupTo([]*Card{b}, 0)
	if orders != 2 {
		t.Fatalf("MoveGroupTo emitted %d order events, want 2 total", orders)
	}
	if len(moves) != 2 {
		t.Fatalf("MoveGroupTo emitted %d index events, want 2", len(moves))
	}
}
