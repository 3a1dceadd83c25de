package table

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTimedTable(clock *fakeClock, names ...string) (*Table, []*Card) {
	tbl := New(Config{Now: clock.Now})
	cards := make([]*Card, len(names))
	for i, n := range names {
		cards[i] = NewCard(n)
	}
	tbl.Hand.SetOrder(cards)
	return tbl, cards
}

func TestReorderCooldown(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	tbl, cards := newTimedTable(clock, "a", "b", "c")
	tbl.Selection.Select(cards[1])
	if !tbl.MoveSelection(Left) {
		t.Fatalf("first reorder rejected")
	}
	// A second reorder within the window is debounced.
	clock.Advance(10 * time.Millisecond)
	if tbl.MoveSelection(Left) {
		t.Fatalf("reorder accepted inside the cooldown window")
	}
	clock.Advance(DefaultReorderCooldown)
	if !tbl.MoveSelection(Right) {
		t.Fatalf("reorder rejected after the cooldown")
	}
	checkOrder(t, tbl.Hand, cards[0], cards[1], cards[2])
}

func TestMoveSelectionToEdge(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	tbl, cards := newTimedTable(clock, "a", "b", "c", "d")
	tbl.Selection.Select(cards[1])
	tbl.Selection.Select(cards[2])
	if !tbl.MoveSelectionToEdge(Right) {
		t.Fatalf("edge move failed")
	}
	checkOrder(t, tbl.Hand, cards[0], cards[3], cards[1], cards[2])
}

func TestMoveSelectionEmptyIsNoop(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	tbl, cards := newTimedTable(clock, "a", "b")
	if tbl.MoveSelection(Left) || tbl.MoveSelectionToEdge(Right) {
		t.Fatalf("reorder with empty selection succeeded")
	}
	checkOrder(t, tbl.Hand, cards[0], cards[1])
}

func TestPlayHighlighted(t *testing.T) {
	f := newFixture("a", "b", "c")
	f.tbl.Selection.Select(f.cards[0])
	f.tbl.Selection.Select(f.cards[1])
	if f.tbl.PlayHighlighted() {
		t.Fatalf("play succeeded with nothing highlighted")
	}
	f.tbl.Selection.PromoteSelectionToHighlight()
	if !f.tbl.PlayHighlighted() {
		t.Fatalf("play of highlighted group failed")
	}
	if len(f.processor.played) != 1 || len(f.processor.played[0]) != 2 {
		t.Fatalf("processor not handed the highlighted group")
	}
	if f.tbl.Hand.Len() != 1 {
		t.Fatalf("played cards still in hand")
	}
}

func TestDiscardHighlighted(t *testing.T) {
	f := newFixture("a", "b")
	f.tbl.Selection.Select(f.cards[1])
	f.tbl.Selection.PromoteSelectionToHighlight()
	if !f.tbl.DiscardHighlighted() {
		t.Fatalf("discard of highlighted card failed")
	}
	if f.pool.spent != 1 || len(f.processor.discarded) != 1 {
		t.Fatalf("discard bookkeeping wrong")
	}
	if len(f.tbl.Selection.Highlighted()) != 0 {
		t.Fatalf("discarded card still highlighted")
	}
}

func TestHandAndSlotMutuallyExclusive(t *testing.T) {
	f := newFixture("a", "b")
	card := f.cards[0]
	f.tbl.Resolver.BeginDrag(card)
	f.tbl.Resolver.Drop(DropTarget{HasSlot: true, Slot: 0})
	if _, ok := card.HandIndex(); ok {
		t.Fatalf("slotted card reports a hand index")
	}
	if _, ok := card.SlotIndex(); !ok {
		t.Fatalf("slotted card reports no slot index")
	}
	for _, c := range f.tbl.Hand.Cards() {
		if c == card {
			t.Fatalf("slotted card still in hand sequence")
		}
	}
}
