package server

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"github.com/SvenDH/card-table/table"
)

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	log := zap.NewNop()
	srv := NewWebsocketServer(NewMemoryBroker(log), nil, table.Config{}, log)
	return NewRoom("test", srv)
}

func slotIndex(i int) *int { return &i }

func (room *Room) mustDraw(t *testing.T, line string) *table.Card {
	t.Helper()
	room.apply(Intent{Op: "draw", Line: line})
	cards := room.tbl.Hand.Cards()
	if len(cards) == 0 {
		t.Fatalf("draw %q produced no card", line)
	}
	return cards[len(cards)-1]
}

func TestRoomDrawAndSelect(t *testing.T) {
	room := newTestRoom(t)
	a := room.mustDraw(t, "Ember Fox {2} unit 2/1")
	b := room.mustDraw(t, "Spark {1} spell")
	room.apply(Intent{Op: "select", Card: a.ID.String()})
	room.apply(Intent{Op: "select-range", Card: a.ID.String(), Other: b.ID.String()})
	if got := len(room.tbl.Selection.Selected()); got != 2 {
		t.Fatalf("selected %d cards, want 2", got)
	}
}

func TestRoomSlotDrop(t *testing.T) {
	room := newTestRoom(t)
	card := room.mustDraw(t, "Ember Fox {2} unit 2/1")
	room.apply(Intent{Op: "drag", Card: card.ID.String()})
	room.apply(Intent{Op: "drop", Slot: slotIndex(3)})
	if room.tbl.Slots.Occupant(3) != card {
		t.Fatalf("card not placed through intents")
	}
}

func TestRoomCancelDropRestores(t *testing.T) {
	// A drop intent without a slot, area or card is a no-target drop: the
	// dragged card goes back where it came from, never into slot 0.
	room := newTestRoom(t)
	card := room.mustDraw(t, "Ember Fox {2} unit 2/1")
	room.apply(Intent{Op: "drag", Card: card.ID.String()})
	room.apply(Intent{Op: "drop", Slot: slotIndex(2)})
	room.apply(Intent{Op: "drag", Card: card.ID.String()})
	var cancel Intent
	if err := json.Unmarshal([]byte(`{"op":"drop"}`), &cancel); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	room.apply(cancel)
	if room.tbl.Slots.Occupant(0) != nil {
		t.Fatalf("no-target drop placed the card into slot 0")
	}
	if room.tbl.Slots.Occupant(2) != card {
		t.Fatalf("card not restored to its origin slot")
	}
}

func TestRoomReorderIntents(t *testing.T) {
	room := newTestRoom(t)
	a := room.mustDraw(t, "A {1} spell")
	room.mustDraw(t, "B {1} spell")
	room.apply(Intent{Op: "select", Card: a.ID.String()})
	room.apply(Intent{Op: "move", Dir: "right"})
	if idx, _ := a.HandIndex(); idx != 1 {
		t.Fatalf("card at index %d after move, want 1", idx)
	}
}

func TestRoomDiscardIntent(t *testing.T) {
	room := newTestRoom(t)
	card := room.mustDraw(t, "A {1} spell")
	room.apply(Intent{Op: "select", Card: card.ID.String()})
	room.apply(Intent{Op: "promote"})
	room.apply(Intent{Op: "discard"})
	if room.tbl.Hand.Len() != 0 {
		t.Fatalf("discarded card still in hand")
	}
	if room.pool.essence != startingEssence-1 {
		t.Fatalf("essence = %d, want %d", room.pool.essence, startingEssence-1)
	}
}

func TestRoomDiscardDrawsFromStock(t *testing.T) {
	room := newTestRoom(t)
	room.apply(Intent{Op: "stock", Line: "Spark {1} spell"})
	if room.tbl.Hand.Len() != 0 {
		t.Fatalf("stocked card entered the hand")
	}
	card := room.mustDraw(t, "A {1} spell")
	room.apply(Intent{Op: "select", Card: card.ID.String()})
	room.apply(Intent{Op: "promote"})
	room.apply(Intent{Op: "discard"})
	if room.tbl.Hand.Len() != 1 {
		t.Fatalf("replacement not drawn from the stock")
	}
	if room.tbl.Hand.Cards()[0].Name != "Spark" {
		t.Fatalf("wrong replacement drawn")
	}
	if len(room.pile) != 0 {
		t.Fatalf("drawn replacement still in the pile")
	}
}

func TestRoomDiscardDuringDragLeavesDraggedCardAlone(t *testing.T) {
	// A discard arriving while another card is mid-drag must not pull the
	// dragged card into the hand, or its origin slot can no longer take it
	// back on a cancelled drop.
	room := newTestRoom(t)
	a := room.mustDraw(t, "A {1} unit 1/1")
	b := room.mustDraw(t, "B {1} spell")
	room.apply(Intent{Op: "drag", Card: a.ID.String()})
	room.apply(Intent{Op: "drop", Slot: slotIndex(1)})
	room.apply(Intent{Op: "drag", Card: a.ID.String()})
	room.apply(Intent{Op: "select", Card: b.ID.String()})
	room.apply(Intent{Op: "promote"})
	room.apply(Intent{Op: "discard"})
	if a.InHand() {
		t.Fatalf("mid-drag card pulled into the hand by a discard")
	}
	var cancel Intent
	if err := json.Unmarshal([]byte(`{"op":"drop"}`), &cancel); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	room.apply(cancel)
	if room.tbl.Slots.Occupant(1) != a {
		t.Fatalf("dragged card not restored to its origin slot")
	}
}

func TestRoomUnknownCardIgnored(t *testing.T) {
	room := newTestRoom(t)
	room.mustDraw(t, "A {1} spell")
	room.apply(Intent{Op: "select", Card: "not-a-ulid"})
	if len(room.tbl.Selection.Selected()) != 0 {
		t.Fatalf("bogus card id selected something")
	}
}

func TestRoomBadDefinitionRejected(t *testing.T) {
	room := newTestRoom(t)
	room.apply(Intent{Op: "draw", Line: "missing a cost"})
	if room.tbl.Hand.Len() != 0 {
		t.Fatalf("malformed definition entered the hand")
	}
}
