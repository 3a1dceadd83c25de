package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SvenDH/card-table/table"
)

func testPile(names ...string) []*table.Card {
	cards := make([]*table.Card, len(names))
	for i, n := range names {
		cards[i] = table.NewCard(n)
	}
	return cards
}

func key(s string) tea.Msg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return nil
}

func send(m *Model, keys ...string) *Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(*Model)
	}
	return m
}

func TestStartingHand(t *testing.T) {
	m := NewModel(table.Config{}, testPile("a", "b", "c", "d", "e", "f", "g"))
	if m.tbl.Hand.Len() != 5 {
		t.Fatalf("starting hand %d, want 5", m.tbl.Hand.Len())
	}
	if len(m.pile) != 2 {
		t.Fatalf("pile %d, want 2", len(m.pile))
	}
}

func TestSelectAndPlay(t *testing.T) {
	m := NewModel(table.Config{}, testPile("a", "b", "c", "d", "e"))
	m = send(m, " ", "right", " ", "enter", "p")
	if m.tbl.Hand.Len() != 3 {
		t.Fatalf("hand %d after playing two, want 3", m.tbl.Hand.Len())
	}
}

func TestPlaceInSlot(t *testing.T) {
	m := NewModel(table.Config{}, testPile("a", "b", "c", "d", "e"))
	first := m.tbl.Hand.Cards()[0]
	m = send(m, "2")
	if m.tbl.Slots.Occupant(1) != first {
		t.Fatalf("card not placed in slot 2")
	}
	if m.tbl.Hand.Len() != 4 {
		t.Fatalf("hand %d after placement, want 4", m.tbl.Hand.Len())
	}
}

func TestDiscardChargesEssence(t *testing.T) {
	m := NewModel(table.Config{}, testPile("a", "b", "c", "d", "e", "f"))
	m = send(m, " ", "enter", "x")
	if m.essence != 9 {
		t.Fatalf("essence %d after discard, want 9", m.essence)
	}
	// Replacement draw keeps the hand size stable.
	if m.tbl.Hand.Len() != 5 {
		t.Fatalf("hand %d after discard with replacement, want 5", m.tbl.Hand.Len())
	}
}

func TestViewShowsSlotsAndHand(t *testing.T) {
	m := NewModel(table.Config{}, testPile("Ember Fox"))
	view := m.View()
	if !strings.Contains(view, "Ember Fox") {
		t.Fatalf("view does not show the hand card")
	}
	if !strings.Contains(view, "slot 1") {
		t.Fatalf("view does not show empty slots")
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(table.Config{}, nil)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("q did not quit")
	}
}
