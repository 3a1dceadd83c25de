package table

import "sort"

type Direction int8

const (
	Left  Direction = -1
	Right Direction = 1
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// InsertPoint names where a card entering the hand is inserted.
type InsertPoint int8

const (
	InsertRight InsertPoint = iota
	InsertLeft
	InsertCenter
)

// HandSequence is the canonical ordering of cards in hand. Positional indices
// are always exactly 0..len-1; every mutation re-normalizes them.
type HandSequence struct {
	cards []*Card
	bus   *Bus

	// onLeave is invoked for every card removed from the sequence, before
	// the order-changed notification fires. Used by SelectionSet to drop
	// membership for cards that left the hand.
	onLeave func(*Card)
}

func NewHandSequence(bus *Bus) *HandSequence {
	return &HandSequence{cards: []*Card{}, bus: bus}
}

func (h *HandSequence) Len() int { return len(h.cards) }

// Cards returns a snapshot of the current order.
func (h *HandSequence) Cards() []*Card {
	out := make([]*Card, len(h.cards))
	copy(out, h.cards)
	return out
}

func (h *HandSequence) IndexOf(card *Card) (int, bool) {
	for i, c := range h.cards {
		if c == card {
			return i, true
		}
	}
	return 0, false
}

// SetOrder replaces the entire sequence.
func (h *HandSequence) SetOrder(cards []*Card) {
	h.cards = make([]*Card, len(cards))
	copy(h.cards, cards)
	h.renormalize(nil)
}

// InsertAt inserts the card at the given position, clamped to [0, len].
func (h *HandSequence) InsertAt(card *Card, pos int) {
	if card == nil {
		return
	}
	if _, ok := h.IndexOf(card); ok {
		return
	}
	if pos < 0 {
		pos = 0
	} else if pos > len(h.cards) {
		pos = len(h.cards)
	}
	old := h.indices()
	h.cards = append(h.cards[:pos], append([]*Card{card}, h.cards[pos:]...)...)
	h.renormalize(old)
}

// Insert adds a card entering the hand at a named insertion point.
func (h *HandSequence) Insert(card *Card, at InsertPoint) {
	switch at {
	case InsertLeft:
		h.InsertAt(card, 0)
	case InsertCenter:
		h.InsertAt(card, len(h.cards)/2)
	default:
		h.InsertAt(card, len(h.cards))
	}
}

// Remove takes the card out of the sequence, false when it was not present.
// Absent cards leave the order bit-for-bit unchanged.
func (h *HandSequence) Remove(card *Card) bool {
	for i, c := range h.cards {
		if c == card {
			old := h.indices()
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			if card.InHand() {
				card.setNone()
			}
			if h.onLeave != nil {
				h.onLeave(card)
			}
			h.renormalize(old)
			return true
		}
	}
	return false
}

// MoveGroupTo removes every group member from its position, preserving their
// relative order as a contiguous block, and reinserts the block at target
// (clamped to [0, len-groupSize]). The group's leftmost member is the
// reference position for callers computing end-of-hand moves.
func (h *HandSequence) MoveGroupTo(group []*Card, target int) bool {
	members := h.members(group)
	if len(members) == 0 {
		return false
	}
	old := h.indices()
	rest := make([]*Card, 0, len(h.cards)-len(members))
	for _, c := range h.cards {
		if !containsCard(members, c) {
			rest = append(rest, c)
		}
	}
	if target < 0 {
		target = 0
	} else if target > len(rest) {
		target = len(rest)
	}
	next := make([]*Card, 0, len(h.cards))
	next = append(next, rest[:target]...)
	next = append(next, members...)
	next = append(next, rest[target:]...)
	if sameOrder(h.cards, next) {
		return true
	}
	h.cards = next
	h.renormalize(old)
	return true
}

// MoveOneStep shifts the group one position in the given direction by
// swapping members with their neighbor, so the displaced card ends up at the
// vacated end of the group's range instead of being pushed down the tail.
// Groups already at the boundary are a no-op, not an error.
func (h *HandSequence) MoveOneStep(dir Direction, group []*Card) bool {
	members := h.members(group)
	if len(members) == 0 {
		return false
	}
	first, _ := h.IndexOf(members[0])
	last, _ := h.IndexOf(members[len(members)-1])
	if dir == Left && first == 0 {
		return false
	}
	if dir == Right && last == len(h.cards)-1 {
		return false
	}
	old := h.indices()
	// Ascending for left moves, descending for right moves, so earlier swaps
	// never collide with later ones.
	if dir == Left {
		for _, c := range members {
			i, _ := h.IndexOf(c)
			h.cards[i-1], h.cards[i] = h.cards[i], h.cards[i-1]
		}
	} else {
		for k := len(members) - 1; k >= 0; k-- {
			i, _ := h.IndexOf(members[k])
			h.cards[i+1], h.cards[i] = h.cards[i], h.cards[i+1]
		}
	}
	h.renormalize(old)
	return true
}

// members filters the group down to cards currently in the sequence, sorted
// ascending by index.
func (h *HandSequence) members(group []*Card) []*Card {
	members := []*Card{}
	for _, c := range group {
		if _, ok := h.IndexOf(c); ok {
			members = append(members, c)
		}
	}
	sort.Slice(members, func(a, b int) bool {
		ia, _ := h.IndexOf(members[a])
		ib, _ := h.IndexOf(members[b])
		return ia < ib
	})
	return members
}

func (h *HandSequence) indices() map[*Card]int {
	old := make(map[*Card]int, len(h.cards))
	for i, c := range h.cards {
		old[c] = i
	}
	return old
}

func (h *HandSequence) renormalize(old map[*Card]int) {
	for i, c := range h.cards {
		c.setHand(i)
	}
	if h.bus == nil {
		return
	}
	for i, c := range h.cards {
		if prev, ok := old[c]; !ok || prev != i {
			was := -1
			if ok {
				was = prev
			}
			h.bus.Emit(&Event{Event: EventCardIndexChanged, Card: c, OldIndex: was, NewIndex: i})
		}
	}
	h.bus.Emit(&Event{Event: EventHandOrderChanged, Cards: h.Cards()})
}

func containsCard(cards []*Card, card *Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}

func sameOrder(a, b []*Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
