package table

import "github.com/oklog/ulid/v2"

type Location int8

const (
	LocNone Location = iota
	LocHand
	LocSlot
)

func (l Location) String() string {
	switch l {
	case LocHand:
		return "hand"
	case LocSlot:
		return "slot"
	}
	return "none"
}

// Card is a table-side handle for a card: an identity plus lightweight
// metadata. A card is in exactly one of hand, a slot, or nowhere.
type Card struct {
	ID     ulid.ULID
	Name   string
	Cost   int
	Kind   string
	Power  int
	Health int

	loc   Location
	index int
}

func NewCard(name string) *Card {
	return &Card{ID: ulid.Make(), Name: name}
}

func (c *Card) Location() Location { return c.loc }

// HandIndex returns the card's position in the hand sequence, false when the
// card is not in hand.
func (c *Card) HandIndex() (int, bool) {
	if c.loc != LocHand {
		return 0, false
	}
	return c.index, true
}

// SlotIndex returns the slot the card occupies, false when not slotted.
func (c *Card) SlotIndex() (int, bool) {
	if c.loc != LocSlot {
		return 0, false
	}
	return c.index, true
}

func (c *Card) InHand() bool { return c.loc == LocHand }
func (c *Card) InSlot() bool { return c.loc == LocSlot }

// A single loc+index pair keeps hand and slot membership mutually exclusive
// by construction.
func (c *Card) setHand(i int) {
	c.loc = LocHand
	c.index = i
}

func (c *Card) setSlot(i int) {
	c.loc = LocSlot
	c.index = i
}

func (c *Card) setNone() {
	c.loc = LocNone
	c.index = 0
}
