package table

// Slot is a fixed placement target holding at most one card.
type Slot struct {
	Index    int
	Enabled  bool
	occupant *Card
}

// SlotTable is the authoritative record of slot occupancy. Slots are created
// once and persist; only their occupants change.
type SlotTable struct {
	slots    []Slot
	bus      *Bus
	playable func(*Card) bool
}

func NewSlotTable(n int, bus *Bus) *SlotTable {
	s := &SlotTable{slots: make([]Slot, n), bus: bus}
	for i := range s.slots {
		s.slots[i].Index = i
		s.slots[i].Enabled = true
	}
	return s
}

// SetPlayable installs the externally-supplied playability predicate checked
// by CanAccept. A nil predicate accepts every card.
func (s *SlotTable) SetPlayable(fn func(*Card) bool) { s.playable = fn }

func (s *SlotTable) Len() int { return len(s.slots) }

func (s *SlotTable) SetEnabled(index int, enabled bool) bool {
	if index < 0 || index >= len(s.slots) {
		return false
	}
	s.slots[index].Enabled = enabled
	return true
}

func (s *SlotTable) Enabled(index int) bool {
	return index >= 0 && index < len(s.slots) && s.slots[index].Enabled
}

func (s *SlotTable) Occupant(index int) *Card {
	if index < 0 || index >= len(s.slots) {
		return nil
	}
	return s.slots[index].occupant
}

func (s *SlotTable) IsEmpty(index int) bool {
	return index >= 0 && index < len(s.slots) && s.slots[index].occupant == nil
}

// CanAccept reports whether a placement would succeed. Rejection is a plain
// false, never an error.
func (s *SlotTable) CanAccept(index int, card *Card) bool {
	if card == nil || index < 0 || index >= len(s.slots) {
		return false
	}
	slot := &s.slots[index]
	if !slot.Enabled || (slot.occupant != nil && slot.occupant != card) {
		return false
	}
	if s.playable != nil && !s.playable(card) {
		return false
	}
	return true
}

// Place puts the card in the slot. A card already occupying another slot is
// moved, not duplicated; the vacated slot fires no removal effects. Rejected
// placements leave every slot untouched.
func (s *SlotTable) Place(index int, card *Card) bool {
	if !s.CanAccept(index, card) {
		return false
	}
	if prev, ok := card.SlotIndex(); ok {
		if prev == index {
			return true
		}
		s.Remove(prev, false)
	}
	s.slots[index].occupant = card
	card.setSlot(index)
	s.bus.Emit(&Event{Event: EventCardPlacedInSlot, Card: card, Slot: index})
	return true
}

// Remove vacates a slot and returns the removed card, nil when the slot was
// already empty. triggerEffects=false suppresses the removal notification and
// is used internally during move-semantics placement.
func (s *SlotTable) Remove(index int, triggerEffects bool) *Card {
	if index < 0 || index >= len(s.slots) {
		return nil
	}
	card := s.slots[index].occupant
	if card == nil {
		return nil
	}
	s.slots[index].occupant = nil
	card.setNone()
	if triggerEffects {
		s.bus.Emit(&Event{Event: EventCardRemovedFromSlot, Card: card, Slot: index})
	}
	return card
}
