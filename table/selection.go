package table

import "sort"

// SelectionSet tracks the selected and highlighted subsets of the hand.
// The two tiers are disjoint: highlighting a card removes it from selection.
// Cards that leave the hand drop out of both tiers.
type SelectionSet struct {
	hand        *HandSequence
	bus         *Bus
	selected    map[*Card]bool
	highlighted map[*Card]bool
}

func NewSelectionSet(hand *HandSequence, bus *Bus) *SelectionSet {
	s := &SelectionSet{
		hand:        hand,
		bus:         bus,
		selected:    map[*Card]bool{},
		highlighted: map[*Card]bool{},
	}
	hand.onLeave = s.released
	return s
}

// Selected returns the selected cards in hand order.
func (s *SelectionSet) Selected() []*Card { return s.ordered(s.selected) }

// Highlighted returns the highlighted cards in hand order.
func (s *SelectionSet) Highlighted() []*Card { return s.ordered(s.highlighted) }

// Group returns the union of both tiers in hand order; this is the set drag
// and reorder operations act on.
func (s *SelectionSet) Group() []*Card {
	union := map[*Card]bool{}
	for c := range s.selected {
		union[c] = true
	}
	for c := range s.highlighted {
		union[c] = true
	}
	return s.ordered(union)
}

func (s *SelectionSet) IsSelected(c *Card) bool    { return s.selected[c] }
func (s *SelectionSet) IsHighlighted(c *Card) bool { return s.highlighted[c] }

func (s *SelectionSet) Select(card *Card) bool {
	if card == nil || !card.InHand() || s.selected[card] {
		return false
	}
	if s.highlighted[card] {
		delete(s.highlighted, card)
		s.emitHighlight()
	}
	s.selected[card] = true
	s.emitSelection()
	return true
}

func (s *SelectionSet) Deselect(card *Card) bool {
	changed := false
	if s.selected[card] {
		delete(s.selected, card)
		s.emitSelection()
		changed = true
	}
	if s.highlighted[card] {
		delete(s.highlighted, card)
		s.emitHighlight()
		changed = true
	}
	return changed
}

func (s *SelectionSet) Clear() {
	if len(s.selected) > 0 {
		s.selected = map[*Card]bool{}
		s.emitSelection()
	}
	if len(s.highlighted) > 0 {
		s.highlighted = map[*Card]bool{}
		s.emitHighlight()
	}
}

// SelectRange selects every card whose hand index lies between anchor and
// target inclusive, in either direction.
func (s *SelectionSet) SelectRange(anchor, target *Card) bool {
	ai, aok := s.hand.IndexOf(anchor)
	ti, tok := s.hand.IndexOf(target)
	if !aok || !tok {
		return false
	}
	if ai > ti {
		ai, ti = ti, ai
	}
	changed := false
	for _, c := range s.hand.Cards()[ai : ti+1] {
		if !s.selected[c] {
			delete(s.highlighted, c)
			s.selected[c] = true
			changed = true
		}
	}
	if changed {
		s.emitSelection()
	}
	return changed
}

// PromoteSelectionToHighlight arms the whole selected set for immediate
// action, clearing selection.
func (s *SelectionSet) PromoteSelectionToHighlight() bool {
	if len(s.selected) == 0 {
		return false
	}
	for c := range s.selected {
		s.highlighted[c] = true
	}
	s.selected = map[*Card]bool{}
	s.emitSelection()
	s.emitHighlight()
	return true
}

// DemoteHighlightToSelection is the inverse of promotion.
func (s *SelectionSet) DemoteHighlightToSelection() bool {
	if len(s.highlighted) == 0 {
		return false
	}
	for c := range s.highlighted {
		s.selected[c] = true
	}
	s.highlighted = map[*Card]bool{}
	s.emitSelection()
	s.emitHighlight()
	return true
}

// Extend adds the card just outside the selection's bounding index range on
// the given side. No-op at the hand boundary or with an empty selection.
func (s *SelectionSet) Extend(dir Direction) bool {
	lo, hi, ok := s.bounds()
	if !ok {
		return false
	}
	next := lo - 1
	if dir == Right {
		next = hi + 1
	}
	if next < 0 || next >= s.hand.Len() {
		return false
	}
	return s.Select(s.hand.Cards()[next])
}

// Contract removes the boundary-most selected card on the named side:
// Contract(Left) always drops the lowest-index member, Contract(Right) the
// highest. No-op when the selection holds one card or none.
func (s *SelectionSet) Contract(dir Direction) bool {
	if len(s.selected) <= 1 {
		return false
	}
	cards := s.Selected()
	victim := cards[0]
	if dir == Right {
		victim = cards[len(cards)-1]
	}
	delete(s.selected, victim)
	s.emitSelection()
	return true
}

// released forcibly unselects a card that left the hand, whatever tier it
// was in.
func (s *SelectionSet) released(card *Card) {
	if s.selected[card] {
		delete(s.selected, card)
		s.emitSelection()
	}
	if s.highlighted[card] {
		delete(s.highlighted, card)
		s.emitHighlight()
	}
}

func (s *SelectionSet) bounds() (int, int, bool) {
	lo, hi := -1, -1
	for c := range s.selected {
		if i, ok := s.hand.IndexOf(c); ok {
			if lo == -1 || i < lo {
				lo = i
			}
			if i > hi {
				hi = i
			}
		}
	}
	return lo, hi, lo != -1
}

func (s *SelectionSet) ordered(set map[*Card]bool) []*Card {
	out := make([]*Card, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(a, b int) bool {
		ia, _ := s.hand.IndexOf(out[a])
		ib, _ := s.hand.IndexOf(out[b])
		return ia < ib
	})
	return out
}

func (s *SelectionSet) emitSelection() {
	if s.bus != nil {
		s.bus.Emit(&Event{Event: EventSelectionChanged, Cards: s.Selected()})
	}
}

func (s *SelectionSet) emitHighlight() {
	if s.bus != nil {
		s.bus.Emit(&Event{Event: EventHighlightChanged, Cards: s.Highlighted()})
	}
}
