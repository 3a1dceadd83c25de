package table

// AreaAction is what dropping on an area means.
type AreaAction int8

const (
	AreaNone AreaAction = iota
	AreaPlay
	AreaDiscard
)

// DropArea is a registered drop target with a resolved action.
type DropArea struct {
	Name   string
	Action AreaAction
}

// DropTarget is the caller's classification of where a drag ended. Fields
// are checked in raycast-priority order: slot, registered area, legacy area
// tag, reorder target, none.
type DropTarget struct {
	Slot    int
	HasSlot bool
	Area    *DropArea
	AreaTag string
	Card    *Card
}

// DragSession is the ephemeral pre-drag snapshot used solely for rollback on
// a failed drop. It is destroyed at drag end regardless of outcome.
type DragSession struct {
	Primary *Card
	Cards   []*Card

	originSlot int
	handIndex  map[*Card]int
}

// Resolver maps a completed drag to exactly one action. It holds no state
// beyond the current session.
type Resolver struct {
	slots *SlotTable
	hand  *HandSequence
	sel   *SelectionSet
	bus   *Bus

	rules     PlayRules
	resources ResourcePool
	processor Processor
	delegate  HandDelegate

	areas map[string]AreaAction
	drag  *DragSession
}

func NewResolver(slots *SlotTable, hand *HandSequence, sel *SelectionSet, bus *Bus) *Resolver {
	return &Resolver{
		slots: slots,
		hand:  hand,
		sel:   sel,
		bus:   bus,
		areas: map[string]AreaAction{},
	}
}

func (r *Resolver) SetRules(rules PlayRules)       { r.rules = rules }
func (r *Resolver) SetResources(pool ResourcePool) { r.resources = pool }
func (r *Resolver) SetProcessor(p Processor)       { r.processor = p }
func (r *Resolver) SetHandDelegate(d HandDelegate) { r.delegate = d }

// RegisterArea names a drop area. Legacy area tags resolve through the same
// registry.
func (r *Resolver) RegisterArea(name string, action AreaAction) {
	r.areas[name] = action
}

func (r *Resolver) Session() *DragSession { return r.drag }

// BeginDrag opens a session for the card. A selected or highlighted card
// drags its whole group; any other card drags alone. A card dragged out of a
// slot vacates it immediately so the slot reads empty during the drag.
func (r *Resolver) BeginDrag(card *Card) *DragSession {
	if card == nil || r.drag != nil {
		return nil
	}
	cards := []*Card{card}
	if r.sel != nil && (r.sel.IsSelected(card) || r.sel.IsHighlighted(card)) {
		if group := r.sel.Group(); len(group) > 0 {
			cards = group
		}
	}
	session := &DragSession{
		Primary:    card,
		Cards:      cards,
		originSlot: -1,
		handIndex:  map[*Card]int{},
	}
	for _, c := range cards {
		if i, ok := c.HandIndex(); ok {
			session.handIndex[c] = i
		}
	}
	if slot, ok := card.SlotIndex(); ok {
		session.originSlot = slot
		r.slots.Remove(slot, true)
	}
	r.drag = session
	r.bus.Emit(&Event{Event: EventDragStarted, Card: card})
	return session
}

// Drop resolves the session against the target. The first applicable branch
// wins; when none succeeds the pre-drag state is restored. The session is
// destroyed either way.
func (r *Resolver) Drop(target DropTarget) bool {
	session := r.drag
	if session == nil {
		return false
	}
	ok := false
	switch {
	case target.HasSlot:
		ok = r.dropSlot(session, target.Slot)
	case target.Area != nil:
		ok = r.dropArea(session, target.Area.Action)
	case target.AreaTag != "":
		ok = r.dropArea(session, r.areas[target.AreaTag])
	case target.Card != nil:
		ok = r.dropReorder(session, target.Card)
	}
	if !ok {
		r.restore(session)
	}
	r.drag = nil
	r.bus.Emit(&Event{Event: EventDragEnded, Card: session.Primary})
	return ok
}

// dropSlot places the primary card. Group drops on a single slot are
// rejected; a slot takes one card.
func (r *Resolver) dropSlot(session *DragSession, slot int) bool {
	if len(session.Cards) > 1 {
		return false
	}
	card := session.Primary
	if !r.slots.Place(slot, card) {
		return false
	}
	r.leaveHand(card)
	return true
}

func (r *Resolver) dropArea(session *DragSession, action AreaAction) bool {
	switch action {
	case AreaPlay:
		return r.play(session.Cards)
	case AreaDiscard:
		return r.discard(session.Cards)
	}
	return false
}

func (r *Resolver) play(cards []*Card) bool {
	if r.rules == nil || r.processor == nil || !r.rules.CanPlayCards(cards) {
		return false
	}
	for _, c := range cards {
		r.leaveHand(c)
	}
	r.processor.ProcessPlay(cards)
	return true
}

// discard charges one unit of the discard resource per card, then hands each
// card to the discard processor and requests a replacement draw.
func (r *Resolver) discard(cards []*Card) bool {
	if r.rules == nil || r.processor == nil || r.resources == nil {
		return false
	}
	for _, c := range cards {
		if !r.rules.CanDiscardCard(c) {
			return false
		}
	}
	if !r.resources.CanSpend(DiscardResource, len(cards)) {
		return false
	}
	r.resources.Spend(DiscardResource, len(cards))
	for _, c := range cards {
		r.leaveHand(c)
		r.processor.ProcessDiscard(c)
		r.processor.DrawReplacement()
	}
	return true
}

// dropReorder moves the dragged group to the target card's position. The
// target must be outside the group.
func (r *Resolver) dropReorder(session *DragSession, onto *Card) bool {
	if containsCard(session.Cards, onto) {
		return false
	}
	idx, ok := r.hand.IndexOf(onto)
	if !ok {
		return false
	}
	return r.hand.MoveGroupTo(session.Cards, idx)
}

// restore rolls back a failed drop. A card pulled out of a slot at drag
// start is re-placed there first; if that slot no longer accepts it, the
// card falls back to its prior hand index.
func (r *Resolver) restore(session *DragSession) {
	card := session.Primary
	if session.originSlot >= 0 && !card.InHand() && !card.InSlot() {
		if r.slots.Place(session.originSlot, card) {
			return
		}
		pos, had := session.handIndex[card]
		if !had {
			pos = r.hand.Len()
		}
		r.hand.InsertAt(card, pos)
		if r.delegate != nil {
			r.delegate.AddToHand(card)
		}
	}
	// Cards that stayed in the hand sequence during the drag need no logical
	// rollback; the caller restores their visual position.
}

func (r *Resolver) leaveHand(card *Card) {
	if r.hand.Remove(card) && r.delegate != nil {
		r.delegate.RemoveFromHand(card)
	}
}
