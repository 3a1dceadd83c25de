package table

import "time"

const (
	DefaultSlots           = 5
	DefaultReorderCooldown = 150 * time.Millisecond
)

// Config tunes a table. Zero values fall back to defaults.
type Config struct {
	Slots           int
	ReorderCooldown time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Table owns the shared mutable state of one card table: slot occupancy,
// hand order and selection. All mutation goes through its operations on a
// single goroutine; collaborators read snapshots but never mutate directly.
type Table struct {
	Bus       *Bus
	Slots     *SlotTable
	Hand      *HandSequence
	Selection *SelectionSet
	Resolver  *Resolver

	now         func() time.Time
	cooldown    time.Duration
	lastReorder time.Time
}

func New(cfg Config) *Table {
	if cfg.Slots <= 0 {
		cfg.Slots = DefaultSlots
	}
	if cfg.ReorderCooldown <= 0 {
		cfg.ReorderCooldown = DefaultReorderCooldown
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	bus := NewBus()
	hand := NewHandSequence(bus)
	slots := NewSlotTable(cfg.Slots, bus)
	sel := NewSelectionSet(hand, bus)
	t := &Table{
		Bus:       bus,
		Slots:     slots,
		Hand:      hand,
		Selection: sel,
		Resolver:  NewResolver(slots, hand, sel, bus),
		now:       cfg.Now,
		cooldown:  cfg.ReorderCooldown,
	}
	return t
}

// SetRules wires the playability collaborator into both the resolver and the
// slot acceptance check.
func (t *Table) SetRules(rules PlayRules) {
	t.Resolver.SetRules(rules)
	if rules == nil {
		t.Slots.SetPlayable(nil)
		return
	}
	t.Slots.SetPlayable(rules.IsCardPlayable)
}

func (t *Table) SetResources(pool ResourcePool) { t.Resolver.SetResources(pool) }
func (t *Table) SetProcessor(p Processor)       { t.Resolver.SetProcessor(p) }
func (t *Table) SetHandDelegate(d HandDelegate) { t.Resolver.SetHandDelegate(d) }

// AddToHand brings an externally created card into the hand at the named
// insertion point.
func (t *Table) AddToHand(card *Card, at InsertPoint) {
	t.Hand.Insert(card, at)
}

// MoveSelection shifts the current group one step. A debounce window rejects
// a second reorder arriving within the cooldown, guarding against a single
// held key being processed twice.
func (t *Table) MoveSelection(dir Direction) bool {
	group := t.Selection.Group()
	if len(group) == 0 || !t.reorderAllowed() {
		return false
	}
	if !t.Hand.MoveOneStep(dir, group) {
		return false
	}
	t.lastReorder = t.now()
	return true
}

// MoveSelectionToEdge sends the group to the start or end of the hand. The
// group's leftmost member is the reference for the target position.
func (t *Table) MoveSelectionToEdge(dir Direction) bool {
	group := t.Selection.Group()
	if len(group) == 0 || !t.reorderAllowed() {
		return false
	}
	target := 0
	if dir == Right {
		target = t.Hand.Len() - len(group)
	}
	if !t.Hand.MoveGroupTo(group, target) {
		return false
	}
	t.lastReorder = t.now()
	return true
}

func (t *Table) reorderAllowed() bool {
	return t.now().Sub(t.lastReorder) >= t.cooldown
}

// PlayHighlighted plays the armed group without a drag, for keyboard-driven
// front ends. Same rules path as a play-area drop.
func (t *Table) PlayHighlighted() bool {
	group := t.Selection.Highlighted()
	if len(group) == 0 {
		return false
	}
	return t.Resolver.play(group)
}

// DiscardHighlighted discards the armed group, charging the per-card cost.
func (t *Table) DiscardHighlighted() bool {
	group := t.Selection.Highlighted()
	if len(group) == 0 {
		return false
	}
	return t.Resolver.discard(group)
}
