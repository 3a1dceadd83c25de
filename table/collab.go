package table

// Collaborator contracts implemented outside the core. Every call that
// depends on a missing collaborator fails false instead of dereferencing nil.

// PlayRules answers whether cards may be played or discarded right now.
type PlayRules interface {
	IsCardPlayable(card *Card) bool
	CanPlayCards(cards []*Card) bool
	CanDiscardCard(card *Card) bool
}

// ResourcePool pays costs. Spend is only called after CanSpend passed, the
// way the pack's resource pools gate spending on a boolean check.
type ResourcePool interface {
	CanSpend(kind string, amount int) bool
	Spend(kind string, amount int)
}

// Processor receives cards the resolver has committed to playing or
// discarding. The resolver does not know what playing means beyond removal.
type Processor interface {
	ProcessPlay(cards []*Card)
	ProcessDiscard(card *Card)
	DrawReplacement()
}

// HandDelegate reconciles external hand-membership bookkeeping after
// resolver actions.
type HandDelegate interface {
	AddToHand(card *Card)
	RemoveFromHand(card *Card)
}

// DiscardResource is the resource kind charged per discarded card.
const DiscardResource = "essence"
