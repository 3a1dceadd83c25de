package table

type EventType int8

const (
	NoEvent EventType = iota
	AllEvents
	EventCardPlacedInSlot
	EventCardRemovedFromSlot
	EventHandOrderChanged
	EventCardIndexChanged
	EventSelectionChanged
	EventHighlightChanged
	EventDragStarted
	EventDragEnded
)

func (e EventType) String() string {
	switch e {
	case AllEvents:
		return "all"
	case EventCardPlacedInSlot:
		return "card-placed"
	case EventCardRemovedFromSlot:
		return "card-removed"
	case EventHandOrderChanged:
		return "hand-order-changed"
	case EventCardIndexChanged:
		return "card-index-changed"
	case EventSelectionChanged:
		return "selection-changed"
	case EventHighlightChanged:
		return "highlight-changed"
	case EventDragStarted:
		return "drag-started"
	case EventDragEnded:
		return "drag-ended"
	}
	return "none"
}

// Event carries the fields relevant to its type; unrelated fields are zero.
type Event struct {
	Event    EventType
	Card     *Card
	Slot     int
	OldIndex int
	NewIndex int
	Cards    []*Card
}

type Handler func(*Event)

// Bus is a constructor-owned publish/subscribe dispatcher. Handlers run
// synchronously on the emitting goroutine; the table core is single-threaded
// so handlers observe a consistent snapshot.
type Bus struct {
	handlers map[EventType][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: map[EventType][]Handler{}}
}

func (b *Bus) On(event EventType, h Handler) {
	b.handlers[event] = append(b.handlers[event], h)
}

func (b *Bus) Emit(ev *Event) {
	for _, h := range b.handlers[ev.Event] {
		h(ev)
	}
	for _, h := range b.handlers[AllEvents] {
		h(ev)
	}
}
