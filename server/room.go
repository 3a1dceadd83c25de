package server

import (
	"context"
	"encoding/json"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/SvenDH/card-table/table"
)

// Intent is a client request against the room's table. Op selects the
// operation; the remaining fields are read per op. Slot is a pointer so an
// absent field stays distinguishable from slot 0: a drop intent without a
// slot is a no-target drop.
type Intent struct {
	Op    string `json:"op"`
	Card  string `json:"card,omitempty"`
	Other string `json:"other,omitempty"`
	Slot  *int   `json:"slot,omitempty"`
	At    string `json:"at,omitempty"`
	Dir   string `json:"dir,omitempty"`
	Area  string `json:"area,omitempty"`
	Line  string `json:"line,omitempty"`

	sender *Client
}

// TableEvent is the wire form of a table event. Slot is only set for slot
// events, so other events do not serialize a meaningless slot 0.
type TableEvent struct {
	Event    string   `json:"event"`
	Card     string   `json:"card,omitempty"`
	Slot     *int     `json:"slot,omitempty"`
	OldIndex int      `json:"old_index,omitempty"`
	NewIndex int      `json:"new_index,omitempty"`
	Cards    []string `json:"cards,omitempty"`
}

// Room couples a set of clients to one table. All table access happens on
// the Run goroutine, so the core needs no locking.
type Room struct {
	Name       string `json:"name"`
	server     *Server
	clients    []*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	intents    chan Intent
	deliver    chan []byte
	close      chan struct{}

	tbl   *table.Table
	cards map[ulid.ULID]*table.Card
	pool  *essencePool
	// pile holds stocked, undrawn cards; they enter the hand only through
	// replacement draws.
	pile []*table.Card
	log  *zap.Logger
}

func NewRoom(name string, server *Server) *Room {
	room := &Room{
		Name:       name,
		server:     server,
		clients:    make([]*Client, 0),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message),
		intents:    make(chan Intent),
		deliver:    make(chan []byte),
		close:      make(chan struct{}),
		tbl:        table.New(server.tableCfg),
		cards:      map[ulid.ULID]*table.Card{},
		pool:       &essencePool{essence: startingEssence},
		log:        server.log.With(zap.String("room", name)),
	}
	room.tbl.SetRules(openRules{})
	room.tbl.SetResources(room.pool)
	room.tbl.SetProcessor(room)
	room.tbl.Resolver.RegisterArea("play", table.AreaPlay)
	room.tbl.Resolver.RegisterArea("discard", table.AreaDiscard)
	// Emitted events surface on the room goroutine, so the handler can
	// publish without extra synchronization.
	room.tbl.Bus.On(table.AllEvents, room.publishEvent)
	return room
}

func (room *Room) Run() {
	ch := room.server.broker.Subscribe(context.TODO(), room.Name)
	go room.subscribeToRoomMessages(ch)
	for {
		select {
		case client := <-room.register:
			room.registerClientInRoom(client)
		case client := <-room.unregister:
			room.unregisterClientInRoom(client)
		case message := <-room.broadcast:
			room.publishRoomMessage(message.encode())
		case message := <-room.deliver:
			room.broadcastToClientsInRoom(message)
		case intent := <-room.intents:
			room.apply(intent)
		case <-room.close:
			room.server.broker.Unsubscribe(context.TODO(), ch, room.Name)
			return
		}
	}
}

func (room *Room) Close() {
	close(room.close)
}

func (room *Room) registerClientInRoom(client *Client) {
	room.publishRoomMessage(welcome(room.Name, client.Name).encode())
	room.clients = append(room.clients, client)
}

func (room *Room) unregisterClientInRoom(client *Client) {
	for i, c := range room.clients {
		if c == client {
			room.clients = append(room.clients[:i], room.clients[i+1:]...)
			break
		}
	}
}

func (room *Room) broadcastToClientsInRoom(message []byte) {
	for _, client := range room.clients {
		client.send <- message
	}
}

func (room *Room) publishRoomMessage(message []byte) {
	if err := room.server.broker.Publish(context.TODO(), room.Name, message); err != nil {
		room.log.Error("publish failed", zap.Error(err))
	}
}

// subscribeToRoomMessages forwards broker deliveries into the Run loop, so
// client bookkeeping is only ever touched on the room goroutine.
func (room *Room) subscribeToRoomMessages(ch *Subscriber) {
	for msg := range ch.Channel {
		select {
		case room.deliver <- msg:
		case <-room.close:
			return
		}
	}
}

func (room *Room) publishEvent(ev *table.Event) {
	wire := TableEvent{
		Event:    ev.Event.String(),
		Card:     cardID(ev.Card),
		OldIndex: ev.OldIndex,
		NewIndex: ev.NewIndex,
	}
	if ev.Event == table.EventCardPlacedInSlot || ev.Event == table.EventCardRemovedFromSlot {
		slot := ev.Slot
		wire.Slot = &slot
	}
	for _, c := range ev.Cards {
		wire.Cards = append(wire.Cards, cardID(c))
	}
	data, _ := json.Marshal(wire)
	room.publishRoomMessage((&Message{Type: TableEventAction, Target: room.Name, Data: data}).encode())
}

// apply runs one intent against the table. Rejections go back to the sender
// only; accepted intents are visible to everyone through the event stream.
func (room *Room) apply(intent Intent) {
	ok := false
	switch intent.Op {
	case "draw":
		ok = room.draw(intent.Line, intent.At)
	case "stock":
		ok = room.stock(intent.Line)
	case "select":
		if c := room.card(intent.Card); c != nil {
			ok = room.tbl.Selection.Select(c)
		}
	case "deselect":
		if c := room.card(intent.Card); c != nil {
			ok = room.tbl.Selection.Deselect(c)
		}
	case "select-range":
		a, b := room.card(intent.Card), room.card(intent.Other)
		if a != nil && b != nil {
			ok = room.tbl.Selection.SelectRange(a, b)
		}
	case "clear":
		room.tbl.Selection.Clear()
		ok = true
	case "promote":
		ok = room.tbl.Selection.PromoteSelectionToHighlight()
	case "demote":
		ok = room.tbl.Selection.DemoteHighlightToSelection()
	case "extend":
		if dir, valid := parseDirection(intent.Dir); valid {
			ok = room.tbl.Selection.Extend(dir)
		}
	case "contract":
		if dir, valid := parseDirection(intent.Dir); valid {
			ok = room.tbl.Selection.Contract(dir)
		}
	case "move":
		if dir, valid := parseDirection(intent.Dir); valid {
			ok = room.tbl.MoveSelection(dir)
		}
	case "move-edge":
		if dir, valid := parseDirection(intent.Dir); valid {
			ok = room.tbl.MoveSelectionToEdge(dir)
		}
	case "drag":
		if c := room.card(intent.Card); c != nil {
			ok = room.tbl.Resolver.BeginDrag(c) != nil
		}
	case "drop":
		ok = room.tbl.Resolver.Drop(room.dropTarget(intent))
	case "play":
		ok = room.tbl.PlayHighlighted()
	case "discard":
		ok = room.tbl.DiscardHighlighted()
	default:
		room.log.Warn("unknown intent", zap.String("op", intent.Op))
	}
	if !ok && intent.sender != nil {
		data, _ := json.Marshal(intent.Op)
		intent.sender.send <- (&Message{Type: TableErrorAction, Target: room.Name, Data: data}).encode()
	}
}

// dropTarget classifies a drop intent. An intent naming neither a slot, an
// area nor another card is a no-target drop, which the resolver answers with
// a restore.
func (room *Room) dropTarget(intent Intent) table.DropTarget {
	target := table.DropTarget{AreaTag: intent.Area}
	if intent.Slot != nil && intent.Area == "" && intent.Other == "" {
		target.HasSlot = true
		target.Slot = *intent.Slot
	}
	if intent.Other != "" {
		target.Card = room.card(intent.Other)
	}
	return target
}

// draw parses a definition line and puts the card straight into the hand.
func (room *Room) draw(line, at string) bool {
	card, err := room.server.parser.ParseCard(line)
	if err != nil {
		room.log.Warn("bad card definition", zap.Error(err))
		return false
	}
	room.cards[card.ID] = card
	room.tbl.AddToHand(card, parseInsertPoint(at))
	return true
}

// stock parses a definition line into the undrawn pile.
func (room *Room) stock(line string) bool {
	card, err := room.server.parser.ParseCard(line)
	if err != nil {
		room.log.Warn("bad card definition", zap.Error(err))
		return false
	}
	room.cards[card.ID] = card
	room.pile = append(room.pile, card)
	return true
}

func parseInsertPoint(s string) table.InsertPoint {
	switch s {
	case "left":
		return table.InsertLeft
	case "center":
		return table.InsertCenter
	}
	return table.InsertRight
}

func parseDirection(s string) (table.Direction, bool) {
	switch s {
	case "left":
		return table.Left, true
	case "right":
		return table.Right, true
	}
	return table.Left, false
}

func (room *Room) card(id string) *table.Card {
	parsed, ok := parseCardID(id)
	if !ok {
		return nil
	}
	return room.cards[parsed]
}

const startingEssence = 10

// openRules places no restrictions; real rules come from the game the table
// is embedded in.
type openRules struct{}

func (openRules) IsCardPlayable(*table.Card) bool { return true }
func (openRules) CanPlayCards([]*table.Card) bool { return true }
func (openRules) CanDiscardCard(*table.Card) bool { return true }

type essencePool struct {
	essence int
}

func (p *essencePool) CanSpend(kind string, n int) bool { return p.essence >= n }
func (p *essencePool) Spend(kind string, n int)         { p.essence -= n }

// Processor hooks: played and discarded cards just leave the table.

func (room *Room) ProcessPlay(cards []*table.Card) {
	for _, c := range cards {
		delete(room.cards, c.ID)
	}
}

func (room *Room) ProcessDiscard(card *table.Card) {
	delete(room.cards, card.ID)
}

func (room *Room) DrawReplacement() {
	if len(room.pile) == 0 {
		return
	}
	next := room.pile[0]
	room.pile = room.pile[1:]
	room.tbl.AddToHand(next, table.InsertRight)
}
