// Package server exposes a table over websockets. Each room owns one table
// core; intents from clients are applied on the room goroutine and every
// table event is broadcast back to the room.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/SvenDH/card-table/deck"
	"github.com/SvenDH/card-table/table"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	SendMessageAction = "room.message"
	JoinRoomAction    = "room.join"
	LeaveRoomAction   = "room.leave"
	RoomJoinedAction  = "room.joined"

	TableIntentAction = "table.intent"
	TableEventAction  = "table.event"
	TableErrorAction  = "table.error"

	welcomeMessage = "%s joined the room"
)

var newline = []byte{'\n'}

type Message struct {
	Type   string          `json:"type"`
	Data   json.RawMessage `json:"data,omitempty"`
	Target string          `json:"target,omitempty"`
	Sender string          `json:"sender,omitempty"`
}

func (message *Message) encode() []byte {
	data, _ := json.Marshal(message)
	return data
}

func text(s string) json.RawMessage {
	data, _ := json.Marshal(s)
	return data
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Subscriber struct {
	Channel     chan []byte
	Unsubscribe chan bool
}

// Broker fans room traffic out to subscribers, so rooms and clients do not
// talk to each other directly.
type Broker interface {
	Subscribe(ctx context.Context, channels ...string) *Subscriber
	Unsubscribe(ctx context.Context, sub *Subscriber, channels ...string)
	Publish(ctx context.Context, topic string, message []byte) error
	Close()
}

type MemoryBroker struct {
	subscribers map[string][]*Subscriber
	mutex       sync.Mutex
	log         *zap.Logger
}

func NewMemoryBroker(log *zap.Logger) Broker {
	return &MemoryBroker{subscribers: make(map[string][]*Subscriber), log: log}
}

func (b *MemoryBroker) Subscribe(ctx context.Context, channels ...string) *Subscriber {
	sub := &Subscriber{
		Channel:     make(chan []byte, 1),
		Unsubscribe: make(chan bool),
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, t := range channels {
		b.subscribers[t] = append(b.subscribers[t], sub)
	}
	return sub
}

func (b *MemoryBroker) Unsubscribe(ctx context.Context, sub *Subscriber, channels ...string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	close(sub.Channel)
	for _, t := range channels {
		subscribers, found := b.subscribers[t]
		if !found {
			continue
		}
		var rest []*Subscriber
		for _, s := range subscribers {
			if s != sub {
				rest = append(rest, s)
			}
		}
		b.subscribers[t] = rest
	}
}

func (b *MemoryBroker) Publish(ctx context.Context, channel string, msg []byte) error {
	b.mutex.Lock()
	var slow []*Subscriber
	for _, sub := range b.subscribers[channel] {
		select {
		case sub.Channel <- msg:
		case <-time.After(time.Second):
			b.log.Warn("subscriber slow, unsubscribing", zap.String("channel", channel))
			slow = append(slow, sub)
		}
	}
	b.mutex.Unlock()
	// Unsubscribe takes the mutex itself, so slow subscribers are dropped
	// after the send loop releases it.
	for _, sub := range slow {
		b.Unsubscribe(ctx, sub, channel)
	}
	return nil
}

func (b *MemoryBroker) Close() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, subscribers := range b.subscribers {
		for _, subscriber := range subscribers {
			close(subscriber.Channel)
		}
	}
}

type Client struct {
	Name   string `json:"name"`
	conn   *websocket.Conn
	server *Server
	send   chan []byte
	room   *Room
}

func newClient(conn *websocket.Conn, server *Server, name string) *Client {
	return &Client{
		Name:   name,
		conn:   conn,
		server: server,
		send:   make(chan []byte, 256),
	}
}

func (client *Client) readPump() {
	defer client.disconnect()
	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, jsonMessage, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				client.server.log.Warn("unexpected close", zap.Error(err))
			}
			break
		}
		client.handleNewMessage(jsonMessage)
	}
}

func (client *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()
	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := client.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Attach queued messages to the current websocket message.
			n := len(client.send)
			for i := 0; i < n; i++ {
				w.Write(newline)
				w.Write(<-client.send)
			}
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (client *Client) disconnect() {
	client.server.unregister <- client
	if client.room != nil {
		client.room.unregister <- client
	}
	close(client.send)
	client.conn.Close()
}

func (client *Client) handleNewMessage(jsonMessage []byte) {
	var message Message
	if err := json.Unmarshal(jsonMessage, &message); err != nil {
		client.server.log.Warn("bad message", zap.Error(err))
		return
	}
	message.Sender = client.Name
	switch message.Type {
	case SendMessageAction:
		if room := client.server.room(message.Target); room != nil {
			room.broadcast <- &message
		}
	case JoinRoomAction:
		client.joinRoom(message.Target)
	case LeaveRoomAction:
		client.leaveRoom(message.Target)
	case TableIntentAction:
		if client.room != nil {
			var intent Intent
			if err := json.Unmarshal(message.Data, &intent); err != nil {
				client.server.log.Warn("bad intent", zap.Error(err))
				return
			}
			intent.sender = client
			client.room.intents <- intent
		}
	}
}

func (client *Client) joinRoom(name string) *Room {
	room := client.server.room(name)
	if room == nil {
		room = client.server.createRoom(name)
	}
	if client.room != room {
		if client.room != nil {
			client.room.unregister <- client
		}
		client.room = room
		room.register <- client
		m := Message{Type: RoomJoinedAction, Target: room.Name}
		client.send <- m.encode()
	}
	return room
}

func (client *Client) leaveRoom(name string) {
	if room := client.server.room(name); room != nil && client.room == room {
		client.room = nil
		room.unregister <- client
	}
}

// ServeWs upgrades an authenticated request and hands the connection to the
// hub.
func ServeWs(wsServer *Server, w http.ResponseWriter, r *http.Request) {
	userCtxValue := r.Context().Value(UserContextKey)
	if userCtxValue == nil {
		http.Error(w, "not authenticated", http.StatusForbidden)
		return
	}
	user := userCtxValue.(string)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		wsServer.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	client := newClient(conn, wsServer, user)

	go client.writePump()
	go client.readPump()

	wsServer.register <- client
}

type Server struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client

	mutex      sync.Mutex
	rooms      map[string]*Room
	repository *Repository
	broker     Broker
	parser     *deck.Parser
	tableCfg   table.Config
	log        *zap.Logger
}

func NewWebsocketServer(broker Broker, repository *Repository, cfg table.Config, log *zap.Logger) *Server {
	return &Server{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]*Room),
		repository: repository,
		broker:     broker,
		parser:     deck.NewParser(),
		tableCfg:   cfg,
		log:        log,
	}
}

func (server *Server) Run() {
	for {
		select {
		case client := <-server.register:
			server.clients[client.Name] = client
		case client := <-server.unregister:
			delete(server.clients, client.Name)
		}
	}
}

func (server *Server) room(name string) *Room {
	server.mutex.Lock()
	defer server.mutex.Unlock()
	return server.rooms[name]
}

func (server *Server) createRoom(name string) *Room {
	server.mutex.Lock()
	defer server.mutex.Unlock()
	if room, ok := server.rooms[name]; ok {
		return room
	}
	room := NewRoom(name, server)
	go room.Run()
	server.rooms[name] = room
	return room
}

func welcome(room, name string) *Message {
	return &Message{
		Type:   SendMessageAction,
		Target: room,
		Data:   text(fmt.Sprintf(welcomeMessage, name)),
	}
}

func cardID(c *table.Card) string {
	if c == nil {
		return ""
	}
	return c.ID.String()
}

func parseCardID(s string) (ulid.ULID, bool) {
	id, err := ulid.Parse(s)
	return id, err == nil
}
