package ws

import (
	"encoding/json"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgCategoryChanged MessageType = "category_changed"
	MsgResultUpdated   MessageType = "result_updated"
	MsgError           MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections per user. A user may hold several tabs open.
type Hub struct {
	conns map[string]map[*Connection]struct{} // userID -> connections

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	disconnect chan string

	logger *zap.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	UserID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage is a message to deliver. A nil Conn means every connection of the user.
type BroadcastMessage struct {
	UserID  string
	Conn    *Connection
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		disconnect: make(chan string),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			if h.conns[conn.UserID] == nil {
				h.conns[conn.UserID] = make(map[*Connection]struct{})
			}
			h.conns[conn.UserID][conn] = struct{}{}
			h.logger.Debug("ws connected", zap.String("userId", conn.UserID), zap.Int("open", len(h.conns[conn.UserID])))

		case conn := <-h.unregister:
			h.remove(conn)

		case userID := <-h.disconnect:
			for conn := range h.conns[userID] {
				h.remove(conn)
			}

		case msg := <-h.broadcast:
			data, _ := json.Marshal(msg.Message)
			userConns := h.conns[msg.UserID]
			if msg.Conn != nil {
				if _, ok := userConns[msg.Conn]; ok {
					deliver(msg.Conn, data)
				}
				continue
			}
			for conn := range userConns {
				deliver(conn, data)
			}
		}
	}
}

func (h *Hub) remove(conn *Connection) {
	userConns, ok := h.conns[conn.UserID]
	if !ok {
		return
	}
	if _, ok := userConns[conn]; !ok {
		return
	}
	delete(userConns, conn)
	close(conn.Send)
	if len(userConns) == 0 {
		delete(h.conns, conn.UserID)
	}
	h.logger.Debug("ws disconnected", zap.String("userId", conn.UserID))
}

func deliver(conn *Connection, data []byte) {
	select {
	case conn.Send <- data:
	default:
		// Drop message if buffer full
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToUser sends a message to every connection of a user (implements service.Broadcaster)
func (h *Hub) BroadcastToUser(userID string, msgType string, payload interface{}) {
	h.broadcast <- &BroadcastMessage{UserID: userID, Message: newMessage(msgType, payload)}
}

// SendTo sends a message to one connection if it is still open
func (h *Hub) SendTo(conn *Connection, msgType string, payload interface{}) {
	h.broadcast <- &BroadcastMessage{UserID: conn.UserID, Conn: conn, Message: newMessage(msgType, payload)}
}

// DisconnectUser closes every connection of a user (implements service.Broadcaster)
func (h *Hub) DisconnectUser(userID string) {
	h.disconnect <- userID
}

func newMessage(msgType string, payload interface{}) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: MessageType(msgType), Payload: data}
}
