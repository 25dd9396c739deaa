package ws

import (
	"careerai/internal/model"
	"careerai/internal/store"
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// TokenValidator resolves a session token to its claims
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*model.UserClaims, error)
}

// Handler handles WebSocket connections
type Handler struct {
	hub     *Hub
	auth    TokenValidator
	results *store.ResultStore
	logger  *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, auth TokenValidator, results *store.ResultStore, logger *zap.Logger) *Handler {
	return &Handler{
		hub:     hub,
		auth:    auth,
		results: results,
		logger:  logger,
	}
}

// WizardWS handles GET /v1/ws/wizard?token=
func (h *Handler) WizardWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.auth.ValidateToken(r.Context(), token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}

	conn := &Connection{
		UserID: claims.UserID,
		Send:   make(chan []byte, 256),
		Hub:    h.hub,
	}
	h.hub.Register(conn)

	// Result changes from any instance are pushed while the socket is open
	ctx, cancel := context.WithCancel(context.Background())
	if updates, err := h.results.Subscribe(ctx, claims.UserID); err != nil {
		h.logger.Warn("subscribe to results", zap.String("userId", claims.UserID), zap.Error(err))
		h.hub.SendTo(conn, string(MsgError), map[string]string{"error": "live result updates are unavailable"})
	} else {
		go h.forwardResults(conn, updates)
	}

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn, cancel)
}

func (h *Handler) forwardResults(conn *Connection, updates <-chan *model.IkigaiResult) {
	for result := range updates {
		h.hub.SendTo(conn, string(MsgResultUpdated), map[string]interface{}{"result": result})
	}
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection, cancel context.CancelFunc) {
	defer func() {
		cancel()
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := wsConn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("websocket closed", zap.String("userId", conn.UserID), zap.Error(err))
			}
			return
		}
		// Clients only listen; inbound frames keep the connection alive
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
