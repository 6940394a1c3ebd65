// Package realtime fans application events out to connected websocket
// clients. Delivery is broadcast: every connected client receives every
// event and filters on its side.
package realtime

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"nova_crm/internal/logger"
)

// Event is the wire frame sent to clients.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub keeps the set of connected clients and broadcasts frames to them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	allowedOrigins []string
	validateToken  func(token string) error

	upgrader websocket.Upgrader
}

// NewHub creates a hub. validateToken guards the upgrade; a nil function
// accepts every connection.
func NewHub(allowedOrigins []string, validateToken func(token string) error) *Hub {
	h := &Hub{
		clients:        make(map[*Client]bool),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		broadcast:      make(chan []byte, 256),
		allowedOrigins: allowedOrigins,
		validateToken:  validateToken,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range h.allowedOrigins {
				if allowed == "*" || strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
	return h
}

// Run processes register, unregister and broadcast events. Call it once in
// its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client, drop it instead of stalling the hub.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Broadcast queues an event frame for every connected client. Never blocks
// the caller; when the queue is full the frame is dropped and logged.
func (h *Hub) Broadcast(event string, data interface{}) {
	frame, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		logger.GetAppLogger().WithError(err).Errorf("Failed to marshal realtime event %s", event)
		return
	}

	select {
	case h.broadcast <- frame:
	default:
		logger.GetAppLogger().Warnf("Realtime broadcast queue full, dropping event %s", event)
	}
}

// Handler upgrades HTTP requests to websocket connections. The access token
// is expected in the token query parameter.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.validateToken != nil {
			if err := h.validateToken(r.URL.Query().Get("token")); err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
		}

		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.GetAppLogger().WithError(err).Warn("Websocket upgrade failed")
			return
		}

		client := &Client{hub: h, conn: conn, send: make(chan []byte, 64)}
		h.register <- client

		go client.writePump()
		go client.readPump()
	})
}
