package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog/log"
)

// Event is a typed stock notification pushed to connected dashboards.
type Event struct {
	Type    string                 `json:"type"`   // stock_update | production_completed
	Action  string                 `json:"action"` // purchase_received | sale_deducted | adjustment | production_run
	Payload map[string]interface{} `json:"payload,omitempty"`
	Actor   map[string]string      `json:"actor,omitempty"`
	Message string                 `json:"message,omitempty"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
	}
}

// Publish marshals and broadcasts an event without blocking the caller.
// Safe on a nil hub so services can run without a realtime surface.
func (h *Hub) Publish(e Event) {
	if h == nil {
		return
	}
	go func() {
		msg, err := json.Marshal(e)
		if err != nil {
			log.Warn().Err(err).Str("type", e.Type).Msg("drop unmarshalable ws event")
			return
		}
		h.Broadcast <- msg
	}()
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Debug().Msg("ws client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
