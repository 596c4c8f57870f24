package socket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

const MessageChange = "change"

type Message struct {
	Type      string             `json:"type"`
	Payload   entity.ChangeEvent `json:"payload"`
	Timestamp time.Time          `json:"timestamp"`
}

// Hub mantém os painéis conectados e repassa a eles cada mudança nas coleções.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	log.Println("🔌 WebSocket hub iniciado")
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// cliente travado: derruba
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Notify nunca bloqueia quem gravou o registro.
func (h *Hub) Notify(event entity.ChangeEvent) {
	data, err := json.Marshal(Message{Type: MessageChange, Payload: event, Timestamp: time.Now()})
	if err != nil {
		log.Printf("⚠️ [Hub] evento não serializado: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Printf("⚠️ [Hub] fila cheia, evento %s/%s descartado", event.Collection, event.Op)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
