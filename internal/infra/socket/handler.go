package socket

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/http/middleware"
)

type Handler struct {
	Hub      *Hub
	Identity entity.IdentityProvider
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, identity entity.IdentityProvider, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return &Handler{
		Hub:      hub,
		Identity: identity,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// ServeHTTP autentica pelo ?token= (o WebSocket do navegador não manda header) e conecta ao hub.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = middleware.BearerToken(r)
	}

	id, err := h.Identity.Current(r.Context(), token)
	if err != nil {
		http.Error(w, `{"error":"UNAUTHORIZED","message":"sessão inválida"}`, http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WebSocket] upgrade falhou: %v", err)
		return
	}

	client := &Client{hub: h.Hub, conn: conn, send: make(chan []byte, 64), email: id.Email}
	select {
	case h.Hub.register <- client:
	case <-h.Hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
