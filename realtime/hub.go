package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/utils"
)

const writeWait = 5 * time.Second

// Hub menampung semua client dashboard (websocket) dan menyiarkan event ke mereka
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]string // conn -> user id
	upgrader websocket.Upgrader
}

// NewHub accepts websocket handshakes from allowedOrigins or from the API's own host.
func NewHub(allowedOrigins ...string) *Hub {
	h := &Hub{clients: make(map[*websocket.Conn]string)}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(origin, allowed) {
					return true
				}
			}
			u, err := url.Parse(origin)
			return err == nil && u.Host == r.Host
		},
	}
	return h
}

// Upgrade -> upgrade koneksi HTTP ke websocket lalu daftarkan client
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request, userID string) (*websocket.Conn, error) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	h.Register(conn, userID)
	return conn, nil
}

func (h *Hub) Register(conn *websocket.Conn, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = userID
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish sends event as JSON to every connected client. Clients that fail to receive it are
// dropped.
func (h *Hub) Publish(_ context.Context, event services.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, userID := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Warnf("dropping dashboard client %s: %v", userID, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
	return nil
}

// Listen blocks reading from conn until the client goes away, then unregisters it.
func (h *Hub) Listen(conn *websocket.Conn) {
	defer h.Unregister(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
