package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/lcalzada-xor/dot11ingest/internal/core/ports"
)

const writeTimeout = 5 * time.Second

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// Non-browser clients send no Origin
		if origin == "" {
			return true
		}

		u, err := url.Parse(origin)
		if err != nil || u.Host != r.Host {
			slog.Warn("WebSocket origin rejected", "origin", origin)
			return false
		}
		return true
	},
}

type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// AlertFeed broadcasts every raised alert to connected websocket clients and
// then hands it to the wrapped alert service.
type AlertFeed struct {
	next    ports.AlertService
	clients map[*ws.Conn]struct{}
	mu      sync.Mutex
}

func NewAlertFeed(next ports.AlertService) *AlertFeed {
	return &AlertFeed{
		next:    next,
		clients: make(map[*ws.Conn]struct{}),
	}
}

func (f *AlertFeed) RaiseAlert(ctx context.Context, alert domain.Alert) error {
	f.broadcast(Message{Type: "alert", Payload: alert})
	return f.next.RaiseAlert(ctx, alert)
}

// HandleWebSocket upgrades the request and subscribes the connection until
// the client goes away.
func (f *AlertFeed) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	f.mu.Lock()
	f.clients[conn] = struct{}{}
	f.mu.Unlock()

	slog.Debug("WebSocket connected", "remote", r.RemoteAddr)

	go func() {
		defer f.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Clients returns the number of subscribed connections.
func (f *AlertFeed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Close disconnects all subscribers.
func (f *AlertFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.clients {
		conn.Close()
		delete(f.clients, conn)
	}
}

func (f *AlertFeed) drop(conn *ws.Conn) {
	f.mu.Lock()
	delete(f.clients, conn)
	f.mu.Unlock()
	conn.Close()
}

func (f *AlertFeed) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("WebSocket message encoding failed", "error", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.clients {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(ws.TextMessage, data); err != nil {
			conn.Close()
			delete(f.clients, conn)
		}
	}
}

var _ ports.AlertService = (*AlertFeed)(nil)
