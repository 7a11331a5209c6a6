// Package hub fans annotated frames and metrics out to dashboard
// browsers over websockets. Slow clients get frames dropped, never
// queued; a stale demo frame is worth nothing.
package hub

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/aurasense/sfsvc-demo/service/lgr"
)

const clientSendBuffer = 8

type client struct {
	id   string
	conn *websocket.Conn
	send chan Message
}

type websocketService struct {
	mu       sync.RWMutex
	clients  map[string]*client
	upgrader websocket.Upgrader
	closed   bool
}

func NewWebsocket() IService {
	return &websocketService{
		clients: make(map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard is a local sales demo, not an internet service
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
}

func (svc *websocketService) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := svc.upgrader.Upgrade(w, r, nil)
		if err != nil {
			lgr.Logger.Error("websocket upgrade failed", slog.Any("error", err))
			return
		}

		c := &client{
			id:   uuid.NewString(),
			conn: conn,
			send: make(chan Message, clientSendBuffer),
		}

		svc.mu.Lock()
		if svc.closed {
			svc.mu.Unlock()
			conn.Close()
			return
		}
		svc.clients[c.id] = c
		svc.mu.Unlock()

		lgr.Logger.Info("dashboard client connected", slog.String("clientID", c.id))

		go svc.writePump(c)
		go svc.readPump(c)
	}
}

func (svc *websocketService) Broadcast(msgType string, payload interface{}) {
	msg := Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}

	svc.mu.RLock()
	defer svc.mu.RUnlock()
	for _, c := range svc.clients {
		select {
		case c.send <- msg:
		default:
			// Client is behind, drop the frame
		}
	}
}

func (svc *websocketService) ClientCount() int {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return len(svc.clients)
}

func (svc *websocketService) Close() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.closed = true
	for id, c := range svc.clients {
		close(c.send)
		delete(svc.clients, id)
	}
}

func (svc *websocketService) writePump(c *client) {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			lgr.Logger.Debug("websocket write failed, dropping client",
				slog.String("clientID", c.id),
				slog.Any("error", err),
			)
			svc.remove(c.id)
			return
		}
	}
}

// readPump only exists to notice closes; the dashboard never sends data.
func (svc *websocketService) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			svc.remove(c.id)
			return
		}
	}
}

func (svc *websocketService) remove(id string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if c, ok := svc.clients[id]; ok {
		close(c.send)
		delete(svc.clients, id)
		lgr.Logger.Info("dashboard client disconnected", slog.String("clientID", id))
	}
}
