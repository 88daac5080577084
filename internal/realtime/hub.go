package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"

	"github.com/gorilla/websocket"
)

// Channel is the Redis pub/sub channel bridging events across instances.
const Channel = "jobboard:events"

// Conn wraps a websocket connection with serialized writes. The hub's
// delivery goroutine and the handler's ping loop both write; gorilla permits
// only one concurrent writer per connection.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *Conn) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

// Ping sends a ping control frame with the given write deadline.
func (c *Conn) Ping(deadline time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(deadline)
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}

func (c *Conn) Close() error {
	return c.ws.Close()
}

// Hub fans realtime events out to websocket subscribers. Each user may hold
// several live connections (multiple tabs/devices); events are delivered to
// all of them. When Redis is configured, events round-trip through a pub/sub
// channel so every instance delivers to its own local connections.
type Hub struct {
	mu      sync.Mutex
	clients map[string][]*Conn // keyed by user id
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string][]*Conn),
	}
}

// Register adds a connection for the user and returns the wrapped handle.
func (h *Hub) Register(userID string, ws *websocket.Conn) *Conn {
	conn := &Conn{ws: ws}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = append(h.clients[userID], conn)
	return conn
}

// Unregister removes a connection for the user. Called on disconnect.
func (h *Hub) Unregister(userID string, conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.clients[userID]
	for i, c := range conns {
		if c == conn {
			h.clients[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// SubscriberCount returns the number of live connections for a user.
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

// PublishEvent implements domain.EventPublisher. With Redis available the
// event is published on the shared channel and delivered by Run on every
// instance; otherwise it is delivered to local connections directly.
func (h *Hub) PublishEvent(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := redis.Publish(ctx, Channel, payload); err == nil {
		return nil
	}

	// No Redis: single-instance deployment, deliver in-process
	h.deliver(event.UserID, payload)
	return nil
}

// Run consumes the Redis channel and delivers events to local connections.
// Blocks until ctx is cancelled; no-op when Redis is not configured.
func (h *Hub) Run(ctx context.Context) {
	sub := redis.Subscribe(ctx, Channel)
	if sub == nil {
		return
	}
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Log.Error("realtime: dropping malformed event", "error", err)
				continue
			}
			h.deliver(event.UserID, []byte(msg.Payload))
		}
	}
}

// deliver writes the payload to every live connection of the user. Dead
// connections are closed and pruned; delivery is best-effort.
func (h *Hub) deliver(userID string, payload []byte) {
	h.mu.Lock()
	conns := make([]*Conn, len(h.clients[userID]))
	copy(conns, h.clients[userID])
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.write(payload); err != nil {
			logger.Log.Warn("realtime: write failed, dropping connection", "user_id", userID, "error", err)
			conn.Close()
			h.Unregister(userID, conn)
		}
	}
}
