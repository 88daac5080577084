package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"
)

func init() {
	logger.Init()
}

// dialPair upgrades one server-side connection registered in the hub and
// returns the client side for reading.
func dialPair(t *testing.T, hub *Hub, userID string) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(userID, ws)
		close(registered)
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	<-registered
	return client
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.SubscriberCount("u1"))

	conn := hub.Register("u1", &websocket.Conn{})
	other := hub.Register("u1", &websocket.Conn{})
	assert.Equal(t, 2, hub.SubscriberCount("u1"))
	assert.Equal(t, 0, hub.SubscriberCount("u2"))

	hub.Unregister("u1", conn)
	assert.Equal(t, 1, hub.SubscriberCount("u1"))
	hub.Unregister("u1", other)
	assert.Equal(t, 0, hub.SubscriberCount("u1"))

	// Unregistering an unknown connection is a no-op
	hub.Unregister("u1", conn)
}

func TestHubDeliversLocally(t *testing.T) {
	hub := NewHub()
	client := dialPair(t, hub, "u1")

	// Without Redis configured, PublishEvent delivers in-process
	err := hub.PublishEvent(context.Background(), domain.Event{
		Type:    domain.EventNotificationCreated,
		UserID:  "u1",
		Payload: map[string]string{"message": "hi"},
	})
	require.NoError(t, err)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := client.ReadMessage()
	require.NoError(t, err)

	var event domain.Event
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, domain.EventNotificationCreated, event.Type)
	assert.Equal(t, "u1", event.UserID)
}

func TestHubSkipsOtherUsers(t *testing.T) {
	hub := NewHub()
	client := dialPair(t, hub, "u1")

	require.NoError(t, hub.PublishEvent(context.Background(), domain.Event{
		Type:   domain.EventMessageCreated,
		UserID: "someone-else",
	}))

	client.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := client.ReadMessage()
	assert.Error(t, err) // deadline hit, nothing delivered
}
