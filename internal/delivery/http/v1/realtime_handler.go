package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/realtime"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 54 * time.Second
)

type RealtimeHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

func NewRealtimeHandler(protected *gin.RouterGroup, hub *realtime.Hub) {
	handler := &RealtimeHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS middleware already vetted the origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	protected.GET("/realtime/ws", handler.Connect)
}

// Connect godoc
// @Summary      Realtime event stream
// @Description  Upgrades to a WebSocket delivering message.created and notification.created events for the authenticated user.
// @Tags         realtime
// @Success      101  "Switching Protocols"
// @Failure      401  {object}  response.Response
// @Router       /realtime/ws [get]
// @Security     BearerAuth
func (h *RealtimeHandler) Connect(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	conn := h.hub.Register(userID, ws)
	slog.Debug("websocket connected", "user_id", userID)

	done := make(chan struct{})
	go h.writePings(conn, done)
	h.readLoop(userID, ws, conn, done)
}

// readLoop drains inbound frames so pong handlers run and close frames are
// seen. Clients receive events; they do not send data over this socket.
func (h *RealtimeHandler) readLoop(userID string, ws *websocket.Conn, conn *realtime.Conn, done chan struct{}) {
	defer func() {
		close(done)
		h.hub.Unregister(userID, conn)
		conn.Close()
		slog.Debug("websocket disconnected", "user_id", userID)
	}()

	ws.SetReadLimit(512)
	ws.SetReadDeadline(time.Now().Add(wsPongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *RealtimeHandler) writePings(conn *realtime.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.Ping(time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}
