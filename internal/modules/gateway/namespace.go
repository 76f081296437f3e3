package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/linguamate/core/internal/models"
	socketio "github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"
)

var errHandshakeRejected = errors.New("handshake rejected")

func (h *Hub) registerHandlers() {
	ns := h.sio.Of("/", nil)
	_ = ns.On("connection", func(args ...any) {
		client, ok := args[0].(*socketio.Socket)
		if !ok {
			return
		}

		// Socket auth gate: runs before the client joins the broadcast
		// group. Failure rejects the connection, never a degraded one.
		user, err := h.authenticateHandshake(client)
		if err != nil {
			_ = client.Emit("authError", "unauthorized")
			client.Disconnect(true)
			return
		}

		userID := user.ID
		sid := string(client.Id())
		client.Join(socketio.Room(userRoom(userID)))
		h.events <- LifecycleEvent{Kind: EventConnect, UserID: userID, SocketID: sid}

		if h.logger != nil {
			h.logger.Info("socket connected",
				zap.String("user", userID),
				zap.String("sid", sid),
			)
		}

		_ = client.On("disconnect", func(_ ...any) {
			h.events <- LifecycleEvent{Kind: EventDisconnect, UserID: userID, SocketID: sid}
			if h.logger != nil {
				h.logger.Info("socket disconnected",
					zap.String("user", userID),
					zap.String("sid", sid),
				)
			}
		})
	})
}

func (h *Hub) authenticateHandshake(client *socketio.Socket) (*models.UserModel, error) {
	if h.authenticate == nil {
		return nil, errHandshakeRejected
	}
	handshake := client.Handshake()
	if handshake == nil {
		return nil, errHandshakeRejected
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.authenticate(ctx, http.Header(handshake.Headers))
}
