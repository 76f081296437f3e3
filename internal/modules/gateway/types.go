package gateway

import (
	"context"
	"net/http"

	"github.com/linguamate/core/internal/models"
	socketio "github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"
)

// EventOnlineUsers carries the full set of currently-present user IDs to all
// connected clients whenever presence membership changes.
const EventOnlineUsers = "onlineUsers"

// EventNewMessage delivers a chat message to the receiver's sockets.
const EventNewMessage = "newMessage"

// EventKind enumerates connection lifecycle transitions.
type EventKind int

const (
	EventConnect EventKind = iota
	EventDisconnect
)

// LifecycleEvent is one connect/disconnect transition of a user's socket.
type LifecycleEvent struct {
	Kind     EventKind
	UserID   string
	SocketID string
}

// Message is the envelope for hub broadcasts. Room "" targets all clients.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
	Room    string      `json:"room,omitempty"`
}

// Authenticator resolves the user behind a socket handshake. It must apply
// the same verification as the HTTP auth gate.
type Authenticator func(ctx context.Context, header http.Header) (*models.UserModel, error)

// Hub owns the socket.io server, the presence registry, and the broadcast
// loop. All presence mutations happen on the Run goroutine; handlers only
// queue lifecycle events.
type Hub struct {
	events    chan LifecycleEvent
	broadcast chan Message

	presence     PresenceStore
	logger       *zap.Logger
	sio          *socketio.Server
	authenticate Authenticator

	emitFn func(Message)
}
