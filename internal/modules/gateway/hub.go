package gateway

import (
	"context"

	socketio "github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"
)

// NewHub creates the realtime hub. authenticate is the socket auth gate; it
// must share verification logic with the HTTP middleware.
func NewHub(presence PresenceStore, logger *zap.Logger, authenticate Authenticator) *Hub {
	sio := socketio.NewServer(nil, nil)
	h := &Hub{
		events:       make(chan LifecycleEvent, 256),
		broadcast:    make(chan Message, 256),
		presence:     presence,
		logger:       logger,
		sio:          sio,
		authenticate: authenticate,
	}
	h.emitFn = h.emitSocket
	h.registerHandlers()
	return h
}

// Run processes lifecycle events and broadcasts one at a time. Presence
// mutations are confined to this goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.sio.Close(nil)
			return

		case ev := <-h.events:
			h.apply(ev)

		case msg := <-h.broadcast:
			h.emitFn(msg)
		}
	}
}

// apply performs one Absent→Present or Present→Absent transition and, when
// membership changed, broadcasts the full snapshot of present user IDs.
func (h *Hub) apply(ev LifecycleEvent) {
	switch ev.Kind {
	case EventConnect:
		h.presence.Set(ev.UserID, ev.SocketID)
	case EventDisconnect:
		if !h.presence.Remove(ev.UserID, ev.SocketID) {
			// Superseded connection going away; the live entry stays.
			return
		}
	default:
		return
	}

	// Full-snapshot broadcast: O(n) messages per flap across n clients.
	h.emitFn(Message{Event: EventOnlineUsers, Payload: h.presence.Snapshot()})
}

// BroadcastAll queues an event for every connected client.
func (h *Hub) BroadcastAll(event string, payload interface{}) {
	h.broadcast <- Message{Event: event, Payload: payload}
}

// EmitToUser queues an event for all sockets of one user.
func (h *Hub) EmitToUser(userID, event string, payload interface{}) {
	h.broadcast <- Message{Event: event, Payload: payload, Room: userRoom(userID)}
}

// OnlineUsers returns the current presence snapshot.
func (h *Hub) OnlineUsers() []string {
	return h.presence.Snapshot()
}

// IsOnline reports whether the user currently has an authenticated socket.
func (h *Hub) IsOnline(userID string) bool {
	_, ok := h.presence.SocketID(userID)
	return ok
}

func (h *Hub) emitSocket(msg Message) {
	ns := h.sio.Of("/", nil)
	if msg.Room != "" {
		_ = ns.To(socketio.Room(msg.Room)).Emit(msg.Event, msg.Payload)
		return
	}
	_ = ns.Emit(msg.Event, msg.Payload)
}

func userRoom(userID string) string { return "user:" + userID }
