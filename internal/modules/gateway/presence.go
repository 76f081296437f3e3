package gateway

import (
	"sort"
	"sync"
)

// PresenceStore maps user IDs to their active socket ID. Exactly one entry
// per currently-connected user; a later connection supersedes the previous
// one (last connection wins).
type PresenceStore interface {
	// Set records userID as present on socketID, replacing any prior entry.
	Set(userID, socketID string)
	// Remove drops the entry for userID, but only while socketID still owns
	// it, so the disconnect of a superseded connection cannot evict the live
	// one. Reports whether an entry was removed.
	Remove(userID, socketID string) bool
	// SocketID returns the active socket for userID, if present.
	SocketID(userID string) (string, bool)
	// Snapshot returns the sorted set of present user IDs.
	Snapshot() []string
}

// MemoryPresence is the default process-local PresenceStore. Horizontal
// scaling fragments it across processes; see RedisPresence.
type MemoryPresence struct {
	mu      sync.RWMutex
	sockets map[string]string
}

func NewMemoryPresence() *MemoryPresence {
	return &MemoryPresence{sockets: make(map[string]string)}
}

func (p *MemoryPresence) Set(userID, socketID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sockets[userID] = socketID
}

func (p *MemoryPresence) Remove(userID, socketID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if current, ok := p.sockets[userID]; !ok || current != socketID {
		return false
	}
	delete(p.sockets, userID)
	return true
}

func (p *MemoryPresence) SocketID(userID string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	sid, ok := p.sockets[userID]
	return sid, ok
}

func (p *MemoryPresence) Snapshot() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.sockets))
	for userID := range p.sockets {
		out = append(out, userID)
	}
	sort.Strings(out)
	return out
}
