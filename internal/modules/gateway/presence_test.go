package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryPresence_SetAndSnapshot(t *testing.T) {
	p := NewMemoryPresence()
	assert.Empty(t, p.Snapshot())

	p.Set("user-b", "sid-1")
	p.Set("user-a", "sid-2")
	p.Set("user-c", "sid-3")

	assert.Equal(t, []string{"user-a", "user-b", "user-c"}, p.Snapshot())
}

func TestMemoryPresence_LastConnectionWins(t *testing.T) {
	p := NewMemoryPresence()
	p.Set("user-a", "sid-old")
	p.Set("user-a", "sid-new")

	sid, ok := p.SocketID("user-a")
	assert.True(t, ok)
	assert.Equal(t, "sid-new", sid)
	assert.Equal(t, []string{"user-a"}, p.Snapshot())
}

func TestMemoryPresence_Remove(t *testing.T) {
	p := NewMemoryPresence()
	p.Set("user-a", "sid-1")

	assert.True(t, p.Remove("user-a", "sid-1"))
	assert.Empty(t, p.Snapshot())

	_, ok := p.SocketID("user-a")
	assert.False(t, ok)
}

func TestMemoryPresence_RemoveStaleSocket(t *testing.T) {
	p := NewMemoryPresence()
	p.Set("user-a", "sid-old")
	p.Set("user-a", "sid-new")

	// The superseded connection's disconnect must not evict the live entry.
	assert.False(t, p.Remove("user-a", "sid-old"))
	assert.Equal(t, []string{"user-a"}, p.Snapshot())

	assert.True(t, p.Remove("user-a", "sid-new"))
	assert.Empty(t, p.Snapshot())
}

func TestMemoryPresence_RemoveUnknownUser(t *testing.T) {
	p := NewMemoryPresence()
	assert.False(t, p.Remove("user-x", "sid-1"))
}
