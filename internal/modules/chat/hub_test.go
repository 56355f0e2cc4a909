package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_RegisterReplacesConnection(t *testing.T) {
	h := NewHub()

	old := &connection{userID: 7, send: make(chan []byte, 1), appointments: map[int64]bool{}}
	h.register(old)

	next := &connection{userID: 7, send: make(chan []byte, 1), appointments: map[int64]bool{}}
	h.register(next)

	// the displaced connection's send channel is closed so its write
	// pump tears the socket down
	_, ok := <-old.send
	assert.False(t, ok)

	h.mu.RLock()
	assert.Same(t, next, h.connections[7])
	h.mu.RUnlock()
}

func TestHub_UnregisterIgnoresStaleConnection(t *testing.T) {
	h := NewHub()

	old := &connection{userID: 7, send: make(chan []byte, 1), appointments: map[int64]bool{}}
	h.register(old)

	next := &connection{userID: 7, send: make(chan []byte, 1), appointments: map[int64]bool{}}
	h.register(next)

	// the old connection's read pump unregisters on its way out; the
	// replacement must survive that
	h.unregister(old)

	h.mu.RLock()
	assert.Same(t, next, h.connections[7])
	h.mu.RUnlock()
}

func TestHub_BroadcastOnlyToSubscribers(t *testing.T) {
	h := NewHub()

	subscribed := &connection{userID: 1, send: make(chan []byte, 1), appointments: map[int64]bool{10: true}}
	other := &connection{userID: 2, send: make(chan []byte, 1), appointments: map[int64]bool{}}
	h.register(subscribed)
	h.register(other)

	h.BroadcastToAppointment(10, &WSEvent{Type: EventNewMessage, AppointmentID: 10})

	assert.Len(t, subscribed.send, 1)
	assert.Empty(t, other.send)
}
