package chat

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

// WSEvent is a real-time event pushed to clients
type WSEvent struct {
	Type          string      `json:"type"`
	AppointmentID int64       `json:"appointment_id"`
	Payload       interface{} `json:"payload,omitempty"`
}

const (
	EventNewMessage = "new_message"
	EventTyping     = "typing"
)

// connection represents a single WebSocket client
type connection struct {
	userID       int64
	conn         *websocket.Conn
	send         chan []byte
	appointments map[int64]bool // subscribed appointment IDs
}

// Hub manages all active WebSocket connections
type Hub struct {
	mu          sync.RWMutex
	connections map[int64]*connection // userID -> connection
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	// a reconnect displaces the previous connection; closing its send
	// channel lets its write pump shut the socket down
	if old, ok := h.connections[c.userID]; ok {
		close(old.send)
	}
	h.connections[c.userID] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.userID]; ok && existing == c {
		delete(h.connections, c.userID)
		close(c.send)
	}
}

// BroadcastToAppointment sends an event to every connected subscriber of
// the appointment's conversation.
func (h *Hub) BroadcastToAppointment(appointmentID int64, event *WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		if c.appointments[appointmentID] {
			select {
			case c.send <- data:
			default:
				// client too slow, skip
			}
		}
	}
}

// ServeWS registers a new connection and starts read/write loops
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64, initialAppointments []int64) {
	c := &connection{
		userID:       userID,
		conn:         conn,
		send:         make(chan []byte, 256),
		appointments: make(map[int64]bool),
	}

	for _, id := range initialAppointments {
		c.appointments[id] = true
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c) // blocks until disconnect
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var event struct {
			Type          string `json:"type"`
			AppointmentID int64  `json:"appointment_id"`
		}
		if err := json.Unmarshal(msg, &event); err != nil {
			continue
		}

		switch event.Type {
		case "subscribe":
			h.mu.Lock()
			c.appointments[event.AppointmentID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.appointments, event.AppointmentID)
			h.mu.Unlock()
		case "typing":
			h.BroadcastToAppointment(event.AppointmentID, &WSEvent{
				Type:          EventTyping,
				AppointmentID: event.AppointmentID,
				Payload:       map[string]int64{"user_id": c.userID},
			})
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
