package socket

import (
	"encoding/json"
	"sync"

	"smartnotes/pkg/logger"
)

const (
	NoteCreatedType = "NOTE_CREATED"
	NoteUpdatedType = "NOTE_UPDATED"
	NoteDeletedType = "NOTE_DELETED"
)

// Event is a change notification pushed to every feed subscriber.
type Event struct {
	Type    string          `json:"type"`
	NoteID  string          `json:"note_id"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub fans note events out to connected websocket clients. Run owns the
// client set; everything else talks to it through channels.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once

	mu      sync.Mutex
	count   int
	running bool
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	h.mu.Lock()
	h.running = true
	h.mu.Unlock()
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.setCount(len(h.clients))
			logger.Sugar.Debugf("Feed client %s connected", client.ID)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.setCount(len(h.clients))
				logger.Sugar.Debugf("Feed client %s disconnected", client.ID)
			}

		case event := <-h.broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling feed event: %v", err)
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Lagging client; drop it rather than block the hub.
					logger.Sugar.Warnf("Feed client %s send buffer is full. Dropping.", client.ID)
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.setCount(len(h.clients))

		case <-h.quit:
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.setCount(0)
			return
		}
	}
}

// Publish queues an event for broadcast. It never blocks once the hub has
// been stopped.
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event:
	case <-h.quit:
	}
}

// Stop terminates Run and closes every client's send channel. Safe to call
// more than once, and before Run has started; a Run started after Stop
// returns immediately.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })

	h.mu.Lock()
	running := h.running
	h.mu.Unlock()
	if running {
		<-h.done
	}
}

// ClientCount is the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}
