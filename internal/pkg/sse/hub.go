package sse

import (
	"sync"
)

// Event is a named message delivered to one user's streams.
type Event struct {
	Username string
	Name     string
	Data     interface{}
}

// Hub fans events out to the open streams of each user.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	bufferSize  int
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		bufferSize:  16,
	}
}

// Subscribe registers a stream for username. The returned cleanup removes
// and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(username string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.bufferSize)
	if h.subscribers[username] == nil {
		h.subscribers[username] = make(map[chan Event]struct{})
	}
	h.subscribers[username][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[username], ch)
			close(ch)
			if len(h.subscribers[username]) == 0 {
				delete(h.subscribers, username)
			}
		})
	}

	return ch, cleanup
}

// Publish delivers event to every stream of username and reports how many
// received it. Full buffers are skipped.
func (h *Hub) Publish(username string, event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.Username = username
	delivered := 0
	for ch := range h.subscribers[username] {
		select {
		case ch <- event:
			delivered++
		default:
		}
	}
	return delivered
}

// PublishToMany sends an event to multiple users
func (h *Hub) PublishToMany(usernames []string, event Event) int {
	delivered := 0
	for _, username := range usernames {
		delivered += h.Publish(username, event)
	}
	return delivered
}

// SubscriberCount returns the number of active streams for a user
func (h *Hub) SubscriberCount(username string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[username])
}

// TotalSubscribers returns the total number of active streams across all users
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
