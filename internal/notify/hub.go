package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Signal is the payload of a push notification. Signals carry no data;
// receivers are expected to re-fetch state when one arrives.
type Signal string

const (
	SignalConnected Signal = "connected"
	SignalHeartbeat Signal = "heartbeat"
	SignalUpdate    Signal = "update"
)

// Subscriber is one live push connection. Its channel is owned by the hub and
// closed on Unsubscribe.
type Subscriber struct {
	id string
	ch chan Signal
}

func (s *Subscriber) ID() string {
	return s.id
}

func (s *Subscriber) C() <-chan Signal {
	return s.ch
}

// Hub is the registry of open push connections. Registration, removal and
// broadcast are all safe to call concurrently.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		id: uuid.New().String(),
		ch: make(chan Signal, 8),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Unsubscribe removes sub from the registry and closes its channel. Calling it
// again for the same subscriber is a no-op. The channel is closed under the
// write lock, so a concurrent Broadcast can never send on a closed channel.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
}

// Broadcast delivers sig to every registered subscriber, best effort. A
// subscriber whose buffer is full is skipped rather than blocking the sender;
// the hub never buffers or retries missed signals.
func (h *Hub) Broadcast(sig Signal) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case sub.ch <- sig:
		default:
		}
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
