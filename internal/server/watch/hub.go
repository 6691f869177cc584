// Package watch lets clients follow a collection and learn when its
// contents change. Notifications carry no payload: a subscriber re-reads
// the full snapshot on every tick, so a missed intermediate change is
// harmless.
package watch

import (
	"context"
	"sync"
)

// Hub fans change notifications out to subscribers, keyed by collection
// name ("tasks", "users").
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan struct{}]struct{})}
}

// Subscribe registers a listener on the collection and returns its
// channel. The channel starts with one pending notification so the
// subscriber renders the current snapshot before any change happens.
// The subscription is removed when ctx is done.
func (h *Hub) Subscribe(ctx context.Context, collection string) <-chan struct{} {
	ch := make(chan struct{}, 1)
	ch <- struct{}{}

	h.mu.Lock()
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[chan struct{}]struct{})
	}
	h.subs[collection][ch] = struct{}{}
	h.mu.Unlock()

	context.AfterFunc(ctx, func() {
		h.mu.Lock()
		delete(h.subs[collection], ch)
		h.mu.Unlock()
	})

	return ch
}

// Notify wakes every subscriber of the collection. The send is
// non-blocking: a subscriber that already has a pending notification
// coalesces this one into it.
func (h *Hub) Notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the current listener count for a collection.
func (h *Hub) Subscribers(collection string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[collection])
}
