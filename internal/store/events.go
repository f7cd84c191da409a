package store

import "sync"

// EventKind labels what changed.
type EventKind string

const (
	BlockAdded   EventKind = "added"
	BlockUpdated EventKind = "updated"
	BlockRemoved EventKind = "removed"
)

// Event signals that the committed state changed. This is coarse
// invalidation, not incremental sync: subscribers are expected to refetch
// the lists they care about rather than patch local copies. Slow consumers
// lose events, which is fine under that contract.
type Event struct {
	Kind EventKind
	ID   string
}

// hub fans change events out to subscribers.
type hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func (h *hub) subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs == nil {
		h.subs = make(map[int]chan Event)
	}
	id := h.nextID
	h.nextID++
	ch := make(chan Event, 16)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (h *hub) publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
