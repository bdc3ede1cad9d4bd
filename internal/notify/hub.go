package notify

import (
	"sync"

	"github.com/golfimprover/golfimprover/internal/model"
)

// Hub fans notifications out to live subscribers. Each connected client holds
// one subscription; delivery is best-effort and a slow consumer is skipped
// rather than blocking the writer. Persisted state lives in the repository;
// the hub only carries the push.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *model.Notification]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan *model.Notification]struct{}),
	}
}

// Subscribe registers a listener for the user's notifications. The returned
// cancel func tears the subscription down and must be called when the
// consumer disconnects.
func (h *Hub) Subscribe(userID string) (<-chan *model.Notification, func()) {
	ch := make(chan *model.Notification, 16)

	h.mu.Lock()
	subs, ok := h.subscribers[userID]
	if !ok {
		subs = make(map[chan *model.Notification]struct{})
		h.subscribers[userID] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs, ok := h.subscribers[userID]
		if !ok {
			return
		}
		if _, ok := subs[ch]; !ok {
			return
		}
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(h.subscribers, userID)
		}
	}

	return ch, cancel
}

// Publish delivers the notification to the user's live subscribers, if any.
func (h *Hub) Publish(notification *model.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[notification.UserID] {
		select {
		case ch <- notification:
		default:
			// Subscriber buffer full, skip it
		}
	}
}
