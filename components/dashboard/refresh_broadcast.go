package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// subscriberBuffer bounds how far a listener may fall behind before
// events are dropped for it.
const subscriberBuffer = 8

type layoutSubscriber struct {
	ch   chan LayoutEvent
	stop sync.Once
}

// BroadcastHook fans layout events out to in-process subscribers so open
// browser sessions can refresh when a layout changes. It satisfies the
// RefreshHook interface.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[*layoutSubscriber]struct{}
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{
		subs: make(map[*layoutSubscriber]struct{}),
	}
}

// LayoutUpdated delivers the event to every subscriber. A subscriber whose
// buffer is full loses the event; mutations never block on listeners.
func (h *BroadcastHook) LayoutUpdated(ctx context.Context, event LayoutEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe registers a listener and returns its event channel together
// with a cancel func. Cancel closes the channel and is safe to call more
// than once.
func (h *BroadcastHook) Subscribe() (<-chan LayoutEvent, func()) {
	sub := &layoutSubscriber{ch: make(chan LayoutEvent, subscriberBuffer)}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		sub.stop.Do(func() {
			h.mu.Lock()
			delete(h.subs, sub)
			h.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams layout events as JSON
// frames until the client goes away.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer conn.Close()

	h.stream(r.Context(), func(event LayoutEvent) error {
		return conn.WriteJSON(event)
	})
}

// ServeSSE streams layout events over Server-Sent Events.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)

	h.stream(r.Context(), func(event LayoutEvent) error {
		if _, err := w.Write([]byte("data: ")); err != nil {
			return err
		}
		if err := encoder.Encode(event); err != nil {
			return err
		}
		if _, err := w.Write([]byte("\n")); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
}

// stream subscribes and forwards events through send until the context is
// done or send fails.
func (h *BroadcastHook) stream(ctx context.Context, send func(LayoutEvent) error) {
	events, cancel := h.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := send(event); err != nil {
				return
			}
		}
	}
}
