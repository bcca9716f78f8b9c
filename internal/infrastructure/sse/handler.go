// Package sse streams audit events to dashboard clients via Server-Sent
// Events.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/sazyar/sazyar/pkg/domain"
)

// Broker fans audit events out to connected SSE clients.
type Broker struct {
	mu      sync.RWMutex
	clients map[chan domain.Event]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		clients: make(map[chan domain.Event]struct{}),
	}
}

// Publish delivers an event to every connected client. Slow clients are
// skipped rather than blocking the publisher.
func (b *Broker) Publish(e domain.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- e:
		default:
			// Drop if client is slow
		}
	}
}

// ClientCount reports connected clients. Used in tests.
func (b *Broker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// ServeHTTP handles SSE connections. The optional "actions" query parameter
// restricts the stream to a comma-separated set of event actions.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	actionFilter := make(map[string]bool)
	if actions := r.URL.Query().Get("actions"); actions != "" {
		for _, a := range strings.Split(actions, ",") {
			actionFilter[strings.TrimSpace(a)] = true
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	ch := make(chan domain.Event, 64)

	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.clients, ch)
		b.mu.Unlock()
		close(ch)
	}()

	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}

			if len(actionFilter) > 0 && !actionFilter[event.Action] {
				continue
			}

			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Action, payload)
			flusher.Flush()
		}
	}
}
