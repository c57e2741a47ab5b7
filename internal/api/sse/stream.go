package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	// Time between keepalive pings. Failed pings are how dead clients
	// are detected, since streams run without a write deadline.
	pingPeriod = 15 * time.Second
)

// Event is one named server-sent event with a JSON payload
type Event struct {
	Name string
	Data any
}

// Format renders the event in wire format
func (e Event) Format() ([]byte, error) {
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return nil, fmt.Errorf("marshaling sse payload: %w", err)
	}
	return []byte("event: " + e.Name + "\ndata: " + string(payload) + "\n\n"), nil
}

// Stream writes server-sent events from the channel to the client until
// the channel closes or the client disconnects. It sends an initial
// "connected" event and periodic keepalive comments.
func Stream(w http.ResponseWriter, r *http.Request, events <-chan Event) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return fmt.Errorf("response writer does not support flushing")
	}

	// The server's write timeout is an absolute deadline that would cut
	// the stream off mid-game; lift it for this response and rely on the
	// keepalive pings to detect dead clients instead
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// Send initial connection event
	_, _ = w.Write([]byte("event: connected\ndata: {\"status\":\"connected\"}\n\n"))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			message, err := event.Format()
			if err != nil {
				return err
			}
			if _, err := w.Write(message); err != nil {
				return nil
			}
			flusher.Flush()

		case <-ticker.C:
			// Send keepalive comment
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return nil
			}
			flusher.Flush()

		case <-r.Context().Done():
			// Client disconnected
			return nil
		}
	}
}
