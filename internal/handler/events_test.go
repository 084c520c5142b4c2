package handler

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"arkiv/internal/notify"
)

func newEventsServer(t *testing.T, maxClients int) (*httptest.Server, *notify.Hub) {
	t.Helper()

	cfg := notify.DefaultConfig()
	cfg.MaxClients = maxClients
	// Long timers so sweeping never interferes with the test.
	cfg.KeepAliveInterval = time.Hour
	cfg.SweepInterval = time.Hour
	cfg.IdleTimeout = time.Hour
	cfg.MaxConnectionAge = time.Hour

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := notify.NewHub(cfg, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/events", NewEventsHandler(hub, logger).Stream)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	t.Cleanup(hub.Cleanup)

	return server, hub
}

// readDataFrame reads lines until the next SSE data frame and decodes it.
func readDataFrame(t *testing.T, r *bufio.Reader) map[string]any {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("reading stream: %v", err)
		}
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var payload map[string]any
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &payload); err != nil {
			t.Fatalf("decoding frame %q: %v", line, err)
		}
		return payload
	}
}

func TestStreamSendsConnectedEvent(t *testing.T) {
	server, _ := newEventsServer(t, 10)

	resp, err := http.Get(server.URL + "/api/events")
	if err != nil {
		t.Fatalf("GET /api/events: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	frame := readDataFrame(t, bufio.NewReader(resp.Body))
	if frame["type"] != "connected" {
		t.Errorf("first frame type = %v, want connected", frame["type"])
	}
	if id, _ := frame["client_id"].(string); id == "" {
		t.Error("connected frame missing client_id")
	}
}

func TestStreamDeliversBroadcasts(t *testing.T) {
	server, hub := newEventsServer(t, 10)

	resp, err := http.Get(server.URL + "/api/events")
	if err != nil {
		t.Fatalf("GET /api/events: %v", err)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	readDataFrame(t, reader) // connected

	hub.Broadcast("folder_created", map[string]any{"folder_id": "f-1"})

	frame := readDataFrame(t, reader)
	if frame["type"] != "folder_created" {
		t.Errorf("frame type = %v, want folder_created", frame["type"])
	}
	if frame["folder_id"] != "f-1" {
		t.Errorf("folder_id = %v, want f-1", frame["folder_id"])
	}
	if frame["timestamp"] == nil {
		t.Error("frame missing timestamp")
	}
}

func TestStreamRejectsBeyondCapacity(t *testing.T) {
	server, _ := newEventsServer(t, 1)

	first, err := http.Get(server.URL + "/api/events")
	if err != nil {
		t.Fatalf("GET /api/events: %v", err)
	}
	defer first.Body.Close()
	readDataFrame(t, bufio.NewReader(first.Body))

	second, err := http.Get(server.URL + "/api/events")
	if err != nil {
		t.Fatalf("second GET /api/events: %v", err)
	}
	defer second.Body.Close()
	if second.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 at capacity", second.StatusCode)
	}
}
