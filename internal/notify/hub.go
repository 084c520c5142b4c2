package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"arkiv/internal/domain"
)

// Client is one open streaming connection held by the hub.
type Client struct {
	ID string

	writer      StreamWriter
	connectedAt time.Time

	mu           sync.Mutex // serializes frame writes and guards lastActivity
	lastActivity time.Time

	done      chan struct{}
	closeOnce sync.Once
}

// Done is closed when the hub drops this client; the HTTP handler selects on
// it to tear the connection down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// write sends one frame and refreshes the activity timestamp on success.
func (c *Client) write(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writer.WriteFrame(frame); err != nil {
		return err
	}
	c.lastActivity = time.Now()
	return nil
}

func (c *Client) idleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}

// Hub is the registry of open notification connections. Mutations and
// broadcasts from any goroutine are safe; each connection is served by its
// own net/http goroutine.
type Hub struct {
	cfg    *Config
	logger *slog.Logger

	mu        sync.Mutex
	clients   map[string]*Client
	sweepStop chan struct{} // non-nil while the shared sweep is running
}

// NewHub creates an empty hub.
func NewHub(cfg *Config, logger *slog.Logger) *Hub {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Hub{
		cfg:     cfg,
		logger:  logger,
		clients: make(map[string]*Client),
	}
}

// Len returns the number of currently registered connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Subscribe registers a new connection. It rejects with a capacity error at
// the configured ceiling, sends the synthetic "connected" event so the
// client knows it is subscribed, and starts the per-connection keep-alive.
func (h *Hub) Subscribe(writer StreamWriter) (*Client, error) {
	now := time.Now()
	client := &Client{
		ID:           uuid.New().String(),
		writer:       writer,
		connectedAt:  now,
		lastActivity: now,
		done:         make(chan struct{}),
	}

	h.mu.Lock()
	if len(h.clients) >= h.cfg.MaxClients {
		h.mu.Unlock()
		return nil, &domain.CapacityError{Message: "notification channel is full, retry later"}
	}
	h.clients[client.ID] = client
	if h.sweepStop == nil {
		h.sweepStop = make(chan struct{})
		go h.sweep(h.sweepStop)
	}
	h.mu.Unlock()

	frame, err := encodeFrame(EventConnected, map[string]any{"client_id": client.ID})
	if err == nil {
		err = client.write(frame)
	}
	if err != nil {
		h.remove(client.ID)
		return nil, err
	}

	go h.keepAlive(client)

	h.logger.Debug("notification client subscribed",
		"client_id", client.ID,
		"clients", h.Len(),
	)
	return client, nil
}

// Unsubscribe removes a connection; the handler calls this when the
// underlying transport reports closure.
func (h *Hub) Unsubscribe(clientID string) {
	h.remove(clientID)
}

// Broadcast serializes the event once and writes it to every registered
// connection. A failed write drops only that connection; delivery to the
// others continues. Order across connections is not specified.
func (h *Hub) Broadcast(eventType string, payload map[string]any) {
	frame, err := encodeFrame(eventType, payload)
	if err != nil {
		h.logger.Error("failed to encode notification event",
			"event_type", eventType,
			"error", err,
		)
		return
	}

	for _, client := range h.snapshot() {
		if err := client.write(frame); err != nil {
			h.logger.Warn("dropping unwritable notification client",
				"client_id", client.ID,
				"event_type", eventType,
				"error", err,
			)
			h.remove(client.ID)
		}
	}
}

// Cleanup closes every connection and stops all timers; used during process
// shutdown to release sockets deterministically.
func (h *Hub) Cleanup() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*Client)
	if h.sweepStop != nil {
		close(h.sweepStop)
		h.sweepStop = nil
	}
	h.mu.Unlock()

	for _, client := range clients {
		client.close()
	}
	h.logger.Info("notification channel shut down", "closed", len(clients))
}

// keepAlive pings one connection on a fixed interval until the client is
// dropped or a write fails.
func (h *Hub) keepAlive(client *Client) {
	ticker := time.NewTicker(h.cfg.KeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			frame, err := encodeFrame(EventPing, nil)
			if err == nil {
				err = client.write(frame)
			}
			if err != nil {
				h.logger.Debug("keep-alive write failed, dropping client",
					"client_id", client.ID,
					"error", err,
				)
				h.remove(client.ID)
				return
			}

		case <-client.done:
			return
		}
	}
}

// sweep is the shared timer that force-closes idle or overaged connections,
// independent of client-side behavior. It stops when the registry empties.
func (h *Hub) sweep(stop chan struct{}) {
	ticker := time.NewTicker(h.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			for _, client := range h.snapshot() {
				idle := now.Sub(client.idleSince()) > h.cfg.IdleTimeout
				overaged := now.Sub(client.connectedAt) > h.cfg.MaxConnectionAge
				if idle || overaged {
					h.logger.Info("sweeping dead notification client",
						"client_id", client.ID,
						"idle", idle,
						"overaged", overaged,
					)
					h.remove(client.ID)
				}
			}

		case <-stop:
			return
		}
	}
}

// remove drops a client from the registry, cancels its timers via done, and
// stops the shared sweep when the registry becomes empty.
func (h *Hub) remove(clientID string) {
	h.mu.Lock()
	client, ok := h.clients[clientID]
	if ok {
		delete(h.clients, clientID)
	}
	if len(h.clients) == 0 && h.sweepStop != nil {
		close(h.sweepStop)
		h.sweepStop = nil
	}
	h.mu.Unlock()

	if ok {
		client.close()
	}
}

func (h *Hub) snapshot() []*Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	return clients
}
