package devserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/jigarkkarangiya/docs/pkg/logging"
	"github.com/jigarkkarangiya/docs/pkg/metrics"
)

const writeTimeout = 5 * time.Second

// Event is sent to live-reload clients.
type Event struct {
	Type string `json:"type"`
}

// ReloadEvent tells clients to reload the page.
var ReloadEvent = Event{Type: "reload"}

// hub tracks connected live-reload clients.
type hub struct {
	clients map[*websocket.Conn]struct{}
	mu      sync.RWMutex

	logger  logging.Logger
	metrics *metrics.Metrics
}

func newHub(logger logging.Logger, m *metrics.Metrics) *hub {
	return &hub{
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger,
		metrics: m,
	}
}

// ServeHTTP upgrades the request and holds the connection until the client
// goes away. Client messages are discarded.
func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Debug("live reload upgrade failed", logging.Err(err))
		return
	}

	h.add(conn)
	defer h.remove(conn)

	ctx := conn.CloseRead(r.Context())
	<-ctx.Done()
}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.metrics.SetReloadClients(n)
	h.logger.Debug("live reload client connected", logging.Int("clients", n))
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, conn)
	n := len(h.clients)
	h.mu.Unlock()

	h.metrics.SetReloadClients(n)
}

func (h *hub) snapshot() []*websocket.Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	return conns
}

// Len is the number of connected clients.
func (h *hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcast sends ev to every client. Clients that cannot be written to are
// closed and dropped.
func (h *hub) broadcast(ctx context.Context, ev Event) {
	conns := h.snapshot()
	for _, conn := range conns {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := wsjson.Write(wctx, conn, ev)
		cancel()
		if err != nil {
			h.logger.Debug("dropping live reload client", logging.Err(err))
			conn.Close(websocket.StatusGoingAway, "write failed")
			h.remove(conn)
		}
	}

	h.metrics.ObserveReload()
	h.logger.Debug("live reload sent", logging.String("type", ev.Type), logging.Int("clients", len(conns)))
}

// closeAll disconnects every client.
func (h *hub) closeAll(context.Context) error {
	for _, conn := range h.snapshot() {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		h.remove(conn)
	}
	return nil
}
