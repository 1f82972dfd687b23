package server

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/dialkit-go/dialkit/pkg/middleware"
	"github.com/dialkit-go/dialkit/pkg/store"
)

// Hub fans store changes out to connected WebSocket clients.
type Hub struct {
	server  *Server
	store   *store.Store
	metrics *middleware.Metrics
	logger  *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	watched map[string]*watch
	stop    func()
	started bool
	closed  bool
}

// watch holds the store subscriptions of one panel.
type watch struct {
	stops []func()
}

func newHub(s *Server) *Hub {
	return &Hub{
		server:  s,
		store:   s.store,
		metrics: s.config.Metrics,
		logger:  s.logger.With("component", "hub"),
		clients: make(map[*client]struct{}),
		watched: make(map[string]*watch),
	}
}

// start subscribes to panel registration and to every registered panel.
func (h *Hub) start() {
	h.mu.Lock()
	if h.started || h.closed {
		h.mu.Unlock()
		return
	}
	h.started = true
	h.mu.Unlock()

	stop := h.store.SubscribeGlobal(h.onRegistry)
	h.mu.Lock()
	h.stop = stop
	h.mu.Unlock()

	for _, p := range h.store.Panels() {
		h.watch(p.ID)
	}
}

func (h *Hub) onRegistry(c store.Change) {
	switch c.Op {
	case store.OpRegister:
		h.watch(c.PanelID)
	case store.OpUnregister:
		h.unwatch(c.PanelID)
	}
	h.broadcast(MsgPanels, h.panelsMessage())
}

// watch subscribes to value changes and actions of panel id. Watching a
// panel twice is a no-op.
func (h *Hub) watch(id string) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	if _, ok := h.watched[id]; ok {
		h.mu.Unlock()
		return
	}
	w := &watch{}
	h.watched[id] = w
	h.mu.Unlock()

	stops := []func(){
		h.store.Subscribe(id, h.onPanelChange),
		h.store.SubscribeActions(id, func(path string) {
			h.broadcast(MsgAction, ActionMessage{Type: MsgAction, PanelID: id, Path: path})
		}),
	}

	h.mu.Lock()
	if h.watched[id] != w {
		// Unwatched or closed meanwhile.
		h.mu.Unlock()
		for _, stop := range stops {
			stop()
		}
		return
	}
	w.stops = stops
	h.mu.Unlock()
}

func (h *Hub) unwatch(id string) {
	h.mu.Lock()
	w := h.watched[id]
	delete(h.watched, id)
	h.mu.Unlock()

	if w != nil {
		for _, stop := range w.stops {
			stop()
		}
	}
}

func (h *Hub) onPanelChange(c store.Change) {
	if c.Op == store.OpUnregister {
		return
	}
	h.broadcast(MsgValues, h.valuesMessage(c.PanelID, c.Op, c.Path))
}

// register adds c and queues the current panels and values for it. It
// reports false once the hub is closed.
func (h *Hub) register(c *client) bool {
	panels := h.panelsMessage()
	initial := []any{panels}
	for _, p := range panels.Panels {
		initial = append(initial, h.valuesMessage(p.ID, "", ""))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	for _, msg := range initial {
		data, err := json.Marshal(msg)
		if err != nil {
			h.logger.Error("encode failed", "error", err)
			continue
		}
		c.enqueue(data)
	}
	if h.metrics != nil {
		h.metrics.ClientConnected()
	}
	h.logger.Debug("client connected", "remote", c.remote, "clients", len(h.clients))
	return true
}

// unregister removes c. It is safe to call more than once.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	c.close()
	if h.metrics != nil {
		h.metrics.ClientDisconnected()
	}
	h.logger.Debug("client disconnected", "remote", c.remote, "clients", n)
}

// broadcast queues msg for every client. Clients whose queue is full are
// dropped.
func (h *Hub) broadcast(msgType string, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode failed", "type", msgType, "error", err)
		return
	}

	var slow []*client
	h.mu.Lock()
	for c := range h.clients {
		if !c.enqueue(data) {
			slow = append(slow, c)
			continue
		}
		if h.metrics != nil {
			h.metrics.RecordMessage("out", msgType)
		}
	}
	h.mu.Unlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow client", "remote", c.remote)
		if h.metrics != nil {
			h.metrics.RecordWebSocketError("slow_client")
		}
		h.unregister(c)
	}
}

// send queues msg for one client.
func (h *Hub) send(c *client, msgType string, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode failed", "type", msgType, "error", err)
		return
	}
	if !c.enqueue(data) {
		h.unregister(c)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordMessage("out", msgType)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// close disconnects every client and drops the store subscriptions.
func (h *Hub) close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	watched := h.watched
	h.watched = make(map[string]*watch)
	stop := h.stop
	h.mu.Unlock()

	if stop != nil {
		stop()
	}
	for _, w := range watched {
		for _, fn := range w.stops {
			fn()
		}
	}
	for _, c := range clients {
		h.unregister(c)
	}
}
