package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"

	"github.com/dialkit-go/dialkit/internal/errors"
)

// client is one WebSocket connection.
type client struct {
	hub    *Hub
	conn   *websocket.Conn
	config *Config
	remote string
	logger *slog.Logger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied.
		s.logger.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		if s.config.Metrics != nil {
			s.config.Metrics.RecordWebSocketError("upgrade")
		}
		return
	}

	c := &client{
		hub:    s.hub,
		conn:   conn,
		config: s.config,
		remote: r.RemoteAddr,
		logger: s.hub.logger,
		send:   make(chan []byte, s.config.SendQueue),
		done:   make(chan struct{}),
	}
	if !s.hub.register(c) {
		c.close()
		return
	}

	go c.writeLoop()
	c.readLoop()
}

// enqueue queues data without blocking. It reports false when the queue is
// full. Data for a closed client is discarded.
func (c *client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return true
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close stops the write loop, sends a close frame and closes the
// connection.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		deadline := time.Now().Add(time.Second)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = c.conn.Close()
	})
}

// readLoop reads client requests until the connection fails.
func (c *client) readLoop() {
	defer c.hub.unregister(c)

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	})

	for {
		c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))

		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.logger.Error("read error", "error", err)
				if c.hub.metrics != nil {
					c.hub.metrics.RecordWebSocketError("read")
				}
			}
			return
		}
		c.handle(msg)
	}
}

// writeLoop drains the send queue and pings the client.
func (c *client) writeLoop() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug("write error", "error", err)
				c.hub.unregister(c)
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(c.config.WriteWait)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.hub.unregister(c)
				return
			}

		case <-c.done:
			return
		}
	}
}

// handle decodes and applies one client request.
func (c *client) handle(data []byte) {
	s := c.hub.server
	if !gjson.ValidBytes(data) {
		c.fail("", errors.New("D060").WithDetail("message is not valid JSON"))
		return
	}
	msg := gjson.ParseBytes(data)
	typ := msg.Get("type").String()
	panelID := msg.Get("panelId").String()
	path := msg.Get("path").String()

	label := typ
	var err error
	switch typ {
	case MsgUpdate:
		_, err = s.updateValue(panelID, path, msg.Get("value").Value())
	case MsgMode:
		err = s.updateMode(panelID, path, msg.Get("mode").String())
	case MsgAction:
		err = s.trigger(panelID, path)
	case MsgLoad:
		err = s.loadPreset(panelID, msg.Get("presetId").String())
	case MsgClear:
		err = s.clearPreset(panelID)
	case MsgSave:
		name := msg.Get("name").String()
		if name == "" {
			err = errors.New("D060").WithDetail("preset name is empty")
			break
		}
		var id string
		if id, err = s.savePreset(panelID, name); err == nil {
			c.hub.send(c, MsgSaved, SavedMessage{Type: MsgSaved, PanelID: panelID, ID: id, Name: name})
		}
	case MsgRename:
		err = s.renamePreset(panelID, msg.Get("presetId").String(), msg.Get("name").String())
	case MsgDelete:
		presetID := msg.Get("presetId").String()
		if err = s.requirePreset(panelID, presetID); err == nil {
			s.store.DeletePreset(panelID, presetID)
		}
	default:
		label = "unknown"
		err = errors.New("D063").WithDetail(typ)
	}

	if c.hub.metrics != nil {
		c.hub.metrics.RecordMessage("in", label)
	}
	if err != nil {
		c.fail(typ, err)
	}
}

// fail answers a request with an error message.
func (c *client) fail(request string, err error) {
	de := errors.FromError(err, "D060")
	c.logger.Debug("request failed", "request", request, "code", de.Code, "error", de.FormatCompact())
	c.hub.send(c, MsgError, ErrorMessage{Type: MsgError, Request: request, Error: de})
}
