package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sweeney/desk-clock/internal/status"
)

const (
	topicStatus = "status"
	topicEvent  = "event"

	pushInterval = 250 * time.Millisecond
	writeWait    = 5 * time.Second
	clientQueue  = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts requests without an Origin header and those whose
// Origin host matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, scheme := range []string{"http://", "https://"} {
		if strings.HasPrefix(origin, scheme) {
			return origin[len(scheme):] == r.Host
		}
	}
	return false
}

// WSMessage is one frame of the websocket feed.
type WSMessage struct {
	Topic string          `json:"topic"`
	Data  json.RawMessage `json:"data"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// hub fans messages out to connected websocket clients.
type hub struct {
	mu      sync.RWMutex
	clients map[*wsClient]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[*wsClient]struct{})}
}

func (h *hub) add(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// remove unregisters c and closes its queue. Safe to call more than once.
func (h *hub) remove(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *hub) publish(topic string, data []byte) {
	msg, err := json.Marshal(WSMessage{Topic: topic, Data: data})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Queue full, skip
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// pushLoop sends the status to websocket clients whenever the tracker
// reports a change.
func (s *Server) pushLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last uint64
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if s.hub.count() == 0 {
				continue
			}
			v := s.tracker.Version()
			if v == last {
				continue
			}
			last = v
			s.hub.publish(topicStatus, status.FormatCompact(s.tracker.Snapshot()))
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Printf("ws: upgrade: %v", err)
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, clientQueue)}
	first, _ := json.Marshal(WSMessage{Topic: topicStatus, Data: status.FormatCompact(s.tracker.Snapshot())})
	c.send <- first
	s.hub.add(c)

	go c.writePump()
	c.readPump(s.hub)
}

// readPump discards client frames and unregisters the client when the
// connection ends.
func (c *wsClient) readPump(h *hub) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
}
