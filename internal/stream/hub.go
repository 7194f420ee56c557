// Package stream broadcasts committed generations to WebSocket clients.
package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"cell-society/internal/core"
)

const writeWait = 10 * time.Second

// Frame is one committed generation as sent to clients.
type Frame struct {
	Generation int                `json:"generation"`
	Variant    string             `json:"variant"`
	Rows       int                `json:"rows"`
	Cols       int                `json:"cols"`
	Counts     map[string]int     `json:"counts"`
	States     []int              `json:"states"`
	Agents     []core.AgentRecord `json:"agents,omitempty"`
}

// FrameOf captures g's committed state.
func FrameOf(g *core.Grid) Frame {
	snap := g.Snapshot()
	return Frame{
		Generation: snap.Generation,
		Variant:    snap.Variant,
		Rows:       snap.Rows,
		Cols:       snap.Cols,
		Counts:     g.StateCounts(),
		States:     snap.States,
		Agents:     snap.Agents,
	}
}

// Hub fans frames out to every connected client. It is a core.Observer and
// an http.Handler that upgrades requests to WebSocket connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
	last    []byte

	upgrader   websocket.Upgrader
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewHub starts a hub's broadcaster goroutine.
func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	h.wg.Add(1)
	go h.run()
	return h
}

// Observe queues g's current generation for broadcast. Frames are dropped
// when clients fall too far behind.
func (h *Hub) Observe(g *core.Grid) {
	data, err := json.Marshal(FrameOf(g))
	if err != nil {
		slog.Warn("encode frame", "generation", g.Generation(), "err", err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		slog.Debug("frame dropped", "generation", g.Generation())
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade", "remote", r.RemoteAddr, "err", err)
		return
	}
	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			last := h.last
			h.mu.Unlock()
			if last != nil {
				h.send([]*websocket.Conn{conn}, last)
			}

		case conn := <-h.unregister:
			h.mu.Lock()
			if h.clients[conn] {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			h.last = data
			conns := make([]*websocket.Conn, 0, len(h.clients))
			for conn := range h.clients {
				conns = append(conns, conn)
			}
			h.mu.Unlock()
			h.send(conns, data)
		}
	}
}

// send writes data to conns outside the lock and drops the ones that fail.
func (h *Hub) send(conns []*websocket.Conn, data []byte) {
	var failed []*websocket.Conn
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			failed = append(failed, conn)
			conn.Close()
		}
	}
	if len(failed) == 0 {
		return
	}
	h.mu.Lock()
	for _, conn := range failed {
		delete(h.clients, conn)
	}
	h.mu.Unlock()
}

// Close disconnects every client and stops the broadcaster.
func (h *Hub) Close() error {
	h.closeOnce.Do(func() {
		close(h.done)
		h.wg.Wait()
		h.mu.Lock()
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
		h.mu.Unlock()
	})
	return nil
}
