// Package feed streams decisions to WebSocket watchers, grouped by game.
package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/websocket"

	"github.com/tonobo/battlesnake-lookahead/internal/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Event struct {
	GameID   string           `json:"game_id"`
	Turn     int              `json:"turn"`
	Event    string           `json:"event"`
	Decision *engine.Decision `json:"decision,omitempty"`
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	gameID string
}

// Hub keeps the watchers of every game. All bookkeeping happens on the Run
// goroutine.
type Hub struct {
	games      map[string]map[*client]bool
	broadcast  chan *Event
	register   chan *client
	unregister chan *client
	done       chan struct{}
	logger     log.Logger
}

func NewHub(logger log.Logger) *Hub {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Hub{
		games:      make(map[string]map[*client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is cancelled, then disconnects every watcher.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.games {
				for c := range clients {
					h.unregisterClient(c)
				}
			}
			return
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case e := <-h.broadcast:
			h.broadcastEvent(e)
		}
	}
}

// Publish queues e for the watchers of e.GameID. It never blocks a turn;
// events are dropped when the queue is full.
func (h *Hub) Publish(e *Event) {
	select {
	case h.broadcast <- e:
	default:
		_ = level.Warn(h.logger).Log("msg", "feed queue full, dropping event", "game", e.GameID, "turn", e.Turn)
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, gameID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		_ = level.Warn(h.logger).Log("msg", "websocket upgrade failed", "err", err)
		return
	}
	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		gameID: gameID,
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (h *Hub) registerClient(c *client) {
	if h.games[c.gameID] == nil {
		h.games[c.gameID] = make(map[*client]bool)
	}
	h.games[c.gameID][c] = true
	_ = level.Debug(h.logger).Log("msg", "watcher registered", "game", c.gameID, "watchers", len(h.games[c.gameID]))
}

func (h *Hub) unregisterClient(c *client) {
	clients, ok := h.games[c.gameID]
	if !ok || !clients[c] {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.games, c.gameID)
	}
	_ = level.Debug(h.logger).Log("msg", "watcher unregistered", "game", c.gameID, "watchers", len(clients))
}

func (h *Hub) broadcastEvent(e *Event) {
	clients, ok := h.games[e.GameID]
	if !ok {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		_ = level.Error(h.logger).Log("msg", "marshal feed event", "err", err)
		return
	}
	for c := range clients {
		select {
		case c.send <- data:
		default:
			h.unregisterClient(c)
		}
	}
}

// readPump only keeps the connection alive; watchers never send anything
// the hub acts on.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				_ = level.Warn(c.hub.logger).Log("msg", "websocket read", "game", c.gameID, "err", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
