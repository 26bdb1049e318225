package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/monocle-dev/tracker/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Event is pushed to every client watching a project.
type Event struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	ProjectID uint   `json:"project_id"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// Hub tracks websocket clients per project.
type Hub struct {
	clients  map[uint]map[*client]struct{}
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

func NewHub(allowedOrigins []string) *Hub {
	h := &Hub{clients: make(map[uint]map[*client]struct{})}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
	return h
}

// ProjectChanged tells every client of the project to refresh.
func (h *Hub) ProjectChanged(projectID uint) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients[projectID]))
	for c := range h.clients[projectID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	event := Event{Type: "refresh", Message: "Project data updated", ProjectID: projectID}
	for _, c := range clients {
		if err := c.write(event); err != nil {
			log.Debug().Err(err).Uint("project_id", projectID).Msg("dropping websocket client")
			h.remove(projectID, c)
			c.conn.Close()
		}
	}
}

// Clients returns the number of clients connected to the project.
func (h *Hub) Clients(projectID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[projectID])
}

func (h *Hub) add(projectID uint, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[projectID] == nil {
		h.clients[projectID] = make(map[*client]struct{})
	}
	h.clients[projectID][c] = struct{}{}
	metrics.WebsocketClients.Inc()
}

func (h *Hub) remove(projectID uint, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, exists := h.clients[projectID]
	if !exists {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	metrics.WebsocketClients.Dec()
	if len(clients) == 0 {
		delete(h.clients, projectID)
	}
}

// Serve upgrades the request and keeps the connection registered for
// projectID until the client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, projectID uint) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Uint("project_id", projectID).Msg("websocket upgrade failed")
		return
	}

	c := &client{conn: conn}

	conn.SetReadLimit(maxMessageSize)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.add(projectID, c)

	done := make(chan struct{})
	defer func() {
		close(done)
		h.remove(projectID, c)
		conn.Close()
		log.Debug().Uint("project_id", projectID).Msg("websocket connection closed")
	}()

	if err := c.write(Event{Type: "connected", Message: "WebSocket connection established", ProjectID: projectID}); err != nil {
		return
	}

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := c.ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return
		}
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Uint("project_id", projectID).Msg("websocket error")
			}
			return
		}
	}
}
