package ws

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Client é um painel conectado. PlayerID vazio assina os eventos de todos os jogadores
// (visão de gestor).
type Client struct {
	ID       string
	PlayerID string
	Send     chan []byte
}

type topicMsg struct {
	playerID string // "" = todos
	msg      []byte
}

type unicastMsg struct {
	id  string
	msg []byte
}

type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // id -> client
	register chan *Client
	unreg    chan *Client

	publish chan topicMsg
	unicast chan unicastMsg

	log     *slog.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID atomic.Uint64
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		publish:  make(chan topicMsg, 1024),
		unicast:  make(chan unicastMsg, 1024),
		log:      log.With("cmp", "ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (h *Hub) newID() string {
	id := h.nextID.Add(1)
	return fmt.Sprintf("c%d", id)
}

func (h *Hub) Run() {
	h.log.Info("hub_run_start")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client_registered", "id", c.ID, "player_id", c.PlayerID, "total", total)

		case c := <-h.unreg:
			if c == nil || c.ID == "" {
				continue
			}
			h.mu.Lock()
			h.drop(c.ID)
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client_unregistered", "id", c.ID, "total", total)

		case m := <-h.publish:
			h.mu.Lock()
			for id, c := range h.clients {
				if m.playerID != "" && c.PlayerID != "" && c.PlayerID != m.playerID {
					continue
				}
				if !trySend(c, m.msg) {
					// cliente lento -> dropa para não travar o hub
					h.drop(id)
					h.log.Warn("send_drop_slow", "id", id)
				}
			}
			h.mu.Unlock()

		case u := <-h.unicast:
			h.mu.Lock()
			c := h.clients[u.id]
			if c == nil {
				h.mu.Unlock()
				h.log.Warn("send_one_miss", "id", u.id)
				continue
			}
			if !trySend(c, u.msg) {
				h.drop(u.id)
				h.log.Warn("send_one_drop_slow", "id", u.id)
			}
			h.mu.Unlock()

		case <-h.stop:
			h.mu.Lock()
			for id := range h.clients {
				h.drop(id)
			}
			h.mu.Unlock()
			h.log.Info("hub_run_stop")
			return
		}
	}
}

// drop exige h.mu travado.
func (h *Hub) drop(id string) {
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.Send)
	}
}

func trySend(c *Client, msg []byte) bool {
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Register atribui o ID antes de entregar ao loop.
func (h *Hub) Register(c *Client) {
	if c.ID == "" {
		c.ID = h.newID()
	}
	h.register <- c
}

func (h *Hub) Unregister(c *Client) { h.unreg <- c }

// Publish entrega para os clientes do jogador e para os assinantes de todos.
func (h *Hub) Publish(playerID string, b []byte) { h.publish <- topicMsg{playerID: playerID, msg: b} }
func (h *Hub) Broadcast(b []byte)                { h.Publish("", b) }
func (h *Hub) SendToClient(id string, b []byte)  { h.unicast <- unicastMsg{id: id, msg: b} }
