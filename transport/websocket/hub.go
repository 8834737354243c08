package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 1024

	sendBufferSize = 64
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// writePump - the only goroutine writing to the connection.
func (that *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case data, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub - keeps the connections watching each game and fans out updates to them.
type Hub struct {
	logger *slog.Logger

	mu       sync.RWMutex
	watchers map[string]map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:   logger.With("component", "hub"),
		watchers: make(map[string]map[*client]struct{}),
	}
}

func (that *Hub) watch(gameID string, c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.watchers[gameID] == nil {
		that.watchers[gameID] = make(map[*client]struct{})
	}
	that.watchers[gameID][c] = struct{}{}
}

// release - drops c from every game and closes its send channel.
func (that *Hub) release(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for gameID, clients := range that.watchers {
		delete(clients, c)
		if len(clients) == 0 {
			delete(that.watchers, gameID)
		}
	}

	close(c.send)
}

// Publish - sends the game to every connection watching it.
func (that *Hub) Publish(game *entity.Game) {
	log := that.logger.With("method", "Publish", "game_id", game.ID)

	data, err := encodeMessage(actionUpdate, Payload{ID: game.ID, Game: newGamePayload(game)})
	if err != nil {
		log.Error("failed to marshal game update", "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for c := range that.watchers[game.ID] {
		select {
		case c.send <- data:
		default:
			log.Warn("send buffer is full, update dropped")
		}
	}
}

func (that *Hub) watcherCount(gameID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.watchers[gameID])
}
