/*
Package game contains the core logic of the clicker.

This file defines the Hub, the single global fan-out point for all connected
clients. It owns the client registry, runs the register/unregister/broadcast
loop, and implements the Broadcaster port the game core publishes through.
*/
package game

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"emclicker/internal/app/store"
	"emclicker/internal/pkg/logx"
)

const broadcastChannelBuffer = 1024

// Hub is the single global room every connection joins. It fans broadcast
// events out to all clients with no per-recipient filtering and no delivery
// guarantee; a client whose send queue is full simply misses the event.
type Hub struct {
	// game executes the event surface; it publishes back through this hub.
	game *Game

	// clients maps connection IDs to live clients.
	clients map[string]*Client

	// register queues clients joining the hub.
	register chan *Client

	// unregister queues clients leaving the hub.
	unregister chan *Client

	// broadcast carries pre-marshaled events for fan-out.
	broadcast chan []byte

	// stop signals the Run loop to terminate.
	stop chan struct{}

	// mu protects access to the clients map.
	mu sync.RWMutex

	// structured logger with hub context.
	logger zerolog.Logger
}

// NewHub constructs the hub together with its Game over the given store.
func NewHub(st *store.Store) *Hub {
	h := &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastChannelBuffer),
		stop:       make(chan struct{}),
		logger:     logx.Logger().With().Str("component", "hub").Logger(),
	}
	h.game = NewGame(st, h)

	return h
}

// Game returns the game core bound to this hub.
func (h *Hub) Game() *Game {
	return h.game
}

// Publish implements Broadcaster. The envelope is marshaled immediately, while
// the caller still holds the game lock, so payload snapshots cannot race with
// later mutations. Queueing is non-blocking; a full broadcast channel drops
// the event.
func (h *Hub) Publish(event string, payload any) {
	data, err := json.Marshal(Event{Type: event, Payload: payload})
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Error marshaling broadcast event.")
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn().Str("event", event).Msg("Broadcast channel full, dropping event.")
	}
}

// RegisterClient queues a client for registration with the hub.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.stop:
	}
}

// Run starts the hub's main event loop. New connections get the init push,
// departing connections release their nickname binding, and broadcast events
// fan out to every live client.
func (h *Hub) Run() {
	defer func() {
		h.mu.Lock()
		for _, c := range h.clients {
			closeSend(c)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()

		h.logger.Info().Msg("Hub run loop stopped.")
	}()

	h.logger.Info().Msg("Hub run loop started.")

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.session.ConnID] = c
			total := len(h.clients)
			h.mu.Unlock()

			h.logger.Info().
				Str("conn_id", c.session.ConnID).
				Int("total_clients", total).
				Msg("Client connected.")

			if err := c.sendEvent(EventInit, h.game.InitData()); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to queue init push.")
			}

		case c := <-h.unregister:
			h.mu.Lock()
			current, ok := h.clients[c.session.ConnID]
			if ok && current == c {
				delete(h.clients, c.session.ConnID)
				closeSend(c)
			}
			total := len(h.clients)
			h.mu.Unlock()

			if ok && current == c {
				h.game.Release(c.session)
				h.logger.Info().
					Str("conn_id", c.session.ConnID).
					Int("total_clients", total).
					Msg("Client disconnected.")
			} else {
				h.logger.Warn().
					Str("conn_id", c.session.ConnID).
					Msg("Unregister for unknown or stale client.")
			}

		case data := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.clients {
				select {
				case c.send <- data:
				default:
					c.logger.Warn().Msg("Client send channel full, dropping broadcast.")
				}
			}
			h.mu.RUnlock()

		case <-h.stop:
			return
		}
	}
}

// Shutdown signals the Run loop to terminate and close all client channels.
func (h *Hub) Shutdown() {
	h.logger.Info().Msg("Shutting down hub...")

	select {
	case <-h.stop:
	default:
		close(h.stop)
	}
}

// closeSend closes the client's send channel, which terminates its WritePump.
// Both call sites run in the Run goroutine and a client is removed from the
// map as it is closed, so the channel is never closed twice.
func closeSend(c *Client) {
	close(c.send)
}
