/*
Package game contains the core logic of the clicker.

This file defines the Client struct, representing one active WebSocket
connection. It manages the message pumps (ReadPump and WritePump), dispatches
inbound events to the game core, and sends per-connection replies.
*/
package game

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"emclicker/internal/pkg/errs"
	"emclicker/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the client.
	maxMessageSize = 4096

	// sendChannelBuffer sizes the per-client outbound queue.
	sendChannelBuffer = 256
)

// Client represents an active WebSocket connection and its session state.
type Client struct {
	// the hub this client is connected to.
	hub *Hub

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// session carries the connection ID and the bound nickname.
	session *Session

	// a buffered channel used to queue messages waiting to be sent to the client.
	send chan []byte

	// structured logger with connection context.
	logger zerolog.Logger
}

// NewClient constructs a Client for an upgraded connection.
func NewClient(hub *Hub, conn *websocket.Conn, session *Session) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		session: session,
		send:    make(chan []byte, sendChannelBuffer),
		logger: logx.Logger().With().
			Str("conn_id", session.ConnID).
			Logger(),
	}
}

// ReadPump reads messages from the WebSocket connection, handles heartbeats
// (Pong), and dispatches inbound events until the connection closes.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		c.processInboundEvent(data)
	}
}

// cleanupOnDisconnect hands the client back to the hub (which releases the
// nickname binding) and closes the connection.
func (c *Client) cleanupOnDisconnect() {
	select {
	case c.hub.unregister <- c:
	default:
		c.logger.Warn().Msg("Hub unregister channel blocked. Connection cleanup still proceeding.")
	}

	if err := c.conn.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Client connection close error")
	}
}

// processInboundEvent decodes the event envelope and dispatches by type.
func (c *Client) processInboundEvent(data []byte) {
	var in struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload,omitempty"`
	}

	if err := json.Unmarshal(data, &in); err != nil {
		c.logger.Warn().Err(err).Bytes("message_bytes", data).Msg("Client sent invalid JSON")
		return
	}

	switch in.Type {
	case EventRegister, EventAutoRegister:
		c.handleRegister(in.Payload)

	case EventClick:
		c.hub.game.Click(c.session)

	case EventBuy:
		c.handleBuy(in.Payload)

	case EventChat:
		c.handleChat(in.Payload)

	default:
		c.logger.Warn().Str("event_type", in.Type).Msg("Client sent unsupported event type")
	}
}

// handleRegister covers both register and auto-register: the payloads and the
// semantics are identical, only the client-side trigger differs.
func (c *Client) handleRegister(payload json.RawMessage) {
	var p RegisterPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid register payload")
		return
	}

	u, cerr := c.hub.game.Register(c.session, p.Nickname, p.Avatar)
	if cerr != nil {
		c.sendErrorEvent(EventRegisterError, cerr)
		return
	}

	if err := c.sendEvent(EventRegisterOK, u); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to queue register-ok reply.")
	}
}

// handleBuy runs the purchase and acknowledges the outcome to the buyer only.
func (c *Client) handleBuy(payload json.RawMessage) {
	var p BuyPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid buy payload")
		return
	}

	result := BuyResult{OK: true, Message: "Purchased"}
	if _, cerr := c.hub.game.Buy(c.session, p.ItemKey); cerr != nil {
		result = BuyResult{OK: false, Message: cerr.Message}
	}

	if err := c.sendEvent(EventBuyResult, result); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to queue buy-result reply.")
	}
}

// handleChat passes the line to the game; only failures produce a direct reply.
func (c *Client) handleChat(payload json.RawMessage) {
	var p ChatPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid chat payload")
		return
	}

	if cerr := c.hub.game.Chat(c.session, p.Text, p.Admin); cerr != nil {
		c.sendErrorEvent(EventChatError, cerr)
	}
}

// sendEvent marshals the event and queues it on this client's send channel.
func (c *Client) sendEvent(eventType string, payload any) error {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		c.logger.Error().Err(err).Str("event", eventType).Msg("Error marshaling event for client")
		return err
	}

	select {
	case c.send <- data:
		return nil
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send channel full, dropping message")
		return fmt.Errorf("client send queue full")
	}
}

// sendErrorEvent queues a named error event carrying the code and message.
func (c *Client) sendErrorEvent(eventType string, cerr *errs.CustomError) {
	if err := c.sendEvent(eventType, ErrorPayload{Code: cerr.Code, Message: cerr.Message}); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to queue error event")
	}
}

// WritePump writes queued messages to the WebSocket connection and keeps the
// heartbeat alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage writes one message from the send channel to the socket.
// Returns false when the WritePump loop should terminate.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Error().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends a periodic Ping to maintain the connection heartbeat.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
