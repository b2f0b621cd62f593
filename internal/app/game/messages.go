/*
Package game contains the core logic of the clicker: nickname-session binding,
the emerald economy, chat with embedded moderation commands, and the broadcast
fan-out to every connected client.

This file defines the JSON event envelope exchanged over the WebSocket and the
payload structs for every named event.
*/
package game

import "emclicker/internal/app/store"

// Inbound event types sent by clients.
const (
	EventRegister     = "register"
	EventAutoRegister = "auto-register"
	EventClick        = "click"
	EventBuy          = "buy"
	EventChat         = "chat"
)

// Outbound event types sent by the server.
const (
	EventInit          = "init"
	EventRegisterOK    = "register-ok"
	EventRegisterError = "register-error"
	EventUserList      = "user-list"
	EventUpdateUser    = "update-user"
	EventBuyResult     = "buy-result"
	EventChatMessage   = "chat-message"
	EventChatError     = "chat-error"
	EventSystem        = "system"
)

// Event is the wire envelope for every WebSocket message in both directions.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// RegisterPayload carries the identity a client wants to bind, for both the
// explicit register event and the silent auto-register reconnect path.
type RegisterPayload struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
}

// BuyPayload names the shop item a client wants to purchase.
type BuyPayload struct {
	ItemKey string `json:"itemKey"`
}

// ChatPayload carries one chat line. Admin is asserted by the client session
// after a successful admin-login check and is not re-verified here.
type ChatPayload struct {
	Text  string `json:"text"`
	Admin bool   `json:"admin,omitempty"`
}

// InitData is pushed once to every new connection before registration.
type InitData struct {
	Shop map[string]store.ShopItem `json:"shop"`
	Bans map[string]bool           `json:"bans"`
}

// UserUpdate announces a balance/power change to everyone.
type UserUpdate struct {
	Nickname string `json:"nickname"`
	Emeralds int64  `json:"emeralds"`
	Power    int64  `json:"power"`
}

// BuyResult acknowledges a purchase attempt to the buyer only.
type BuyResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// ChatMessage is a broadcast chat line with a server-assigned timestamp
// (Unix milliseconds).
type ChatMessage struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
	Text     string `json:"text"`
	Time     int64  `json:"time"`
}

// ErrorPayload is the body of register-error and chat-error events.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
