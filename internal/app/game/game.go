/*
Package game contains the core logic of the clicker.

This file defines the Game struct with the five operations of the event surface:
Register (shared by register and auto-register), Click, Buy, Chat, and Release.
Every operation runs its full validate-mutate-persist-broadcast span under one
mutex, which is the serialization boundary for the shared store.
*/
package game

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"emclicker/internal/app/store"
	"emclicker/internal/pkg/errs"
	"emclicker/internal/pkg/logx"
)

const (
	// banCommand and unbanCommand are matched case- and prefix-sensitively at
	// the start of a chat line; the trimmed remainder is the target nickname.
	banCommand   = "/BAN "
	unbanCommand = "/bro "

	// MaxChatBytes caps the length of a single chat message.
	MaxChatBytes = 2000
)

// Broadcaster is the fan-out capability the game publishes state changes
// through. The WebSocket hub implements it; tests substitute a recorder.
// Delivery is fire-and-forget and reaches every connected client, including
// the originator of the mutation.
type Broadcaster interface {
	Publish(event string, payload any)
}

// Session is the per-connection state passed into every operation: the
// server-assigned connection ID and the nickname bound to it, empty until a
// register succeeds.
type Session struct {
	ConnID   string
	Nickname string
}

// NewSession returns an unbound session for a fresh connection.
func NewSession(connID string) *Session {
	return &Session{ConnID: connID}
}

// Game executes the event surface against the store and publishes resulting
// state changes through the Broadcaster.
type Game struct {
	mu     sync.Mutex
	store  *store.Store
	bc     Broadcaster
	logger zerolog.Logger
}

// NewGame constructs a Game over the given store and broadcaster.
func NewGame(st *store.Store, bc Broadcaster) *Game {
	return &Game{
		store:  st,
		bc:     bc,
		logger: logx.Logger().With().Str("component", "game").Logger(),
	}
}

// InitData returns the payload pushed once to every new connection.
func (g *Game) InitData() InitData {
	g.mu.Lock()
	defer g.mu.Unlock()

	return InitData{Shop: g.store.Shop(), Bans: g.store.Bans()}
}

// Register binds the nickname to the session's connection. Both the register
// and auto-register events land here so resume semantics cannot diverge.
// An existing record is resumed with balance and power intact; the avatar is
// updated only when a new one is supplied. On success the roster is broadcast
// and a copy of the record is returned for the register-ok reply.
func (g *Game) Register(sess *Session, nickname, avatar string) (store.User, *errs.CustomError) {
	g.mu.Lock()
	defer g.mu.Unlock()

	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return store.User{}, errs.New(errs.ErrNicknameRequired)
	}

	if g.store.IsBanned(nickname) {
		g.logger.Info().Str("nickname", nickname).Msg("Rejected registration of banned nickname.")
		return store.User{}, errs.New(errs.ErrBanned)
	}

	u, ok := g.store.Lookup(nickname)
	if ok && u.ConnID != "" && u.ConnID != sess.ConnID {
		g.logger.Info().
			Str("nickname", nickname).
			Str("conn_id", sess.ConnID).
			Str("bound_conn_id", u.ConnID).
			Msg("Rejected registration: nickname bound to another connection.")
		return store.User{}, errs.New(errs.ErrNicknameTaken)
	}

	if !ok {
		u = &store.User{Emeralds: 0, Power: 1}
		g.store.Put(nickname, u)
	}

	u.ConnID = sess.ConnID
	if avatar != "" {
		u.Avatar = avatar
	}
	sess.Nickname = nickname

	g.persist()
	g.bc.Publish(EventUserList, g.store.Users())

	g.logger.Info().Str("nickname", nickname).Str("conn_id", sess.ConnID).Msg("Nickname bound.")
	return *u, nil
}

// Release clears the nickname binding on disconnect, but only if the record is
// still bound to this exact connection. A fast re-register from a new
// connection must not be undone by the old connection's late disconnect.
func (g *Game) Release(sess *Session) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if sess.Nickname == "" {
		return
	}

	u, ok := g.store.Lookup(sess.Nickname)
	if ok && u.ConnID == sess.ConnID {
		u.ConnID = ""
		g.persist()
		g.bc.Publish(EventUserList, g.store.Users())
		g.logger.Info().Str("nickname", sess.Nickname).Str("conn_id", sess.ConnID).Msg("Nickname released.")
	}

	sess.Nickname = ""
}

// Click earns one click's worth of emeralds: the user's current power, minimum 1.
// Unbound or unknown sessions are a silent no-op.
func (g *Game) Click(sess *Session) {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := g.boundUser(sess)
	if u == nil {
		return
	}

	gain := u.Power
	if gain < 1 {
		gain = 1
	}
	u.Emeralds += gain

	g.persist()
	g.bc.Publish(EventUpdateUser, UserUpdate{
		Nickname: sess.Nickname,
		Emeralds: u.Emeralds,
		Power:    u.Power,
	})
}

// Buy spends emeralds on a catalog item, adding its power to the buyer. A
// failed purchase leaves balance and power untouched and broadcasts nothing;
// the caller acknowledges the result to the buyer only.
func (g *Game) Buy(sess *Session, itemKey string) (store.User, *errs.CustomError) {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := g.boundUser(sess)
	if u == nil {
		return store.User{}, errs.New(errs.ErrNotRegistered)
	}

	item, ok := g.store.Item(itemKey)
	if !ok {
		return store.User{}, errs.New(errs.ErrUnknownItem)
	}

	if u.Emeralds < item.Price {
		return store.User{}, errs.New(errs.ErrInsufficientFunds)
	}

	u.Emeralds -= item.Price
	u.Power += item.Power

	g.persist()
	g.bc.Publish(EventUpdateUser, UserUpdate{
		Nickname: sess.Nickname,
		Emeralds: u.Emeralds,
		Power:    u.Power,
	})

	g.logger.Info().
		Str("nickname", sess.Nickname).
		Str("item", itemKey).
		Int64("emeralds", u.Emeralds).
		Int64("power", u.Power).
		Msg("Purchase completed.")
	return *u, nil
}

// Chat handles one chat line: moderation commands when the line starts with a
// command prefix, otherwise a broadcast chat-message with a server-assigned
// timestamp. Lines that are empty after trimming are dropped without error.
// The admin flag comes from the client session (after admin-login) and is
// deliberately not re-verified against server state.
func (g *Game) Chat(sess *Session, text string, admin bool) *errs.CustomError {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := g.boundUser(sess)
	if u == nil {
		return errs.New(errs.ErrNotRegistered)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	if len(trimmed) > MaxChatBytes {
		return errs.New(errs.ErrMessageTooLong)
	}

	if target, ok := strings.CutPrefix(trimmed, banCommand); ok {
		return g.ban(strings.TrimSpace(target), admin)
	}

	if target, ok := strings.CutPrefix(trimmed, unbanCommand); ok {
		return g.unban(strings.TrimSpace(target), admin)
	}

	g.bc.Publish(EventChatMessage, ChatMessage{
		Nickname: sess.Nickname,
		Avatar:   u.Avatar,
		Text:     trimmed,
		Time:     time.Now().UnixMilli(),
	})
	return nil
}

// ban adds the target to the ban set and deletes its record. The banned
// player's connection stays open, but with the record gone every further
// click, buy, or chat from it behaves as unregistered.
func (g *Game) ban(target string, admin bool) *errs.CustomError {
	if !admin {
		return errs.New(errs.ErrNotAuthorized)
	}

	g.store.Ban(target)
	g.persist()

	g.bc.Publish(EventSystem, fmt.Sprintf("%s has been banned", target))
	g.bc.Publish(EventUserList, g.store.Users())

	g.logger.Info().Str("target", target).Msg("Nickname banned.")
	return nil
}

// unban removes the target from the ban set.
func (g *Game) unban(target string, admin bool) *errs.CustomError {
	if !admin {
		return errs.New(errs.ErrNotAuthorized)
	}

	g.store.Unban(target)
	g.persist()

	g.bc.Publish(EventSystem, fmt.Sprintf("%s has been unbanned", target))

	g.logger.Info().Str("target", target).Msg("Nickname unbanned.")
	return nil
}

// boundUser resolves the session to its user record, or nil when the session
// is unbound or the record has been deleted (e.g. by a ban).
func (g *Game) boundUser(sess *Session) *store.User {
	if sess.Nickname == "" {
		return nil
	}

	u, ok := g.store.Lookup(sess.Nickname)
	if !ok {
		return nil
	}
	return u
}

// persist writes the snapshot through the persistence port. A failed write is
// logged by the store and must not break the in-memory session.
func (g *Game) persist() {
	_ = g.store.Persist()
}
