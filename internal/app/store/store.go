package store

import (
	"github.com/rs/zerolog"

	"emclicker/internal/pkg/logx"
)

// Store is the single in-memory state container. It is not safe for concurrent
// use on its own: the game core serializes every read-modify-persist span behind
// one mutex, and nothing else touches the store while the process runs.
type Store struct {
	snap      *Snapshot
	persister Persister
	logger    zerolog.Logger
}

// Open rehydrates the store from the persister, falling back to an empty
// snapshot with the default catalog when none exists. A fresh snapshot is
// persisted immediately so the data file exists from first start.
func Open(p Persister) (*Store, error) {
	logger := logx.Logger().With().Str("component", "store").Logger()

	snap, err := p.Load()
	if err != nil {
		return nil, err
	}

	fresh := snap == nil
	if fresh {
		snap = NewSnapshot()
	}
	snap.normalize()

	s := &Store{
		snap:      snap,
		persister: p,
		logger:    logger,
	}

	if fresh {
		if err := s.Persist(); err != nil {
			return nil, err
		}
		logger.Info().Msg("No snapshot found, initialized fresh state with default shop.")
	} else {
		logger.Info().
			Int("users", len(snap.Users)).
			Int("bans", len(snap.Bans)).
			Int("shop_items", len(snap.GlobalShop)).
			Msg("Snapshot loaded.")
	}

	return s, nil
}

// Persist writes the whole snapshot through the persistence port. Failures are
// logged and returned; the in-memory state is unaffected either way.
func (s *Store) Persist() error {
	if err := s.persister.Save(s.snap); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist snapshot.")
		return err
	}
	return nil
}

// Lookup returns the mutable user record for the nickname, if present.
func (s *Store) Lookup(nickname string) (*User, bool) {
	u, ok := s.snap.Users[nickname]
	return u, ok
}

// Put inserts or replaces the user record for the nickname.
func (s *Store) Put(nickname string, u *User) {
	s.snap.Users[nickname] = u
}

// Delete removes the user record for the nickname, if present.
func (s *Store) Delete(nickname string) {
	delete(s.snap.Users, nickname)
}

// IsBanned reports whether the nickname is in the ban set.
func (s *Store) IsBanned(nickname string) bool {
	return s.snap.Bans[nickname]
}

// Ban adds the nickname to the ban set and deletes its user record.
func (s *Store) Ban(nickname string) {
	s.snap.Bans[nickname] = true
	delete(s.snap.Users, nickname)
}

// Unban removes the nickname from the ban set.
func (s *Store) Unban(nickname string) {
	delete(s.snap.Bans, nickname)
}

// Item returns the catalog entry for the item key, if present.
func (s *Store) Item(key string) (ShopItem, bool) {
	item, ok := s.snap.GlobalShop[key]
	return item, ok
}

// Users returns a value copy of the full roster, safe to hand to encoders
// running outside the game lock.
func (s *Store) Users() map[string]User {
	out := make(map[string]User, len(s.snap.Users))
	for nick, u := range s.snap.Users {
		out[nick] = *u
	}
	return out
}

// Bans returns a copy of the ban set.
func (s *Store) Bans() map[string]bool {
	out := make(map[string]bool, len(s.snap.Bans))
	for nick := range s.snap.Bans {
		out[nick] = true
	}
	return out
}

// Shop returns a copy of the shop catalog.
func (s *Store) Shop() map[string]ShopItem {
	out := make(map[string]ShopItem, len(s.snap.GlobalShop))
	for key, item := range s.snap.GlobalShop {
		out[key] = item
	}
	return out
}
