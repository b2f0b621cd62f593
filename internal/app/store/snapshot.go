/*
Package store holds the game's persistent state: user records, the ban set, and the
shared shop catalog, together with the persistence port that writes the whole state
to durable storage as a single JSON snapshot after every mutation.
*/
package store

// User is one player's persistent record, keyed by nickname in the snapshot.
type User struct {
	// Emeralds is the currency balance, never negative.
	Emeralds int64 `json:"emeralds"`

	// Power is the per-click yield multiplier, at least 1.
	Power int64 `json:"power"`

	// Avatar is an opaque URL reference returned by the upload endpoint.
	Avatar string `json:"avatar,omitempty"`

	// ConnID identifies the connection currently bound to this nickname.
	// Empty while the player is offline; the record itself survives disconnects.
	ConnID string `json:"connId,omitempty"`
}

// ShopItem is one entry of the shared shop catalog.
type ShopItem struct {
	// Price is the emerald cost of the item.
	Price int64 `json:"price"`

	// Power is added to the buyer's power on purchase.
	Power int64 `json:"power"`
}

// Snapshot is the full serialized state persisted to disk. The top-level JSON
// keys are fixed wire format: users, bans, globalShop.
type Snapshot struct {
	Users      map[string]*User    `json:"users"`
	Bans       map[string]bool     `json:"bans"`
	GlobalShop map[string]ShopItem `json:"globalShop"`
}

// DefaultShop returns the catalog used when no snapshot exists yet.
func DefaultShop() map[string]ShopItem {
	return map[string]ShopItem{
		"sword":      {Price: 50, Power: 1},
		"armor":      {Price: 100, Power: 2},
		"gemBooster": {Price: 250, Power: 5},
	}
}

// NewSnapshot returns an empty snapshot carrying the default shop catalog.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:      make(map[string]*User),
		Bans:       make(map[string]bool),
		GlobalShop: DefaultShop(),
	}
}

// normalize repairs a freshly loaded snapshot: nil maps are allocated, an empty
// catalog falls back to the default, and connection bindings left over from a
// previous process are cleared since no connection can survive a restart.
func (s *Snapshot) normalize() {
	if s.Users == nil {
		s.Users = make(map[string]*User)
	}
	if s.Bans == nil {
		s.Bans = make(map[string]bool)
	}
	if len(s.GlobalShop) == 0 {
		s.GlobalShop = DefaultShop()
	}

	for _, u := range s.Users {
		u.ConnID = ""
	}
}
