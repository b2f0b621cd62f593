package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func tempPersister(t *testing.T) (*FilePersister, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	return NewFilePersister(path), path
}

func TestFilePersister_LoadMissingFile(t *testing.T) {
	p, _ := tempPersister(t)

	snap, err := p.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if snap != nil {
		t.Fatal("Expected nil snapshot for missing file")
	}
}

func TestFilePersister_Roundtrip(t *testing.T) {
	p, path := tempPersister(t)

	snap := NewSnapshot()
	snap.Users["alice"] = &User{Emeralds: 42, Power: 3, Avatar: "/uploads/a.png"}
	snap.Bans["mallory"] = true

	if err := p.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := p.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	alice, ok := loaded.Users["alice"]
	if !ok {
		t.Fatal("Expected alice in loaded snapshot")
	}
	if alice.Emeralds != 42 || alice.Power != 3 {
		t.Errorf("Expected 42/3, got %d/%d", alice.Emeralds, alice.Power)
	}
	if !loaded.Bans["mallory"] {
		t.Error("Expected mallory in loaded ban set")
	}

	// No temp file may be left behind after a successful save.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected temp file to be renamed away")
	}
}

func TestFilePersister_WireFormatKeys(t *testing.T) {
	p, path := tempPersister(t)

	if err := p.Save(NewSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	for _, key := range []string{"users", "bans", "globalShop"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected top-level key %q in snapshot file", key)
		}
	}
}

func TestOpen_FreshStoreGetsDefaultShop(t *testing.T) {
	p, path := tempPersister(t)

	s, err := Open(p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	shop := s.Shop()
	if len(shop) != 3 {
		t.Fatalf("Expected 3 default items, got %d", len(shop))
	}

	item, ok := shop["gemBooster"]
	if !ok {
		t.Fatal("Expected gemBooster in default catalog")
	}
	if item.Price != 250 || item.Power != 5 {
		t.Errorf("Expected gemBooster 250/5, got %d/%d", item.Price, item.Power)
	}

	// A fresh store persists immediately so the data file exists from first start.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected snapshot file after Open: %v", err)
	}
}

func TestOpen_ClearsStaleBindings(t *testing.T) {
	p, _ := tempPersister(t)

	snap := NewSnapshot()
	snap.Users["alice"] = &User{Emeralds: 10, Power: 2, ConnID: "conn-from-last-run"}
	if err := p.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s, err := Open(p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	alice, ok := s.Lookup("alice")
	if !ok {
		t.Fatal("Expected alice to survive restart")
	}
	if alice.ConnID != "" {
		t.Errorf("Expected stale binding cleared, got %q", alice.ConnID)
	}
	if alice.Emeralds != 10 || alice.Power != 2 {
		t.Errorf("Expected balance preserved, got %d/%d", alice.Emeralds, alice.Power)
	}
}

func TestOpen_EmptyCatalogFallsBackToDefault(t *testing.T) {
	p, _ := tempPersister(t)

	snap := &Snapshot{Users: map[string]*User{}, Bans: map[string]bool{}}
	if err := p.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s, err := Open(p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if len(s.Shop()) == 0 {
		t.Error("Expected default catalog when stored shop is empty")
	}
}

func TestStore_BanDeletesRecord(t *testing.T) {
	p, _ := tempPersister(t)

	s, err := Open(p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	s.Put("bob", &User{Emeralds: 5, Power: 1})
	s.Ban("bob")

	if _, ok := s.Lookup("bob"); ok {
		t.Error("Expected bob's record deleted on ban")
	}
	if !s.IsBanned("bob") {
		t.Error("Expected bob in ban set")
	}

	s.Unban("bob")
	if s.IsBanned("bob") {
		t.Error("Expected bob removed from ban set")
	}
}

func TestStore_UsersReturnsCopies(t *testing.T) {
	p, _ := tempPersister(t)

	s, err := Open(p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	s.Put("alice", &User{Emeralds: 1, Power: 1})

	view := s.Users()
	entry := view["alice"]
	entry.Emeralds = 999

	alice, _ := s.Lookup("alice")
	if alice.Emeralds != 1 {
		t.Error("Mutating the roster view must not affect the store")
	}
}
