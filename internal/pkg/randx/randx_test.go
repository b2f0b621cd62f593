package randx

import (
	"strings"
	"testing"
)

func TestConnectionID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := ConnectionID()
		if id == "" {
			t.Fatal("Expected non-empty connection ID")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("Duplicate connection ID %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestAvatarKey(t *testing.T) {
	tests := []struct {
		name     string
		original string
		wantExt  string
	}{
		{"plain", "me.png", ".png"},
		{"uppercase extension", "ME.JPG", ".jpg"},
		{"no extension", "avatar", ""},
		{"dotted name", "my.holiday.photo.webp", ".webp"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key := AvatarKey(tc.original)

			if tc.wantExt == "" {
				if strings.Contains(key, ".") {
					t.Errorf("AvatarKey(%q) = %q, expected no extension", tc.original, key)
				}
				return
			}

			if !strings.HasSuffix(key, tc.wantExt) {
				t.Errorf("AvatarKey(%q) = %q, expected suffix %q", tc.original, key, tc.wantExt)
			}
			if strings.Contains(key, "holiday") || strings.HasPrefix(key, "me.") {
				t.Errorf("AvatarKey(%q) = %q, must not leak the original name", tc.original, key)
			}
		})
	}

	if AvatarKey("same.png") == AvatarKey("same.png") {
		t.Error("Expected unique keys for identical names")
	}
}
