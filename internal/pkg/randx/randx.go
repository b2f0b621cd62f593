/*
Package randx provides generators for the unique identifiers the server hands out:
connection IDs for WebSocket sessions and object keys for uploaded avatars.
*/
package randx

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ConnectionID generates a UUID v4 string identifying one live WebSocket connection.
func ConnectionID() string {
	return uuid.New().String()
}

// AvatarKey derives a server-generated unique file name for an uploaded avatar,
// preserving only the (lowercased) extension of the client-supplied name.
func AvatarKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s%s", uuid.New().String(), ext)
}
