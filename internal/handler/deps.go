package handler

import (
	"emclicker/internal/app/game"
	"emclicker/internal/app/storage"
	"emclicker/internal/configs"
)

// AppDeps bundles the collaborators the HTTP handlers need.
type AppDeps struct {
	Hub    *game.Hub
	Config *configs.AppConfig
	Blobs  storage.BlobStore
}
