package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// localURLPrefix is the path the router serves the upload directory under.
const localURLPrefix = "/uploads"

// localStore writes avatars to a directory on the local filesystem.
type localStore struct {
	dir string
}

func newLocalStore(dir string) (*localStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("local storage requires an upload directory")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}

	return &localStore{dir: dir}, nil
}

// Put streams the blob into a new file named by key. Keys are server-generated
// and unique, so an existing file of the same name means a programming error
// and the create fails rather than overwrites.
func (l *localStore) Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	path := filepath.Join(l.dir, filepath.Base(key))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create avatar file %s: %w", path, err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write avatar file %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close avatar file %s: %w", path, err)
	}

	return localURLPrefix + "/" + filepath.Base(key), nil
}
