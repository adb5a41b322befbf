package storage

import (
	"fmt"
	"os"
	"path/filepath"

	consolesqlite "github.com/brinedeck/wardroom/internal/services/console/storage/sqlite"
)

// OpenStore opens the console SQLite store and creates its parent directory when needed.
func OpenStore(path string) (*consolesqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := consolesqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open console sqlite store: %w", err)
	}
	return store, nil
}
