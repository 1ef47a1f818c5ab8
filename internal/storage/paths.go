// Package storage persists perft subtree counts in BadgerDB.
package storage

import (
	"log"
	"os"
	"path/filepath"
)

const appName = "chesscore"

// GetCacheDir returns the directory holding the perft cache database, under
// the platform user cache directory (XDG_CACHE_HOME, ~/Library/Caches or
// %LocalAppData%), creating it if needed.
func GetCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(base, appName, "perft")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}

	log.Printf("perft cache directory: %s", dbDir)
	return dbDir, nil
}
