package storage

import (
	"os"
	"path/filepath"
)

// DataDir resolves the engine's data directory: PELICAN_DATA when set,
// otherwise <user-config-dir>/pelican. The directory is created on demand.
func DataDir() (string, error) {
	dir := os.Getenv("PELICAN_DATA")
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "pelican")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// DatabaseDir returns the badger database directory under the data dir.
func DatabaseDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	dbDir := filepath.Join(dir, "db")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return "", err
	}
	return dbDir, nil
}
