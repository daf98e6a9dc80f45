package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLite opens (or creates) the SQLite database at path. In-memory DSNs
// ("file:...mode=memory" or ":memory:") skip the directory setup.
func NewSQLite(path string) (*gorm.DB, error) {
	if !isMemoryDSN(path) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newLogger(os.Stdout),
	})
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	// busy_timeout lets writers wait instead of failing with SQLITE_BUSY.
	if err := db.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	return db, nil
}

func isMemoryDSN(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}
