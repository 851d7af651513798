// Package dbtest opens a migrated throwaway SQLite store for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"marketplace/internal/config"
	"marketplace/internal/db"

	"gorm.io/gorm"
)

// New returns a migrated store in a per-test temporary directory
func New(t testing.TB) *gorm.DB {
	t.Helper()
	store, err := db.Open(&config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(store); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := store.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return store
}
