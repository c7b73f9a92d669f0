package sqlite

import (
	"context"
	"database/sql"
	"testing"
)

// NewTestDB crea una base SQLite en memoria con todas las migraciones aplicadas.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, MemoryPath)
	if err != nil {
		t.Fatalf("abrir base de test: %v", err)
	}
	if _, err := NewMigrator(db).Up(ctx); err != nil {
		db.Close()
		t.Fatalf("migrar base de test: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
