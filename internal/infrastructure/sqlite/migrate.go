package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/jhoicas/lager-api/internal/infrastructure/migration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    applied_at DATETIME NOT NULL
)`

// Migrator aplica las migraciones versionadas sobre SQLite.
type Migrator struct {
	db *sql.DB
}

// NewMigrator construye el migrador.
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

// Pending devuelve las versiones aún no aplicadas.
func (m *Migrator) Pending(ctx context.Context) ([]int, error) {
	pending, err := m.pending(ctx)
	if err != nil {
		return nil, err
	}
	return migration.Versions(pending), nil
}

// Up aplica las migraciones pendientes, cada una en su propia transacción, y devuelve sus versiones.
func (m *Migrator) Up(ctx context.Context) ([]int, error) {
	pending, err := m.pending(ctx)
	if err != nil {
		return nil, err
	}
	var applied []int
	for _, mig := range pending {
		if err := m.apply(ctx, mig); err != nil {
			return applied, err
		}
		applied = append(applied, mig.Version)
	}
	return applied, nil
}

func (m *Migrator) pending(ctx context.Context) ([]migration.Migration, error) {
	all, err := migration.Load(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}
	if _, err := m.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("crear schema_migrations: %w", err)
	}
	rows, err := m.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("leer schema_migrations: %w", err)
	}
	defer rows.Close()
	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return migration.Pending(all, applied), nil
}

func (m *Migrator) apply(ctx context.Context, mig migration.Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migración %d: %w", mig.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, mig.SQL); err != nil {
		return fmt.Errorf("migración %d (%s): %w", mig.Version, mig.Name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`,
		mig.Version, mig.Name, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("registrar migración %d: %w", mig.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migración %d: %w", mig.Version, err)
	}
	return nil
}
