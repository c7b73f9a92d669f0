package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/lager-api/internal/infrastructure/migration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrator aplica las migraciones versionadas sobre PostgreSQL.
type Migrator struct {
	pool *pgxpool.Pool
}

// NewMigrator construye el migrador.
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool}
}

// Pending devuelve las versiones aún no aplicadas.
func (m *Migrator) Pending(ctx context.Context) ([]int, error) {
	pending, err := m.pending(ctx)
	if err != nil {
		return nil, err
	}
	return migration.Versions(pending), nil
}

// Up aplica las migraciones pendientes, cada una en su propia transacción.
func (m *Migrator) Up(ctx context.Context) ([]int, error) {
	pending, err := m.pending(ctx)
	if err != nil {
		return nil, err
	}
	var applied []int
	for _, mig := range pending {
		err := pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.SQL); err != nil {
				return fmt.Errorf("migración %d (%s): %w", mig.Version, mig.Name, err)
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name)
			return err
		})
		if err != nil {
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
	if _, err := m.pool.Exec(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("crear schema_migrations: %w", err)
	}
	rows, err := m.pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("leer schema_migrations: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[int32])
	if err != nil {
		return nil, fmt.Errorf("scan schema_migrations: %w", err)
	}
	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[int(v)] = true
	}
	return migration.Pending(all, applied), nil
}
