// Package storage abre el backend de base de datos configurado (SQLite o PostgreSQL).
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/lager-api/internal/application/usecase"
	"github.com/jhoicas/lager-api/internal/infrastructure/postgres"
	"github.com/jhoicas/lager-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/lager-api/pkg/config"
)

// Migrator lo implementan sqlite.Migrator y postgres.Migrator.
type Migrator interface {
	Pending(ctx context.Context) ([]int, error)
	Up(ctx context.Context) ([]int, error)
}

// Storage conexión abierta con su runner transaccional y su migrador.
type Storage struct {
	Driver   string
	Tx       usecase.TxRunner
	Migrator Migrator
	close    func()
}

// Close libera la conexión.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open conecta según cfg.Driver.
func Open(ctx context.Context, cfg config.DBConfig) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Driver:   cfg.Driver,
			Tx:       sqlite.NewTxRunner(db),
			Migrator: sqlite.NewMigrator(db),
			close:    func() { _ = db.Close() },
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Driver:   cfg.Driver,
			Tx:       postgres.NewTxRunner(pool),
			Migrator: postgres.NewMigrator(pool),
			close:    pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.Driver)
	}
}

// EnsureMigrated aplica las migraciones pendientes si autoMigrate; si no, falla cuando hay pendientes.
// Devuelve las versiones aplicadas.
func (s *Storage) EnsureMigrated(ctx context.Context, autoMigrate bool) ([]int, error) {
	if autoMigrate {
		return s.Migrator.Up(ctx)
	}
	pending, err := s.Migrator.Pending(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("migraciones pendientes %v: ejecute cmd/migrate o defina DB_AUTO_MIGRATE=true", pending)
	}
	return nil, nil
}
