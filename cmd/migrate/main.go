// migrate aplica o inspecciona las migraciones versionadas del esquema.
//
// Uso: go run ./cmd/migrate [up|status]
// Sin argumentos equivale a "up". Lee la misma configuración que la API (DB_DRIVER, DB_PATH, DATABASE_URL...).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/lager-api/internal/infrastructure/storage"
	"github.com/jhoicas/lager-api/pkg/config"
	"github.com/jhoicas/lager-api/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer store.Close()

	switch cmd {
	case "up":
		applied, err := store.Migrator.Up(ctx)
		if err != nil {
			log.Fatal().Err(err).Ints("applied", applied).Msg("aplicar migraciones")
		}
		if len(applied) == 0 {
			log.Info().Msg("esquema al día")
			return
		}
		log.Info().Ints("versions", applied).Msg("migraciones aplicadas")
	case "status":
		pending, err := store.Migrator.Pending(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("consultar migraciones")
		}
		if len(pending) == 0 {
			log.Info().Msg("esquema al día")
			return
		}
		log.Warn().Ints("pending", pending).Msg("migraciones pendientes")
	default:
		fmt.Fprintf(os.Stderr, "comando desconocido %q (use up o status)\n", cmd)
		os.Exit(2)
	}
}
