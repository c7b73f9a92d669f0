package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/lager-api/internal/application/usecase"
	"github.com/jhoicas/lager-api/internal/infrastructure/artifact"
	infrapdf "github.com/jhoicas/lager-api/internal/infrastructure/pdf"
	"github.com/jhoicas/lager-api/internal/infrastructure/qrcode"
	"github.com/jhoicas/lager-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/lager-api/internal/interfaces/http"
	"github.com/jhoicas/lager-api/pkg/config"
	"github.com/jhoicas/lager-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("artifacts", cfg.Artifacts.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer store.Close()

	applied, err := store.EnsureMigrated(ctx, cfg.DB.AutoMigrate)
	if err != nil {
		log.Fatal().Err(err).Msg("esquema de la base de datos")
	}
	if len(applied) > 0 {
		log.Info().Ints("versions", applied).Msg("migraciones aplicadas")
	}

	artifacts, err := newArtifactStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Artifacts.Backend).Msg("almacenamiento de códigos QR")
	}

	warehouseUC := usecase.NewWarehouseUseCase(store.Tx)
	itemUC := usecase.NewItemUseCase(
		store.Tx,
		usecase.UUIDCodeGenerator{},
		qrcode.NewEncoder(cfg.Artifacts.QRSize),
		artifacts,
		infrapdf.NewLabelGenerator(),
		log,
	)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:             cfg.App.Name,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		Logger:           log,
	}, httpRouter.RouterDeps{
		ItemUC:      itemUC,
		WarehouseUC: warehouseUC,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})

	// Swagger UI en http://localhost:<port>/docs, solo si el archivo existe
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    "Lager API",
		}))
	} else {
		log.Warn().Str("file", cfg.Docs.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: la API no exige autenticación")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func newArtifactStore(ctx context.Context, cfg *config.Config) (usecase.ArtifactStore, error) {
	if cfg.Artifacts.Backend == config.ArtifactMinIO {
		return artifact.NewMinIOStore(ctx, cfg.MinIO)
	}
	return artifact.NewFileStore(cfg.Artifacts.Dir)
}
