package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/lager-api/internal/application/usecase"
	"github.com/jhoicas/lager-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *usecase.ItemUseCase
	WarehouseUC *usecase.WarehouseUseCase
	JWTSecret   string // vacío: rutas abiertas
	JWTIssuer   string
}

// AppConfig opciones de la aplicación Fiber.
type AppConfig struct {
	Name             string
	CORSAllowOrigins string
	Logger           *logger.Logger
}

// NewApp construye la aplicación Fiber con middlewares, health y rutas de la API.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  normalizeOrigins(cfg.CORSAllowOrigins),
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: fiber.HeaderContentDisposition,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	itemHandler := NewItemHandler(deps.ItemUC)
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)

	// QR (público: lo consumen etiquetas <img>)
	app.Get("/qrcode/:code", itemHandler.QRCode)

	// Con JWT_SECRET definido, ítems y bodegas exigen Bearer Token
	var guard []fiber.Handler
	if deps.JWTSecret != "" {
		guard = append(guard, AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	}

	items := app.Group("/items", guard...)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:code", itemHandler.GetByCode)
	items.Delete("/:id", itemHandler.Delete)
	items.Post("/:code/checkout", itemHandler.Checkout)
	items.Post("/:code/move", itemHandler.Move)
	items.Get("/:code/label", itemHandler.Label)

	warehouses := app.Group("/warehouses", guard...)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Patch("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)
	warehouses.Get("/:id/items", warehouseHandler.ListItems)
}

// normalizeOrigins acepta la lista con o sin espacios tras las comas.
func normalizeOrigins(origins string) string {
	if strings.TrimSpace(origins) == "" {
		return "*"
	}
	parts := strings.Split(origins, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ",")
}
