// token emite un JWT de servicio para clientes de la API (escáneres, web, scripts).
//
// Uso: go run ./cmd/token <cliente>
// Requiere JWT_SECRET; la vigencia sale de JWT_EXPIRATION_MINUTES.
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/lager-api/pkg/config"
	"github.com/jhoicas/lager-api/pkg/jwt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: token <cliente>")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	if !cfg.JWT.Enabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está definido")
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, os.Args[1], cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
