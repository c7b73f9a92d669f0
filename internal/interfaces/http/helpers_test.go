package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lager-api/internal/application/usecase"
	"github.com/jhoicas/lager-api/internal/infrastructure/artifact"
	"github.com/jhoicas/lager-api/internal/infrastructure/pdf"
	"github.com/jhoicas/lager-api/internal/infrastructure/qrcode"
	"github.com/jhoicas/lager-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/lager-api/internal/interfaces/http"
	"github.com/jhoicas/lager-api/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "lager-api-test"
	testClient    = "escaner-garage"
	testExpMin    = 60
)

// buildTestApp arma la API completa sobre SQLite en memoria y un directorio temporal de QR.
// Con secret vacío las rutas quedan abiertas.
func buildTestApp(t *testing.T, secret string) *fiber.App {
	t.Helper()
	runner := sqlite.NewTxRunner(sqlite.NewTestDB(t))
	store, err := artifact.NewFileStore(t.TempDir())
	require.NoError(t, err)

	itemUC := usecase.NewItemUseCase(runner, nil, qrcode.NewEncoder(64), store, pdf.NewLabelGenerator(), logger.Nop())
	warehouseUC := usecase.NewWarehouseUseCase(runner)

	return apphttp.NewApp(apphttp.AppConfig{Name: "lager-api-test"}, apphttp.RouterDeps{
		ItemUC:      itemUC,
		WarehouseUC: warehouseUC,
		JWTSecret:   secret,
		JWTIssuer:   testIssuer,
	})
}

// doJSON envía la petición (body opcional) y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, target string, body any, header ...string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode lee el cuerpo JSON en out y cierra la respuesta.
func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
