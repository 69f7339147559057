package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/almacen-api/internal/application/auth"
	"github.com/jmcastano/almacen-api/internal/application/ledger"
	"github.com/jmcastano/almacen-api/internal/application/usecase"
	"github.com/jmcastano/almacen-api/internal/infrastructure/excel"
	"github.com/jmcastano/almacen-api/internal/infrastructure/memory"
	apphttp "github.com/jmcastano/almacen-api/internal/interfaces/http"
)

// newTestAPI levanta la API completa sobre el almacenamiento en memoria, con
// el administrador inicial ya creado.
func newTestAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	_, err := authUC.EnsureBootstrapAdmin("admin", "admin123")
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		ProductUC: usecase.NewProductUseCase(store.Products(), store),
		LedgerUC:  ledger.NewLedgerUseCase(store, store.Products()),
		ReportUC:  usecase.NewReportUseCase(store.Products(), store.Balances(), store.Movements()),
		UserUC:    usecase.NewUserUseCase(store.Users()),
		Exporter:  excel.NewExporter(),
		JWTSecret: testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func loginAs(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login de %s debe funcionar", username)
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// Flujo completo: login admin → crear producto → registrar movimiento →
// inventario refleja el balance → eliminar movimiento lo revierte.
func TestAPI_FlujoCompletoDeInventario(t *testing.T) {
	app := newTestAPI(t)
	token := loginAs(t, app, "admin", "admin123")

	resp := doJSON(t, app, http.MethodPost, "/api/products", token, map[string]string{"name": "Harina"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	productID, _ := decodeBody(t, resp)["id"].(string)
	require.NotEmpty(t, productID)

	resp = doJSON(t, app, http.MethodPost, "/api/inventory/movements", token, map[string]interface{}{
		"product_id":      productID,
		"quantity_change": "10",
		"unit":            "kg",
		"total_price":     "100.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	movementID, _ := decodeBody(t, resp)["id"].(string)
	require.NotEmpty(t, movementID)

	resp = doJSON(t, app, http.MethodGet, "/api/inventory", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inventory []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&inventory))
	resp.Body.Close()
	require.Len(t, inventory, 1)
	assert.Equal(t, "10", fmt.Sprint(inventory[0]["quantity"]))
	assert.Equal(t, "kg", inventory[0]["unit"])

	resp = doJSON(t, app, http.MethodDelete, "/api/inventory/movements/"+movementID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/inventory", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	inventory = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&inventory))
	resp.Body.Close()
	require.Len(t, inventory, 1)
	assert.Equal(t, "0", fmt.Sprint(inventory[0]["quantity"]), "el balance debe quedar revertido")
}

// Validación HTTP: cantidad no positiva y precio negativo se rechazan antes
// del motor.
func TestAPI_ValidacionDeMovimientos(t *testing.T) {
	app := newTestAPI(t)
	token := loginAs(t, app, "admin", "admin123")

	resp := doJSON(t, app, http.MethodPost, "/api/products", token, map[string]string{"name": "Harina"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	productID, _ := decodeBody(t, resp)["id"].(string)

	cases := []map[string]interface{}{
		{"product_id": productID, "quantity_change": "0", "unit": "kg", "total_price": "1.00"},
		{"product_id": productID, "quantity_change": "-5", "unit": "kg", "total_price": "1.00"},
		{"product_id": productID, "quantity_change": "5", "unit": "kg", "total_price": "-1.00"},
		{"product_id": productID, "quantity_change": "5", "total_price": "1.00"}, // sin unidad
		{"quantity_change": "5", "unit": "kg", "total_price": "1.00"},            // sin producto
	}
	for i, body := range cases {
		resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", token, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "caso %d debe rechazarse", i)
		resp.Body.Close()
	}
}

// Eliminar un movimiento inexistente → 404.
func TestAPI_EliminarMovimientoInexistente(t *testing.T) {
	app := newTestAPI(t)
	token := loginAs(t, app, "admin", "admin123")

	resp := doJSON(t, app, http.MethodDelete, "/api/inventory/movements/no-existe", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// Una cuenta registrada sin permisos ve el inventario pero no puede escribir
// ni ver reportes ni administrar cuentas.
func TestAPI_CuentaSinPermisosSoloLee(t *testing.T) {
	app := newTestAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"username": "maria",
		"password": "secreta123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	token := loginAs(t, app, "maria", "secreta123")

	resp = doJSON(t, app, http.MethodGet, "/api/inventory", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	denied := []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodPost, "/api/products", map[string]string{"name": "Harina"}},
		{http.MethodPost, "/api/inventory/movements", map[string]interface{}{"product_id": "x", "quantity_change": "1", "unit": "kg", "total_price": "1"}},
		{http.MethodGet, "/api/reports/inventory", nil},
		{http.MethodGet, "/api/reports/export/detailed", nil},
		{http.MethodGet, "/api/users", nil},
	}
	for _, d := range denied {
		resp := doJSON(t, app, d.method, d.path, token, d.body)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s debe dar 403", d.method, d.path)
		resp.Body.Close()
	}
}

// GET /api/user devuelve la cuenta autenticada.
func TestAPI_CuentaAutenticada(t *testing.T) {
	app := newTestAPI(t)
	token := loginAs(t, app, "admin", "admin123")

	resp := doJSON(t, app, http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "admin", body["username"])
	assert.Equal(t, true, body["is_admin"])
}

// El export responde con el content type de XLSX y un adjunto.
func TestAPI_ExportXLSX(t *testing.T) {
	app := newTestAPI(t)
	token := loginAs(t, app, "admin", "admin123")

	for _, kind := range []string{"detailed", "summary"} {
		resp := doJSON(t, app, http.MethodGet, "/api/reports/export/"+kind, token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/reports/export/pdf", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "tipo desconocido → 400")
	resp.Body.Close()
}

// Registro con username ya usado → 409; password corta → 400.
func TestAPI_RegistroValidaciones(t *testing.T) {
	app := newTestAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"username": "maria", "password": "secreta123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"username": "MARIA", "password": "secreta123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "username duplicado case-insensitive")
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"username": "pedro", "password": "corta",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// Administración de cuentas: eliminar al último admin y auto-eliminarse → 409.
func TestAPI_ReglasDeEliminacionDeCuentas(t *testing.T) {
	app := newTestAPI(t)
	token := loginAs(t, app, "admin", "admin123")

	resp := doJSON(t, app, http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adminID, _ := decodeBody(t, resp)["id"].(string)
	require.NotEmpty(t, adminID)

	resp = doJSON(t, app, http.MethodDelete, "/api/users/"+adminID, token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "auto-eliminación → 409")
	resp.Body.Close()

	// Otro admin elimina: sigue chocando con la regla del último admin vía
	// una cuenta distinta.
	resp = doJSON(t, app, http.MethodPost, "/api/users", token, map[string]interface{}{
		"username": "operador", "password": "secreta123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// El operador no es admin: no puede tocar /api/users.
	opToken := loginAs(t, app, "operador", "secreta123")
	resp = doJSON(t, app, http.MethodDelete, "/api/users/"+adminID, opToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
