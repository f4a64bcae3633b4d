package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/entregas-epp/internal/application/delivery"
	"github.com/jhoicas/entregas-epp/internal/application/dto"
	"github.com/jhoicas/entregas-epp/internal/application/inventory"
	"github.com/jhoicas/entregas-epp/internal/domain/entity"
	"github.com/jhoicas/entregas-epp/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/entregas-epp/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/entregas-epp/pkg/jwt"
)

type stubPDF struct{}

func (stubPDF) GenerateDeliveryPDF(_ context.Context, _ *entity.Delivery, _ []delivery.PDFLine) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	store.PutEquipment(
		&entity.EquipmentStock{ID: "CASCO", Name: "Casco", QuantityOnHand: 10, ReorderThreshold: 5, CriticalThreshold: 2},
		&entity.EquipmentStock{ID: "BOTAS", Name: "Botas", HasVariants: true, Variants: []entity.StockVariant{
			{ID: "40", QuantityOnHand: 3}, {ID: "42", QuantityOnHand: 3},
		}},
	)
	log := zerolog.Nop()
	runner := inventory.NewRetryingTxRunner(store, inventory.RetryPolicy{MaxAttempts: 5, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}, log)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		DeliveryUC:  delivery.NewUseCase(runner, inventory.NewStockApplier(), store.Deliveries(), log),
		DeliveryPDF: delivery.NewPDFUseCase(store.Deliveries(), store.EquipmentStocks(), stubPDF{}),
		StockQuery:  inventory.NewStockQueryUseCase(store.EquipmentStocks(), store.Movements()),
		JWTSecret:   testJWTSecret,
		Log:         log,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func deliveryBody(items ...map[string]any) map[string]any {
	return map[string]any{
		"worker_id":   "CC-1020",
		"worker_name": "Ana Pérez",
		"area":        "Planta",
		"items":       items,
	}
}

func item(eq, variant string, qty int) map[string]any {
	return map[string]any{"equipment_id": eq, "variant_id": variant, "quantity": qty, "unit_cost": "1000"}
}

func stockOf(t *testing.T, app *fiber.App, id string) dto.EquipmentStockDTO {
	t.Helper()
	status, body := call(t, app, http.MethodGet, "/api/equipment/"+id+"/stock", pkgjwt.RoleConsulta, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var st dto.EquipmentStockDTO
	require.NoError(t, json.Unmarshal(body, &st))
	return st
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

func TestAPI_CicloDeVida(t *testing.T) {
	app := newAPI(t)

	// Crear
	status, body := call(t, app, http.MethodPost, "/api/deliveries", pkgjwt.RoleAlmacenista, deliveryBody(item("CASCO", "", 3)))
	require.Equal(t, http.StatusCreated, status, string(body))
	var created dto.DeliveryMutationResponse
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.DeliveryID)
	assert.Equal(t, int64(7), stockOf(t, app, "CASCO").QuantityOnHand)

	// Detalle: autoriza el usuario del token
	status, body = call(t, app, http.MethodGet, "/api/deliveries/"+created.DeliveryID, pkgjwt.RoleConsulta, nil)
	require.Equal(t, http.StatusOK, status)
	var d dto.DeliveryResponse
	require.NoError(t, json.Unmarshal(body, &d))
	assert.Equal(t, testUserID, d.AuthorizedBy)
	assert.Equal(t, "3000", d.TotalAmount.String())

	// Editar 3 → 5: stock 5, en reorden
	status, body = call(t, app, http.MethodPut, "/api/deliveries/"+created.DeliveryID, pkgjwt.RoleAlmacenista, deliveryBody(item("CASCO", "", 5)))
	require.Equal(t, http.StatusOK, status, string(body))
	var updated dto.DeliveryMutationResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	require.Len(t, updated.Alerts, 1)
	assert.Equal(t, "REORDER", updated.Alerts[0].Level)
	assert.Equal(t, int64(5), stockOf(t, app, "CASCO").QuantityOnHand)

	// Kardex: salida 3 y salida 2, el más reciente primero
	status, body = call(t, app, http.MethodGet, "/api/equipment/CASCO/movements", pkgjwt.RoleConsulta, nil)
	require.Equal(t, http.StatusOK, status)
	var movs []dto.StockMovementDTO
	require.NoError(t, json.Unmarshal(body, &movs))
	require.Len(t, movs, 2)
	assert.Equal(t, int64(-2), movs[0].Delta)

	// PDF
	req := httptest.NewRequest(http.MethodGet, "/api/deliveries/"+created.DeliveryID+"/pdf", nil)
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleConsulta))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "entrega-epp-"+created.DeliveryID+".pdf")

	// Eliminar: almacenista no puede, supervisor sí
	status, _ = call(t, app, http.MethodDelete, "/api/deliveries/"+created.DeliveryID, pkgjwt.RoleAlmacenista, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = call(t, app, http.MethodDelete, "/api/deliveries/"+created.DeliveryID, pkgjwt.RoleSupervisor, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(10), stockOf(t, app, "CASCO").QuantityOnHand)

	status, body = call(t, app, http.MethodGet, "/api/deliveries/"+created.DeliveryID, pkgjwt.RoleConsulta, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func TestAPI_Errores(t *testing.T) {
	app := newAPI(t)

	status, body := call(t, app, http.MethodPost, "/api/deliveries", pkgjwt.RoleAlmacenista, deliveryBody(item("CASCO", "", 50)))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))
	assert.Equal(t, int64(10), stockOf(t, app, "CASCO").QuantityOnHand)

	status, body = call(t, app, http.MethodPost, "/api/deliveries", pkgjwt.RoleAlmacenista, deliveryBody())
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "EMPTY_DELIVERY", errorCode(t, body))

	status, body = call(t, app, http.MethodPost, "/api/deliveries", pkgjwt.RoleAlmacenista, deliveryBody(item("BOTAS", "44", 1)))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "VARIANT_NOT_FOUND", errorCode(t, body))

	status, body = call(t, app, http.MethodPost, "/api/deliveries", pkgjwt.RoleAlmacenista, deliveryBody(item("GUANTES", "", 1)))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))

	status, body = call(t, app, http.MethodPost, "/api/deliveries", pkgjwt.RoleAlmacenista, deliveryBody(item("BOTAS", "", 1)))
	assert.Equal(t, http.StatusBadRequest, status, "equipo con tallas sin talla")
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	status, body = call(t, app, http.MethodPut, "/api/deliveries/no-existe", pkgjwt.RoleAlmacenista, deliveryBody(item("CASCO", "", 1)))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))

	status, body = call(t, app, http.MethodPut, "/api/deliveries/no-existe", pkgjwt.RoleAlmacenista, deliveryBody(item("CASCO", "", 0)))
	assert.Equal(t, http.StatusNotFound, status, "NotFound antes que validación")
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))

	status, body = call(t, app, http.MethodPost, "/api/deliveries", pkgjwt.RoleAlmacenista, deliveryBody(item("CASCO", "", math.MaxInt), item("CASCO", "", math.MaxInt)))
	assert.Equal(t, http.StatusBadRequest, status, "cantidad fuera de rango")
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	status, _ = call(t, app, http.MethodPost, "/api/deliveries", pkgjwt.RoleConsulta, deliveryBody(item("CASCO", "", 1)))
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAPI_BajoStockYListado(t *testing.T) {
	app := newAPI(t)

	status, body := call(t, app, http.MethodPost, "/api/deliveries", pkgjwt.RoleSupervisor, deliveryBody(item("CASCO", "", 9), item("BOTAS", "40", 1)))
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = call(t, app, http.MethodGet, "/api/equipment/low-stock", pkgjwt.RoleConsulta, nil)
	require.Equal(t, http.StatusOK, status)
	var low struct {
		Total int                  `json:"total"`
		Items []dto.LowStockItemDTO `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &low))
	require.Equal(t, 1, low.Total)
	assert.Equal(t, "CASCO", low.Items[0].EquipmentID)
	assert.Equal(t, "CRITICAL", low.Items[0].Level)

	status, body = call(t, app, http.MethodGet, "/api/deliveries?worker_id=CC-1020&limit=5", pkgjwt.RoleConsulta, nil)
	require.Equal(t, http.StatusOK, status)
	var list []dto.DeliveryResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	status, _ = call(t, app, http.MethodGet, "/api/deliveries?from=02-03-2026", pkgjwt.RoleConsulta, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = call(t, app, http.MethodGet, "/api/deliveries?worker_id=otro", pkgjwt.RoleConsulta, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))
}
