package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/application/auth"
	"github.com/jhoicas/Reposicion-api/internal/application/delivery"
	"github.com/jhoicas/Reposicion-api/internal/application/ordering"
	"github.com/jhoicas/Reposicion-api/internal/application/usecase"
	"github.com/jhoicas/Reposicion-api/internal/application/valuation"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Reposicion-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Reposicion-api/pkg/jwt"
)

type fakePDF struct{}

func (fakePDF) GenerateOrderPDF(o *entity.Order) ([]byte, error) {
	return []byte("%PDF-1.4 " + o.ID), nil
}

func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	ledger := ordering.NewLedger(store, store.Orders(), nil, nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ItemUC:     usecase.NewItemUseCase(store.Items()),
		Planner:    ordering.NewPlannerUseCase(store.Items(), ledger, nil),
		Ledger:     ledger,
		Reconciler: delivery.NewReconciler(store, store.Deliveries()),
		Valuation:  valuation.NewUseCase(store, store.Items(), store.Sales(), nil),
		OrderPDF:   fakePDF{},
		JWTSecret:  testJWTSecret,
	})
	return app
}

// call ejecuta la petición con el rol dado y decodifica el JSON de respuesta en out (si no es nil).
func call(t *testing.T, app *fiber.App, role, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createItem(t *testing.T, app *fiber.App, name, vendor string, qty, par int, unit string) string {
	t.Helper()
	var out map[string]interface{}
	code := call(t, app, entity.RoleAdmin, http.MethodPost, "/api/items", map[string]interface{}{
		"name": name, "vendor": vendor, "type": "seco", "quantity_on_hand": qty, "par": par, "unit_value": unit,
	}, &out)
	require.Equal(t, http.StatusCreated, code)
	return out["id"].(string)
}

func placeOrder(t *testing.T, app *fiber.App, vendor string, decisions map[string]bool) string {
	t.Helper()
	var out struct {
		Orders []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"orders"`
	}
	code := call(t, app, entity.RoleComprador, http.MethodPost, "/api/replenishment/orders", map[string]interface{}{
		"vendor": vendor, "decisions": decisions, "expected_delivery_date": "2099-01-15",
	}, &out)
	require.Equal(t, http.StatusCreated, code)
	require.Len(t, out.Orders, 1)
	assert.Equal(t, "open", out.Orders[0].Status)
	return out.Orders[0].ID
}

func TestFlujoCompleto_ReposicionYEntrega(t *testing.T) {
	app := newAPI(t)
	a := createItem(t, app, "ItemA", "Sysco", 0, 10, "5")
	b := createItem(t, app, "ItemB", "Sysco", 0, 20, "3")

	var plan struct {
		Lines []struct {
			ItemID           string `json:"item_id"`
			ProposedQuantity int    `json:"proposed_quantity"`
		} `json:"lines"`
	}
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleBodeguero, http.MethodGet, "/api/replenishment/plan?vendor=Sysco", nil, &plan))
	require.Len(t, plan.Lines, 2)
	assert.Equal(t, 10, plan.Lines[0].ProposedQuantity)
	assert.Equal(t, 20, plan.Lines[1].ProposedQuantity)

	orderID := placeOrder(t, app, "Sysco", map[string]bool{a: true, b: true})

	var rec struct {
		TotalValue   string `json:"total_value"`
		FlaggedLines int    `json:"flagged_lines"`
		Lines        []struct {
			LineTotal string `json:"line_total"`
		} `json:"lines"`
	}
	delivered := map[string]interface{}{"lines": []map[string]interface{}{
		{"item_id": a, "quantity_delivered": 9, "price_delivered": "5.25"},
		{"item_id": b, "quantity_delivered": 20, "price_delivered": "3"},
	}}
	require.Equal(t, http.StatusCreated, call(t, app, entity.RoleBodeguero, http.MethodPost, "/api/orders/"+orderID+"/delivery", delivered, &rec))
	assert.Equal(t, "107.25", rec.TotalValue)
	assert.Equal(t, 0, rec.FlaggedLines)
	require.Len(t, rec.Lines, 2)
	assert.Equal(t, "47.25", rec.Lines[0].LineTotal)

	var item struct {
		QuantityOnHand int `json:"quantity_on_hand"`
	}
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleComprador, http.MethodGet, "/api/items/"+a, nil, &item))
	assert.Equal(t, 9, item.QuantityOnHand)

	var order struct {
		Status string `json:"status"`
	}
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleComprador, http.MethodGet, "/api/orders/"+orderID, nil, &order))
	assert.Equal(t, "closed", order.Status)

	// Segunda entrega sobre la orden cerrada
	var errResp map[string]string
	assert.Equal(t, http.StatusConflict, call(t, app, entity.RoleBodeguero, http.MethodPost, "/api/orders/"+orderID+"/delivery", delivered, &errResp))
	assert.Equal(t, "INVALID_STATE_TRANSITION", errResp["code"])

	var total map[string]string
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleAdmin, http.MethodGet, "/api/deliveries/total-value", nil, &total))
	assert.Equal(t, "107.25", total["total"])

	var list struct {
		Deliveries []map[string]interface{} `json:"deliveries"`
	}
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleAdmin, http.MethodGet, "/api/deliveries?vendor=Sysco", nil, &list))
	assert.Len(t, list.Deliveries, 1)
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleAdmin, http.MethodGet, "/api/deliveries?vendor=USFoods", nil, &list))
	assert.Empty(t, list.Deliveries)

	var value map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleAdmin, http.MethodGet, "/api/valuation/total", nil, &value))
	assert.Equal(t, "105", value["total"]) // 9×5 + 20×3
}

func TestEntrega_Errores(t *testing.T) {
	app := newAPI(t)
	a := createItem(t, app, "ItemA", "Sysco", 0, 10, "5")
	b := createItem(t, app, "ItemB", "Sysco", 0, 20, "3")
	orderID := placeOrder(t, app, "Sysco", map[string]bool{a: true, b: true})

	cases := []struct {
		name   string
		path   string
		lines  []map[string]interface{}
		status int
		code   string
	}{
		{"orden inexistente", "/api/orders/no-existe/delivery",
			[]map[string]interface{}{{"item_id": a, "quantity_delivered": 1, "price_delivered": "5"}},
			http.StatusNotFound, "NOT_FOUND"},
		{"falta una línea", "/api/orders/" + orderID + "/delivery",
			[]map[string]interface{}{{"item_id": a, "quantity_delivered": 1, "price_delivered": "5"}},
			http.StatusUnprocessableEntity, "RECONCILIATION_MISMATCH"},
		{"cantidad negativa", "/api/orders/" + orderID + "/delivery",
			[]map[string]interface{}{
				{"item_id": a, "quantity_delivered": -1, "price_delivered": "5"},
				{"item_id": b, "quantity_delivered": 1, "price_delivered": "3"},
			},
			http.StatusBadRequest, "VALIDATION"},
		{"cantidad no numérica", "/api/orders/" + orderID + "/delivery",
			[]map[string]interface{}{
				{"item_id": a, "quantity_delivered": "abc", "price_delivered": "5"},
				{"item_id": b, "quantity_delivered": 1, "price_delivered": "3"},
			},
			http.StatusBadRequest, "VALIDATION"},
		{"precio con más de cuatro decimales", "/api/orders/" + orderID + "/delivery",
			[]map[string]interface{}{
				{"item_id": a, "quantity_delivered": 10, "price_delivered": "10.50001"},
				{"item_id": b, "quantity_delivered": 20, "price_delivered": "3"},
			},
			http.StatusBadRequest, "VALIDATION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out map[string]string
			assert.Equal(t, tc.status, call(t, app, entity.RoleBodeguero, http.MethodPost, tc.path, map[string]interface{}{"lines": tc.lines}, &out))
			assert.Equal(t, tc.code, out["code"])
		})
	}

	// La orden sigue abierta tras los rechazos
	var order struct {
		Status string `json:"status"`
	}
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleBodeguero, http.MethodGet, "/api/orders/"+orderID, nil, &order))
	assert.Equal(t, "open", order.Status)
}

func TestOrdenes_SoloSeCierranAlConciliar(t *testing.T) {
	app := newAPI(t)
	a := createItem(t, app, "ItemA", "Sysco", 2, 10, "5")
	orderID := placeOrder(t, app, "Sysco", map[string]bool{a: true})

	// No hay cierre manual: la ruta no existe y la orden sigue abierta
	assert.Equal(t, http.StatusNotFound, call(t, app, entity.RoleAdmin, http.MethodPost, "/api/orders/"+orderID+"/close", nil, nil))
	var order struct {
		Status string `json:"status"`
	}
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleAdmin, http.MethodGet, "/api/orders/"+orderID, nil, &order))
	assert.Equal(t, "open", order.Status)

	delivered := map[string]interface{}{"lines": []map[string]interface{}{
		{"item_id": a, "quantity_delivered": 8, "price_delivered": "5"},
	}}
	require.Equal(t, http.StatusCreated, call(t, app, entity.RoleBodeguero, http.MethodPost, "/api/orders/"+orderID+"/delivery", delivered, nil))
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleBodeguero, http.MethodGet, "/api/orders/"+orderID+"/delivery", nil, nil))

	var found struct {
		Orders []map[string]interface{} `json:"orders"`
	}
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleAdmin, http.MethodGet, "/api/orders?status=closed&vendor=Sysco", nil, &found))
	assert.Len(t, found.Orders, 1)
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleAdmin, http.MethodGet, "/api/orders?status=open", nil, &found))
	assert.Empty(t, found.Orders)
	assert.Equal(t, http.StatusBadRequest, call(t, app, entity.RoleAdmin, http.MethodGet, "/api/orders?status=pendiente", nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID+"/pdf", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleBodeguero))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestReposicion_SinLineasAceptadas(t *testing.T) {
	app := newAPI(t)
	a := createItem(t, app, "ItemA", "Sysco", 0, 10, "5")

	var out map[string]string
	assert.Equal(t, http.StatusBadRequest, call(t, app, entity.RoleComprador, http.MethodPost, "/api/replenishment/orders", map[string]interface{}{
		"vendor": "Sysco", "decisions": map[string]bool{a: false}, "expected_delivery_date": "2099-01-15",
	}, &out))
	assert.Equal(t, "VALIDATION", out["code"])

	assert.Equal(t, http.StatusForbidden, call(t, app, entity.RoleBodeguero, http.MethodPost, "/api/replenishment/orders", map[string]interface{}{
		"vendor": "Sysco", "decisions": map[string]bool{a: true}, "expected_delivery_date": "2099-01-15",
	}, nil))
}

func TestConteos_Discrepancia(t *testing.T) {
	app := newAPI(t)
	a := createItem(t, app, "ItemA", "Sysco", 12, 10, "5")

	var disc map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleComprador, http.MethodGet, "/api/items/"+a+"/discrepancy?counted=9", nil, &disc))
	assert.EqualValues(t, 3, disc["discrepancy"])
	assert.Equal(t, false, disc["applied"])

	assert.Equal(t, http.StatusBadRequest, call(t, app, entity.RoleComprador, http.MethodGet, "/api/items/"+a+"/discrepancy?counted=x", nil, nil))

	require.Equal(t, http.StatusOK, call(t, app, entity.RoleBodeguero, http.MethodPost, "/api/items/"+a+"/count", map[string]int{"counted": 9}, &disc))
	assert.Equal(t, true, disc["applied"])

	var item struct {
		QuantityOnHand int `json:"quantity_on_hand"`
	}
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleBodeguero, http.MethodGet, "/api/items/"+a, nil, &item))
	assert.Equal(t, 9, item.QuantityOnHand)
}

func TestMezclaDeVentas(t *testing.T) {
	app := newAPI(t)

	var mix struct {
		Total       string            `json:"total"`
		Percentages map[string]string `json:"percentages"`
	}
	require.Equal(t, http.StatusOK, call(t, app, entity.RoleAdmin, http.MethodPost, "/api/valuation/sales-mix",
		map[string]interface{}{"sales": map[string]string{"bebidas": "30", "comida": "70"}}, &mix))
	assert.Equal(t, "100", mix.Total)
	assert.Equal(t, "30", mix.Percentages["bebidas"])

	var out map[string]string
	assert.Equal(t, http.StatusUnprocessableEntity, call(t, app, entity.RoleAdmin, http.MethodPost, "/api/valuation/sales-mix",
		map[string]interface{}{"sales": map[string]string{"bebidas": "0"}}, &out))
	assert.Equal(t, "DIVISION_UNDEFINED", out["code"])

	assert.Equal(t, http.StatusBadRequest, call(t, app, entity.RoleAdmin, http.MethodGet, "/api/valuation/sales-mix?start=ayer", nil, nil))
}

func TestAuth_RegistroSoloAdminYLogin(t *testing.T) {
	app := newAPI(t)
	user := map[string]string{"email": "bodega@cocina.com", "password": "secreta123", "role": entity.RoleBodeguero}

	assert.Equal(t, http.StatusUnauthorized, call(t, app, "", http.MethodPost, "/api/auth/register", user, nil))
	assert.Equal(t, http.StatusForbidden, call(t, app, entity.RoleComprador, http.MethodPost, "/api/auth/register", user, nil))
	assert.Equal(t, http.StatusCreated, call(t, app, entity.RoleAdmin, http.MethodPost, "/api/auth/register", user, nil))

	var login struct {
		Token string `json:"token"`
	}
	require.Equal(t, http.StatusOK, call(t, app, "", http.MethodPost, "/api/auth/login",
		map[string]string{"email": "bodega@cocina.com", "password": "secreta123"}, &login))
	_, role, err := pkgjwt.Parse(testJWTSecret, login.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBodeguero, role)

	var out map[string]string
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "", http.MethodPost, "/api/auth/login",
		map[string]string{"email": "bodega@cocina.com", "password": "incorrecta"}, &out))
	assert.Equal(t, "INVALID_CREDENTIALS", out["code"])
}
