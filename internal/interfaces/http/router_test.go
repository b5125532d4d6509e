package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zola-inventory-api/internal/application/access"
	"github.com/jhoicas/zola-inventory-api/internal/application/analytics"
	"github.com/jhoicas/zola-inventory-api/internal/application/apptest"
	"github.com/jhoicas/zola-inventory-api/internal/application/auth"
	"github.com/jhoicas/zola-inventory-api/internal/application/billing"
	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/inventory"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/internal/application/purchasing"
	"github.com/jhoicas/zola-inventory-api/internal/application/usecase"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/infrastructure/metrics"
	"github.com/jhoicas/zola-inventory-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/zola-inventory-api/internal/interfaces/http"
)

const (
	managerID    = "00000000-0000-4000-8000-0000000000a1"
	supervisorID = "00000000-0000-4000-8000-0000000000a2"
	staffID      = "00000000-0000-4000-8000-0000000000a3"
	flourID      = "00000000-0000-4000-8000-0000000000b1"
)

type stubLLM struct {
	text string
	err  error
}

func (s stubLLM) GenerateInventoryInsights(context.Context, dto.InsightsContext) (string, error) {
	return s.text, s.err
}

type testServer struct {
	app     *fiber.App
	store   *apptest.Store
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, llm ports.LLMService) *testServer {
	t.Helper()
	store := apptest.NewStore()
	ctx := context.Background()
	for id, role := range map[string]string{
		managerID:    entity.RoleManager,
		supervisorID: entity.RoleSupervisor,
		staffID:      entity.RoleStaff,
	} {
		require.NoError(t, store.Users().Create(ctx, &entity.User{
			ID: id, Email: role + "@zola-pizza.com", FullName: role, Role: role, Status: entity.UserStatusActive,
		}))
	}
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: flourID, Name: "Farinha", Unit: "kg", QuantityInStock: 10, Threshold: 3, UnitPrice: decimal.NewFromInt(5),
	}))

	accessSvc := access.NewService(store.Users(), store.Permissions(), nil)
	gen := pdf.NewMarotoPDFGenerator()
	m := metrics.New()
	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), accessSvc, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}, "zola-pizza.com", nil),
		Access:           accessSvc,
		UserUC:           usecase.NewUserUseCase(store.Users(), nil, nil),
		ProductUC:        usecase.NewProductUseCase(store, store.Products(), store.Suppliers(), nil, nil, nil),
		SupplierUC:       usecase.NewSupplierUseCase(store.Suppliers(), nil, nil),
		CreateInvoice:    billing.NewCreateInvoiceUseCase(store, store.Products(), store.Suppliers(), nil, nil),
		InvoiceUC:        billing.NewInvoiceUseCase(store.Invoices(), nil, nil, nil),
		InvoicePDF:       billing.NewPDFUseCase(store.Invoices(), store.Suppliers(), gen, nil, nil),
		PurchaseOrderUC:  purchasing.NewPurchaseOrderUseCase(store, store.PurchaseOrders(), store.Suppliers(), store.Products(), gen, nil, nil),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store, store.Movements(), nil, nil),
		AlertUC:          inventory.NewAlertUseCase(store.Alerts()),
		DashboardUC:      analytics.NewDashboardUseCase(store.Analytics(), nil, nil),
		AIUC:             usecase.NewAIUseCase(llm, store.Analytics(), store.Products(), store.PurchaseOrders(), store.Invoices(), 0),
		Metrics:          m,
		JWTSecret:        testJWTSecret,
		LoginPerMinute:   600,
		LoginBurst:       100,
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return &testServer{app: app, store: store, metrics: m}
}

func (s *testServer) do(t *testing.T, method, path, auth string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v), string(data))
}

func TestSignupAprobacionYLogin(t *testing.T) {
	s := newTestServer(t, stubLLM{})

	resp, body := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "Nova@Zola-Pizza.com", "password": "segredo123", "full_name": "Nova Cozinheira",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created dto.UserResponse
	decode(t, body, &created)
	assert.Equal(t, "nova@zola-pizza.com", created.Email)
	assert.Equal(t, entity.UserStatusPending, created.Status)

	login := map[string]string{"email": "nova@zola-pizza.com", "password": "segredo123"}
	resp, body = s.do(t, http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "ACCOUNT_PENDING")

	resp, body = s.do(t, http.MethodPatch, "/api/users/"+created.ID+"/status", tokenFor(t, managerID, entity.RoleManager),
		map[string]string{"status": "active"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var approved dto.UserResponse
	decode(t, body, &approved)
	assert.Equal(t, entity.RoleStaff, approved.Role)

	resp, body = s.do(t, http.MethodPost, "/api/auth/login", "", login)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var session dto.LoginResponse
	decode(t, body, &session)
	assert.NotEmpty(t, session.Token)

	resp, body = s.do(t, http.MethodGet, "/api/auth/me", "Bearer "+session.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.SessionResponse
	decode(t, body, &me)
	assert.Equal(t, created.ID, me.User.ID)
	assert.Empty(t, me.Permissions)
}

func TestSignup_DominioNoPermitido(t *testing.T) {
	s := newTestServer(t, stubLLM{})
	resp, body := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "alguem@gmail.com", "password": "segredo123", "full_name": "X",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "EMAIL_DOMAIN_NOT_ALLOWED")
}

func TestUsers_SoloManager(t *testing.T) {
	s := newTestServer(t, stubLLM{})

	resp, _ := s.do(t, http.MethodGet, "/api/users", tokenFor(t, supervisorID, entity.RoleSupervisor), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Un token con rol manager no basta si la base dice otra cosa.
	resp, _ = s.do(t, http.MethodGet, "/api/users", tokenFor(t, staffID, entity.RoleManager), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.do(t, http.MethodGet, "/api/users", tokenFor(t, managerID, entity.RoleManager), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.UserListResponse
	decode(t, body, &list)
	assert.Len(t, list.Items, 3)

	resp, _ = s.do(t, http.MethodPatch, "/api/users/"+managerID+"/role", tokenFor(t, managerID, entity.RoleManager),
		map[string]string{"role": "staff"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "un manager no cambia su propio rol")
}

func TestProductos_PermisosYValidacion(t *testing.T) {
	s := newTestServer(t, stubLLM{})
	staff := tokenFor(t, staffID, entity.RoleStaff)
	manager := tokenFor(t, managerID, entity.RoleManager)
	product := map[string]interface{}{"name": "Tomate", "unit": "kg", "quantity_in_stock": 4, "threshold": 2, "unit_price": "3.20"}

	resp, body := s.do(t, http.MethodPost, "/api/products", staff, product)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "PERMISSION_DENIED")

	resp, body = s.do(t, http.MethodPost, "/api/users/"+staffID+"/permissions/can_add_products/toggle", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var toggled dto.TogglePermissionResponse
	decode(t, body, &toggled)
	assert.True(t, toggled.Granted)

	resp, body = s.do(t, http.MethodPost, "/api/products", staff, product)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created dto.ProductResponse
	decode(t, body, &created)
	assert.Equal(t, 4, created.QuantityInStock)
	assert.True(t, created.UnitPrice.Equal(decimal.RequireFromString("3.2")))

	product["unit_price"] = "-1"
	resp, body = s.do(t, http.MethodPost, "/api/products", staff, product)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var verr dto.ErrorResponse
	decode(t, body, &verr)
	assert.Equal(t, "VALIDATION", verr.Code)
	assert.Contains(t, verr.Fields, "unit_price")

	resp, _ = s.do(t, http.MethodDelete, "/api/products/"+created.ID, staff, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/products/00000000-0000-4000-8000-00000000ffff", staff, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestToggle_PermisoDesconocido(t *testing.T) {
	s := newTestServer(t, stubLLM{})
	resp, body := s.do(t, http.MethodPost, "/api/users/"+staffID+"/permissions/can_fly/toggle",
		tokenFor(t, managerID, entity.RoleManager), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_PERMISSION")
}

func TestMovimientos_RolYStockNegativo(t *testing.T) {
	s := newTestServer(t, stubLLM{})
	move := map[string]interface{}{"product_id": flourID, "type": "waste", "quantity": -3, "reason": "mofo"}

	resp, _ := s.do(t, http.MethodPost, "/api/stock-movements", tokenFor(t, staffID, entity.RoleStaff), move)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	supervisor := tokenFor(t, supervisorID, entity.RoleSupervisor)
	resp, body := s.do(t, http.MethodPost, "/api/stock-movements", supervisor, move)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var m dto.StockMovementResponse
	decode(t, body, &m)
	assert.Equal(t, 10, m.QuantityBefore)
	assert.Equal(t, 7, m.QuantityAfter)

	move["quantity"] = -50
	resp, body = s.do(t, http.MethodPost, "/api/stock-movements", supervisor, move)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")

	move["quantity"] = 0
	resp, _ = s.do(t, http.MethodPost, "/api/stock-movements", supervisor, move)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/api/stock-movements?product_id="+flourID, supervisor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.StockMovementListResponse
	decode(t, body, &list)
	assert.Len(t, list.Items, 1)
}

func TestFactura_CreaDescuentaYPDF(t *testing.T) {
	s := newTestServer(t, stubLLM{})
	manager := tokenFor(t, managerID, entity.RoleManager)

	resp, body := s.do(t, http.MethodPost, "/api/invoices", manager, map[string]interface{}{
		"customer_name":  "Mesa 7",
		"shipping_price": "5.00",
		"items": []map[string]interface{}{
			{"product_id": flourID, "quantity": 2, "price_per_item": "6.50"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var inv dto.InvoiceResponse
	decode(t, body, &inv)
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(18)), inv.Total.String())
	assert.Regexp(t, `^INV-`, inv.InvoiceNumber)

	p, err := s.store.Products().GetByID(context.Background(), flourID)
	require.NoError(t, err)
	assert.Equal(t, 8, p.QuantityInStock)

	resp, body = s.do(t, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, body = s.do(t, http.MethodPost, "/api/invoices/"+inv.ID+"/email", manager, map[string]string{"to": "cliente@example.com"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), "MAIL_UNAVAILABLE")

	resp, _ = s.do(t, http.MethodGet, "/api/invoices", manager, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDashboard_Conteos(t *testing.T) {
	s := newTestServer(t, stubLLM{})
	resp, body := s.do(t, http.MethodGet, "/api/dashboard", tokenFor(t, staffID, entity.RoleStaff), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var d dto.DashboardResponse
	decode(t, body, &d)
	assert.Equal(t, 1, d.TotalProducts)
	assert.True(t, d.StockValue.Equal(decimal.NewFromInt(50)), d.StockValue.String())
}

func TestInsights_PermisoYProveedorNoConfigurado(t *testing.T) {
	s := newTestServer(t, stubLLM{err: ports.ErrLLMNotConfigured})

	resp, _ := s.do(t, http.MethodPost, "/api/ai/insights", tokenFor(t, staffID, entity.RoleStaff), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.do(t, http.MethodPost, "/api/ai/insights", tokenFor(t, supervisorID, entity.RoleSupervisor), nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), "AI_UNAVAILABLE")
}

func TestInsights_OK(t *testing.T) {
	s := newTestServer(t, stubLLM{text: "## Resumo Geral\nTudo certo."})
	resp, body := s.do(t, http.MethodPost, "/api/ai/insights", tokenFor(t, managerID, entity.RoleManager), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.InsightsResponse
	decode(t, body, &out)
	assert.Contains(t, out.Insights, "Resumo Geral")
}

func TestLoginRateLimit(t *testing.T) {
	app := fiber.New()
	app.Post("/login", apphttp.LoginRateLimit(1, 2), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestTokenEmitidoAntesDeDesactivar(t *testing.T) {
	s := newTestServer(t, stubLLM{})
	supervisor := tokenFor(t, supervisorID, entity.RoleSupervisor)

	resp, _ := s.do(t, http.MethodGet, "/api/products", supervisor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := s.do(t, http.MethodPatch, "/api/users/"+supervisorID+"/status", tokenFor(t, managerID, entity.RoleManager),
		map[string]string{"status": "inactive"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	for _, r := range []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodGet, "/api/auth/me", nil},
		{http.MethodGet, "/api/products", nil},
		{http.MethodGet, "/api/dashboard", nil},
		{http.MethodPatch, "/api/profile", map[string]string{"full_name": "Outro"}},
		{http.MethodPost, "/api/alerts/low-stock/qualquer/ack", nil},
	} {
		resp, body := s.do(t, r.method, r.path, supervisor, r.body)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, r.method+" "+r.path)
		assert.Contains(t, string(body), "ACCOUNT_INACTIVE", r.method+" "+r.path)
	}

	u, err := s.store.Users().GetByID(context.Background(), supervisorID)
	require.NoError(t, err)
	assert.Equal(t, "supervisor", u.FullName, "el perfil no cambia")
}
