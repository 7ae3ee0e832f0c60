package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/catalog"
	disputeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/dispute"
	financeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/finance"
	partnerapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/partner"
	reportapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/report"
	tradeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/trade"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/finance"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/auth"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/config"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/persistence"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/storage"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/dto"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/router"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope mirrors dto.Response with the payload left raw
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

// testAPI is the full HTTP stack over in-memory sqlite with real JWTs
type testAPI struct {
	t      *testing.T
	engine *gin.Engine
	tokens *auth.JWTService

	admin    shared.Actor
	customer shared.Actor
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:", AutoMigrate: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := zaptest.NewLogger(t)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	listingRepo := persistence.NewGormProductListingRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	vendorOrderRepo := persistence.NewGormVendorOrderRepository(db.DB)
	disputeRepo := persistence.NewGormDisputeRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	rates, err := finance.NewStaticRateProvider(decimal.RequireFromString("0.10"), nil)
	require.NoError(t, err)

	vendorService := partnerapp.NewVendorService(vendorRepo, log)
	listingService := catalogapp.NewListingService(listingRepo, vendorRepo, "USD", log)
	orderService := tradeapp.NewOrderService(orderRepo, vendorOrderRepo,
		catalogapp.NewOrderableResolver(listingRepo, vendorRepo), rates, scope, "USD", log)
	fulfillmentService := tradeapp.NewFulfillmentService(vendorOrderRepo, scope, log)
	payoutService := financeapp.NewPayoutService(vendorOrderRepo, disputeRepo, log)
	disputeService := disputeapp.NewDisputeService(disputeRepo, vendorOrderRepo,
		storage.NewStubEvidenceStorage(""), disputeapp.DefaultServiceConfig(), log)
	fulfillmentService.SetPayoutSignaler(payoutService)
	disputeService.SetPayoutSignaler(payoutService)
	dashboardService := reportapp.NewDashboardService(vendorRepo, listingRepo, vendorOrderRepo, disputeRepo)

	tokens := auth.NewJWTService(config.JWTConfig{
		Secret:                "handler-test-secret-0123456789abcdef",
		AccessTokenExpiration: time.Hour,
		Issuer:                "marketplace-test",
	})
	authenticator := auth.NewAuthenticator(tokens, auth.NewInMemoryTokenBlacklist())

	system := NewSystemHandler("test").AddCheck("database", func(context.Context) error { return db.Ping() })

	engine := router.NewEngine(router.EngineConfig{
		HTTP:          config.HTTPConfig{MaxBodySize: 1 << 20},
		Logger:        log,
		Authenticator: authenticator,
		Health:        system.Health,
	},
		NewAuthHandler(authenticator),
		NewVendorHandler(vendorService),
		NewProductHandler(listingService),
		NewOrderHandler(orderService, fulfillmentService),
		NewPayoutHandler(payoutService),
		NewDisputeHandler(disputeService),
		NewDashboardHandler(dashboardService),
	)

	return &testAPI{
		t:        t,
		engine:   engine,
		tokens:   tokens,
		admin:    shared.Admin(uuid.New()),
		customer: shared.Customer(uuid.New()),
	}
}

func (a *testAPI) token(actor shared.Actor) string {
	a.t.Helper()
	tok, err := a.tokens.Issue(actor)
	require.NoError(a.t, err)
	return tok.AccessToken
}

// call performs a request as actor; a zero actor sends no Authorization header
func (a *testAPI) call(actor shared.Actor, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor.UserID != uuid.Nil {
		req.Header.Set("Authorization", "Bearer "+a.token(actor))
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

// expect performs a call and requires the status, decoding data into out
func (a *testAPI) expect(status int, actor shared.Actor, method, path string, body, out any) envelope {
	a.t.Helper()
	w, env := a.call(actor, method, path, body)
	require.Equal(a.t, status, w.Code, w.Body.String())
	if out != nil {
		require.NoError(a.t, json.Unmarshal(env.Data, out))
	}
	return env
}

func (a *testAPI) approvedVendor() (partnerapp.VendorResponse, shared.Actor) {
	a.t.Helper()
	owner := shared.Customer(uuid.New())
	var vendor partnerapp.VendorResponse
	a.expect(http.StatusCreated, owner, http.MethodPost, "/api/v1/vendors", map[string]any{
		"business_name": "Glow Labs",
		"contact_email": "ops@glowlabs.example",
	}, &vendor)
	a.expect(http.StatusOK, a.admin, http.MethodPost, "/api/v1/admin/vendors/"+vendor.ID.String()+"/approve", nil, &vendor)
	return vendor, shared.VendorActor(owner.UserID, vendor.ID)
}

func (a *testAPI) approvedProduct(vendor shared.Actor, price string) catalogapp.ProductResponse {
	a.t.Helper()
	var product catalogapp.ProductResponse
	a.expect(http.StatusCreated, vendor, http.MethodPost, "/api/v1/vendors/"+vendor.VendorID.String()+"/products", map[string]any{
		"sku":   "GL-" + uuid.NewString()[:8],
		"name":  "Serum",
		"price": price,
	}, &product)
	a.expect(http.StatusOK, a.admin, http.MethodPost, "/api/v1/admin/products/"+product.ID.String()+"/approve", nil, &product)
	return product
}

func (a *testAPI) placeOrder(productIDs ...uuid.UUID) tradeapp.OrderResponse {
	a.t.Helper()
	items := make([]map[string]any, len(productIDs))
	for i, id := range productIDs {
		items[i] = map[string]any{"product_id": id, "quantity": 1}
	}
	var order tradeapp.OrderResponse
	a.expect(http.StatusCreated, a.customer, http.MethodPost, "/api/v1/orders", map[string]any{
		"payment_reference": "auth_" + uuid.NewString(),
		"items":             items,
	}, &order)
	return order
}

// callWithToken sends a bodyless request with a preissued bearer token
func (a *testAPI) callWithToken(token, method, path string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}
