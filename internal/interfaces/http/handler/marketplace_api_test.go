package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/catalog"
	disputeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/dispute"
	financeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/finance"
	partnerapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/partner"
	tradeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/trade"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/dto"
)

func TestAPI_Health(t *testing.T) {
	api := newTestAPI(t)

	var status HealthStatus
	env := api.expect(http.StatusOK, shared.Actor{}, http.MethodGet, "/health", nil, &status)
	assert.True(t, env.Success)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "ok", status.Checks["database"])
}

func TestAPI_RequiresToken(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.call(shared.Actor{}, http.MethodGet, "/api/v1/orders/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeUnauthorized, env.Error.Code)
}

func TestAPI_UnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.call(api.admin, http.MethodGet, "/api/v1/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeRouteNotFound, env.Error.Code)
}

func TestAPI_AdminRoutesRejectOtherRoles(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.call(api.customer, http.MethodGet, "/api/v1/admin/vendors/pending", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodePermissionDenied, env.Error.Code)
}

func TestAPI_Me(t *testing.T) {
	api := newTestAPI(t)
	vendor := shared.VendorActor(uuid.New(), uuid.New())

	var me MeResponse
	api.expect(http.StatusOK, vendor, http.MethodGet, "/api/v1/auth/me", nil, &me)
	assert.Equal(t, "vendor", me.Role)
	assert.Equal(t, vendor.UserID.String(), me.UserID)
	assert.Equal(t, vendor.VendorID.String(), me.VendorID)
	assert.NotEmpty(t, me.TokenID)
	assert.NotNil(t, me.ExpiresAt)
}

func TestAPI_RevokedTokenIsRejected(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(api.customer)

	send := func(method, path string) int {
		w, _ := api.callWithToken(token, method, path)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/api/v1/auth/revoke"))
	assert.Equal(t, http.StatusUnauthorized, send(http.MethodGet, "/api/v1/auth/me"))
}

func TestAPI_VendorOnboarding(t *testing.T) {
	api := newTestAPI(t)
	owner := shared.Customer(uuid.New())

	var vendor partnerapp.VendorResponse
	api.expect(http.StatusCreated, owner, http.MethodPost, "/api/v1/vendors", map[string]any{
		"business_name": "Glow Labs",
		"contact_email": "ops@glowlabs.example",
	}, &vendor)
	assert.Equal(t, "pending", vendor.Status)

	var pending []partnerapp.VendorResponse
	api.expect(http.StatusOK, api.admin, http.MethodGet, "/api/v1/admin/vendors/pending", nil, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, vendor.ID, pending[0].ID)

	path := "/api/v1/admin/vendors/" + vendor.ID.String()
	api.expect(http.StatusOK, api.admin, http.MethodPost, path+"/approve", nil, &vendor)
	assert.Equal(t, "approved", vendor.Status)

	t.Run("approving twice is an invalid transition", func(t *testing.T) {
		w, env := api.call(api.admin, http.MethodPost, path+"/approve", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeInvalidTransition, env.Error.Code)
	})

	t.Run("suspend without a body", func(t *testing.T) {
		api.expect(http.StatusOK, api.admin, http.MethodPost, path+"/suspend", nil, &vendor)
		assert.Equal(t, "suspended", vendor.Status)
	})

	t.Run("reinstate", func(t *testing.T) {
		api.expect(http.StatusOK, api.admin, http.MethodPost, path+"/reinstate", nil, &vendor)
		assert.Equal(t, "approved", vendor.Status)
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		w, env := api.call(api.admin, http.MethodPost, path+"/reject", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
	})
}

func TestAPI_MalformedID(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.call(api.admin, http.MethodGet, "/api/v1/vendors/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
}

func TestAPI_UnknownVendorIsNotFound(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.call(api.admin, http.MethodGet, "/api/v1/vendors/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)
}

func TestAPI_PendingVendorCannotList(t *testing.T) {
	api := newTestAPI(t)
	owner := shared.Customer(uuid.New())

	var vendor partnerapp.VendorResponse
	api.expect(http.StatusCreated, owner, http.MethodPost, "/api/v1/vendors", map[string]any{
		"business_name": "Glow Labs",
		"contact_email": "ops@glowlabs.example",
	}, &vendor)

	actor := shared.VendorActor(owner.UserID, vendor.ID)
	w, env := api.call(actor, http.MethodPost, "/api/v1/vendors/"+vendor.ID.String()+"/products", map[string]any{
		"sku": "GL-1", "name": "Serum", "price": "40.00",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeVendorNotApproved, env.Error.Code)
}

func TestAPI_ProductReview(t *testing.T) {
	api := newTestAPI(t)
	_, vendor := api.approvedVendor()
	base := "/api/v1/vendors/" + vendor.VendorID.String() + "/products"

	var product catalogapp.ProductResponse
	api.expect(http.StatusCreated, vendor, http.MethodPost, base, map[string]any{
		"sku": "GL-1", "name": "Serum", "price": "40.00",
	}, &product)
	assert.Equal(t, "pending", product.Status)

	var orderability catalogapp.OrderabilityResponse
	api.expect(http.StatusOK, api.customer, http.MethodGet, "/api/v1/products/"+product.ID.String()+"/orderability", nil, &orderability)
	assert.False(t, orderability.Orderable)

	api.expect(http.StatusOK, api.admin, http.MethodPost, "/api/v1/admin/products/"+product.ID.String()+"/reject",
		map[string]any{"reason": "image quality"}, &product)
	assert.Equal(t, "rejected", product.Status)
	assert.Equal(t, "image quality", product.RejectionReason)

	var resubmitted catalogapp.ProductResponse
	api.expect(http.StatusCreated, vendor, http.MethodPost, "/api/v1/products/"+product.ID.String()+"/resubmit", map[string]any{
		"sku": "GL-1", "name": "Serum v2", "price": "42.00",
	}, &resubmitted)
	assert.NotEqual(t, product.ID, resubmitted.ID)
	assert.Equal(t, "pending", resubmitted.Status)
	require.NotNil(t, resubmitted.PreviousListingID)
	assert.Equal(t, product.ID, *resubmitted.PreviousListingID)

	var queue []catalogapp.ProductResponse
	api.expect(http.StatusOK, api.admin, http.MethodGet, "/api/v1/admin/products/pending", nil, &queue)
	require.Len(t, queue, 1)
	assert.Equal(t, resubmitted.ID, queue[0].ID)

	api.expect(http.StatusOK, api.admin, http.MethodPost, "/api/v1/admin/products/"+resubmitted.ID.String()+"/approve", nil, &resubmitted)
	api.expect(http.StatusOK, api.customer, http.MethodGet, "/api/v1/products/"+resubmitted.ID.String()+"/orderability", nil, &orderability)
	assert.True(t, orderability.Orderable)

	var listed []catalogapp.ProductResponse
	api.expect(http.StatusOK, vendor, http.MethodGet, base, nil, &listed)
	assert.Len(t, listed, 2)

	t.Run("other vendors cannot list", func(t *testing.T) {
		other := shared.VendorActor(uuid.New(), uuid.New())
		w, env := api.call(other, http.MethodGet, base, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodePermissionDenied, env.Error.Code)
	})
}

func TestAPI_OrderSplitsByVendor(t *testing.T) {
	api := newTestAPI(t)
	_, vendorA := api.approvedVendor()
	_, vendorB := api.approvedVendor()
	productA := api.approvedProduct(vendorA, "100.00")
	productB := api.approvedProduct(vendorB, "50.00")

	order := api.placeOrder(productA.ID, productB.ID)
	require.Len(t, order.VendorOrders, 2)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("150")))
	assert.NotEmpty(t, order.OrderNumber)

	var fetched tradeapp.OrderResponse
	api.expect(http.StatusOK, api.customer, http.MethodGet, "/api/v1/orders/"+order.ID.String(), nil, &fetched)
	assert.Equal(t, order.ID, fetched.ID)

	var vendorOrders []tradeapp.VendorOrderResponse
	env := api.expect(http.StatusOK, vendorA, http.MethodGet, "/api/v1/vendors/"+vendorA.VendorID.String()+"/orders", nil, &vendorOrders)
	require.Len(t, vendorOrders, 1)
	assert.True(t, vendorOrders[0].Commission.Equal(decimal.RequireFromString("10")))
	assert.True(t, vendorOrders[0].Payout.Equal(decimal.RequireFromString("90")))
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Total)

	t.Run("another customer cannot read the order", func(t *testing.T) {
		w, _ := api.call(shared.Customer(uuid.New()), http.MethodGet, "/api/v1/orders/"+order.ID.String(), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("empty cart is a validation error", func(t *testing.T) {
		w, env := api.call(api.customer, http.MethodPost, "/api/v1/orders", map[string]any{
			"payment_reference": "auth_x",
			"items":             []any{},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
	})
}

func TestAPI_CustomerOrderHistory(t *testing.T) {
	api := newTestAPI(t)
	_, vendor := api.approvedVendor()
	product := api.approvedProduct(vendor, "40.00")

	first := api.placeOrder(product.ID)
	second := api.placeOrder(product.ID)
	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)

	var mine []tradeapp.OrderSummaryResponse
	env := api.expect(http.StatusOK, api.customer, http.MethodGet, "/api/v1/orders?page_size=1", nil, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, second.ID, mine[0].ID, "newest first")
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(2), env.Meta.Total)

	api.expect(http.StatusOK, api.customer, http.MethodGet, "/api/v1/orders?status=pending&order_by=order_number&order_dir=asc", nil, &mine)
	require.Len(t, mine, 2)
	assert.Equal(t, first.OrderNumber, mine[0].OrderNumber)

	api.expect(http.StatusOK, api.customer, http.MethodGet, "/api/v1/orders?status=shipped", nil, &mine)
	assert.Empty(t, mine)

	t.Run("other customers see only their own", func(t *testing.T) {
		var theirs []tradeapp.OrderSummaryResponse
		api.expect(http.StatusOK, shared.Customer(uuid.New()), http.MethodGet, "/api/v1/orders", nil, &theirs)
		assert.Empty(t, theirs)
	})

	t.Run("vendors have no order history", func(t *testing.T) {
		w, _ := api.call(vendor, http.MethodGet, "/api/v1/orders", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		w, _ := api.call(api.customer, http.MethodGet, "/api/v1/orders?status=lost", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAPI_FulfillmentAndPayout(t *testing.T) {
	api := newTestAPI(t)
	_, vendor := api.approvedVendor()
	product := api.approvedProduct(vendor, "100.00")
	vo := api.placeOrder(product.ID).VendorOrders[0]
	path := "/api/v1/vendor-orders/" + vo.ID.String()

	var eligibility financeapp.PayoutEligibilityResponse
	api.expect(http.StatusOK, vendor, http.MethodGet, path+"/payout-eligibility", nil, &eligibility)
	assert.False(t, eligibility.Eligible)

	t.Run("customer cannot ship", func(t *testing.T) {
		w, _ := api.call(api.customer, http.MethodPost, path+"/ship", map[string]any{"carrier": "UPS", "tracking_number": "1Z"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("delivery before shipping is an invalid transition", func(t *testing.T) {
		w, env := api.call(api.customer, http.MethodPost, path+"/deliver", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeInvalidTransition, env.Error.Code)
	})

	api.expect(http.StatusOK, vendor, http.MethodPost, path+"/processing", nil, &vo)
	assert.Equal(t, "processing", vo.Status)
	api.expect(http.StatusOK, vendor, http.MethodPost, path+"/ship", map[string]any{"carrier": "UPS", "tracking_number": "1Z"}, &vo)
	assert.Equal(t, "shipped", vo.Status)
	api.expect(http.StatusOK, api.customer, http.MethodPost, path+"/deliver", nil, &vo)
	assert.Equal(t, "delivered", vo.Status)

	api.expect(http.StatusOK, vendor, http.MethodGet, path+"/payout-eligibility", nil, &eligibility)
	assert.True(t, eligibility.Eligible)
	assert.True(t, eligibility.Payout.Equal(decimal.RequireFromString("90")))

	var summary financeapp.PayoutSummaryResponse
	api.expect(http.StatusOK, vendor, http.MethodGet, "/api/v1/vendors/"+vendor.VendorID.String()+"/payouts/summary", nil, &summary)
	assert.Equal(t, int64(1), summary.DeliveredOrders)
	assert.True(t, summary.EligibleAmount.Equal(decimal.RequireFromString("90")))

	var eligible []financeapp.PayoutEligibilityResponse
	api.expect(http.StatusOK, api.admin, http.MethodGet, "/api/v1/admin/vendors/"+vendor.VendorID.String()+"/payouts/eligible", nil, &eligible)
	require.Len(t, eligible, 1)
	assert.Equal(t, vo.ID, eligible[0].VendorOrderID)

	t.Run("delivered orders cannot be returned", func(t *testing.T) {
		w, env := api.call(vendor, http.MethodPost, path+"/return", map[string]any{"reason": "changed mind"})
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeInvalidTransition, env.Error.Code)
	})
}

func TestAPI_DisputeHoldsPayout(t *testing.T) {
	api := newTestAPI(t)
	_, vendor := api.approvedVendor()
	product := api.approvedProduct(vendor, "100.00")
	vo := api.placeOrder(product.ID).VendorOrders[0]
	path := "/api/v1/vendor-orders/" + vo.ID.String()

	api.expect(http.StatusOK, vendor, http.MethodPost, path+"/ship", map[string]any{"carrier": "UPS", "tracking_number": "1Z"}, nil)
	api.expect(http.StatusOK, api.customer, http.MethodPost, path+"/deliver", nil, nil)

	var d disputeapp.DisputeResponse
	api.expect(http.StatusCreated, api.customer, http.MethodPost, path+"/disputes", map[string]any{
		"type":        "damaged",
		"description": "cracked bottle",
		"amount":      "20.00",
	}, &d)
	assert.Equal(t, "open", d.Status)

	var eligibility financeapp.PayoutEligibilityResponse
	api.expect(http.StatusOK, api.admin, http.MethodGet, path+"/payout-eligibility", nil, &eligibility)
	assert.False(t, eligibility.Eligible)
	assert.Contains(t, eligibility.BlockingDisputes, d.ID)

	var upload disputeapp.EvidenceUploadResponse
	api.expect(http.StatusCreated, api.customer, http.MethodPost, "/api/v1/disputes/"+d.ID.String()+"/evidence", map[string]any{
		"file_name":    "photo.jpg",
		"content_type": "image/jpeg",
	}, &upload)
	assert.Contains(t, upload.UploadURL, "https://storage.example.com/upload/")
	assert.Equal(t, "photo.jpg", upload.Evidence.FileName)

	var open []disputeapp.DisputeResponse
	api.expect(http.StatusOK, api.admin, http.MethodGet, "/api/v1/admin/disputes/open", nil, &open)
	require.Len(t, open, 1)

	admin := "/api/v1/admin/disputes/" + d.ID.String()
	api.expect(http.StatusOK, api.admin, http.MethodPost, admin+"/investigate", nil, &d)
	assert.Equal(t, "investigating", d.Status)

	t.Run("customer cannot resolve", func(t *testing.T) {
		w, _ := api.call(api.customer, http.MethodPost, admin+"/resolve", map[string]any{"resolution": "refund"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	api.expect(http.StatusOK, api.admin, http.MethodPost, admin+"/resolve", map[string]any{"resolution": "partial refund issued"}, &d)
	assert.Equal(t, "resolved", d.Status)

	api.expect(http.StatusOK, vendor, http.MethodGet, path+"/payout-eligibility", nil, &eligibility)
	assert.True(t, eligibility.Eligible)

	var fetched disputeapp.DisputeResponse
	api.expect(http.StatusOK, vendor, http.MethodGet, "/api/v1/disputes/"+d.ID.String(), nil, &fetched)
	require.Len(t, fetched.Evidence, 1)
	assert.Contains(t, fetched.Evidence[0].DownloadURL, "/download/")

	var forOrder []disputeapp.DisputeResponse
	api.expect(http.StatusOK, api.customer, http.MethodGet, path+"/disputes", nil, &forOrder)
	assert.Len(t, forOrder, 1)

	t.Run("resolved disputes cannot be closed", func(t *testing.T) {
		w, env := api.call(api.admin, http.MethodPost, admin+"/close", map[string]any{"resolution": "dup"})
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeInvalidTransition, env.Error.Code)
	})
}

func TestAPI_Dashboard(t *testing.T) {
	api := newTestAPI(t)
	_, vendor := api.approvedVendor()
	product := api.approvedProduct(vendor, "100.00")
	api.placeOrder(product.ID)

	var dashboard struct {
		PendingVendors  int64 `json:"pending_vendors"`
		PendingListings int64 `json:"pending_listings"`
		Fulfillment     struct {
			TotalOrders int64 `json:"total_orders"`
		} `json:"fulfillment"`
	}
	api.expect(http.StatusOK, api.admin, http.MethodGet, "/api/v1/admin/dashboard", nil, &dashboard)
	assert.Equal(t, int64(0), dashboard.PendingVendors)
	assert.Equal(t, int64(0), dashboard.PendingListings)
	assert.Equal(t, int64(1), dashboard.Fulfillment.TotalOrders)
}
