package dispute

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/dispute"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
)

// MockDisputeRepository is a mock implementation of dispute.Repository
type MockDisputeRepository struct {
	mock.Mock
}

func (m *MockDisputeRepository) FindByID(ctx context.Context, id uuid.UUID) (*dispute.Dispute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispute.Dispute), args.Error(1)
}

func (m *MockDisputeRepository) FindByVendorOrder(ctx context.Context, vendorOrderID uuid.UUID) ([]dispute.Dispute, error) {
	args := m.Called(ctx, vendorOrderID)
	return args.Get(0).([]dispute.Dispute), args.Error(1)
}

func (m *MockDisputeRepository) FindUnresolved(ctx context.Context, filter shared.Filter) ([]dispute.Dispute, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]dispute.Dispute), args.Error(1)
}

func (m *MockDisputeRepository) FindUnresolvedByVendorOrders(ctx context.Context, ids []uuid.UUID) ([]dispute.Dispute, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]dispute.Dispute), args.Error(1)
}

func (m *MockDisputeRepository) CountByStatus(ctx context.Context) (map[dispute.Status]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[dispute.Status]int64), args.Error(1)
}

func (m *MockDisputeRepository) HeldAmount(ctx context.Context, vendorID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDisputeRepository) Save(ctx context.Context, d *dispute.Dispute) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDisputeRepository) SaveWithLock(ctx context.Context, d *dispute.Dispute) error {
	return m.Called(ctx, d).Error(0)
}

// MockVendorOrderRepository is a mock implementation of trade.VendorOrderRepository
type MockVendorOrderRepository struct {
	mock.Mock
}

func (m *MockVendorOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.VendorOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.VendorOrder), args.Error(1)
}

func (m *MockVendorOrderRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.VendorOrder, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]trade.VendorOrder), args.Error(1)
}

func (m *MockVendorOrderRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter trade.VendorOrderFilter) ([]trade.VendorOrder, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).([]trade.VendorOrder), args.Error(1)
}

func (m *MockVendorOrderRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID, filter trade.VendorOrderFilter) (int64, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorOrderRepository) TotalsByStatus(ctx context.Context, vendorID *uuid.UUID) ([]trade.StatusTotals, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).([]trade.StatusTotals), args.Error(1)
}

func (m *MockVendorOrderRepository) SaveAll(ctx context.Context, vendorOrders []*trade.VendorOrder) error {
	return m.Called(ctx, vendorOrders).Error(0)
}

func (m *MockVendorOrderRepository) SaveWithLock(ctx context.Context, vo *trade.VendorOrder) error {
	return m.Called(ctx, vo).Error(0)
}

// MockEvidenceStorage is a mock implementation of EvidenceStorage
type MockEvidenceStorage struct {
	mock.Mock
}

func (m *MockEvidenceStorage) GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockEvidenceStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// MockPayoutSignaler is a mock implementation of PayoutSignaler
type MockPayoutSignaler struct {
	mock.Mock
}

func (m *MockPayoutSignaler) Signal(ctx context.Context, vendorOrderID uuid.UUID) error {
	return m.Called(ctx, vendorOrderID).Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

type fixture struct {
	svc       *DisputeService
	disputes  *MockDisputeRepository
	vos       *MockVendorOrderRepository
	storage   *MockEvidenceStorage
	payouts   *MockPayoutSignaler
	publisher *MockEventPublisher
}

func setupDisputeService() fixture {
	f := fixture{
		disputes:  new(MockDisputeRepository),
		vos:       new(MockVendorOrderRepository),
		storage:   new(MockEvidenceStorage),
		payouts:   new(MockPayoutSignaler),
		publisher: new(MockEventPublisher),
	}
	f.svc = NewDisputeService(f.disputes, f.vos, f.storage, DefaultServiceConfig(), nil)
	f.svc.SetEventPublisher(f.publisher)
	f.svc.SetPayoutSignaler(f.payouts)
	return f
}

func shippedOrder(t *testing.T) *trade.VendorOrder {
	t.Helper()
	_, vos, err := trade.PlaceOrder(uuid.New(), "MO-1", "pi_1", "USD", []trade.CartLine{
		{ProductID: uuid.New(), VendorID: uuid.New(), UnitPrice: decimal.NewFromInt(100), Quantity: 1},
	}, func(uuid.UUID) (decimal.Decimal, error) { return decimal.RequireFromString("0.15"), nil })
	require.NoError(t, err)
	require.NoError(t, vos[0].Ship("UPS", "1Z"))
	vos[0].ClearDomainEvents()
	return vos[0]
}

func openedDispute(t *testing.T, vo *trade.VendorOrder) *dispute.Dispute {
	t.Helper()
	d, err := dispute.Open(vo, shared.Customer(vo.CustomerID), dispute.Claim{
		Type: dispute.TypeDamaged, Description: "cracked", Amount: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	d.ClearDomainEvents()
	return d
}

func openRequest() OpenDisputeRequest {
	return OpenDisputeRequest{
		Type:        "damaged",
		Description: "lid was broken",
		Amount:      decimal.NewFromInt(30),
	}
}

func TestDisputeService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("customer opens and payout is signalled", func(t *testing.T) {
		f := setupDisputeService()
		vo := shippedOrder(t)
		f.vos.On("FindByID", ctx, vo.ID).Return(vo, nil)
		f.disputes.On("Save", ctx, mock.AnythingOfType("*dispute.Dispute")).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)
		f.payouts.On("Signal", ctx, vo.ID).Return(nil)

		resp, err := f.svc.Open(ctx, shared.Customer(vo.CustomerID), vo.ID, openRequest())
		require.NoError(t, err)
		assert.Equal(t, "open", resp.Status)
		assert.Equal(t, "medium", resp.Priority)
		assert.Equal(t, vo.VendorID, resp.VendorID)
		assert.Equal(t, "customer", resp.OpenedByRole)
		f.payouts.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("vendor cannot open", func(t *testing.T) {
		f := setupDisputeService()
		vo := shippedOrder(t)
		f.vos.On("FindByID", ctx, vo.ID).Return(vo, nil)

		_, err := f.svc.Open(ctx, shared.VendorActor(uuid.New(), vo.VendorID), vo.ID, openRequest())
		assert.True(t, errors.Is(err, shared.ErrPermissionDenied))
		f.disputes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("other customer cannot open", func(t *testing.T) {
		f := setupDisputeService()
		vo := shippedOrder(t)
		f.vos.On("FindByID", ctx, vo.ID).Return(vo, nil)

		_, err := f.svc.Open(ctx, shared.Customer(uuid.New()), vo.ID, openRequest())
		assert.True(t, errors.Is(err, shared.ErrPermissionDenied))
	})

	t.Run("pending order cannot be disputed", func(t *testing.T) {
		f := setupDisputeService()
		_, vos, err := trade.PlaceOrder(uuid.New(), "MO-2", "pi", "USD", []trade.CartLine{
			{ProductID: uuid.New(), VendorID: uuid.New(), UnitPrice: decimal.NewFromInt(5), Quantity: 1},
		}, func(uuid.UUID) (decimal.Decimal, error) { return decimal.Zero, nil })
		require.NoError(t, err)
		vo := vos[0]
		f.vos.On("FindByID", ctx, vo.ID).Return(vo, nil)

		_, err = f.svc.Open(ctx, shared.Admin(uuid.New()), vo.ID, openRequest())
		assert.True(t, errors.Is(err, shared.ErrInvalidTransition))
	})

	t.Run("signal failure does not fail the open", func(t *testing.T) {
		f := setupDisputeService()
		vo := shippedOrder(t)
		f.vos.On("FindByID", ctx, vo.ID).Return(vo, nil)
		f.disputes.On("Save", ctx, mock.Anything).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)
		f.payouts.On("Signal", ctx, vo.ID).Return(errors.New("bus down"))

		_, err := f.svc.Open(ctx, shared.Customer(vo.CustomerID), vo.ID, openRequest())
		assert.NoError(t, err)
	})
}

func TestDisputeService_Workflow(t *testing.T) {
	ctx := context.Background()
	admin := shared.Admin(uuid.New())

	t.Run("investigate does not signal", func(t *testing.T) {
		f := setupDisputeService()
		d := openedDispute(t, shippedOrder(t))
		f.disputes.On("FindByID", ctx, d.ID).Return(d, nil)
		f.disputes.On("SaveWithLock", ctx, d).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.svc.MarkInvestigating(ctx, admin, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "investigating", resp.Status)
		f.payouts.AssertNotCalled(t, "Signal", mock.Anything, mock.Anything)
	})

	t.Run("resolve releases the hold", func(t *testing.T) {
		f := setupDisputeService()
		d := openedDispute(t, shippedOrder(t))
		f.disputes.On("FindByID", ctx, d.ID).Return(d, nil)
		f.disputes.On("SaveWithLock", ctx, d).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)
		f.payouts.On("Signal", ctx, d.VendorOrderID).Return(nil)

		resp, err := f.svc.Resolve(ctx, admin, d.ID, DecideDisputeRequest{Resolution: "partial refund"})
		require.NoError(t, err)
		assert.Equal(t, "resolved", resp.Status)
		assert.Equal(t, &admin.UserID, resp.ResolvedBy)
		f.payouts.AssertExpectations(t)
	})

	t.Run("close releases the hold", func(t *testing.T) {
		f := setupDisputeService()
		d := openedDispute(t, shippedOrder(t))
		f.disputes.On("FindByID", ctx, d.ID).Return(d, nil)
		f.disputes.On("SaveWithLock", ctx, d).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)
		f.payouts.On("Signal", ctx, d.VendorOrderID).Return(nil)

		resp, err := f.svc.Close(ctx, admin, d.ID, DecideDisputeRequest{Resolution: "withdrawn"})
		require.NoError(t, err)
		assert.Equal(t, "closed", resp.Status)
		assert.NotNil(t, resp.ClosedAt)
	})

	t.Run("non-admin cannot decide", func(t *testing.T) {
		f := setupDisputeService()
		d := openedDispute(t, shippedOrder(t))

		_, err := f.svc.Resolve(ctx, shared.Customer(d.CustomerID), d.ID, DecideDisputeRequest{Resolution: "x"})
		assert.True(t, errors.Is(err, shared.ErrPermissionDenied))
		_, err = f.svc.MarkInvestigating(ctx, shared.VendorActor(uuid.New(), d.VendorID), d.ID)
		assert.True(t, errors.Is(err, shared.ErrPermissionDenied))
		f.disputes.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("decided dispute cannot move", func(t *testing.T) {
		f := setupDisputeService()
		d := openedDispute(t, shippedOrder(t))
		require.NoError(t, d.Close(admin.UserID, "done"))
		f.disputes.On("FindByID", ctx, d.ID).Return(d, nil)

		_, err := f.svc.Resolve(ctx, admin, d.ID, DecideDisputeRequest{Resolution: "late"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidTransition, domainErr.Code)
		assert.Equal(t, "closed", domainErr.Details["current_state"])
	})

	t.Run("lost race reports current state", func(t *testing.T) {
		f := setupDisputeService()
		vo := shippedOrder(t)
		stale := openedDispute(t, vo)
		current := *stale
		current.Status = dispute.StatusResolved
		f.disputes.On("FindByID", ctx, stale.ID).Return(stale, nil).Once()
		f.disputes.On("SaveWithLock", ctx, stale).Return(shared.ErrConcurrencyConflict)
		f.disputes.On("FindByID", ctx, stale.ID).Return(&current, nil).Once()

		_, err := f.svc.Close(ctx, admin, stale.ID, DecideDisputeRequest{Resolution: "dup"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidTransition, domainErr.Code)
		assert.Equal(t, "resolved", domainErr.Details["current_state"])
		assert.Equal(t, "closed", domainErr.Details["requested_state"])
		f.payouts.AssertNotCalled(t, "Signal", mock.Anything, mock.Anything)
	})
}

func TestDisputeService_AttachEvidence(t *testing.T) {
	ctx := context.Background()
	expires := time.Now().Add(15 * time.Minute)

	t.Run("participant receives upload url", func(t *testing.T) {
		f := setupDisputeService()
		vo := shippedOrder(t)
		d := openedDispute(t, vo)
		f.disputes.On("FindByID", ctx, d.ID).Return(d, nil)
		f.storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "image/png", 15*time.Minute).
			Return("https://s3.local/upload", expires, nil)
		f.disputes.On("SaveWithLock", ctx, d).Return(nil)

		resp, err := f.svc.AttachEvidence(ctx, shared.VendorActor(uuid.New(), vo.VendorID), d.ID, AttachEvidenceRequest{
			FileName: "../../etc/label.png", ContentType: "image/png",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://s3.local/upload", resp.UploadURL)
		assert.True(t, strings.HasPrefix(resp.Evidence.ObjectKey, "disputes/"+d.ID.String()+"/"))
		assert.True(t, strings.HasSuffix(resp.Evidence.ObjectKey, "-label.png"))
		assert.NotContains(t, resp.Evidence.ObjectKey, "..")
		assert.Len(t, d.Evidence, 1)
	})

	t.Run("outsider is denied", func(t *testing.T) {
		f := setupDisputeService()
		d := openedDispute(t, shippedOrder(t))
		f.disputes.On("FindByID", ctx, d.ID).Return(d, nil)

		_, err := f.svc.AttachEvidence(ctx, shared.Customer(uuid.New()), d.ID, AttachEvidenceRequest{
			FileName: "a.png", ContentType: "image/png",
		})
		assert.True(t, errors.Is(err, shared.ErrPermissionDenied))
		f.storage.AssertNotCalled(t, "GenerateUploadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failure leaves dispute untouched", func(t *testing.T) {
		f := setupDisputeService()
		d := openedDispute(t, shippedOrder(t))
		f.disputes.On("FindByID", ctx, d.ID).Return(d, nil)
		f.storage.On("GenerateUploadURL", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return("", time.Time{}, errors.New("s3 unavailable"))

		_, err := f.svc.AttachEvidence(ctx, shared.Customer(d.CustomerID), d.ID, AttachEvidenceRequest{
			FileName: "a.png", ContentType: "image/png",
		})
		assert.Error(t, err)
		assert.Empty(t, d.Evidence)
		f.disputes.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestDisputeService_Reads(t *testing.T) {
	ctx := context.Background()

	t.Run("get presigns evidence downloads", func(t *testing.T) {
		f := setupDisputeService()
		vo := shippedOrder(t)
		d := openedDispute(t, vo)
		_, err := d.AddEvidence(vo.CustomerID, "disputes/x/photo.jpg", "photo.jpg", "image/jpeg")
		require.NoError(t, err)
		f.disputes.On("FindByID", ctx, d.ID).Return(d, nil)
		f.storage.On("GenerateDownloadURL", ctx, "disputes/x/photo.jpg", time.Hour).
			Return("https://s3.local/photo.jpg", time.Now().Add(time.Hour), nil)

		resp, err := f.svc.GetByID(ctx, shared.Customer(vo.CustomerID), d.ID)
		require.NoError(t, err)
		require.Len(t, resp.Evidence, 1)
		assert.Equal(t, "https://s3.local/photo.jpg", resp.Evidence[0].DownloadURL)
	})

	t.Run("get hides dispute from outsiders", func(t *testing.T) {
		f := setupDisputeService()
		d := openedDispute(t, shippedOrder(t))
		f.disputes.On("FindByID", ctx, d.ID).Return(d, nil)

		_, err := f.svc.GetByID(ctx, shared.VendorActor(uuid.New(), uuid.New()), d.ID)
		assert.True(t, errors.Is(err, shared.ErrPermissionDenied))
	})

	t.Run("list for vendor order", func(t *testing.T) {
		f := setupDisputeService()
		vo := shippedOrder(t)
		d := openedDispute(t, vo)
		f.vos.On("FindByID", ctx, vo.ID).Return(vo, nil)
		f.disputes.On("FindByVendorOrder", ctx, vo.ID).Return([]dispute.Dispute{*d}, nil)

		resp, err := f.svc.ListForVendorOrder(ctx, shared.VendorActor(uuid.New(), vo.VendorID), vo.ID)
		require.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("open queue is admin only", func(t *testing.T) {
		f := setupDisputeService()
		_, err := f.svc.GetOpen(ctx, shared.Customer(uuid.New()), DisputeListFilter{})
		assert.True(t, errors.Is(err, shared.ErrPermissionDenied))

		d := openedDispute(t, shippedOrder(t))
		f.disputes.On("FindUnresolved", ctx, mock.MatchedBy(func(filter shared.Filter) bool {
			return filter.Page == 1 && filter.PageSize == 20
		})).Return([]dispute.Dispute{*d}, nil)

		resp, err := f.svc.GetOpen(ctx, shared.Admin(uuid.New()), DisputeListFilter{})
		require.NoError(t, err)
		assert.Len(t, resp, 1)
	})
}
