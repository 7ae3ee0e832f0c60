package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/application/trade"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/catalog"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/dispute"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	domaintrade "github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/config"
	"gorm.io/gorm"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:", AutoMigrate: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func approvedVendor(t *testing.T, ctx context.Context, repo *GormVendorRepository, name string) *partner.Vendor {
	t.Helper()
	v, err := partner.NewVendor(uuid.New(), partner.BusinessProfile{BusinessName: name, ContactEmail: "ops@example.com"})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, v))
	_, err = v.Approve(uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.SaveWithLock(ctx, v))
	return v
}

func placeOrder(t *testing.T, ctx context.Context, db *gorm.DB, vendors ...*partner.Vendor) (*domaintrade.Order, []*domaintrade.VendorOrder) {
	t.Helper()
	lines := make([]domaintrade.CartLine, len(vendors))
	for i, v := range vendors {
		lines[i] = domaintrade.CartLine{ProductID: uuid.New(), VendorID: v.ID, SKU: "SKU", Name: "Serum", UnitPrice: dec("100.00"), Quantity: 1}
	}
	orderRepo := NewGormOrderRepository(db)
	number, err := orderRepo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	order, vos, err := domaintrade.PlaceOrder(uuid.New(), number, "auth_1", "USD", lines,
		func(uuid.UUID) (decimal.Decimal, error) { return dec("0.15"), nil })
	require.NoError(t, err)
	require.NoError(t, orderRepo.Save(ctx, order))
	require.NoError(t, NewGormVendorOrderRepository(db).SaveAll(ctx, vos))
	return order, vos
}

func TestGormVendorRepository(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormVendorRepository(db)

	v := approvedVendor(t, ctx, repo, "Glow Labs")

	t.Run("round trips admission fields", func(t *testing.T) {
		found, err := repo.FindByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, partner.VendorStatusApproved, found.Status)
		assert.Equal(t, "Glow Labs", found.Profile.BusinessName)
		assert.Equal(t, 2, found.Version)
		assert.NotNil(t, found.ApprovedAt)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		stale, err := repo.FindByID(ctx, v.ID)
		require.NoError(t, err)
		fresh, err := repo.FindByID(ctx, v.ID)
		require.NoError(t, err)

		require.NoError(t, fresh.Suspend(uuid.New(), "policy review"))
		require.NoError(t, repo.SaveWithLock(ctx, fresh))

		require.NoError(t, stale.Suspend(uuid.New(), "duplicate"))
		assert.ErrorIs(t, repo.SaveWithLock(ctx, stale), shared.ErrConcurrencyConflict)
	})

	t.Run("record delivery increments counters only", func(t *testing.T) {
		before, err := repo.FindByID(ctx, v.ID)
		require.NoError(t, err)

		require.NoError(t, repo.RecordDelivery(ctx, v.ID, dec("85.75")))
		require.NoError(t, repo.RecordDelivery(ctx, v.ID, dec("10.00")))

		after, err := repo.FindByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), after.TotalOrders)
		assert.True(t, after.TotalSales.Equal(dec("95.75")), after.TotalSales.String())
		assert.Equal(t, before.Version, after.Version)
		assert.Equal(t, before.Status, after.Status)

		assert.ErrorIs(t, repo.RecordDelivery(ctx, uuid.New(), dec("1")), shared.ErrNotFound)
	})

	t.Run("counts and search", func(t *testing.T) {
		pending, err := partner.NewVendor(uuid.New(), partner.BusinessProfile{BusinessName: "Pending Co", ContactEmail: "a@b.co"})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, pending))

		counts, err := repo.CountByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[partner.VendorStatusPending])
		assert.Equal(t, int64(1), counts[partner.VendorStatusSuspended])

		found, err := repo.FindAll(ctx, shared.Filter{Search: "pending"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, pending.ID, found[0].ID)

		byStatus, err := repo.FindByStatus(ctx, partner.VendorStatusPending, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, byStatus, 1)

		total, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)

		byIDs, err := repo.FindByIDs(ctx, []uuid.UUID{v.ID, pending.ID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, byIDs, 2)
	})
}

func TestGormProductListingRepository(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	vendor := approvedVendor(t, ctx, NewGormVendorRepository(db), "Glow Labs")
	repo := NewGormProductListingRepository(db)

	listing, err := catalog.NewProductListing(vendor, catalog.ProductDraft{SKU: "gl-1", Name: "Serum", Price: dec("24.50")}, "USD")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, listing))

	queue, err := repo.FindByStatus(ctx, catalog.ListingStatusPending, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, "GL-1", queue[0].SKU)

	require.NoError(t, listing.Reject(uuid.New(), "missing ingredients list"))
	require.NoError(t, repo.SaveWithLock(ctx, listing))

	resubmitted, err := listing.Resubmit(vendor, catalog.ProductDraft{SKU: "gl-1", Name: "Serum", Price: dec("24.50")})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, resubmitted))

	found, err := repo.FindByID(ctx, resubmitted.ID)
	require.NoError(t, err)
	require.NotNil(t, found.PreviousListingID)
	assert.Equal(t, listing.ID, *found.PreviousListingID)
	assert.True(t, found.Price.Equal(dec("24.50")))

	rejected, err := repo.FindByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.ListingStatusRejected, rejected.Status)
	assert.Equal(t, "missing ingredients list", rejected.RejectionReason)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[catalog.ListingStatusPending])
	assert.Equal(t, int64(1), counts[catalog.ListingStatusRejected])

	byVendor, err := repo.FindByVendor(ctx, vendor.ID, shared.Filter{Filters: map[string]interface{}{"status": "rejected"}})
	require.NoError(t, err)
	assert.Len(t, byVendor, 1)

	stale := *rejected
	stale.Version++
	assert.ErrorIs(t, repo.SaveWithLock(ctx, &stale), shared.ErrConcurrencyConflict)
}

func TestGormVendorOrderRepository(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	vendorRepo := NewGormVendorRepository(db)
	a := approvedVendor(t, ctx, vendorRepo, "A")
	b := approvedVendor(t, ctx, vendorRepo, "B")
	repo := NewGormVendorOrderRepository(db)

	order, vos := placeOrder(t, ctx, db, a, b)
	assert.Regexp(t, `^MO-\d{8}-00001$`, order.OrderNumber)

	t.Run("order numbers increase", func(t *testing.T) {
		next, err := NewGormOrderRepository(db).GenerateOrderNumber(ctx)
		require.NoError(t, err)
		assert.Regexp(t, `^MO-\d{8}-00002$`, next)
	})

	t.Run("order numbers restart each day", func(t *testing.T) {
		repo := NewGormOrderRepository(db)
		day := time.Date(2001, 3, 15, 9, 0, 0, 0, time.UTC)
		repo.now = func() time.Time { return day }

		first, err := repo.GenerateOrderNumber(ctx)
		require.NoError(t, err)
		second, err := repo.GenerateOrderNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, "MO-20010315-00001", first)
		assert.Equal(t, "MO-20010315-00002", second)

		day = day.Add(24 * time.Hour)
		next, err := repo.GenerateOrderNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, "MO-20010316-00001", next)
	})

	t.Run("customer orders and row lock read", func(t *testing.T) {
		orderRepo := NewGormOrderRepository(db)
		locked, err := orderRepo.FindByIDForUpdate(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.OrderNumber, locked.OrderNumber)

		mine, err := orderRepo.FindByCustomer(ctx, order.CustomerID, shared.Filter{}.Normalize())
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, order.ID, mine[0].ID)

		count, err := orderRepo.CountByCustomer(ctx, order.CustomerID, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = orderRepo.CountByCustomer(ctx, uuid.New(), shared.Filter{})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("loads items with the vendor order", func(t *testing.T) {
		found, err := repo.FindByOrder(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, found, 2)
		for _, vo := range found {
			require.Len(t, vo.Items, 1)
			assert.True(t, vo.Commission.Add(vo.Payout).Equal(vo.Subtotal))
		}
	})

	t.Run("racing transitions conflict", func(t *testing.T) {
		first, err := repo.FindByID(ctx, vos[0].ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, vos[0].ID)
		require.NoError(t, err)

		require.NoError(t, first.Ship("UPS", "1Z"))
		require.NoError(t, second.Ship("DHL", "JD"))

		require.NoError(t, repo.SaveWithLock(ctx, first))
		assert.ErrorIs(t, repo.SaveWithLock(ctx, second), shared.ErrConcurrencyConflict)

		stored, err := repo.FindByID(ctx, vos[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "UPS", stored.Carrier)
	})

	t.Run("vendor listing and totals", func(t *testing.T) {
		shipped := domaintrade.VendorOrderStatusShipped
		listed, err := repo.FindByVendor(ctx, a.ID, domaintrade.VendorOrderFilter{Status: &shipped})
		require.NoError(t, err)
		require.Len(t, listed, 1)

		count, err := repo.CountByVendor(ctx, b.ID, domaintrade.VendorOrderFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		totals, err := repo.TotalsByStatus(ctx, nil)
		require.NoError(t, err)
		byStatus := map[domaintrade.VendorOrderStatus]domaintrade.StatusTotals{}
		for _, row := range totals {
			byStatus[row.Status] = row
		}
		assert.Equal(t, int64(1), byStatus[domaintrade.VendorOrderStatusShipped].Count)
		assert.True(t, byStatus[domaintrade.VendorOrderStatusPending].Payout.Equal(dec("85")))

		scoped, err := repo.TotalsByStatus(ctx, &b.ID)
		require.NoError(t, err)
		require.Len(t, scoped, 1)
		assert.Equal(t, domaintrade.VendorOrderStatusPending, scoped[0].Status)
	})
}

func TestGormVendorOrderRepository_ExcludeHeldPagesInSQL(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	vendor := approvedVendor(t, ctx, NewGormVendorRepository(db), "A")
	repo := NewGormVendorOrderRepository(db)
	disputes := NewGormDisputeRepository(db)

	delivered := make([]*domaintrade.VendorOrder, 4)
	for i := range delivered {
		_, vos := placeOrder(t, ctx, db, vendor)
		vo := vos[0]
		require.NoError(t, vo.Ship("UPS", "1Z"))
		require.NoError(t, repo.SaveWithLock(ctx, vo))
		require.NoError(t, vo.ConfirmDelivery())
		require.NoError(t, repo.SaveWithLock(ctx, vo))
		delivered[i] = vo
	}

	// The two oldest deliveries are held; one more dispute is already decided.
	for _, vo := range delivered[:2] {
		d, err := dispute.Open(vo, shared.Customer(vo.CustomerID), dispute.Claim{
			Type: dispute.TypeDamaged, Description: "cracked", Amount: dec("10"),
		})
		require.NoError(t, err)
		require.NoError(t, disputes.Save(ctx, d))
	}
	closed, err := dispute.Open(delivered[2], shared.Customer(delivered[2].CustomerID), dispute.Claim{
		Type: dispute.TypeOther, Description: "late", Amount: dec("5"),
	})
	require.NoError(t, err)
	require.NoError(t, closed.Close(uuid.New(), "no merit"))
	require.NoError(t, disputes.Save(ctx, closed))

	status := domaintrade.VendorOrderStatusDelivered
	filter := domaintrade.VendorOrderFilter{
		Filter:      shared.Filter{Page: 1, PageSize: 2, OrderBy: "delivered_at", OrderDir: "asc"},
		Status:      &status,
		ExcludeHeld: true,
	}

	page, err := repo.FindByVendor(ctx, vendor.ID, filter)
	require.NoError(t, err)
	require.Len(t, page, 2, "held orders do not shorten the page")
	assert.Equal(t, delivered[2].ID, page[0].ID)
	assert.Equal(t, delivered[3].ID, page[1].ID)

	count, err := repo.CountByVendor(ctx, vendor.ID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	filter.ExcludeHeld = false
	count, err = repo.CountByVendor(ctx, vendor.ID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestGormDisputeRepository(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	vendor := approvedVendor(t, ctx, NewGormVendorRepository(db), "A")
	voRepo := NewGormVendorOrderRepository(db)
	repo := NewGormDisputeRepository(db)

	_, vos := placeOrder(t, ctx, db, vendor)
	vo := vos[0]
	require.NoError(t, vo.Ship("UPS", "1Z"))
	require.NoError(t, voRepo.SaveWithLock(ctx, vo))

	open := func(priority dispute.Priority) *dispute.Dispute {
		d, err := dispute.Open(vo, shared.Customer(vo.CustomerID), dispute.Claim{
			Type: dispute.TypeDamaged, Description: "cracked", Amount: dec("10"), Priority: priority,
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, d))
		return d
	}
	low := open(dispute.PriorityLow)
	urgent := open(dispute.PriorityUrgent)

	t.Run("queue is ordered by priority", func(t *testing.T) {
		queue, err := repo.FindUnresolved(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, queue, 2)
		assert.Equal(t, urgent.ID, queue[0].ID)
		assert.Equal(t, low.ID, queue[1].ID)
	})

	t.Run("evidence is appended under the version lock", func(t *testing.T) {
		d, err := repo.FindByID(ctx, low.ID)
		require.NoError(t, err)
		_, err = d.AddEvidence(vo.CustomerID, "disputes/a/photo.jpg", "photo.jpg", "image/jpeg")
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithLock(ctx, d))

		_, err = d.AddEvidence(vo.CustomerID, "disputes/a/receipt.pdf", "receipt.pdf", "application/pdf")
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithLock(ctx, d))

		stored, err := repo.FindByID(ctx, low.ID)
		require.NoError(t, err)
		require.Len(t, stored.Evidence, 2)
		assert.Equal(t, "photo.jpg", stored.Evidence[0].FileName)
		assert.Equal(t, 3, stored.Version)
	})

	t.Run("held amount counts delivered orders once", func(t *testing.T) {
		held, err := repo.HeldAmount(ctx, nil)
		require.NoError(t, err)
		assert.True(t, held.IsZero(), "shipped payouts are not yet held")

		require.NoError(t, vo.ConfirmDelivery())
		require.NoError(t, voRepo.SaveWithLock(ctx, vo))

		held, err = repo.HeldAmount(ctx, &vendor.ID)
		require.NoError(t, err)
		assert.True(t, held.Equal(dec("85")), held.String())
	})

	t.Run("decided disputes release the hold", func(t *testing.T) {
		for _, id := range []uuid.UUID{low.ID, urgent.ID} {
			d, err := repo.FindByID(ctx, id)
			require.NoError(t, err)
			require.NoError(t, d.Close(uuid.New(), "no merit"))
			require.NoError(t, repo.SaveWithLock(ctx, d))
		}

		holds, err := repo.FindUnresolvedByVendorOrders(ctx, []uuid.UUID{vo.ID})
		require.NoError(t, err)
		assert.Empty(t, holds)

		held, err := repo.HeldAmount(ctx, nil)
		require.NoError(t, err)
		assert.True(t, held.IsZero())

		counts, err := repo.CountByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[dispute.StatusClosed])

		all, err := repo.FindByVendorOrder(ctx, vo.ID)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("stale decision conflicts", func(t *testing.T) {
		d, err := repo.FindByID(ctx, urgent.ID)
		require.NoError(t, err)
		d.Version++
		assert.ErrorIs(t, repo.SaveWithLock(ctx, d), shared.ErrConcurrencyConflict)
	})
}

func TestGormTransactionScope_RollsBack(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	vendor := approvedVendor(t, ctx, NewGormVendorRepository(db), "A")
	scope := NewGormTransactionScope(db)

	boom := errors.New("boom")
	err := scope.Execute(ctx, func(repos trade.TransactionalRepositories) error {
		if err := repos.VendorRepo().RecordDelivery(ctx, vendor.ID, dec("50")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	found, err := NewGormVendorRepository(db).FindByID(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), found.TotalOrders)
}
