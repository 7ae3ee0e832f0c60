package dispute

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/finance"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
)

func shippedVendorOrder(t *testing.T) *trade.VendorOrder {
	t.Helper()
	_, vos, err := trade.PlaceOrder(uuid.New(), "MO-1", "auth", "USD", []trade.CartLine{
		{ProductID: uuid.New(), VendorID: uuid.New(), UnitPrice: decimal.NewFromInt(100), Quantity: 1},
	}, func(uuid.UUID) (decimal.Decimal, error) { return decimal.RequireFromString("0.15"), nil })
	require.NoError(t, err)
	vo := vos[0]
	require.NoError(t, vo.Ship("UPS", "1Z"))
	return vo
}

func claim() Claim {
	return Claim{
		Type:        TypeDamaged,
		Description: "bottle arrived cracked",
		Amount:      decimal.RequireFromString("40"),
	}
}

func openDispute(t *testing.T, vo *trade.VendorOrder) *Dispute {
	t.Helper()
	d, err := Open(vo, shared.Customer(vo.CustomerID), claim())
	require.NoError(t, err)
	d.ClearDomainEvents()
	return d
}

func TestOpen(t *testing.T) {
	t.Run("opens against shipped order", func(t *testing.T) {
		vo := shippedVendorOrder(t)
		d, err := Open(vo, shared.Customer(vo.CustomerID), claim())
		require.NoError(t, err)

		assert.Equal(t, StatusOpen, d.Status)
		assert.Equal(t, PriorityMedium, d.Priority)
		assert.Equal(t, vo.ID, d.VendorOrderID)
		assert.Equal(t, vo.VendorID, d.VendorID)
		assert.Equal(t, shared.RoleCustomer, d.OpenedByRole)
		assert.True(t, d.BlocksPayout())
		require.Len(t, d.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeDisputeOpened, d.GetDomainEvents()[0].EventType())
	})

	t.Run("opens against delivered order", func(t *testing.T) {
		vo := shippedVendorOrder(t)
		require.NoError(t, vo.ConfirmDelivery())
		_, err := Open(vo, shared.Admin(uuid.New()), claim())
		assert.NoError(t, err)
	})

	t.Run("rejects pending and processing orders", func(t *testing.T) {
		_, vos, err := trade.PlaceOrder(uuid.New(), "MO-2", "auth", "USD", []trade.CartLine{
			{ProductID: uuid.New(), VendorID: uuid.New(), UnitPrice: decimal.NewFromInt(10), Quantity: 1},
		}, func(uuid.UUID) (decimal.Decimal, error) { return decimal.Zero, nil })
		require.NoError(t, err)

		_, err = Open(vos[0], shared.Customer(vos[0].CustomerID), claim())
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidTransition, domainErr.Code)
		assert.Equal(t, "pending", domainErr.Details["current_state"])

		require.NoError(t, vos[0].MarkProcessing())
		_, err = Open(vos[0], shared.Customer(vos[0].CustomerID), claim())
		assert.True(t, errors.Is(err, shared.ErrInvalidTransition))
	})

	t.Run("rejects returned orders", func(t *testing.T) {
		vo := shippedVendorOrder(t)
		require.NoError(t, vo.MarkReturned("lost in transit"))
		_, err := Open(vo, shared.Customer(vo.CustomerID), claim())
		assert.True(t, errors.Is(err, shared.ErrInvalidTransition))
	})

	t.Run("validates claim", func(t *testing.T) {
		vo := shippedVendorOrder(t)
		actor := shared.Customer(vo.CustomerID)

		c := claim()
		c.Description = ""
		_, err := Open(vo, actor, c)
		assert.True(t, errors.Is(err, shared.ErrValidation))

		c = claim()
		c.Amount = decimal.Zero
		_, err = Open(vo, actor, c)
		assert.True(t, errors.Is(err, shared.ErrValidation))

		c = claim()
		c.Amount = decimal.NewFromInt(101)
		_, err = Open(vo, actor, c)
		assert.True(t, errors.Is(err, shared.ErrValidation))

		c = claim()
		c.Type = "fraud"
		_, err = Open(vo, actor, c)
		assert.True(t, errors.Is(err, shared.ErrValidation))

		c = claim()
		c.Priority = "critical"
		_, err = Open(vo, actor, c)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestDispute_Workflow(t *testing.T) {
	admin := uuid.New()

	t.Run("open -> investigating -> resolved", func(t *testing.T) {
		d := openDispute(t, shippedVendorOrder(t))
		require.NoError(t, d.MarkInvestigating())
		assert.Equal(t, StatusInvestigating, d.Status)
		assert.True(t, d.BlocksPayout())

		require.NoError(t, d.Resolve(admin, "partial refund issued"))
		assert.Equal(t, StatusResolved, d.Status)
		assert.Equal(t, "partial refund issued", d.Resolution)
		assert.Equal(t, &admin, d.ResolvedBy)
		assert.NotNil(t, d.ResolvedAt)
		assert.False(t, d.BlocksPayout())
	})

	t.Run("open -> closed directly", func(t *testing.T) {
		d := openDispute(t, shippedVendorOrder(t))
		require.NoError(t, d.Close(admin, "customer withdrew"))
		assert.Equal(t, StatusClosed, d.Status)
		assert.NotNil(t, d.ClosedAt)
		assert.False(t, d.BlocksPayout())
	})

	t.Run("investigating requires open", func(t *testing.T) {
		d := openDispute(t, shippedVendorOrder(t))
		require.NoError(t, d.MarkInvestigating())
		assert.True(t, errors.Is(d.MarkInvestigating(), shared.ErrInvalidTransition))
	})

	t.Run("terminal disputes cannot move", func(t *testing.T) {
		d := openDispute(t, shippedVendorOrder(t))
		require.NoError(t, d.Resolve(admin, "refunded"))

		assert.True(t, errors.Is(d.Close(admin, "x"), shared.ErrInvalidTransition))
		assert.True(t, errors.Is(d.Resolve(admin, "x"), shared.ErrInvalidTransition))
		assert.True(t, errors.Is(d.MarkInvestigating(), shared.ErrInvalidTransition))
	})

	t.Run("resolution text is required", func(t *testing.T) {
		d := openDispute(t, shippedVendorOrder(t))
		assert.True(t, errors.Is(d.Resolve(admin, " "), shared.ErrValidation))
		assert.Equal(t, StatusOpen, d.Status)
	})
}

func TestDispute_PayoutHolds(t *testing.T) {
	vo := shippedVendorOrder(t)
	first := openDispute(t, vo)
	second := openDispute(t, vo)
	require.NoError(t, vo.ConfirmDelivery())

	disputes := []Dispute{*first, *second}
	e := finance.EvaluatePayout(vo, Holds(disputes)...)
	assert.False(t, e.Eligible)
	assert.Len(t, e.BlockingDisputes, 2)

	require.NoError(t, disputes[0].Resolve(uuid.New(), "refund"))
	e = finance.EvaluatePayout(vo, Holds(disputes)...)
	assert.False(t, e.Eligible, "one unresolved dispute still holds the payout")
	assert.Equal(t, []uuid.UUID{second.ID}, e.BlockingDisputes)

	require.NoError(t, disputes[1].Close(uuid.New(), "no merit"))
	e = finance.EvaluatePayout(vo, Holds(disputes)...)
	assert.True(t, e.Eligible)
}

func TestDispute_Evidence(t *testing.T) {
	vo := shippedVendorOrder(t)
	d := openDispute(t, vo)

	ev, err := d.AddEvidence(vo.CustomerID, "disputes/x/photo.jpg", "photo.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "disputes/x/photo.jpg", ev.ObjectKey)
	assert.Len(t, d.Evidence, 1)

	require.NoError(t, d.Close(uuid.New(), "done"))
	_, err = d.AddEvidence(vo.CustomerID, "k", "late.jpg", "image/jpeg")
	assert.True(t, errors.Is(err, shared.ErrInvalidTransition))
}

func TestDispute_IsParticipant(t *testing.T) {
	vo := shippedVendorOrder(t)
	d := openDispute(t, vo)

	assert.True(t, d.IsParticipant(shared.Customer(vo.CustomerID)))
	assert.True(t, d.IsParticipant(shared.VendorActor(uuid.New(), vo.VendorID)))
	assert.True(t, d.IsParticipant(shared.Admin(uuid.New())))
	assert.False(t, d.IsParticipant(shared.Customer(uuid.New())))
	assert.False(t, d.IsParticipant(shared.VendorActor(uuid.New(), uuid.New())))
}
