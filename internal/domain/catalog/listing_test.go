package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

func approvedVendor(t *testing.T) *partner.Vendor {
	t.Helper()
	v, err := partner.NewVendor(uuid.New(), partner.BusinessProfile{
		BusinessName: "Glow Botanicals",
		ContactEmail: "hello@glow.example",
	})
	require.NoError(t, err)
	_, err = v.Approve(uuid.New())
	require.NoError(t, err)
	return v
}

func draft() ProductDraft {
	return ProductDraft{
		SKU:      "serum-01",
		Name:     "Vitamin C Serum",
		Category: "skincare",
		Price:    decimal.RequireFromString("24.999"),
	}
}

func TestNewProductListing(t *testing.T) {
	t.Run("creates pending listing", func(t *testing.T) {
		v := approvedVendor(t)
		l, err := NewProductListing(v, draft(), "USD")
		require.NoError(t, err)

		assert.Equal(t, ListingStatusPending, l.Status)
		assert.Equal(t, v.ID, l.VendorID)
		assert.Equal(t, "SERUM-01", l.SKU)
		assert.Equal(t, "USD", l.Currency)
		assert.True(t, l.Price.Equal(decimal.RequireFromString("25.00")))
		require.Len(t, l.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeListingSubmitted, l.GetDomainEvents()[0].EventType())
	})

	t.Run("fails when vendor is not approved", func(t *testing.T) {
		v, err := partner.NewVendor(uuid.New(), partner.BusinessProfile{
			BusinessName: "Pending Co",
			ContactEmail: "p@example.com",
		})
		require.NoError(t, err)

		l, err := NewProductListing(v, draft(), "USD")
		assert.Nil(t, l)
		assert.True(t, errors.Is(err, shared.ErrVendorNotApproved))
	})

	t.Run("fails for suspended vendor", func(t *testing.T) {
		v := approvedVendor(t)
		require.NoError(t, v.Suspend(uuid.New(), "audit"))
		_, err := NewProductListing(v, draft(), "USD")
		assert.True(t, errors.Is(err, shared.ErrVendorNotApproved))
	})

	t.Run("validates draft", func(t *testing.T) {
		v := approvedVendor(t)
		d := draft()
		d.Price = decimal.Zero
		_, err := NewProductListing(v, d, "USD")
		assert.True(t, errors.Is(err, shared.ErrValidation))

		d = draft()
		d.Name = ""
		_, err = NewProductListing(v, d, "USD")
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestProductListing_Review(t *testing.T) {
	admin := uuid.New()

	t.Run("approve pending", func(t *testing.T) {
		l, err := NewProductListing(approvedVendor(t), draft(), "USD")
		require.NoError(t, err)
		require.NoError(t, l.Approve(admin))
		assert.Equal(t, ListingStatusApproved, l.Status)
		assert.Equal(t, &admin, l.ReviewedBy)
	})

	t.Run("reject stores reason", func(t *testing.T) {
		l, err := NewProductListing(approvedVendor(t), draft(), "USD")
		require.NoError(t, err)
		require.NoError(t, l.Reject(admin, "image quality"))
		assert.Equal(t, ListingStatusRejected, l.Status)
		assert.Equal(t, "image quality", l.RejectionReason)
	})

	t.Run("reject requires reason", func(t *testing.T) {
		l, err := NewProductListing(approvedVendor(t), draft(), "USD")
		require.NoError(t, err)
		err = l.Reject(admin, " ")
		assert.True(t, errors.Is(err, shared.ErrValidation))
		assert.Equal(t, ListingStatusPending, l.Status)
	})

	t.Run("decisions are final", func(t *testing.T) {
		l, err := NewProductListing(approvedVendor(t), draft(), "USD")
		require.NoError(t, err)
		require.NoError(t, l.Reject(admin, "blurry"))

		assert.True(t, errors.Is(l.Approve(admin), shared.ErrInvalidTransition))
		assert.True(t, errors.Is(l.Reject(admin, "again"), shared.ErrInvalidTransition))
	})
}

func TestProductListing_Resubmit(t *testing.T) {
	admin := uuid.New()
	v := approvedVendor(t)

	t.Run("creates new pending listing and keeps the rejected one", func(t *testing.T) {
		l, err := NewProductListing(v, draft(), "USD")
		require.NoError(t, err)
		require.NoError(t, l.Reject(admin, "image quality"))
		version := l.Version

		d := draft()
		d.Description = "new photos"
		next, err := l.Resubmit(v, d)
		require.NoError(t, err)

		assert.NotEqual(t, l.ID, next.ID)
		assert.Equal(t, ListingStatusPending, next.Status)
		require.NotNil(t, next.PreviousListingID)
		assert.Equal(t, l.ID, *next.PreviousListingID)

		assert.Equal(t, ListingStatusRejected, l.Status)
		assert.Equal(t, "image quality", l.RejectionReason)
		assert.Equal(t, version, l.Version)
	})

	t.Run("only rejected listings can be resubmitted", func(t *testing.T) {
		l, err := NewProductListing(v, draft(), "USD")
		require.NoError(t, err)
		_, err = l.Resubmit(v, draft())
		assert.True(t, errors.Is(err, shared.ErrInvalidTransition))
	})
}

func TestIsOrderable(t *testing.T) {
	admin := uuid.New()
	v := approvedVendor(t)
	l, err := NewProductListing(v, draft(), "USD")
	require.NoError(t, err)

	assert.False(t, IsOrderable(l, v.Status), "pending listing")
	assert.True(t, errors.Is(CheckOrderable(l, v), shared.ErrValidation))

	require.NoError(t, l.Approve(admin))
	assert.True(t, IsOrderable(l, v.Status))
	assert.NoError(t, CheckOrderable(l, v))

	require.NoError(t, v.Suspend(admin, "audit"))
	assert.False(t, IsOrderable(l, v.Status), "suspended vendor")
	assert.True(t, errors.Is(CheckOrderable(l, v), shared.ErrVendorNotApproved))
	assert.Equal(t, ListingStatusApproved, l.Status, "listing record untouched by suspension")
}
