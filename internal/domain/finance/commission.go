package finance

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// MoneyPlaces is the number of decimal places commission and payout are rounded to
const MoneyPlaces = 2

// Breakdown is the split of a vendor order subtotal between platform and vendor.
// Commission + Payout always equals Subtotal.
type Breakdown struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Rate       decimal.Decimal `json:"rate"`
	Commission decimal.Decimal `json:"commission"`
	Payout     decimal.Decimal `json:"payout"`
}

// CalculateCommission computes round(subtotal * rate, 2) as the platform's
// commission and gives the remainder to the vendor.
func CalculateCommission(subtotal, rate decimal.Decimal) Breakdown {
	commission := subtotal.Mul(rate).Round(MoneyPlaces)
	return Breakdown{
		Subtotal:   subtotal,
		Rate:       rate,
		Commission: commission,
		Payout:     subtotal.Sub(commission),
	}
}

// ValidateRate checks that a commission rate is a fraction between 0 and 1
func ValidateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return shared.NewValidationError("commission_rate", "commission rate must be between 0 and 1")
	}
	return nil
}

// CommissionRateProvider supplies the platform commission rate for a vendor
type CommissionRateProvider interface {
	CommissionRate(ctx context.Context, vendorID uuid.UUID) (decimal.Decimal, error)
}

// StaticRateProvider serves a default rate with optional per-vendor overrides
type StaticRateProvider struct {
	defaultRate decimal.Decimal
	overrides   map[uuid.UUID]decimal.Decimal
}

// NewStaticRateProvider validates and builds a StaticRateProvider.
// Override keys must be vendor UUIDs.
func NewStaticRateProvider(defaultRate decimal.Decimal, overrides map[string]decimal.Decimal) (*StaticRateProvider, error) {
	if err := ValidateRate(defaultRate); err != nil {
		return nil, err
	}
	p := &StaticRateProvider{
		defaultRate: defaultRate,
		overrides:   make(map[uuid.UUID]decimal.Decimal, len(overrides)),
	}
	for key, rate := range overrides {
		id, err := uuid.Parse(strings.TrimSpace(key))
		if err != nil {
			return nil, shared.NewValidationError("vendor_rates", "vendor rate key "+key+" is not a vendor id")
		}
		if err := ValidateRate(rate); err != nil {
			return nil, err
		}
		p.overrides[id] = rate
	}
	return p, nil
}

// CommissionRate implements CommissionRateProvider
func (p *StaticRateProvider) CommissionRate(_ context.Context, vendorID uuid.UUID) (decimal.Decimal, error) {
	if rate, ok := p.overrides[vendorID]; ok {
		return rate, nil
	}
	return p.defaultRate, nil
}

var _ CommissionRateProvider = (*StaticRateProvider)(nil)
