package telemetry

import (
	"context"

	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/catalog"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/dispute"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/finance"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// MarketplaceMetrics counts domain activity off the event bus.
type MarketplaceMetrics struct {
	ordersPlaced     *Counter
	orderValue       *Histogram
	vendorOrders     *Counter
	transitions      *Counter
	vendorDecisions  *Counter
	listingDecisions *Counter
	disputesOpened   *Counter
	disputeChanges   *Counter
	payoutSignals    *Counter
	logger           *zap.Logger
}

// NewMarketplaceMetrics registers the marketplace instruments on meter
func NewMarketplaceMetrics(meter metric.Meter, logger *zap.Logger) (*MarketplaceMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &MarketplaceMetrics{logger: logger}
	counters := []struct {
		target      **Counter
		name        string
		description string
		unit        string
	}{
		{&m.ordersPlaced, "marketplace_orders_placed_total", "Customer orders placed", "{order}"},
		{&m.vendorOrders, "marketplace_vendor_orders_created_total", "Vendor orders split out of customer orders", "{order}"},
		{&m.transitions, "marketplace_vendor_order_transitions_total", "Vendor order status transitions", "{transition}"},
		{&m.vendorDecisions, "marketplace_vendor_decisions_total", "Vendor admission decisions by resulting status", "{decision}"},
		{&m.listingDecisions, "marketplace_listing_decisions_total", "Listing submissions and reviews by resulting status", "{decision}"},
		{&m.disputesOpened, "marketplace_disputes_opened_total", "Disputes opened by type", "{dispute}"},
		{&m.disputeChanges, "marketplace_dispute_transitions_total", "Dispute status transitions", "{transition}"},
		{&m.payoutSignals, "marketplace_payout_signals_total", "Payout eligibility signals by outcome", "{signal}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(meter, c.name, c.description, c.unit)
		if err != nil {
			return nil, err
		}
		*c.target = counter
	}

	var err error
	m.orderValue, err = NewHistogram(meter, HistogramOpts{
		Name:        "marketplace_order_value",
		Description: "Customer order totals",
		Unit:        "{currency}",
		Boundaries:  OrderValueBuckets,
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// EventTypes implements shared.EventHandler
func (m *MarketplaceMetrics) EventTypes() []string {
	return []string{
		trade.EventTypeOrderPlaced,
		trade.EventTypeVendorOrderCreated,
		trade.EventTypeVendorOrderStatusChanged,
		partner.EventTypeVendorSubmitted,
		partner.EventTypeVendorApproved,
		partner.EventTypeVendorRejected,
		partner.EventTypeVendorSuspended,
		partner.EventTypeVendorReinstated,
		catalog.EventTypeListingSubmitted,
		catalog.EventTypeListingApproved,
		catalog.EventTypeListingRejected,
		dispute.EventTypeDisputeOpened,
		dispute.EventTypeDisputeStatusChanged,
		finance.EventTypePayoutEligible,
		finance.EventTypePayoutHeld,
	}
}

// Handle implements shared.EventHandler. Unknown payloads are ignored.
func (m *MarketplaceMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		m.ordersPlaced.Inc(ctx)
		m.orderValue.Record(ctx, e.Total.InexactFloat64())
	case *trade.VendorOrderCreatedEvent:
		m.vendorOrders.Inc(ctx)
	case *trade.VendorOrderStatusChangedEvent:
		m.transitions.Inc(ctx, AttrFromStatus.String(e.FromStatus.String()), AttrToStatus.String(e.ToStatus.String()))
	case *partner.VendorSubmittedEvent:
		m.vendorDecisions.Inc(ctx, AttrStatus.String(string(partner.VendorStatusPending)))
	case *partner.VendorStatusEvent:
		m.vendorDecisions.Inc(ctx, AttrStatus.String(string(e.Status)))
	case *catalog.ListingSubmittedEvent:
		m.listingDecisions.Inc(ctx, AttrStatus.String(string(catalog.ListingStatusPending)))
	case *catalog.ListingReviewedEvent:
		m.listingDecisions.Inc(ctx, AttrStatus.String(string(e.Status)))
	case *dispute.DisputeOpenedEvent:
		m.disputesOpened.Inc(ctx, AttrDisputeType.String(string(e.Type)))
	case *dispute.DisputeStatusChangedEvent:
		m.disputeChanges.Inc(ctx, AttrFromStatus.String(e.FromStatus.String()), AttrToStatus.String(e.ToStatus.String()))
	case *finance.PayoutSignalEvent:
		m.payoutSignals.Inc(ctx, AttrEventType.String(e.EventType()), AttrReason.String(e.Reason))
	default:
		m.logger.Debug("No metric for event", zap.String("event_type", event.EventType()))
	}
	return nil
}

var _ shared.EventHandler = (*MarketplaceMetrics)(nil)
