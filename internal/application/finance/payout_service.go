package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/dispute"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/finance"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
	"go.uber.org/zap"
)

// PayoutService answers payout eligibility questions and notifies the
// external payout scheduler. Eligibility is always derived from the current
// vendor order and its disputes; nothing is stored.
type PayoutService struct {
	vendorOrderRepo trade.VendorOrderRepository
	disputeRepo     dispute.Repository
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewPayoutService creates a new PayoutService
func NewPayoutService(vendorOrderRepo trade.VendorOrderRepository, disputeRepo dispute.Repository, logger *zap.Logger) *PayoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayoutService{
		vendorOrderRepo: vendorOrderRepo,
		disputeRepo:     disputeRepo,
		logger:          logger,
	}
}

// SetEventPublisher sets the publisher payout signals are sent through
func (s *PayoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// IsPayoutEligible reports whether a vendor order can be paid out right now
func (s *PayoutService) IsPayoutEligible(ctx context.Context, actor shared.Actor, vendorOrderID uuid.UUID) (*PayoutEligibilityResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	vo, eligibility, err := s.evaluate(ctx, vendorOrderID)
	if err != nil {
		return nil, err
	}
	if err := actor.RequireVendorOrAdmin(vo.VendorID, "view payout eligibility"); err != nil {
		return nil, err
	}

	response := toEligibilityResponse(vo.VendorID, vo.Status.String(), vo.Breakdown(), eligibility)
	return &response, nil
}

// ListEligiblePayouts returns a vendor's delivered orders that can be paid
// out now. Used by the payout scheduler through the admin surface. Held orders
// are filtered before paging, so every page but the last is full.
func (s *PayoutService) ListEligiblePayouts(ctx context.Context, actor shared.Actor, vendorID uuid.UUID, filter EligiblePayoutFilter) ([]PayoutEligibilityResponse, error) {
	if err := actor.RequireAdmin("list eligible payouts"); err != nil {
		return nil, err
	}

	delivered := trade.VendorOrderStatusDelivered
	vendorOrders, err := s.vendorOrderRepo.FindByVendor(ctx, vendorID, trade.VendorOrderFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "delivered_at",
			OrderDir: "asc",
		}.Normalize(),
		Status:      &delivered,
		ExcludeHeld: true,
	})
	if err != nil {
		return nil, err
	}
	if len(vendorOrders) == 0 {
		return []PayoutEligibilityResponse{}, nil
	}

	ids := make([]uuid.UUID, len(vendorOrders))
	for i := range vendorOrders {
		ids[i] = vendorOrders[i].ID
	}
	unresolved, err := s.disputeRepo.FindUnresolvedByVendorOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	byOrder := make(map[uuid.UUID][]dispute.Dispute)
	for _, d := range unresolved {
		byOrder[d.VendorOrderID] = append(byOrder[d.VendorOrderID], d)
	}

	result := make([]PayoutEligibilityResponse, 0, len(vendorOrders))
	// A dispute opened after the query still holds the order
	for i := range vendorOrders {
		vo := &vendorOrders[i]
		e := finance.EvaluatePayout(vo, dispute.Holds(byOrder[vo.ID])...)
		if !e.Eligible {
			continue
		}
		result = append(result, toEligibilityResponse(vo.VendorID, vo.Status.String(), vo.Breakdown(), e))
	}

	return result, nil
}

// GetVendorPayoutSummary aggregates delivered, held and pending money for a vendor
func (s *PayoutService) GetVendorPayoutSummary(ctx context.Context, actor shared.Actor, vendorID uuid.UUID) (*PayoutSummaryResponse, error) {
	if err := actor.RequireVendorOrAdmin(vendorID, "view payout summary"); err != nil {
		return nil, err
	}

	totals, err := s.vendorOrderRepo.TotalsByStatus(ctx, &vendorID)
	if err != nil {
		return nil, err
	}
	held, err := s.disputeRepo.HeldAmount(ctx, &vendorID)
	if err != nil {
		return nil, err
	}

	summary := PayoutSummaryResponse{
		VendorID:          vendorID,
		DeliveredSubtotal: decimal.Zero,
		Commission:        decimal.Zero,
		Payout:            decimal.Zero,
		HeldAmount:        held,
		PendingPayout:     decimal.Zero,
	}
	for _, t := range totals {
		switch t.Status {
		case trade.VendorOrderStatusDelivered:
			summary.DeliveredOrders += t.Count
			summary.DeliveredSubtotal = summary.DeliveredSubtotal.Add(t.Subtotal)
			summary.Commission = summary.Commission.Add(t.Commission)
			summary.Payout = summary.Payout.Add(t.Payout)
		case trade.VendorOrderStatusReturned:
		default:
			summary.PendingPayout = summary.PendingPayout.Add(t.Payout)
		}
	}
	summary.EligibleAmount = summary.Payout.Sub(held)

	return &summary, nil
}

// Signal re-evaluates a vendor order and publishes PayoutEligible or
// PayoutHeld. Repeated calls publish the same answer for the same state.
func (s *PayoutService) Signal(ctx context.Context, vendorOrderID uuid.UUID) error {
	vo, eligibility, err := s.evaluate(ctx, vendorOrderID)
	if err != nil {
		return err
	}

	event := finance.NewPayoutSignalEvent(vo.VendorID, eligibility)
	s.logger.Info("payout signal",
		zap.String("vendor_order_id", vo.ID.String()),
		zap.String("vendor_id", vo.VendorID.String()),
		zap.String("signal", event.EventType()),
		zap.String("reason", eligibility.Reason),
	)

	if s.eventPublisher == nil {
		return nil
	}
	return s.eventPublisher.Publish(ctx, event)
}

func (s *PayoutService) evaluate(ctx context.Context, vendorOrderID uuid.UUID) (*trade.VendorOrder, finance.Eligibility, error) {
	vo, err := s.vendorOrderRepo.FindByID(ctx, vendorOrderID)
	if err != nil {
		return nil, finance.Eligibility{}, err
	}
	disputes, err := s.disputeRepo.FindByVendorOrder(ctx, vendorOrderID)
	if err != nil {
		return nil, finance.Eligibility{}, err
	}
	return vo, finance.EvaluatePayout(vo, dispute.Holds(disputes)...), nil
}
