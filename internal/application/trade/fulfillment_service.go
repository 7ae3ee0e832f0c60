package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
	"go.uber.org/zap"
)

// PayoutSignaler re-evaluates payout eligibility for a vendor order and
// notifies the payout scheduler
type PayoutSignaler interface {
	Signal(ctx context.Context, vendorOrderID uuid.UUID) error
}

// FulfillmentService advances vendor orders along the fulfillment graph
type FulfillmentService struct {
	vendorOrderRepo trade.VendorOrderRepository
	txScope         TransactionScope
	payouts         PayoutSignaler
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewFulfillmentService creates a new FulfillmentService
func NewFulfillmentService(vendorOrderRepo trade.VendorOrderRepository, txScope TransactionScope, logger *zap.Logger) *FulfillmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FulfillmentService{
		vendorOrderRepo: vendorOrderRepo,
		txScope:         txScope,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *FulfillmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetPayoutSignaler sets the collaborator notified after delivery
func (s *FulfillmentService) SetPayoutSignaler(payouts PayoutSignaler) {
	s.payouts = payouts
}

// MarkProcessing moves a pending vendor order to processing. Owning vendor only.
func (s *FulfillmentService) MarkProcessing(ctx context.Context, actor shared.Actor, vendorOrderID uuid.UUID) (*VendorOrderResponse, error) {
	return s.advance(ctx, vendorOrderID, trade.VendorOrderStatusProcessing,
		func(vo *trade.VendorOrder) error {
			return actor.RequireVendor(vo.VendorID, "mark vendor order processing")
		},
		func(vo *trade.VendorOrder) error {
			return vo.MarkProcessing()
		},
		nil,
	)
}

// Ship records carrier and tracking number. Owning vendor only.
func (s *FulfillmentService) Ship(ctx context.Context, actor shared.Actor, vendorOrderID uuid.UUID, req ShipOrderRequest) (*VendorOrderResponse, error) {
	return s.advance(ctx, vendorOrderID, trade.VendorOrderStatusShipped,
		func(vo *trade.VendorOrder) error {
			return actor.RequireVendor(vo.VendorID, "ship vendor order")
		},
		func(vo *trade.VendorOrder) error {
			return vo.Ship(req.Carrier, req.TrackingNumber)
		},
		nil,
	)
}

// ConfirmDelivery marks a shipped vendor order delivered and credits the
// vendor's sales counters in the same transaction. The payout scheduler is
// signalled after commit. Callable by the order's customer or an admin.
func (s *FulfillmentService) ConfirmDelivery(ctx context.Context, actor shared.Actor, vendorOrderID uuid.UUID) (*VendorOrderResponse, error) {
	resp, err := s.advance(ctx, vendorOrderID, trade.VendorOrderStatusDelivered,
		func(vo *trade.VendorOrder) error {
			return actor.RequireCustomerOrAdmin(vo.CustomerID, "confirm delivery")
		},
		func(vo *trade.VendorOrder) error {
			return vo.ConfirmDelivery()
		},
		func(ctx context.Context, repos TransactionalRepositories, vo *trade.VendorOrder) error {
			return repos.VendorRepo().RecordDelivery(ctx, vo.VendorID, vo.Subtotal)
		},
	)
	if err != nil {
		return nil, err
	}

	if s.payouts != nil {
		if err := s.payouts.Signal(ctx, vendorOrderID); err != nil {
			s.logger.Warn("failed to signal payout after delivery",
				zap.String("vendor_order_id", vendorOrderID.String()),
				zap.Error(err),
			)
		}
	}

	return resp, nil
}

// MarkReturned diverts a vendor order to returned and zeroes its commission
// and payout. Owning vendor or admin.
func (s *FulfillmentService) MarkReturned(ctx context.Context, actor shared.Actor, vendorOrderID uuid.UUID, req ReturnOrderRequest) (*VendorOrderResponse, error) {
	return s.advance(ctx, vendorOrderID, trade.VendorOrderStatusReturned,
		func(vo *trade.VendorOrder) error {
			return actor.RequireVendorOrAdmin(vo.VendorID, "return vendor order")
		},
		func(vo *trade.VendorOrder) error {
			return vo.MarkReturned(req.Reason)
		},
		nil,
	)
}

// GetVendorOrder returns a vendor order to its vendor, its customer or an admin
func (s *FulfillmentService) GetVendorOrder(ctx context.Context, actor shared.Actor, vendorOrderID uuid.UUID) (*VendorOrderResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	vo, err := s.vendorOrderRepo.FindByID(ctx, vendorOrderID)
	if err != nil {
		return nil, err
	}
	if err := authorizeView(actor, vo); err != nil {
		return nil, err
	}

	response := ToVendorOrderResponse(vo)
	return &response, nil
}

// GetVendorOrders lists a vendor's orders, newest first
func (s *FulfillmentService) GetVendorOrders(ctx context.Context, actor shared.Actor, vendorID uuid.UUID, filter VendorOrderListFilter) ([]VendorOrderResponse, int64, error) {
	if err := actor.RequireVendorOrAdmin(vendorID, "list vendor orders"); err != nil {
		return nil, 0, err
	}

	domainFilter := trade.VendorOrderFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "created_at",
			OrderDir: "desc",
		}.Normalize(),
	}
	if filter.Status != "" {
		status := trade.VendorOrderStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewValidationError("status", "unknown vendor order status")
		}
		domainFilter.Status = &status
	}

	vendorOrders, err := s.vendorOrderRepo.FindByVendor(ctx, vendorID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.vendorOrderRepo.CountByVendor(ctx, vendorID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToVendorOrderResponses(vendorOrders), total, nil
}

// advance runs one fulfillment transition. The vendor order is saved with a
// compare-and-set on its version together with the order roll-up; a lost
// race is reported as InvalidTransition from the state the winner left.
func (s *FulfillmentService) advance(
	ctx context.Context,
	vendorOrderID uuid.UUID,
	target trade.VendorOrderStatus,
	authorize func(vo *trade.VendorOrder) error,
	apply func(vo *trade.VendorOrder) error,
	inTx func(ctx context.Context, repos TransactionalRepositories, vo *trade.VendorOrder) error,
) (*VendorOrderResponse, error) {
	vo, err := s.vendorOrderRepo.FindByID(ctx, vendorOrderID)
	if err != nil {
		return nil, err
	}
	if err := authorize(vo); err != nil {
		return nil, err
	}
	from := vo.Status

	if err := apply(vo); err != nil {
		return nil, err
	}

	var order *trade.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.VendorOrderRepo().SaveWithLock(ctx, vo); err != nil {
			return err
		}
		if inTx != nil {
			if err := inTx(ctx, repos, vo); err != nil {
				return err
			}
		}
		var err error
		order, err = refreshOrderStatus(ctx, repos, vo.OrderID)
		return err
	})
	if err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, s.lostRace(ctx, vendorOrderID, target)
		}
		return nil, err
	}

	aggregates := []shared.AggregateRoot{vo}
	if order != nil {
		aggregates = append(aggregates, order)
	}
	if err := shared.PublishAndClear(ctx, s.eventPublisher, aggregates...); err != nil {
		s.logger.Warn("failed to publish vendor order events",
			zap.String("vendor_order_id", vo.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("vendor order status changed",
		zap.String("vendor_order_id", vo.ID.String()),
		zap.String("vendor_id", vo.VendorID.String()),
		zap.String("from", from.String()),
		zap.String("to", vo.Status.String()),
	)

	response := ToVendorOrderResponse(vo)
	return &response, nil
}

func (s *FulfillmentService) lostRace(ctx context.Context, vendorOrderID uuid.UUID, target trade.VendorOrderStatus) error {
	current, err := s.vendorOrderRepo.FindByID(ctx, vendorOrderID)
	if err != nil {
		return err
	}
	s.logger.Info("vendor order transition lost a concurrent update",
		zap.String("vendor_order_id", vendorOrderID.String()),
		zap.String("current", current.Status.String()),
		zap.String("requested", target.String()),
	)
	return shared.NewInvalidTransitionError(trade.AggregateTypeVendorOrder, vendorOrderID, current.Status.String(), target.String())
}

// refreshOrderStatus recomputes the parent order roll-up inside the transaction.
// The order row is locked before the siblings are read, so a sibling
// transition committing concurrently is seen by whichever writer locks second.
// It returns nil when the status did not change.
func refreshOrderStatus(ctx context.Context, repos TransactionalRepositories, orderID uuid.UUID) (*trade.Order, error) {
	order, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	vendorOrders, err := repos.VendorOrderRepo().FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.RefreshStatus(vendorOrders) {
		return nil, nil
	}
	if err := repos.OrderRepo().UpdateStatus(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func authorizeView(actor shared.Actor, vo *trade.VendorOrder) error {
	switch {
	case actor.IsAdmin(), actor.ActsFor(vo.VendorID):
		return nil
	case actor.Role == shared.RoleCustomer && actor.UserID == vo.CustomerID:
		return nil
	}
	return shared.NewPermissionDeniedError(actor, "view vendor order")
}
