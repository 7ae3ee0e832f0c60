package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// VendorService handles vendor registration and admission
type VendorService struct {
	vendorRepo     partner.VendorRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository, logger *zap.Logger) *VendorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VendorService{
		vendorRepo: vendorRepo,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *VendorService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Submit registers a vendor application owned by the calling user
func (s *VendorService) Submit(ctx context.Context, actor shared.Actor, req SubmitVendorRequest) (*VendorResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	vendor, err := partner.NewVendor(actor.UserID, partner.BusinessProfile{
		BusinessName: req.BusinessName,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		TaxID:        req.TaxID,
		Address:      req.Address,
		Description:  req.Description,
	})
	if err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	s.publish(ctx, vendor)

	s.logger.Info("vendor submitted",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("owner_id", vendor.OwnerID.String()),
	)

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Approve admits a pending vendor. Re-approving an approved vendor succeeds
// without writing anything.
func (s *VendorService) Approve(ctx context.Context, actor shared.Actor, vendorID uuid.UUID) (*VendorResponse, error) {
	if err := actor.RequireAdmin("approve vendor"); err != nil {
		return nil, err
	}

	var changed bool
	vendor, err := s.transition(ctx, vendorID, partner.VendorStatusApproved, func(v *partner.Vendor) error {
		var err error
		changed, err = v.Approve(actor.UserID)
		return err
	}, func() bool { return changed })
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Reject refuses a pending vendor application
func (s *VendorService) Reject(ctx context.Context, actor shared.Actor, vendorID uuid.UUID, req RejectVendorRequest) (*VendorResponse, error) {
	if err := actor.RequireAdmin("reject vendor"); err != nil {
		return nil, err
	}

	vendor, err := s.transition(ctx, vendorID, partner.VendorStatusRejected, func(v *partner.Vendor) error {
		return v.Reject(actor.UserID, req.Reason)
	}, nil)
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Suspend blocks an approved vendor; existing vendor orders are not touched
func (s *VendorService) Suspend(ctx context.Context, actor shared.Actor, vendorID uuid.UUID, req SuspendVendorRequest) (*VendorResponse, error) {
	if err := actor.RequireAdmin("suspend vendor"); err != nil {
		return nil, err
	}

	vendor, err := s.transition(ctx, vendorID, partner.VendorStatusSuspended, func(v *partner.Vendor) error {
		return v.Suspend(actor.UserID, req.Reason)
	}, nil)
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Reinstate re-approves a suspended vendor
func (s *VendorService) Reinstate(ctx context.Context, actor shared.Actor, vendorID uuid.UUID) (*VendorResponse, error) {
	if err := actor.RequireAdmin("reinstate vendor"); err != nil {
		return nil, err
	}

	vendor, err := s.transition(ctx, vendorID, partner.VendorStatusApproved, func(v *partner.Vendor) error {
		return v.Reinstate(actor.UserID)
	}, nil)
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// GetByID returns a vendor to an admin or to the vendor itself
func (s *VendorService) GetByID(ctx context.Context, actor shared.Actor, vendorID uuid.UUID) (*VendorResponse, error) {
	if err := actor.RequireVendorOrAdmin(vendorID, "view vendor"); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// List retrieves vendors with filtering and pagination
func (s *VendorService) List(ctx context.Context, actor shared.Actor, filter VendorListFilter) ([]VendorResponse, int64, error) {
	if err := actor.RequireAdmin("list vendors"); err != nil {
		return nil, 0, err
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}.Normalize()

	var (
		vendors []partner.Vendor
		err     error
	)
	if filter.Status != "" {
		status := partner.VendorStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewValidationError("status", "unknown vendor status")
		}
		vendors, err = s.vendorRepo.FindByStatus(ctx, status, domainFilter)
	} else {
		vendors, err = s.vendorRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.vendorRepo.Count(ctx, shared.Filter{
		Search:  filter.Search,
		Filters: statusFilter(filter.Status),
	})
	if err != nil {
		return nil, 0, err
	}

	return ToVendorResponses(vendors), total, nil
}

// GetPending returns applications waiting for review, oldest first
func (s *VendorService) GetPending(ctx context.Context, actor shared.Actor, page, pageSize int) ([]VendorResponse, error) {
	if err := actor.RequireAdmin("list pending vendors"); err != nil {
		return nil, err
	}

	vendors, err := s.vendorRepo.FindByStatus(ctx, partner.VendorStatusPending, shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  "created_at",
		OrderDir: "asc",
	}.Normalize())
	if err != nil {
		return nil, err
	}

	return ToVendorResponses(vendors), nil
}

// transition loads a vendor, applies a domain change and saves it with a
// version check. A lost race reloads the vendor and reports its current state.
func (s *VendorService) transition(
	ctx context.Context,
	vendorID uuid.UUID,
	target partner.VendorStatus,
	apply func(v *partner.Vendor) error,
	changed func() bool,
) (*partner.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	from := vendor.Status

	if err := apply(vendor); err != nil {
		return nil, err
	}
	if changed != nil && !changed() {
		return vendor, nil
	}

	if err := s.vendorRepo.SaveWithLock(ctx, vendor); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return s.conflict(ctx, vendorID, target)
		}
		return nil, err
	}
	s.publish(ctx, vendor)

	s.logger.Info("vendor status changed",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("from", from.String()),
		zap.String("to", vendor.Status.String()),
	)

	return vendor, nil
}

// conflict resolves a lost optimistic-lock race. A concurrent writer that
// already reached approved satisfies an approval request.
func (s *VendorService) conflict(ctx context.Context, vendorID uuid.UUID, target partner.VendorStatus) (*partner.Vendor, error) {
	current, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if target == partner.VendorStatusApproved && current.Status == partner.VendorStatusApproved {
		return current, nil
	}
	return nil, shared.NewInvalidTransitionError(partner.AggregateTypeVendor, vendorID, current.Status.String(), target.String())
}

func (s *VendorService) publish(ctx context.Context, vendor *partner.Vendor) {
	if err := shared.PublishAndClear(ctx, s.eventPublisher, vendor); err != nil {
		s.logger.Warn("failed to publish vendor events",
			zap.String("vendor_id", vendor.ID.String()),
			zap.Error(err),
		)
	}
}

func statusFilter(status string) map[string]interface{} {
	if status == "" {
		return nil
	}
	return map[string]interface{}{"status": status}
}
