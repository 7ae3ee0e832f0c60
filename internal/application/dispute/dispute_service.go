package dispute

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/dispute"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
	"go.uber.org/zap"
)

// EvidenceStorage issues presigned URLs for evidence files
type EvidenceStorage interface {
	// GenerateUploadURL returns a presigned PUT URL and its expiry
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// GenerateDownloadURL returns a presigned GET URL and its expiry
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// PayoutSignaler re-evaluates payout eligibility for a vendor order
type PayoutSignaler interface {
	Signal(ctx context.Context, vendorOrderID uuid.UUID) error
}

// ServiceConfig holds configuration for the dispute service
type ServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultServiceConfig returns the default configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
	}
}

// DisputeService runs the dispute workflow. Every change that can affect a
// vendor order's payout is followed by a payout signal.
type DisputeService struct {
	disputeRepo     dispute.Repository
	vendorOrderRepo trade.VendorOrderRepository
	storage         EvidenceStorage
	payouts         PayoutSignaler
	config          ServiceConfig
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewDisputeService creates a new DisputeService
func NewDisputeService(
	disputeRepo dispute.Repository,
	vendorOrderRepo trade.VendorOrderRepository,
	storage EvidenceStorage,
	config ServiceConfig,
	logger *zap.Logger,
) *DisputeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DisputeService{
		disputeRepo:     disputeRepo,
		vendorOrderRepo: vendorOrderRepo,
		storage:         storage,
		config:          config,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *DisputeService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetPayoutSignaler sets the collaborator notified when a payout hold changes
func (s *DisputeService) SetPayoutSignaler(payouts PayoutSignaler) {
	s.payouts = payouts
}

// Open raises a dispute against a shipped or delivered vendor order.
// The order's customer or an admin may open it; the payout is held at once.
func (s *DisputeService) Open(ctx context.Context, actor shared.Actor, vendorOrderID uuid.UUID, req OpenDisputeRequest) (*DisputeResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	vo, err := s.vendorOrderRepo.FindByID(ctx, vendorOrderID)
	if err != nil {
		return nil, err
	}
	if err := actor.RequireCustomerOrAdmin(vo.CustomerID, "open dispute"); err != nil {
		return nil, err
	}

	d, err := dispute.Open(vo, actor, dispute.Claim{
		Type:        dispute.Type(req.Type),
		Description: req.Description,
		Amount:      req.Amount,
		Priority:    dispute.Priority(req.Priority),
	})
	if err != nil {
		return nil, err
	}

	if err := s.disputeRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	s.publish(ctx, d)

	s.logger.Info("dispute opened",
		zap.String("dispute_id", d.ID.String()),
		zap.String("vendor_order_id", vo.ID.String()),
		zap.String("vendor_id", vo.VendorID.String()),
		zap.String("amount", d.Amount.String()),
	)

	s.signal(ctx, vo.ID)

	response := ToDisputeResponse(d)
	return &response, nil
}

// MarkInvestigating moves an open dispute under investigation. Admin only.
func (s *DisputeService) MarkInvestigating(ctx context.Context, actor shared.Actor, disputeID uuid.UUID) (*DisputeResponse, error) {
	if err := actor.RequireAdmin("investigate dispute"); err != nil {
		return nil, err
	}
	return s.transition(ctx, disputeID, dispute.StatusInvestigating, func(d *dispute.Dispute) error {
		return d.MarkInvestigating()
	})
}

// Resolve decides a dispute and re-evaluates the payout. Admin only.
func (s *DisputeService) Resolve(ctx context.Context, actor shared.Actor, disputeID uuid.UUID, req DecideDisputeRequest) (*DisputeResponse, error) {
	if err := actor.RequireAdmin("resolve dispute"); err != nil {
		return nil, err
	}
	return s.transition(ctx, disputeID, dispute.StatusResolved, func(d *dispute.Dispute) error {
		return d.Resolve(actor.UserID, req.Resolution)
	})
}

// Close ends a dispute and re-evaluates the payout. Admin only.
func (s *DisputeService) Close(ctx context.Context, actor shared.Actor, disputeID uuid.UUID, req DecideDisputeRequest) (*DisputeResponse, error) {
	if err := actor.RequireAdmin("close dispute"); err != nil {
		return nil, err
	}
	return s.transition(ctx, disputeID, dispute.StatusClosed, func(d *dispute.Dispute) error {
		return d.Close(actor.UserID, req.Resolution)
	})
}

// AttachEvidence reserves an object key for an evidence file and returns a
// presigned upload URL for it
func (s *DisputeService) AttachEvidence(ctx context.Context, actor shared.Actor, disputeID uuid.UUID, req AttachEvidenceRequest) (*EvidenceUploadResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, errors.New("evidence storage is not configured")
	}

	d, err := s.disputeRepo.FindByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if !d.IsParticipant(actor) {
		return nil, shared.NewPermissionDeniedError(actor, "attach dispute evidence")
	}

	key := evidenceKey(d.ID, req.FileName)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate evidence upload url: %w", err)
	}

	ev, err := d.AddEvidence(actor.UserID, key, req.FileName, req.ContentType)
	if err != nil {
		return nil, err
	}
	if err := s.disputeRepo.SaveWithLock(ctx, d); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, s.lostRace(ctx, disputeID, "evidence_added")
		}
		return nil, err
	}

	s.logger.Info("dispute evidence reserved",
		zap.String("dispute_id", d.ID.String()),
		zap.String("object_key", key),
	)

	return &EvidenceUploadResponse{
		Evidence:  toEvidenceResponse(*ev),
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// GetByID returns a dispute to its participants with download links for evidence
func (s *DisputeService) GetByID(ctx context.Context, actor shared.Actor, disputeID uuid.UUID) (*DisputeResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	d, err := s.disputeRepo.FindByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if !d.IsParticipant(actor) {
		return nil, shared.NewPermissionDeniedError(actor, "view dispute")
	}

	response := ToDisputeResponse(d)
	if s.storage != nil {
		for i := range response.Evidence {
			url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, response.Evidence[i].ObjectKey, s.config.DownloadURLExpiry)
			if err != nil {
				s.logger.Warn("failed to presign evidence download",
					zap.String("object_key", response.Evidence[i].ObjectKey),
					zap.Error(err),
				)
				continue
			}
			response.Evidence[i].DownloadURL = url
			response.Evidence[i].URLExpires = &expiresAt
		}
	}

	return &response, nil
}

// ListForVendorOrder returns every dispute raised against a vendor order
func (s *DisputeService) ListForVendorOrder(ctx context.Context, actor shared.Actor, vendorOrderID uuid.UUID) ([]DisputeResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	vo, err := s.vendorOrderRepo.FindByID(ctx, vendorOrderID)
	if err != nil {
		return nil, err
	}
	allowed := actor.IsAdmin() || actor.ActsFor(vo.VendorID) ||
		(actor.Role == shared.RoleCustomer && actor.UserID == vo.CustomerID)
	if !allowed {
		return nil, shared.NewPermissionDeniedError(actor, "list disputes")
	}

	disputes, err := s.disputeRepo.FindByVendorOrder(ctx, vendorOrderID)
	if err != nil {
		return nil, err
	}

	return ToDisputeResponses(disputes), nil
}

// GetOpen returns the admin work queue of open and investigating disputes
func (s *DisputeService) GetOpen(ctx context.Context, actor shared.Actor, filter DisputeListFilter) ([]DisputeResponse, error) {
	if err := actor.RequireAdmin("list open disputes"); err != nil {
		return nil, err
	}

	disputes, err := s.disputeRepo.FindUnresolved(ctx, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}.Normalize())
	if err != nil {
		return nil, err
	}

	return ToDisputeResponses(disputes), nil
}

func (s *DisputeService) transition(
	ctx context.Context,
	disputeID uuid.UUID,
	target dispute.Status,
	apply func(d *dispute.Dispute) error,
) (*DisputeResponse, error) {
	d, err := s.disputeRepo.FindByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	from := d.Status

	if err := apply(d); err != nil {
		return nil, err
	}
	if err := s.disputeRepo.SaveWithLock(ctx, d); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, s.lostRace(ctx, disputeID, target)
		}
		return nil, err
	}
	s.publish(ctx, d)

	s.logger.Info("dispute status changed",
		zap.String("dispute_id", d.ID.String()),
		zap.String("vendor_order_id", d.VendorOrderID.String()),
		zap.String("from", from.String()),
		zap.String("to", d.Status.String()),
	)

	if d.Status.IsTerminal() {
		s.signal(ctx, d.VendorOrderID)
	}

	response := ToDisputeResponse(d)
	return &response, nil
}

func (s *DisputeService) lostRace(ctx context.Context, disputeID uuid.UUID, target dispute.Status) error {
	current, err := s.disputeRepo.FindByID(ctx, disputeID)
	if err != nil {
		return err
	}
	return shared.NewInvalidTransitionError(dispute.AggregateTypeDispute, disputeID, current.Status.String(), target.String())
}

func (s *DisputeService) signal(ctx context.Context, vendorOrderID uuid.UUID) {
	if s.payouts == nil {
		return
	}
	if err := s.payouts.Signal(ctx, vendorOrderID); err != nil {
		s.logger.Warn("failed to signal payout",
			zap.String("vendor_order_id", vendorOrderID.String()),
			zap.Error(err),
		)
	}
}

func (s *DisputeService) publish(ctx context.Context, d *dispute.Dispute) {
	if err := shared.PublishAndClear(ctx, s.eventPublisher, d); err != nil {
		s.logger.Warn("failed to publish dispute events",
			zap.String("dispute_id", d.ID.String()),
			zap.Error(err),
		)
	}
}

// evidenceKey builds a collision-free object key under the dispute's prefix
func evidenceKey(disputeID uuid.UUID, fileName string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "evidence"
	}
	return fmt.Sprintf("disputes/%s/%s-%s", disputeID, uuid.New(), name)
}
