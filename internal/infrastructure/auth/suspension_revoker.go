package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// SuspensionRevoker revokes every token acting for a vendor once it is suspended,
// so a suspended vendor loses access without waiting for token expiry.
type SuspensionRevoker struct {
	blacklist TokenBlacklist
	ttl       time.Duration
	logger    *zap.Logger
}

// NewSuspensionRevoker creates the handler; ttl should be the token lifetime
func NewSuspensionRevoker(blacklist TokenBlacklist, ttl time.Duration, logger *zap.Logger) *SuspensionRevoker {
	return &SuspensionRevoker{blacklist: blacklist, ttl: ttl, logger: logger}
}

// EventTypes implements shared.EventHandler
func (r *SuspensionRevoker) EventTypes() []string {
	return []string{partner.EventTypeVendorSuspended}
}

// Handle implements shared.EventHandler
func (r *SuspensionRevoker) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*partner.VendorStatusEvent)
	if !ok {
		return fmt.Errorf("suspension revoker: unexpected event %T", event)
	}

	subject := VendorSubject(e.VendorID.String())
	if err := r.blacklist.RevokeSubject(ctx, subject, r.ttl); err != nil {
		return err
	}

	r.logger.Info("Revoked vendor tokens after suspension",
		zap.String("vendor_id", e.VendorID.String()),
		zap.String("event_id", e.EventID().String()))
	return nil
}

var _ shared.EventHandler = (*SuspensionRevoker)(nil)
