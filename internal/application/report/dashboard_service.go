package report

import (
	"context"
	"fmt"
	"time"

	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/catalog"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/dispute"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/report"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
)

// DashboardService computes the admin back-office overview on demand
type DashboardService struct {
	vendorRepo      partner.VendorRepository
	listingRepo     catalog.ProductListingRepository
	vendorOrderRepo trade.VendorOrderRepository
	disputeRepo     dispute.Repository
	now             func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	vendorRepo partner.VendorRepository,
	listingRepo catalog.ProductListingRepository,
	vendorOrderRepo trade.VendorOrderRepository,
	disputeRepo dispute.Repository,
) *DashboardService {
	return &DashboardService{
		vendorRepo:      vendorRepo,
		listingRepo:     listingRepo,
		vendorOrderRepo: vendorOrderRepo,
		disputeRepo:     disputeRepo,
		now:             time.Now,
	}
}

// GetDashboard returns status counts for every context plus fulfillment money totals
func (s *DashboardService) GetDashboard(ctx context.Context, actor shared.Actor) (*report.Dashboard, error) {
	if err := actor.RequireAdmin("view dashboard"); err != nil {
		return nil, err
	}

	vendorCounts, err := s.vendorRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count vendors: %w", err)
	}
	listingCounts, err := s.listingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}
	disputeCounts, err := s.disputeRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count disputes: %w", err)
	}
	totals, err := s.vendorOrderRepo.TotalsByStatus(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("vendor order totals: %w", err)
	}
	held, err := s.disputeRepo.HeldAmount(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("held payouts: %w", err)
	}

	return &report.Dashboard{
		GeneratedAt: s.now(),
		Vendors: report.CountsFrom(vendorCounts, []partner.VendorStatus{
			partner.VendorStatusPending, partner.VendorStatusApproved,
			partner.VendorStatusRejected, partner.VendorStatusSuspended,
		}),
		Listings: report.CountsFrom(listingCounts, []catalog.ListingStatus{
			catalog.ListingStatusPending, catalog.ListingStatusApproved, catalog.ListingStatusRejected,
		}),
		Disputes: report.CountsFrom(disputeCounts, []dispute.Status{
			dispute.StatusOpen, dispute.StatusInvestigating, dispute.StatusResolved, dispute.StatusClosed,
		}),
		PendingVendors:  vendorCounts[partner.VendorStatusPending],
		PendingListings: listingCounts[catalog.ListingStatusPending],
		OpenDisputes:    disputeCounts[dispute.StatusOpen] + disputeCounts[dispute.StatusInvestigating],
		Fulfillment:     report.SummarizeFulfillment(totals),
		PayoutsHeld:     held,
	}, nil
}
