package event

import (
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/catalog"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/dispute"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/finance"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
)

// RegisterMarketplaceEvents registers every marketplace event type with the serializer
func RegisterMarketplaceEvents(serializer *EventSerializer) {
	// Vendor registry
	serializer.Register(partner.EventTypeVendorSubmitted, &partner.VendorSubmittedEvent{})
	serializer.Register(partner.EventTypeVendorApproved, &partner.VendorStatusEvent{})
	serializer.Register(partner.EventTypeVendorRejected, &partner.VendorStatusEvent{})
	serializer.Register(partner.EventTypeVendorSuspended, &partner.VendorStatusEvent{})
	serializer.Register(partner.EventTypeVendorReinstated, &partner.VendorStatusEvent{})

	// Catalog approval
	serializer.Register(catalog.EventTypeListingSubmitted, &catalog.ListingSubmittedEvent{})
	serializer.Register(catalog.EventTypeListingApproved, &catalog.ListingReviewedEvent{})
	serializer.Register(catalog.EventTypeListingRejected, &catalog.ListingReviewedEvent{})

	// Fulfillment
	serializer.Register(trade.EventTypeOrderPlaced, &trade.OrderPlacedEvent{})
	serializer.Register(trade.EventTypeVendorOrderCreated, &trade.VendorOrderCreatedEvent{})
	serializer.Register(trade.EventTypeVendorOrderStatusChanged, &trade.VendorOrderStatusChangedEvent{})

	// Disputes
	serializer.Register(dispute.EventTypeDisputeOpened, &dispute.DisputeOpenedEvent{})
	serializer.Register(dispute.EventTypeDisputeStatusChanged, &dispute.DisputeStatusChangedEvent{})

	// Payout signals
	serializer.Register(finance.EventTypePayoutEligible, &finance.PayoutSignalEvent{})
	serializer.Register(finance.EventTypePayoutHeld, &finance.PayoutSignalEvent{})
}
