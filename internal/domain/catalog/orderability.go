package catalog

import (
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/partner"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// IsOrderable reports whether a listing can be bought right now: the listing
// must be approved and so must its vendor. Suspension is a read-side check;
// the listing record itself is never changed by vendor state.
func IsOrderable(listing *ProductListing, vendorStatus partner.VendorStatus) bool {
	return listing.IsApproved() && vendorStatus == partner.VendorStatusApproved
}

// CheckOrderable explains why a listing is not orderable
func CheckOrderable(listing *ProductListing, vendor *partner.Vendor) error {
	if vendor.ID != listing.VendorID {
		return shared.NewValidationError("vendor_id", "listing belongs to another vendor")
	}
	if err := vendor.RequireApproved(); err != nil {
		return err
	}
	if !listing.IsApproved() {
		return shared.NewValidationError("product_id", "product "+listing.ID.String()+" is not orderable: listing is "+listing.Status.String()).
			WithDetail("current_state", listing.Status.String())
	}
	return nil
}
