package domain

// Authorization predicates. Reads are permissive, writes are restricted
// to the owning side. Booking predicates expect b.Listing to be loaded.

// CanModifyListing: only the host may change or delete a listing.
func CanModifyListing(actor *User, l *Listing) bool {
	return actor != nil && l != nil && actor.ID == l.HostID
}

// IsListingHost reports whether the actor hosts the listing behind a booking.
func IsListingHost(actor *User, b *Booking) bool {
	return actor != nil && b != nil && b.Listing != nil && actor.ID == b.Listing.HostID
}

// CanViewBooking: the guest, the listing host, or staff.
func CanViewBooking(actor *User, b *Booking) bool {
	if actor == nil || b == nil {
		return false
	}
	if actor.IsStaff() {
		return true
	}
	return actor.ID == b.GuestID || IsListingHost(actor, b)
}

// CanModifyBooking: the guest or the listing host. Staff reads do not
// extend to writes.
func CanModifyBooking(actor *User, b *Booking) bool {
	if actor == nil || b == nil {
		return false
	}
	return actor.ID == b.GuestID || IsListingHost(actor, b)
}
