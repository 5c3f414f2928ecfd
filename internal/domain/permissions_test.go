package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanModifyListing(t *testing.T) {
	host := &User{ID: 1}
	other := &User{ID: 2}
	staff := &User{ID: 3, Role: RoleStaff}
	l := &Listing{ID: 10, HostID: 1}

	assert.True(t, CanModifyListing(host, l))
	assert.False(t, CanModifyListing(other, l))
	assert.False(t, CanModifyListing(staff, l)) // staff visibility is read-only
	assert.False(t, CanModifyListing(nil, l))
	assert.False(t, CanModifyListing(host, nil))
}

func TestBookingPermissions(t *testing.T) {
	host := &User{ID: 1}
	guest := &User{ID: 2}
	stranger := &User{ID: 3}
	staff := &User{ID: 4, Role: RoleStaff}

	b := &Booking{
		ID:      5,
		GuestID: guest.ID,
		Listing: &Listing{ID: 10, HostID: host.ID},
	}

	assert.True(t, CanViewBooking(guest, b))
	assert.True(t, CanViewBooking(host, b))
	assert.True(t, CanViewBooking(staff, b))
	assert.False(t, CanViewBooking(stranger, b))

	assert.True(t, CanModifyBooking(guest, b))
	assert.True(t, CanModifyBooking(host, b))
	assert.False(t, CanModifyBooking(staff, b))
	assert.False(t, CanModifyBooking(stranger, b))

	assert.True(t, IsListingHost(host, b))
	assert.False(t, IsListingHost(guest, b))

	// host checks need the listing loaded
	bare := &Booking{ID: 6, GuestID: guest.ID}
	assert.False(t, IsListingHost(host, bare))
	assert.True(t, CanModifyBooking(guest, bare))
}

func TestBookingStatusBlocksDates(t *testing.T) {
	assert.True(t, BookingPending.BlocksDates())
	assert.True(t, BookingConfirmed.BlocksDates())
	assert.False(t, BookingCancelled.BlocksDates())
	assert.False(t, BookingCompleted.BlocksDates())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBookingNights(t *testing.T) {
	b := &Booking{
		CheckIn:  date(2024, 6, 1),
		CheckOut: date(2024, 6, 5),
	}
	assert.Equal(t, 4, b.Nights())

	b.CheckOut = date(2024, 6, 2)
	assert.Equal(t, 1, b.Nights())
}
