package booking

import (
	"errors"
	"fmt"

	"travelnest/internal/domain"
)

var (
	ErrNotFound           = errors.New("booking not found")
	ErrListingNotFound    = errors.New("listing not found")
	ErrListingUnavailable = errors.New("listing is not available for booking")
	ErrForbidden          = errors.New("forbidden")
	ErrBadDateFormat      = errors.New("dates must use the YYYY-MM-DD format")
	ErrDateOrder          = errors.New("Check-in date must be before check-out date.")
	ErrDateConflict       = errors.New("This listing is already booked for the selected dates.")
	ErrHostOnlyConfirm    = errors.New("Only the host can confirm bookings")
	ErrCancelForbidden    = errors.New("You do not have permission to cancel this booking")
)

// GuestLimitError rejects a stay that exceeds the listing's capacity.
type GuestLimitError struct {
	Max int
}

func (e *GuestLimitError) Error() string {
	return fmt.Sprintf("Number of guests cannot exceed %d.", e.Max)
}

// StatusError rejects a transition out of a state that does not allow it.
type StatusError struct {
	Current domain.BookingStatus
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Booking is already %s", e.Current)
}
