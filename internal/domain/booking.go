package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// BlocksDates reports whether a booking in this status occupies its
// date range for conflict purposes.
func (s BookingStatus) BlocksDates() bool {
	return s == BookingPending || s == BookingConfirmed
}

type Booking struct {
	ID              int64         `json:"id"`
	ListingID       int64         `json:"listing_id" gorm:"index"`
	GuestID         int64         `json:"guest_id" gorm:"index"`
	CheckIn         time.Time     `json:"check_in" gorm:"type:date"`
	CheckOut        time.Time     `json:"check_out" gorm:"type:date"`
	NumberOfGuests  int           `json:"number_of_guests"`
	TotalPrice      float64       `json:"total_price"`
	Status          BookingStatus `json:"status"`
	SpecialRequests string        `json:"special_requests,omitempty" gorm:"type:text"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	Guest   *User    `json:"guest,omitempty" gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE"`
}

// Nights is the length of the stay in whole days. Check-in and
// check-out are stored as UTC midnights, so the division is exact.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
