package booking

import (
	"time"

	"travelnest/internal/domain"
)

type CreateBookingRequest struct {
	ListingID       int64  `json:"listing_id" binding:"required"`
	CheckIn         string `json:"check_in" binding:"required"`
	CheckOut        string `json:"check_out" binding:"required"`
	NumberOfGuests  int    `json:"number_of_guests" binding:"required,gt=0"`
	SpecialRequests string `json:"special_requests"`
}

// UpdateBookingRequest carries only the fields present in the payload.
type UpdateBookingRequest struct {
	CheckIn         *string `json:"check_in"`
	CheckOut        *string `json:"check_out"`
	NumberOfGuests  *int    `json:"number_of_guests"`
	SpecialRequests *string `json:"special_requests"`
}

type UserSummary struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ListingSummary struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	PropertyType  string       `json:"property_type"`
	PricePerNight float64      `json:"price_per_night"`
	MaxGuests     int          `json:"max_guests"`
	City          string       `json:"city"`
	Country       string       `json:"country"`
	Host          *UserSummary `json:"host,omitempty"`
	AverageRating *float64     `json:"average_rating"`
}

type BookingResponse struct {
	ID              int64           `json:"id"`
	Listing         *ListingSummary `json:"listing,omitempty"`
	Guest           *UserSummary    `json:"guest,omitempty"`
	CheckIn         string          `json:"check_in"`
	CheckOut        string          `json:"check_out"`
	NumberOfGuests  int             `json:"number_of_guests"`
	TotalPrice      float64         `json:"total_price"`
	Status          string          `json:"status"`
	SpecialRequests string          `json:"special_requests,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toUserSummary(u *domain.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func toListingSummary(l *domain.Listing, avgRating *float64) *ListingSummary {
	if l == nil {
		return nil
	}
	return &ListingSummary{
		ID:            l.ID,
		Title:         l.Title,
		PropertyType:  string(l.PropertyType),
		PricePerNight: l.PricePerNight,
		MaxGuests:     l.MaxGuests,
		City:          l.City,
		Country:       l.Country,
		Host:          toUserSummary(l.Host),
		AverageRating: avgRating,
	}
}

func toBookingResponse(b *domain.Booking, avgRating *float64) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		Listing:         toListingSummary(b.Listing, avgRating),
		Guest:           toUserSummary(b.Guest),
		CheckIn:         b.CheckIn.Format(time.DateOnly),
		CheckOut:        b.CheckOut.Format(time.DateOnly),
		NumberOfGuests:  b.NumberOfGuests,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
