package listing

import (
	"time"

	"travelnest/internal/domain"
)

type CreateListingRequest struct {
	Title         string   `json:"title" binding:"required,max=200"`
	Description   string   `json:"description" binding:"required"`
	PropertyType  string   `json:"property_type" binding:"required"`
	PricePerNight float64  `json:"price_per_night" binding:"required,gte=0"`
	Bedrooms      int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms     int      `json:"bathrooms" binding:"gte=0"`
	MaxGuests     int      `json:"max_guests" binding:"required,gt=0"`
	Address       string   `json:"address" binding:"required"`
	City          string   `json:"city" binding:"required"`
	Country       string   `json:"country" binding:"required"`
	Amenities     []string `json:"amenities"`
	IsAvailable   *bool    `json:"is_available"`
}

// UpdateListingRequest carries only the fields present in the payload;
// nil pointers leave the stored value untouched.
type UpdateListingRequest struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	PropertyType  *string   `json:"property_type"`
	PricePerNight *float64  `json:"price_per_night"`
	Bedrooms      *int      `json:"bedrooms"`
	Bathrooms     *int      `json:"bathrooms"`
	MaxGuests     *int      `json:"max_guests"`
	Address       *string   `json:"address"`
	City          *string   `json:"city"`
	Country       *string   `json:"country"`
	Amenities     *[]string `json:"amenities"`
	IsAvailable   *bool     `json:"is_available"`
}

type UserSummary struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ListingResponse struct {
	ID            int64        `json:"id"`
	Host          *UserSummary `json:"host,omitempty"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	PropertyType  string       `json:"property_type"`
	PricePerNight float64      `json:"price_per_night"`
	Bedrooms      int          `json:"bedrooms"`
	Bathrooms     int          `json:"bathrooms"`
	MaxGuests     int          `json:"max_guests"`
	Address       string       `json:"address"`
	City          string       `json:"city"`
	Country       string       `json:"country"`
	Amenities     []string     `json:"amenities"`
	IsAvailable   bool         `json:"is_available"`
	AverageRating *float64     `json:"average_rating"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
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

func toListingResponse(l *domain.Listing, avgRating *float64) ListingResponse {
	amenities := l.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return ListingResponse{
		ID:            l.ID,
		Host:          toUserSummary(l.Host),
		Title:         l.Title,
		Description:   l.Description,
		PropertyType:  string(l.PropertyType),
		PricePerNight: l.PricePerNight,
		Bedrooms:      l.Bedrooms,
		Bathrooms:     l.Bathrooms,
		MaxGuests:     l.MaxGuests,
		Address:       l.Address,
		City:          l.City,
		Country:       l.Country,
		Amenities:     amenities,
		IsAvailable:   l.IsAvailable,
		AverageRating: avgRating,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}
