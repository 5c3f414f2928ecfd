package booking

import (
	"context"
	"time"

	"travelnest/internal/domain"
	"travelnest/internal/repository"
)

// BookingRepository defines the persistence operations the booking
// service needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context, f repository.BookingFilters, visibleTo *domain.User) ([]domain.Booking, int64, error)
	CountConflicts(ctx context.Context, listingID int64, checkIn, checkOut time.Time, excludeID int64) (int64, error)
	GetUpcoming(ctx context.Context, userID int64, today time.Time) ([]domain.Booking, error)
}

type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

type ReviewRepository interface {
	AverageRating(ctx context.Context, listingID int64) (*float64, error)
	AverageRatings(ctx context.Context, listingIDs []int64) (map[int64]float64, error)
}
