package listing

import (
	"context"

	"travelnest/internal/domain"
	"travelnest/internal/repository"
)

type ListingRepository interface {
	GetAll(ctx context.Context, f repository.ListingFilters) ([]domain.Listing, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	Create(ctx context.Context, l *domain.Listing) error
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id int64) error
}

type BookingRepository interface {
	GetBlockingForListing(ctx context.Context, listingID int64) ([]domain.Booking, error)
	GetForListing(ctx context.Context, listingID int64, visibleTo *domain.User, hostsListing bool) ([]domain.Booking, error)
}

type ReviewRepository interface {
	AverageRating(ctx context.Context, listingID int64) (*float64, error)
	AverageRatings(ctx context.Context, listingIDs []int64) (map[int64]float64, error)
}
