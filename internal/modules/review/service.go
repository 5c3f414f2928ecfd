package review

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"travelnest/internal/domain"
)

var ErrListingNotFound = errors.New("listing not found")

type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	GetByListing(ctx context.Context, listingID int64) ([]domain.Review, error)
}

type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

type Service struct {
	reviews  ReviewRepository
	listings ListingRepository
}

func NewService(reviews ReviewRepository, listings ListingRepository) *Service {
	return &Service{reviews: reviews, listings: listings}
}

func (s *Service) Create(ctx context.Context, actor *domain.User, listingID int64, req CreateReviewRequest) (*domain.Review, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	r := &domain.Review{
		ListingID:  listingID,
		ReviewerID: actor.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, err
	}

	r.Reviewer = actor
	return r, nil
}

func (s *Service) ListForListing(ctx context.Context, listingID int64) ([]domain.Review, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return s.reviews.GetByListing(ctx, listingID)
}
