package repository

import (
	"context"

	"gorm.io/gorm"

	"travelnest/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *ReviewRepository) GetByListing(ctx context.Context, listingID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Preload("Reviewer").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// AverageRating returns the mean rating of a listing, nil when it has
// no reviews.
func (r *ReviewRepository) AverageRating(ctx context.Context, listingID int64) (*float64, error) {
	var row struct {
		Avg *float64
	}
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("AVG(rating) AS avg").
		Where("listing_id = ?", listingID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return row.Avg, nil
}

// AverageRatings batches the mean rating for a set of listings. Listings
// without reviews are absent from the result.
func (r *ReviewRepository) AverageRatings(ctx context.Context, listingIDs []int64) (map[int64]float64, error) {
	out := make(map[int64]float64, len(listingIDs))
	if len(listingIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		ListingID int64
		Avg       float64
	}
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("listing_id, AVG(rating) AS avg").
		Where("listing_id IN ?", listingIDs).
		Group("listing_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.ListingID] = row.Avg
	}
	return out, nil
}
