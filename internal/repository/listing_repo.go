package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"travelnest/internal/domain"
)

// ListingFilters enumerates every supported listing query option; each
// non-zero field maps to one predicate below.
type ListingFilters struct {
	PropertyType string
	City         string
	Country      string
	IsAvailable  *bool
	MinPrice     float64
	MaxPrice     float64
	MinGuests    int
	Search       string
	OrderBy      string
	Limit        int
	Offset       int
}

var listingOrderFields = map[string]bool{
	"price_per_night": true,
	"created_at":      true,
	"updated_at":      true,
}

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// GetAll returns listings with optional filters
func (r *ListingRepository) GetAll(
	ctx context.Context,
	f ListingFilters,
) ([]domain.Listing, int64, error) {

	var listings []domain.Listing
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Listing{})

	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.Country != "" {
		q = q.Where("country = ?", f.Country)
	}
	if f.IsAvailable != nil {
		q = q.Where("is_available = ?", *f.IsAvailable)
	}
	if f.MinPrice > 0 {
		q = q.Where("price_per_night >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price_per_night <= ?", f.MaxPrice)
	}
	if f.MinGuests > 0 {
		q = q.Where("max_guests >= ?", f.MinGuests)
	}
	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(city) LIKE ? OR LOWER(country) LIKE ?",
			term, term, term, term,
		)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.
		Order(orderClause(f.OrderBy, listingOrderFields, "created_at DESC")).
		Preload("Host").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&listings).Error

	return listings, total, err
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var listing domain.Listing
	err := r.db.WithContext(ctx).
		Preload("Host").
		First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Listing{}, id).Error
}

// orderClause maps a "field" or "-field" request onto a whitelisted
// ORDER BY clause, falling back when the field is not recognised.
func orderClause(orderBy string, allowed map[string]bool, fallback string) string {
	if orderBy == "" {
		return fallback
	}
	dir := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		dir = "DESC"
		field = orderBy[1:]
	}
	if !allowed[field] {
		return fallback
	}
	return field + " " + dir
}
