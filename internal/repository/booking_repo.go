package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"travelnest/internal/domain"
)

// BookingFilters enumerates the supported booking query options.
type BookingFilters struct {
	Status    string
	ListingID int64
	GuestID   int64
	OrderBy   string
	Limit     int
	Offset    int
}

var bookingOrderFields = map[string]bool{
	"check_in":    true,
	"check_out":   true,
	"created_at":  true,
	"total_price": true,
}

var blockingStatuses = []string{
	string(domain.BookingPending),
	string(domain.BookingConfirmed),
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Omit("Listing", "Guest").Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Listing.Host").
		Preload("Guest").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Omit("Listing", "Guest").Save(b).Error
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Booking{}, id).Error
}

// GetAll returns bookings visible to the given user: staff see all,
// everyone else only bookings where they are the guest or host the listing.
func (r *BookingRepository) GetAll(
	ctx context.Context,
	f BookingFilters,
	visibleTo *domain.User,
) ([]domain.Booking, int64, error) {

	var bookings []domain.Booking
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Booking{})

	if !visibleTo.IsStaff() {
		q = q.Joins("JOIN listings ON listings.id = bookings.listing_id").
			Where("bookings.guest_id = ? OR listings.host_id = ?", visibleTo.ID, visibleTo.ID)
	}

	if f.Status != "" {
		q = q.Where("bookings.status = ?", f.Status)
	}
	if f.ListingID > 0 {
		q = q.Where("bookings.listing_id = ?", f.ListingID)
	}
	if f.GuestID > 0 {
		q = q.Where("bookings.guest_id = ?", f.GuestID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.
		Order("bookings." + orderClause(f.OrderBy, bookingOrderFields, "created_at DESC")).
		Preload("Listing").
		Preload("Listing.Host").
		Preload("Guest").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&bookings).Error

	return bookings, total, err
}

// CountConflicts scans for blocking bookings whose half-open date range
// overlaps [checkIn, checkOut). excludeID drops the booking's own row
// from the scan on updates.
func (r *BookingRepository) CountConflicts(
	ctx context.Context,
	listingID int64,
	checkIn, checkOut time.Time,
	excludeID int64,
) (int64, error) {

	var cnt int64
	q := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("listing_id = ?", listingID).
		Where("status IN ?", blockingStatuses).
		Where("check_out > ? AND check_in < ?", checkIn, checkOut)

	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	if err := q.Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

// GetBlockingForListing returns pending/confirmed bookings of a listing
// ordered by check-in, the source rows for date enumeration.
func (r *BookingRepository) GetBlockingForListing(ctx context.Context, listingID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Where("status IN ?", blockingStatuses).
		Order("check_in ASC").
		Find(&bookings).Error
	return bookings, err
}

// GetForListing returns a listing's bookings, restricted to the caller's
// own rows unless the caller hosts the listing or is staff.
func (r *BookingRepository) GetForListing(
	ctx context.Context,
	listingID int64,
	visibleTo *domain.User,
	hostsListing bool,
) ([]domain.Booking, error) {

	q := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID)

	if !hostsListing && !visibleTo.IsStaff() {
		q = q.Where("guest_id = ?", visibleTo.ID)
	}

	var bookings []domain.Booking
	err := q.
		Preload("Guest").
		Preload("Listing").
		Preload("Listing.Host").
		Order("check_in ASC").
		Find(&bookings).Error
	return bookings, err
}

// GetUpcoming returns the user's bookings (as guest or host) that have
// not finished yet and still block dates, soonest check-in first.
func (r *BookingRepository) GetUpcoming(ctx context.Context, userID int64, today time.Time) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Joins("JOIN listings ON listings.id = bookings.listing_id").
		Where("bookings.guest_id = ? OR listings.host_id = ?", userID, userID).
		Where("bookings.check_out >= ?", today).
		Where("bookings.status IN ?", blockingStatuses).
		Order("bookings.check_in ASC").
		Preload("Listing").
		Preload("Listing.Host").
		Preload("Guest").
		Find(&bookings).Error
	return bookings, err
}
