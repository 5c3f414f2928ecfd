package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"travelnest/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repo_test_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Listing{}, &domain.Booking{}, &domain.Review{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedListing(t *testing.T, db *gorm.DB) (*domain.User, *domain.User, *domain.Listing) {
	t.Helper()

	host := &domain.User{Username: "host", Email: "host@example.com", PasswordHash: "x", Role: "user"}
	guest := &domain.User{Username: "guest", Email: "guest@example.com", PasswordHash: "x", Role: "user"}
	require.NoError(t, db.Create(host).Error)
	require.NoError(t, db.Create(guest).Error)

	listing := &domain.Listing{
		HostID:        host.ID,
		Title:         "Seaside Villa",
		Description:   "Villa by the sea",
		PropertyType:  domain.PropertyVilla,
		PricePerNight: 100,
		MaxGuests:     4,
		City:          "Valencia",
		Country:       "Spain",
		IsAvailable:   true,
	}
	require.NoError(t, db.Create(listing).Error)
	return host, guest, listing
}

func seedBooking(t *testing.T, db *gorm.DB, listingID, guestID int64, in, out time.Time, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	b := &domain.Booking{
		ListingID:      listingID,
		GuestID:        guestID,
		CheckIn:        in,
		CheckOut:       out,
		NumberOfGuests: 2,
		TotalPrice:     100 * out.Sub(in).Hours() / 24,
		Status:         status,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func TestBookingRepository_CountConflicts(t *testing.T) {
	db := testDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	_, guest, listing := seedListing(t, db)
	seedBooking(t, db, listing.ID, guest.ID, day(2024, 6, 1), day(2024, 6, 5), domain.BookingConfirmed)

	// overlapping range collides
	cnt, err := repo.CountConflicts(ctx, listing.ID, day(2024, 6, 4), day(2024, 6, 8), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	// back-to-back is fine: check-out day is free again
	cnt, err = repo.CountConflicts(ctx, listing.ID, day(2024, 6, 5), day(2024, 6, 8), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cnt)

	// fully before
	cnt, err = repo.CountConflicts(ctx, listing.ID, day(2024, 5, 20), day(2024, 6, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cnt)
}

func TestBookingRepository_CountConflicts_IgnoresNonBlocking(t *testing.T) {
	db := testDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	_, guest, listing := seedListing(t, db)
	seedBooking(t, db, listing.ID, guest.ID, day(2024, 6, 1), day(2024, 6, 5), domain.BookingCancelled)
	seedBooking(t, db, listing.ID, guest.ID, day(2024, 6, 1), day(2024, 6, 5), domain.BookingCompleted)

	cnt, err := repo.CountConflicts(ctx, listing.ID, day(2024, 6, 1), day(2024, 6, 5), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cnt)
}

func TestBookingRepository_CountConflicts_ExcludesOwnRow(t *testing.T) {
	db := testDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	_, guest, listing := seedListing(t, db)
	b := seedBooking(t, db, listing.ID, guest.ID, day(2024, 6, 1), day(2024, 6, 5), domain.BookingPending)

	// widening the same booking must not collide with itself
	cnt, err := repo.CountConflicts(ctx, listing.ID, day(2024, 6, 1), day(2024, 6, 7), b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cnt)
}

func TestBookingRepository_GetBlockingForListing_Ordering(t *testing.T) {
	db := testDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	_, guest, listing := seedListing(t, db)
	seedBooking(t, db, listing.ID, guest.ID, day(2024, 7, 10), day(2024, 7, 12), domain.BookingPending)
	seedBooking(t, db, listing.ID, guest.ID, day(2024, 6, 1), day(2024, 6, 5), domain.BookingConfirmed)
	seedBooking(t, db, listing.ID, guest.ID, day(2024, 8, 1), day(2024, 8, 3), domain.BookingCancelled)

	bookings, err := repo.GetBlockingForListing(ctx, listing.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "2024-06-01", bookings[0].CheckIn.Format(time.DateOnly))
	assert.Equal(t, "2024-07-10", bookings[1].CheckIn.Format(time.DateOnly))
}

func TestBookingRepository_GetUpcoming(t *testing.T) {
	db := testDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	host, guest, listing := seedListing(t, db)
	today := day(2024, 6, 10)

	seedBooking(t, db, listing.ID, guest.ID, day(2024, 5, 1), day(2024, 5, 5), domain.BookingConfirmed) // past
	later := seedBooking(t, db, listing.ID, guest.ID, day(2024, 7, 1), day(2024, 7, 5), domain.BookingPending)
	soon := seedBooking(t, db, listing.ID, guest.ID, day(2024, 6, 12), day(2024, 6, 15), domain.BookingConfirmed)
	seedBooking(t, db, listing.ID, guest.ID, day(2024, 6, 20), day(2024, 6, 22), domain.BookingCancelled)

	// as guest: soonest first, past and cancelled dropped
	bookings, err := repo.GetUpcoming(ctx, guest.ID, today)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, soon.ID, bookings[0].ID)
	assert.Equal(t, later.ID, bookings[1].ID)

	// the host sees bookings on their listing too
	bookings, err = repo.GetUpcoming(ctx, host.ID, today)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestBookingRepository_GetAll_Scoping(t *testing.T) {
	db := testDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	host, guest, listing := seedListing(t, db)
	stranger := &domain.User{Username: "stranger", Email: "stranger@example.com", PasswordHash: "x", Role: "user"}
	staff := &domain.User{Username: "staff", Email: "staff@example.com", PasswordHash: "x", Role: "staff"}
	require.NoError(t, db.Create(stranger).Error)
	require.NoError(t, db.Create(staff).Error)

	seedBooking(t, db, listing.ID, guest.ID, day(2024, 6, 1), day(2024, 6, 5), domain.BookingPending)

	bookings, total, err := repo.GetAll(ctx, BookingFilters{Limit: 20}, guest)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, bookings, 1)

	bookings, total, err = repo.GetAll(ctx, BookingFilters{Limit: 20}, host)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, bookings, 1)

	_, total, err = repo.GetAll(ctx, BookingFilters{Limit: 20}, stranger)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, total, err = repo.GetAll(ctx, BookingFilters{Limit: 20}, staff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
