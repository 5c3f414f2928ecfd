package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"travelnest/internal/domain"
	"travelnest/internal/repository"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) GetAll(ctx context.Context, f repository.BookingFilters, visibleTo *domain.User) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, f, visibleTo)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) CountConflicts(ctx context.Context, listingID int64, checkIn, checkOut time.Time, excludeID int64) (int64, error) {
	args := m.Called(ctx, listingID, checkIn, checkOut, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) GetUpcoming(ctx context.Context, userID int64, today time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) AverageRating(ctx context.Context, listingID int64) (*float64, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

func (m *MockReviewRepository) AverageRatings(ctx context.Context, listingIDs []int64) (map[int64]float64, error) {
	args := m.Called(ctx, listingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]float64), args.Error(1)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testListing() *domain.Listing {
	return &domain.Listing{
		ID:            10,
		HostID:        1,
		Title:         "Downtown Loft",
		PricePerNight: 100,
		MaxGuests:     4,
		IsAvailable:   true,
		Host:          &domain.User{ID: 1, Username: "host"},
	}
}

func newTestService(bookings *MockBookingRepository, listings *MockListingRepository, reviews *MockReviewRepository) *Service {
	return NewService(bookings, listings, reviews)
}

func TestService_Create_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)
	mockReviews := new(MockReviewRepository)

	mockListings.On("GetByID", mock.Anything, int64(10)).Return(testListing(), nil)
	mockBookings.On("CountConflicts", mock.Anything, int64(10),
		date(2024, 6, 5), date(2024, 6, 8), int64(0)).Return(int64(0), nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockReviews.On("AverageRating", mock.Anything, int64(10)).Return(nil, nil)

	service := newTestService(mockBookings, mockListings, mockReviews)

	guest := &domain.User{ID: 2, Username: "guest"}
	req := CreateBookingRequest{
		ListingID:      10,
		CheckIn:        "2024-06-05",
		CheckOut:       "2024-06-08",
		NumberOfGuests: 2,
	}

	b, err := service.Create(context.Background(), guest, req)

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, 300.0, b.TotalPrice) // 3 nights x 100
	assert.Equal(t, string(domain.BookingPending), b.Status)
	mockBookings.AssertExpectations(t)
}

func TestService_Create_RejectsOverlap(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)
	mockReviews := new(MockReviewRepository)

	mockListings.On("GetByID", mock.Anything, int64(10)).Return(testListing(), nil)
	// existing confirmed booking [2024-06-01, 2024-06-05) overlaps [2024-06-04, 2024-06-08)
	mockBookings.On("CountConflicts", mock.Anything, int64(10),
		date(2024, 6, 4), date(2024, 6, 8), int64(0)).Return(int64(1), nil)

	service := newTestService(mockBookings, mockListings, mockReviews)

	_, err := service.Create(context.Background(), &domain.User{ID: 2}, CreateBookingRequest{
		ListingID:      10,
		CheckIn:        "2024-06-04",
		CheckOut:       "2024-06-08",
		NumberOfGuests: 2,
	})

	assert.ErrorIs(t, err, ErrDateConflict)
	mockBookings.AssertNotCalled(t, "Create")
}

func TestService_Create_RejectsBadDateOrder(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)
	mockReviews := new(MockReviewRepository)

	mockListings.On("GetByID", mock.Anything, int64(10)).Return(testListing(), nil)

	service := newTestService(mockBookings, mockListings, mockReviews)

	_, err := service.Create(context.Background(), &domain.User{ID: 2}, CreateBookingRequest{
		ListingID:      10,
		CheckIn:        "2024-06-08",
		CheckOut:       "2024-06-08",
		NumberOfGuests: 2,
	})

	assert.ErrorIs(t, err, ErrDateOrder)
}

func TestService_Create_RejectsGuestOverflow(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)
	mockReviews := new(MockReviewRepository)

	mockListings.On("GetByID", mock.Anything, int64(10)).Return(testListing(), nil)

	service := newTestService(mockBookings, mockListings, mockReviews)

	_, err := service.Create(context.Background(), &domain.User{ID: 2}, CreateBookingRequest{
		ListingID:      10,
		CheckIn:        "2024-06-05",
		CheckOut:       "2024-06-08",
		NumberOfGuests: 5,
	})

	var guestErr *GuestLimitError
	assert.ErrorAs(t, err, &guestErr)
	assert.Equal(t, "Number of guests cannot exceed 4.", err.Error())
}

func TestService_Create_RejectsUnavailableListing(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)
	mockReviews := new(MockReviewRepository)

	l := testListing()
	l.IsAvailable = false
	mockListings.On("GetByID", mock.Anything, int64(10)).Return(l, nil)

	service := newTestService(mockBookings, mockListings, mockReviews)

	_, err := service.Create(context.Background(), &domain.User{ID: 2}, CreateBookingRequest{
		ListingID:      10,
		CheckIn:        "2024-06-05",
		CheckOut:       "2024-06-08",
		NumberOfGuests: 2,
	})

	assert.ErrorIs(t, err, ErrListingUnavailable)
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:             5,
		ListingID:      10,
		GuestID:        2,
		CheckIn:        date(2024, 6, 5),
		CheckOut:       date(2024, 6, 8),
		NumberOfGuests: 2,
		TotalPrice:     300,
		Status:         domain.BookingPending,
		Listing:        testListing(),
		Guest:          &domain.User{ID: 2, Username: "guest"},
	}
}

func TestService_Confirm_HostOnly(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)
	mockReviews := new(MockReviewRepository)

	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(pendingBooking(), nil)

	service := newTestService(mockBookings, mockListings, mockReviews)

	// the guest may not confirm
	_, err := service.Confirm(context.Background(), &domain.User{ID: 2}, 5)
	assert.ErrorIs(t, err, ErrHostOnlyConfirm)
	assert.Equal(t, "Only the host can confirm bookings", err.Error())
	mockBookings.AssertNotCalled(t, "UpdateStatus")
}

func TestService_Confirm_Success_ThenRejectsSecondCall(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)
	mockReviews := new(MockReviewRepository)

	host := &domain.User{ID: 1, Username: "host"}

	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(pendingBooking(), nil).Once()
	mockBookings.On("UpdateStatus", mock.Anything, int64(5), domain.BookingConfirmed).Return(nil).Once()
	mockReviews.On("AverageRating", mock.Anything, int64(10)).Return(nil, nil)

	service := newTestService(mockBookings, mockListings, mockReviews)

	b, err := service.Confirm(context.Background(), host, 5)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingConfirmed), b.Status)

	confirmed := pendingBooking()
	confirmed.Status = domain.BookingConfirmed
	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(confirmed, nil).Once()

	_, err = service.Confirm(context.Background(), host, 5)
	var statusErr *StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Booking is already confirmed", err.Error())
}

func TestService_Cancel_ByGuest(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)
	mockReviews := new(MockReviewRepository)

	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(pendingBooking(), nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(5), domain.BookingCancelled).Return(nil)
	mockReviews.On("AverageRating", mock.Anything, int64(10)).Return(nil, nil)

	service := newTestService(mockBookings, mockListings, mockReviews)

	b, err := service.Cancel(context.Background(), &domain.User{ID: 2}, 5)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingCancelled), b.Status)
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)
	mockReviews := new(MockReviewRepository)

	cancelled := pendingBooking()
	cancelled.Status = domain.BookingCancelled
	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(cancelled, nil)

	service := newTestService(mockBookings, mockListings, mockReviews)

	_, err := service.Cancel(context.Background(), &domain.User{ID: 2}, 5)
	var statusErr *StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Booking is already cancelled", err.Error())
	mockBookings.AssertNotCalled(t, "UpdateStatus")
}

func TestService_Cancel_StrangerForbidden(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)
	mockReviews := new(MockReviewRepository)

	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(pendingBooking(), nil)

	service := newTestService(mockBookings, mockListings, mockReviews)

	_, err := service.Cancel(context.Background(), &domain.User{ID: 77}, 5)
	assert.ErrorIs(t, err, ErrCancelForbidden)
	mockBookings.AssertNotCalled(t, "UpdateStatus")
}

func TestService_Update_ExcludesOwnRowFromConflictScan(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)
	mockReviews := new(MockReviewRepository)

	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(pendingBooking(), nil)
	mockBookings.On("CountConflicts", mock.Anything, int64(10),
		date(2024, 6, 6), date(2024, 6, 10), int64(5)).Return(int64(0), nil)
	mockBookings.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockReviews.On("AverageRating", mock.Anything, int64(10)).Return(nil, nil)

	service := newTestService(mockBookings, mockListings, mockReviews)

	in := "2024-06-06"
	out := "2024-06-10"
	b, err := service.Update(context.Background(), &domain.User{ID: 2}, 5, UpdateBookingRequest{
		CheckIn:  &in,
		CheckOut: &out,
	})

	assert.NoError(t, err)
	assert.Equal(t, 400.0, b.TotalPrice) // price recomputed: 4 nights x 100
	mockBookings.AssertExpectations(t)
}
