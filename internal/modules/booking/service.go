package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"travelnest/internal/domain"
	"travelnest/internal/repository"
)

type Service struct {
	bookings BookingRepository
	listings ListingRepository
	reviews  ReviewRepository
}

func NewService(bookings BookingRepository, listings ListingRepository, reviews ReviewRepository) *Service {
	return &Service{
		bookings: bookings,
		listings: listings,
		reviews:  reviews,
	}
}

func (s *Service) Create(ctx context.Context, actor *domain.User, req CreateBookingRequest) (*BookingResponse, error) {
	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	listing, err := s.listings.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if !listing.IsAvailable {
		return nil, ErrListingUnavailable
	}

	if err := s.validateStay(ctx, listing, checkIn, checkOut, req.NumberOfGuests, 0); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		ListingID:       listing.ID,
		GuestID:         actor.ID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		NumberOfGuests:  req.NumberOfGuests,
		Status:          domain.BookingPending,
		SpecialRequests: req.SpecialRequests,
	}
	b.TotalPrice = stayPrice(b, listing.PricePerNight)

	if err := s.bookings.Create(ctx, b); err != nil {
		// The Postgres exclusion constraint closes the race between the
		// conflict scan above and the insert.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505") {
			return nil, ErrDateConflict
		}
		return nil, err
	}

	b.Listing = listing
	b.Guest = actor
	return s.respond(ctx, b)
}

func (s *Service) List(ctx context.Context, actor *domain.User, f repository.BookingFilters) ([]BookingResponse, int64, error) {
	bookings, total, err := s.bookings.GetAll(ctx, f, actor)
	if err != nil {
		return nil, 0, err
	}

	out, err := s.respondMany(ctx, bookings)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Service) Get(ctx context.Context, actor *domain.User, id int64) (*BookingResponse, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanViewBooking(actor, b) {
		return nil, ErrForbidden
	}
	return s.respond(ctx, b)
}

func (s *Service) Update(ctx context.Context, actor *domain.User, id int64, req UpdateBookingRequest) (*BookingResponse, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanModifyBooking(actor, b) {
		return nil, ErrForbidden
	}

	checkIn, checkOut := b.CheckIn, b.CheckOut
	if req.CheckIn != nil {
		if checkIn, err = parseDate(*req.CheckIn); err != nil {
			return nil, ErrBadDateFormat
		}
	}
	if req.CheckOut != nil {
		if checkOut, err = parseDate(*req.CheckOut); err != nil {
			return nil, ErrBadDateFormat
		}
	}
	guests := b.NumberOfGuests
	if req.NumberOfGuests != nil {
		guests = *req.NumberOfGuests
	}

	// The booking's own row is excluded from the conflict scan.
	if err := s.validateStay(ctx, b.Listing, checkIn, checkOut, guests, b.ID); err != nil {
		return nil, err
	}

	b.CheckIn = checkIn
	b.CheckOut = checkOut
	b.NumberOfGuests = guests
	b.TotalPrice = stayPrice(b, b.Listing.PricePerNight)
	if req.SpecialRequests != nil {
		b.SpecialRequests = *req.SpecialRequests
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505") {
			return nil, ErrDateConflict
		}
		return nil, err
	}
	return s.respond(ctx, b)
}

func (s *Service) Delete(ctx context.Context, actor *domain.User, id int64) error {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if !domain.CanModifyBooking(actor, b) {
		return ErrForbidden
	}
	return s.bookings.Delete(ctx, id)
}

// Cancel moves a pending or confirmed booking to cancelled. Cancelled
// and completed are terminal.
func (s *Service) Cancel(ctx context.Context, actor *domain.User, id int64) (*BookingResponse, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !b.Status.BlocksDates() {
		return nil, &StatusError{Current: b.Status}
	}
	if !domain.CanModifyBooking(actor, b) {
		return nil, ErrCancelForbidden
	}

	if err := s.bookings.UpdateStatus(ctx, id, domain.BookingCancelled); err != nil {
		return nil, err
	}
	b.Status = domain.BookingCancelled
	return s.respond(ctx, b)
}

// Confirm moves a pending booking to confirmed; host only.
func (s *Service) Confirm(ctx context.Context, actor *domain.User, id int64) (*BookingResponse, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Status != domain.BookingPending {
		return nil, &StatusError{Current: b.Status}
	}
	if !domain.IsListingHost(actor, b) {
		return nil, ErrHostOnlyConfirm
	}

	if err := s.bookings.UpdateStatus(ctx, id, domain.BookingConfirmed); err != nil {
		return nil, err
	}
	b.Status = domain.BookingConfirmed
	return s.respond(ctx, b)
}

// Upcoming returns the caller's not-yet-finished pending/confirmed
// bookings, as guest or host, soonest first.
func (s *Service) Upcoming(ctx context.Context, actor *domain.User) ([]BookingResponse, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	bookings, err := s.bookings.GetUpcoming(ctx, actor.ID, today)
	if err != nil {
		return nil, err
	}
	return s.respondMany(ctx, bookings)
}

// validateStay enforces the booking contract: dates ordered, capacity
// respected, and no overlap with another blocking booking.
func (s *Service) validateStay(
	ctx context.Context,
	listing *domain.Listing,
	checkIn, checkOut time.Time,
	guests int,
	excludeID int64,
) error {
	if !checkIn.Before(checkOut) {
		return ErrDateOrder
	}
	if guests > listing.MaxGuests {
		return &GuestLimitError{Max: listing.MaxGuests}
	}

	conflicts, err := s.bookings.CountConflicts(ctx, listing.ID, checkIn, checkOut, excludeID)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return ErrDateConflict
	}
	return nil
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) respond(ctx context.Context, b *domain.Booking) (*BookingResponse, error) {
	var avg *float64
	if b.Listing != nil {
		rating, err := s.reviews.AverageRating(ctx, b.ListingID)
		if err != nil {
			return nil, err
		}
		avg = rating
	}
	resp := toBookingResponse(b, avg)
	return &resp, nil
}

func (s *Service) respondMany(ctx context.Context, bookings []domain.Booking) ([]BookingResponse, error) {
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ListingID)
	}
	ratings, err := s.reviews.AverageRatings(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		var avg *float64
		if v, ok := ratings[bookings[i].ListingID]; ok {
			avg = &v
		}
		out = append(out, toBookingResponse(&bookings[i], avg))
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := parseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadDateFormat
	}
	out, err := parseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadDateFormat
	}
	return in, out, nil
}

// stayPrice derives the total: nights times the nightly rate. Never
// taken from the caller.
func stayPrice(b *domain.Booking, pricePerNight float64) float64 {
	return math.Round(float64(b.Nights())*pricePerNight*100) / 100
}
