package listing

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"travelnest/internal/domain"
	"travelnest/internal/pkg/validator"
	"travelnest/internal/repository"
)

type Service struct {
	listings ListingRepository
	bookings BookingRepository
	reviews  ReviewRepository
}

func NewService(listings ListingRepository, bookings BookingRepository, reviews ReviewRepository) *Service {
	return &Service{
		listings: listings,
		bookings: bookings,
		reviews:  reviews,
	}
}

func (s *Service) List(ctx context.Context, f repository.ListingFilters) ([]ListingResponse, int64, error) {
	listings, total, err := s.listings.GetAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}
	ratings, err := s.reviews.AverageRatings(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		var avg *float64
		if v, ok := ratings[listings[i].ID]; ok {
			avg = &v
		}
		out = append(out, toListingResponse(&listings[i], avg))
	}
	return out, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*ListingResponse, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	avg, err := s.reviews.AverageRating(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	resp := toListingResponse(l, avg)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, actor *domain.User, req CreateListingRequest) (*ListingResponse, error) {
	pt, err := domain.ParsePropertyType(req.PropertyType)
	if err != nil {
		return nil, ErrInvalidPropertyType
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	l := &domain.Listing{
		HostID:        actor.ID,
		Title:         req.Title,
		Description:   req.Description,
		PropertyType:  pt,
		PricePerNight: req.PricePerNight,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		MaxGuests:     req.MaxGuests,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		Amenities:     req.Amenities,
		IsAvailable:   available,
	}

	if fieldErrs := validator.Validate(l); fieldErrs != nil {
		return nil, ErrValidation
	}

	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}

	l.Host = actor
	resp := toListingResponse(l, nil)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, actor *domain.User, id int64, req UpdateListingRequest) (*ListingResponse, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !domain.CanModifyListing(actor, l) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.PropertyType != nil {
		pt, err := domain.ParsePropertyType(*req.PropertyType)
		if err != nil {
			return nil, ErrInvalidPropertyType
		}
		l.PropertyType = pt
	}
	if req.PricePerNight != nil && *req.PricePerNight >= 0 {
		l.PricePerNight = *req.PricePerNight
	}
	if req.Bedrooms != nil && *req.Bedrooms >= 0 {
		l.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil && *req.Bathrooms >= 0 {
		l.Bathrooms = *req.Bathrooms
	}
	if req.MaxGuests != nil && *req.MaxGuests > 0 {
		l.MaxGuests = *req.MaxGuests
	}
	if req.Address != nil {
		l.Address = *req.Address
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.Country != nil {
		l.Country = *req.Country
	}
	if req.Amenities != nil {
		l.Amenities = *req.Amenities
	}
	if req.IsAvailable != nil {
		l.IsAvailable = *req.IsAvailable
	}

	if fieldErrs := validator.Validate(l); fieldErrs != nil {
		return nil, ErrValidation
	}

	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}

	avg, err := s.reviews.AverageRating(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	resp := toListingResponse(l, avg)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, actor *domain.User, id int64) error {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !domain.CanModifyListing(actor, l) {
		return ErrForbidden
	}

	return s.listings.Delete(ctx, id)
}

// BookingsFor returns a listing's bookings: the host (and staff) see all
// of them, other callers only their own.
func (s *Service) BookingsFor(ctx context.Context, actor *domain.User, listingID int64) ([]domain.Booking, error) {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	hostsListing := domain.CanModifyListing(actor, l)
	return s.bookings.GetForListing(ctx, listingID, actor, hostsListing)
}

// BookedDates enumerates every calendar date occupied by a pending or
// confirmed booking, check-in inclusive, check-out exclusive.
func (s *Service) BookedDates(ctx context.Context, listingID int64) ([]string, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	bookings, err := s.bookings.GetBlockingForListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0)
	for _, b := range bookings {
		for d := b.CheckIn; d.Before(b.CheckOut); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d.Format(time.DateOnly))
		}
	}
	return dates, nil
}
