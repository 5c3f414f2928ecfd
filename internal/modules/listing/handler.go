package listing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelnest/internal/domain"
	"travelnest/internal/pkg/response"
	"travelnest/internal/repository"
)

type Handler struct {
	service  *Service
	userRepo *repository.UserRepository
}

func NewHandler(service *Service, userRepo *repository.UserRepository) *Handler {
	return &Handler{
		service:  service,
		userRepo: userRepo,
	}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/listings", h.GetListings)
	rg.GET("/listings/:id", h.GetListingByID)
	rg.GET("/listings/:id/available_dates", h.GetAvailableDates)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/listings", h.CreateListing)
	rg.PUT("/listings/:id", h.UpdateListing)
	rg.PATCH("/listings/:id", h.UpdateListing)
	rg.DELETE("/listings/:id", h.DeleteListing)
	rg.GET("/listings/:id/bookings", h.GetListingBookings)
}

// GetListings handles GET /listings with filters
func (h *Handler) GetListings(c *gin.Context) {
	var f repository.ListingFilters

	f.PropertyType = c.Query("property_type")
	f.City = c.Query("city")
	f.Country = c.Query("country")
	f.Search = c.Query("search")
	f.OrderBy = c.Query("ordering")

	if v := c.Query("is_available"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.IsAvailable = &b
		}
	}
	if v := c.Query("min_price"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = val
		}
	}
	if v := c.Query("max_price"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = val
		}
	}
	if v := c.Query("min_guests"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			f.MinGuests = val
		}
	}

	f.Limit = 20
	if v := c.Query("limit"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 && val <= 100 {
			f.Limit = val
		}
	}
	f.Offset = 0
	if v := c.Query("page"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			f.Offset = (val - 1) * f.Limit
		}
	}

	listings, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch listings")
		return
	}

	totalPages := (int(total) + f.Limit - 1) / f.Limit
	currentPage := (f.Offset / f.Limit) + 1

	response.Success(c, http.StatusOK, gin.H{
		"listings": listings,
		"pagination": gin.H{
			"page":        currentPage,
			"limit":       f.Limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

// GetListingByID handles GET /listings/:id
func (h *Handler) GetListingByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	l, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"listing": l})
}

// CreateListing handles POST /listings; the caller becomes the host.
func (h *Handler) CreateListing(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	l, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"listing": l})
}

func (h *Handler) UpdateListing(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	l, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"listing": l})
}

func (h *Handler) DeleteListing(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetListingBookings handles GET /listings/:id/bookings
func (h *Handler) GetListingBookings(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	bookings, err := h.service.BookingsFor(c.Request.Context(), actor, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

// GetAvailableDates handles GET /listings/:id/available_dates
func (h *Handler) GetAvailableDates(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	dates, err := h.service.BookedDates(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"listing_id":   id,
		"booked_dates": dates,
		"message":      "These dates are already booked",
	})
}

func (h *Handler) currentUser(c *gin.Context) (*domain.User, bool) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return nil, false
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
		return nil, false
	}
	return user, true
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this listing")
	case errors.Is(err, ErrInvalidPropertyType):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property type")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid listing fields")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
