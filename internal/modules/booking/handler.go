package booking

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.GetBookings)
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/upcoming", h.GetUpcoming)
	rg.GET("/bookings/:id", h.GetBookingByID)
	rg.PUT("/bookings/:id", h.UpdateBooking)
	rg.PATCH("/bookings/:id", h.UpdateBooking)
	rg.DELETE("/bookings/:id", h.DeleteBooking)
	rg.POST("/bookings/:id/cancel", h.CancelBooking)
	rg.POST("/bookings/:id/confirm", h.ConfirmBooking)
}

// GetBookings handles GET /bookings, scoped to the caller unless staff.
func (h *Handler) GetBookings(c *gin.Context) {
	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	var f repository.BookingFilters
	f.Status = c.Query("status")
	f.OrderBy = c.Query("ordering")

	if v := c.Query("listing"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.ListingID = id
		}
	}
	if v := c.Query("guest"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.GuestID = id
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

	bookings, total, err := h.service.List(c.Request.Context(), actor, f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch bookings")
		return
	}

	totalPages := (int(total) + f.Limit - 1) / f.Limit
	currentPage := (f.Offset / f.Limit) + 1

	response.Success(c, http.StatusOK, gin.H{
		"bookings": bookings,
		"pagination": gin.H{
			"page":        currentPage,
			"limit":       f.Limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

// CreateBooking handles POST /bookings; the caller becomes the guest.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	b, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) GetBookingByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	b, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) DeleteBooking(c *gin.Context) {
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

// CancelBooking handles POST /bookings/:id/cancel
func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// ConfirmBooking handles POST /bookings/:id/confirm
func (h *Handler) ConfirmBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), actor, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// GetUpcoming handles GET /bookings/upcoming
func (h *Handler) GetUpcoming(c *gin.Context) {
	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	bookings, err := h.service.Upcoming(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
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
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	var statusErr *StatusError
	var guestErr *GuestLimitError

	switch {
	case errors.As(err, &statusErr):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", statusErr.Error())
	case errors.As(err, &guestErr):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", guestErr.Error())
	case errors.Is(err, ErrDateOrder),
		errors.Is(err, ErrDateConflict),
		errors.Is(err, ErrBadDateFormat),
		errors.Is(err, ErrListingUnavailable):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrHostOnlyConfirm),
		errors.Is(err, ErrCancelForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this booking")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrListingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
