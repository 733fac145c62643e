package handlers

import (
	"context"
	"net/http"

	"vijayfix/middleware"
	"vijayfix/models"
	"vijayfix/services/booking"
	"vijayfix/services/catalog"
	"vijayfix/services/tracking"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// LifecycleController is the booking controller surface used over HTTP.
type LifecycleController interface {
	CreateBooking(ctx context.Context, service models.ServiceType, technician *models.Technician, location string) (models.Booking, error)
	UpdateJobStatus(ctx context.Context, status models.JobStatus) (models.Booking, error)
	ActiveBooking() (models.Booking, bool)
	Bookings() []models.Booking
	History() (active, past []models.Booking)
	Bill() (models.Bill, error)
	RateBooking(ctx context.Context, bookingID string, stars int, comment string) (models.Booking, error)
	Page() models.Page
	Navigate(page models.Page) error
}

// PositionSource exposes the technician marker while a job is ON_WAY.
type PositionSource interface {
	Snapshot() tracking.Snapshot
}

// BookingHandler drives the booking lifecycle for both roles.
type BookingHandler struct {
	Controller LifecycleController
	Directory  catalog.Directory
	Tracker    PositionSource
	validate   *validator.Validate
}

func NewBookingHandler(ctrl LifecycleController, dir catalog.Directory, tracker PositionSource) *BookingHandler {
	return &BookingHandler{
		Controller: ctrl,
		Directory:  dir,
		Tracker:    tracker,
		validate:   validator.New(),
	}
}

// CreateBookingRequest is the body of POST /api/customer/bookings.
type CreateBookingRequest struct {
	ServiceType  string `json:"serviceType"`
	TechnicianID string `json:"technicianId"`
	Location     string `json:"location" validate:"max=200"`
}

// UpdateJobStatusRequest is the body of PUT /api/technician/job/status.
type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACCEPTED ON_WAY IN_PROGRESS PAYMENT_PENDING"`
}

// RateBookingRequest is the body of POST /api/customer/bookings/:id/rating.
type RateBookingRequest struct {
	Stars   int    `json:"stars" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=500"`
}

// NavigateRequest is the body of PUT /api/session/page.
type NavigateRequest struct {
	Page string `json:"page" validate:"required"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	logger := getLogger(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid booking request", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondBadRequest(c, "Invalid booking request", err)
		return
	}

	// An empty selection is passed through so the controller reports it.
	var service models.ServiceType
	if req.ServiceType != "" {
		st, err := catalog.ParseServiceType(req.ServiceType)
		if err != nil {
			respondError(c, "Unknown service", err)
			return
		}
		service = st
	}
	var technician *models.Technician
	if req.TechnicianID != "" {
		tech, err := h.Directory.Technician(req.TechnicianID)
		if err != nil {
			respondError(c, "Technician not found", err)
			return
		}
		technician = &tech
	}

	b, err := h.Controller.CreateBooking(c.Request.Context(), service, technician, req.Location)
	if err != nil {
		respondError(c, "Booking failed", err)
		return
	}
	logger.Info("Booking request accepted", zap.String("bookingId", b.ID))
	c.JSON(http.StatusCreated, b)
}

// GetBookings returns the customer's bookings split into active and past.
func (h *BookingHandler) GetBookings(c *gin.Context) {
	active, past := h.Controller.History()
	c.JSON(http.StatusOK, gin.H{"active": active, "past": past})
}

func (h *BookingHandler) GetActiveBooking(c *gin.Context) {
	b, ok := h.Controller.ActiveBooking()
	if !ok {
		respondError(c, "No active booking", booking.ErrNoActiveBooking)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) GetBill(c *gin.Context) {
	bill, err := h.Controller.Bill()
	if err != nil {
		respondError(c, "No bill available", err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *BookingHandler) RateBooking(c *gin.Context) {
	var req RateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid rating", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondBadRequest(c, "Invalid rating", err)
		return
	}

	b, err := h.Controller.RateBooking(c.Request.Context(), c.Param("id"), req.Stars, req.Comment)
	if err != nil {
		respondError(c, "Rating failed", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetTracking returns the animated technician position.
func (h *BookingHandler) GetTracking(c *gin.Context) {
	b, ok := h.Controller.ActiveBooking()
	if !ok {
		respondError(c, "No active booking", booking.ErrNoActiveBooking)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookingId": b.ID,
		"jobStatus": b.JobStatus,
		"tracking":  h.Tracker.Snapshot(),
	})
}

// GetTechnicianJob returns the job the technician is working on.
func (h *BookingHandler) GetTechnicianJob(c *gin.Context) {
	h.GetActiveBooking(c)
}

// UpdateJobStatus accepts the technician-driven statuses. COMPLETED is only
// reachable through payment.
func (h *BookingHandler) UpdateJobStatus(c *gin.Context) {
	logger := getLogger(c)

	var req UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid status update", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondBadRequest(c, "Invalid status update", err)
		return
	}

	b, err := h.Controller.UpdateJobStatus(c.Request.Context(), models.JobStatus(req.Status))
	if err != nil {
		respondError(c, "Status update failed", err)
		return
	}
	logger.Info("Technician updated job", zap.String("bookingId", b.ID), zap.String("jobStatus", string(b.JobStatus)))
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) GetPage(c *gin.Context) {
	role, _ := middleware.RoleFrom(c)
	c.JSON(http.StatusOK, gin.H{"page": h.Controller.Page(), "role": role})
}

func (h *BookingHandler) SetPage(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid page", err)
		return
	}
	if err := h.Controller.Navigate(models.Page(req.Page)); err != nil {
		respondError(c, "Invalid page", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": h.Controller.Page()})
}
