package handlers

import (
	"errors"
	"net/http"

	"vijayfix/services/booking"
	"vijayfix/services/catalog"
	"vijayfix/services/chat"
	"vijayfix/services/payment"
	"vijayfix/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, booking.ErrMissingSelection),
		errors.Is(err, booking.ErrInvalidRating),
		errors.Is(err, booking.ErrUnknownPage),
		errors.Is(err, catalog.ErrUnknownService),
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, payment.ErrInvalidMethod),
		errors.Is(err, payment.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrNoActiveBooking),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, catalog.ErrTechnicianNotFound),
		errors.Is(err, payment.ErrCheckoutNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrActiveBookingExists),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrNotCompleted),
		errors.Is(err, booking.ErrAlreadyRated),
		errors.Is(err, payment.ErrCheckoutStarted),
		errors.Is(err, payment.ErrCheckoutExists),
		errors.Is(err, payment.ErrCheckoutFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		utils.JSONError(c, status, message, "An unexpected error occurred.")
		return
	}
	utils.JSONError(c, status, message, err.Error())
}

func respondBadRequest(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	utils.JSONError(c, http.StatusBadRequest, message, details)
}
