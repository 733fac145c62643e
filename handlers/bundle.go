// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Catalog endpoints
	GetServices    gin.HandlerFunc
	GetTechnicians gin.HandlerFunc
	GetTechnician  gin.HandlerFunc

	// Diagnosis endpoints
	Diagnose gin.HandlerFunc

	// Customer booking endpoints
	CreateBooking    gin.HandlerFunc
	GetBookings      gin.HandlerFunc
	GetActiveBooking gin.HandlerFunc
	GetBill          gin.HandlerFunc
	RateBooking      gin.HandlerFunc
	GetTracking      gin.HandlerFunc

	// Payment endpoints
	StartPayment  gin.HandlerFunc
	GetCheckout   gin.HandlerFunc
	CloseCheckout gin.HandlerFunc

	// Technician endpoints
	GetTechnicianJob gin.HandlerFunc
	UpdateJobStatus  gin.HandlerFunc

	// Chat endpoints
	GetMessages gin.HandlerFunc
	SendMessage gin.HandlerFunc
	GetUnread   gin.HandlerFunc
	MarkRead    gin.HandlerFunc

	// Session endpoints
	GetFeed gin.HandlerFunc
	GetPage gin.HandlerFunc
	SetPage gin.HandlerFunc

	// Admin endpoints
	AdminHandler *AdminHandler

	// Health
	Health gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the individual handlers.
func NewHandlerBundle(
	catalogH *CatalogHandler,
	diagnosisH *DiagnosisHandler,
	bookingH *BookingHandler,
	paymentH *PaymentHandler,
	chatH *ChatHandler,
	feedH *FeedHandler,
	adminH *AdminHandler,
) *HandlerBundle {
	return &HandlerBundle{
		GetServices:    catalogH.GetServices,
		GetTechnicians: catalogH.GetTechnicians,
		GetTechnician:  catalogH.GetTechnician,

		Diagnose: diagnosisH.Diagnose,

		CreateBooking:    bookingH.CreateBooking,
		GetBookings:      bookingH.GetBookings,
		GetActiveBooking: bookingH.GetActiveBooking,
		GetBill:          bookingH.GetBill,
		RateBooking:      bookingH.RateBooking,
		GetTracking:      bookingH.GetTracking,

		StartPayment:  paymentH.StartPayment,
		GetCheckout:   paymentH.GetCheckout,
		CloseCheckout: paymentH.CloseCheckout,

		GetTechnicianJob: bookingH.GetTechnicianJob,
		UpdateJobStatus:  bookingH.UpdateJobStatus,

		GetMessages: chatH.GetMessages,
		SendMessage: chatH.SendMessage,
		GetUnread:   chatH.GetUnread,
		MarkRead:    chatH.MarkRead,

		GetFeed: feedH.GetFeed,
		GetPage: bookingH.GetPage,
		SetPage: bookingH.SetPage,

		AdminHandler: adminH,

		Health: Health,
	}
}
