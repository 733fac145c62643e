package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the customer-facing lifecycle bucket of a booking.
type BookingStatus string

const (
	BookingPending        BookingStatus = "pending"
	BookingConfirmed      BookingStatus = "confirmed"
	BookingInProgress     BookingStatus = "in-progress"
	BookingPaymentPending BookingStatus = "payment-pending"
	BookingCompleted      BookingStatus = "completed"
	BookingCancelled      BookingStatus = "cancelled"
)

// IsActive reports whether the status belongs to the active set.
func (s BookingStatus) IsActive() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingPaymentPending:
		return true
	}
	return false
}

// JobStatus is the technician-side progress marker.
type JobStatus string

const (
	JobPending        JobStatus = "PENDING"
	JobAccepted       JobStatus = "ACCEPTED"
	JobOnWay          JobStatus = "ON_WAY"
	JobInProgress     JobStatus = "IN_PROGRESS"
	JobPaymentPending JobStatus = "PAYMENT_PENDING"
	JobCompleted      JobStatus = "COMPLETED"
)

// Booking is a single repair job requested by the customer.
type Booking struct {
	ID             string          `json:"id"`
	ServiceType    ServiceType     `json:"serviceType"`
	TechnicianID   string          `json:"technicianId"`
	TechnicianName string          `json:"technicianName"`
	Status         BookingStatus   `json:"status"`
	JobStatus      JobStatus       `json:"jobStatus"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Date           string          `json:"date"`
	CreatedAt      time.Time       `json:"createdAt"`
	Location       string          `json:"location"`
	Review         *Review         `json:"review,omitempty"`
}

// Review is the customer's rating of a completed booking.
type Review struct {
	Stars   int       `json:"stars" validate:"gte=1,lte=5"`
	Comment string    `json:"comment,omitempty" validate:"max=500"`
	RatedAt time.Time `json:"ratedAt"`
}

// Bill is the amount payable for a booking.
type Bill struct {
	BookingID      string          `json:"bookingId"`
	VisitingCharge decimal.Decimal `json:"visitingCharge"`
	ServiceCharge  decimal.Decimal `json:"serviceCharge"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
}
