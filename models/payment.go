package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the option picked in the checkout sheet.
type PaymentMethod string

const (
	MethodUPI        PaymentMethod = "upi"
	MethodCard       PaymentMethod = "card"
	MethodNetbanking PaymentMethod = "netbanking"
)

// Valid reports whether m is a supported method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodUPI, MethodCard, MethodNetbanking:
		return true
	}
	return false
}

// CheckoutStep is the state of a checkout sheet.
type CheckoutStep string

const (
	StepOptions    CheckoutStep = "OPTIONS"
	StepProcessing CheckoutStep = "PROCESSING"
	StepSuccess    CheckoutStep = "SUCCESS"
	StepClosed     CheckoutStep = "CLOSED"
)

// Invoice is issued when a simulated payment succeeds.
type Invoice struct {
	InvoiceID string          `json:"invoiceId"`
	BookingID string          `json:"bookingId"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Method    PaymentMethod   `json:"method"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}
