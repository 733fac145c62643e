package booking

import (
	"vijayfix/models"

	"github.com/shopspring/decimal"
)

// ComputeBill adds the flat service charge to the booking's visiting charge.
func ComputeBill(b models.Booking, serviceCharge decimal.Decimal, currency string) models.Bill {
	return models.Bill{
		BookingID:      b.ID,
		VisitingCharge: b.TotalAmount,
		ServiceCharge:  serviceCharge,
		Total:          b.TotalAmount.Add(serviceCharge),
		Currency:       currency,
	}
}
