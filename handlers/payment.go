package handlers

import (
	"context"
	"net/http"

	"vijayfix/models"
	"vijayfix/services/payment"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Checkouts is the payment provider surface used over HTTP.
type Checkouts interface {
	Open(bookingID string, amount decimal.Decimal, onSuccess func(models.Invoice)) (*payment.Checkout, error)
	Checkout(id string) (*payment.Checkout, error)
}

// BillingController is what the payment flow needs from the booking controller.
type BillingController interface {
	Bill() (models.Bill, error)
	RecordPayment(ctx context.Context) (models.Booking, error)
}

type PaymentHandler struct {
	Provider   Checkouts
	Controller BillingController
	Logger     *zap.Logger
}

func NewPaymentHandler(provider Checkouts, ctrl BillingController, logger *zap.Logger) *PaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentHandler{Provider: provider, Controller: ctrl, Logger: logger}
}

// StartPaymentRequest is the body of POST /api/customer/payments.
type StartPaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

// StartPayment opens a checkout for the current bill and pays it with the
// chosen method. The booking completes asynchronously once the simulated
// gateway reports success.
func (h *PaymentHandler) StartPayment(c *gin.Context) {
	logger := getLogger(c)

	var req StartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid payment request", err)
		return
	}
	method := models.PaymentMethod(req.Method)
	if !method.Valid() {
		respondError(c, "Unsupported payment method", payment.ErrInvalidMethod)
		return
	}

	bill, err := h.Controller.Bill()
	if err != nil {
		respondError(c, "Nothing to pay", err)
		return
	}

	checkout, err := h.Provider.Open(bill.BookingID, bill.Total, h.onPaid)
	if err != nil {
		respondError(c, "Could not open checkout", err)
		return
	}
	if err := checkout.Pay(method); err != nil {
		_ = checkout.Close()
		respondError(c, "Payment failed", err)
		return
	}

	logger.Info("Payment started",
		zap.String("checkoutId", checkout.ID()),
		zap.String("bookingId", bill.BookingID),
		zap.String("total", bill.Total.StringFixed(2)))
	c.JSON(http.StatusAccepted, checkout.View())
}

func (h *PaymentHandler) onPaid(inv models.Invoice) {
	bill, err := h.Controller.Bill()
	if err != nil || bill.BookingID != inv.BookingID {
		h.Logger.Error("Payment does not match the booking awaiting payment",
			zap.String("invoiceId", inv.InvoiceID),
			zap.String("bookingId", inv.BookingID),
			zap.String("billedBookingId", bill.BookingID),
			zap.Error(err))
		return
	}
	if _, err := h.Controller.RecordPayment(context.Background()); err != nil {
		h.Logger.Error("Failed to record payment",
			zap.String("invoiceId", inv.InvoiceID),
			zap.String("bookingId", inv.BookingID),
			zap.Error(err))
	}
}

func (h *PaymentHandler) GetCheckout(c *gin.Context) {
	checkout, err := h.Provider.Checkout(c.Param("id"))
	if err != nil {
		respondError(c, "Checkout not found", err)
		return
	}
	c.JSON(http.StatusOK, checkout.View())
}

func (h *PaymentHandler) CloseCheckout(c *gin.Context) {
	checkout, err := h.Provider.Checkout(c.Param("id"))
	if err != nil {
		respondError(c, "Checkout not found", err)
		return
	}
	if err := checkout.Close(); err != nil {
		respondError(c, "Checkout already finished", err)
		return
	}
	c.JSON(http.StatusOK, checkout.View())
}
