package payment

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"vijayfix/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrCheckoutStarted  = errors.New("checkout already started")
	ErrCheckoutFinished = errors.New("checkout already finished")
	ErrCheckoutNotFound = errors.New("checkout not found")
	ErrCheckoutExists   = errors.New("booking already has an open checkout")
	ErrInvalidMethod    = errors.New("unsupported payment method")
	ErrInvalidAmount    = errors.New("amount must be positive")
)

// --- Provider ---

// Config sets the simulated gateway delays.
type Config struct {
	ProcessingDelay time.Duration
	SuccessDelay    time.Duration
	Currency        string
}

// Provider simulates a hosted checkout sheet. It never declines a payment.
type Provider struct {
	cfg    Config
	logger *zap.Logger

	mu        sync.Mutex
	checkouts map[string]*Checkout
}

func NewProvider(cfg Config, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	return &Provider{cfg: cfg, logger: logger, checkouts: make(map[string]*Checkout)}
}

// Open creates a checkout in the OPTIONS step. onSuccess is called once with
// the invoice unless the checkout is closed first. A booking has at most one
// checkout that is not CLOSED.
func (p *Provider) Open(bookingID string, amount decimal.Decimal, onSuccess func(models.Invoice)) (*Checkout, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	c := &Checkout{
		id:        uuid.New().String(),
		bookingID: bookingID,
		amount:    amount,
		currency:  p.cfg.Currency,
		step:      models.StepOptions,
		onSuccess: onSuccess,
		provider:  p,
		done:      make(chan struct{}),
	}

	p.mu.Lock()
	for _, existing := range p.checkouts {
		if existing.bookingID == bookingID && existing.View().Step != models.StepClosed {
			p.mu.Unlock()
			return nil, fmt.Errorf("%w: %s", ErrCheckoutExists, bookingID)
		}
	}
	p.checkouts[c.id] = c
	p.mu.Unlock()

	p.logger.Info("Checkout opened",
		zap.String("checkoutId", c.id),
		zap.String("bookingId", bookingID),
		zap.String("amount", amount.StringFixed(2)))
	return c, nil
}

// Checkout looks a checkout up by id.
func (p *Provider) Checkout(id string) (*Checkout, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.checkouts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCheckoutNotFound, id)
	}
	return c, nil
}

// --- Checkout ---

// View is a read-only copy of a checkout.
type View struct {
	ID        string               `json:"id"`
	BookingID string               `json:"bookingId"`
	Amount    decimal.Decimal      `json:"amount"`
	Currency  string               `json:"currency"`
	Step      models.CheckoutStep  `json:"step"`
	Method    models.PaymentMethod `json:"method,omitempty"`
	Invoice   *models.Invoice      `json:"invoice,omitempty"`
}

type Checkout struct {
	id        string
	bookingID string
	amount    decimal.Decimal
	currency  string
	onSuccess func(models.Invoice)
	provider  *Provider

	mu        sync.Mutex
	step      models.CheckoutStep
	method    models.PaymentMethod
	invoice   *models.Invoice
	timer     *time.Timer
	delivered bool
	done      chan struct{}
}

func (c *Checkout) ID() string {
	return c.id
}

// Done is closed once the checkout reaches a terminal state.
func (c *Checkout) Done() <-chan struct{} {
	return c.done
}

func (c *Checkout) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := View{
		ID:        c.id,
		BookingID: c.bookingID,
		Amount:    c.amount,
		Currency:  c.currency,
		Step:      c.step,
		Method:    c.method,
	}
	if c.invoice != nil {
		inv := *c.invoice
		v.Invoice = &inv
	}
	return v
}

// Pay starts processing with method. The checkout moves to SUCCESS after the
// processing delay and reports the invoice after the success delay.
func (c *Checkout) Pay(method models.PaymentMethod) error {
	if !method.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.step {
	case models.StepOptions:
	case models.StepClosed:
		return ErrCheckoutFinished
	default:
		return ErrCheckoutStarted
	}

	c.step = models.StepProcessing
	c.method = method
	c.timer = time.AfterFunc(c.provider.cfg.ProcessingDelay, c.succeed)

	c.provider.logger.Info("Payment processing",
		zap.String("checkoutId", c.id), zap.String("method", string(method)))
	return nil
}

func (c *Checkout) succeed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != models.StepProcessing {
		return
	}
	c.step = models.StepSuccess
	c.invoice = &models.Invoice{
		InvoiceID: uuid.New().String(),
		BookingID: c.bookingID,
		Amount:    c.amount,
		Currency:  c.currency,
		Method:    c.method,
		Status:    "paid",
		CreatedAt: time.Now(),
	}
	c.timer = time.AfterFunc(c.provider.cfg.SuccessDelay, c.deliver)
}

func (c *Checkout) deliver() {
	c.mu.Lock()
	if c.step != models.StepSuccess || c.delivered {
		c.mu.Unlock()
		return
	}
	c.delivered = true
	inv := *c.invoice
	cb := c.onSuccess
	c.mu.Unlock()

	c.provider.logger.Info("Payment succeeded",
		zap.String("checkoutId", c.id),
		zap.String("invoiceId", inv.InvoiceID),
		zap.String("bookingId", inv.BookingID))

	if cb != nil {
		cb(inv)
	}
	close(c.done)
}

// Close dismisses the sheet. Before the success callback has fired this
// abandons the payment; afterwards it is an error.
func (c *Checkout) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.delivered {
		return ErrCheckoutFinished
	}
	if c.step == models.StepClosed {
		return nil
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.step = models.StepClosed
	close(c.done)

	c.provider.logger.Info("Checkout closed", zap.String("checkoutId", c.id))
	return nil
}
