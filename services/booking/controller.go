package booking

import (
	"context"
	"strings"
	"sync"
	"time"

	"vijayfix/models"
	"vijayfix/services/catalog"
	"vijayfix/services/chat"
	"vijayfix/services/tracking"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Publisher receives every state change made by the Controller.
type Publisher interface {
	Publish(ctx context.Context, event models.BookingEvent) error
}

// Tracker animates the technician marker while a job is ON_WAY.
type Tracker interface {
	Start(r tracking.Route)
	Stop()
}

// Options wires the Controller's collaborators. Zero values get defaults in
// NewController.
type Options struct {
	Directory catalog.Directory
	Publisher Publisher
	Tracker   Tracker
	Logger    *zap.Logger
	IDs       IDGenerator
	Clock     func() time.Time

	DefaultLocation  string
	ServiceLocation  models.Coordinate
	TrackingDuration time.Duration
	ServiceCharge    decimal.Decimal
	Currency         string
}

// Controller is the single owner of the booking session state.
type Controller struct {
	opts Options

	mu    sync.Mutex
	state State

	// pubMu is taken before mu is released so events leave in commit order.
	pubMu sync.Mutex
}

func NewController(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.IDs == nil {
		opts.IDs = NewIDGenerator()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.TrackingDuration <= 0 {
		opts.TrackingDuration = 30 * time.Second
	}
	if opts.Currency == "" {
		opts.Currency = "INR"
	}
	return &Controller{opts: opts, state: InitialState()}
}

// commit swaps in next and returns with pubMu held; the caller must call
// c.publish, which releases it.
func (c *Controller) commit(next State) {
	c.state = next
	c.pubMu.Lock()
	c.mu.Unlock()
}

func (c *Controller) publish(ctx context.Context, events ...models.BookingEvent) {
	defer c.pubMu.Unlock()
	if c.opts.Publisher == nil {
		return
	}
	for _, ev := range events {
		if err := c.opts.Publisher.Publish(ctx, ev); err != nil {
			c.opts.Logger.Error("Failed to publish booking event",
				zap.String("type", string(ev.Type)), zap.Error(err))
		}
	}
}

// CreateBooking books technician for service. An empty location falls back to
// the configured default address.
func (c *Controller) CreateBooking(ctx context.Context, service models.ServiceType, technician *models.Technician, location string) (models.Booking, error) {
	if strings.TrimSpace(location) == "" {
		location = c.opts.DefaultLocation
	}

	c.mu.Lock()
	next, b, err := Create(c.state, CreateRequest{
		Service:    service,
		Technician: technician,
		Location:   location,
		BookingID:  c.opts.IDs.BookingID(),
		MessageID:  c.opts.IDs.MessageID(),
		Now:        c.opts.Clock(),
	})
	if err != nil {
		c.mu.Unlock()
		c.opts.Logger.Warn("Booking rejected", zap.Error(err))
		return models.Booking{}, err
	}
	notice := next.Chat[len(next.Chat)-1]
	c.commit(next)

	c.opts.Logger.Info("Booking created",
		zap.String("bookingId", b.ID),
		zap.String("service", string(b.ServiceType)),
		zap.String("technicianId", b.TechnicianID))

	c.publish(ctx, models.BookingEvent{Type: models.EventBookingCreated, Booking: &b, Message: &notice})
	return b, nil
}

// UpdateJobStatus advances the active booking. Only forward edges of the job
// lifecycle are accepted.
func (c *Controller) UpdateJobStatus(ctx context.Context, status models.JobStatus) (models.Booking, error) {
	return c.advance(ctx, status, models.EventJobStatusChanged)
}

// RecordPayment completes the active booking and moves the session to the
// rating page.
func (c *Controller) RecordPayment(ctx context.Context) (models.Booking, error) {
	return c.advance(ctx, models.JobCompleted, models.EventPaymentRecorded)
}

func (c *Controller) advance(ctx context.Context, status models.JobStatus, evType models.EventType) (models.Booking, error) {
	c.mu.Lock()
	before := len(c.state.Chat)
	next, b, err := Advance(c.state, status, c.opts.IDs.MessageID(), c.opts.Clock())
	if err != nil {
		c.mu.Unlock()
		c.opts.Logger.Warn("Job status update rejected",
			zap.String("status", string(status)), zap.Error(err))
		return models.Booking{}, err
	}
	if evType == models.EventPaymentRecorded {
		next.Page = models.PageRating
	}
	var notice *models.ChatMessage
	if len(next.Chat) > before {
		m := next.Chat[len(next.Chat)-1]
		notice = &m
	}
	c.commit(next)

	c.opts.Logger.Info("Job status updated",
		zap.String("bookingId", b.ID),
		zap.String("jobStatus", string(b.JobStatus)),
		zap.String("status", string(b.Status)))

	c.syncTracker(b)
	c.publish(ctx, models.BookingEvent{Type: evType, Booking: &b, Message: notice})
	return b, nil
}

func (c *Controller) syncTracker(b models.Booking) {
	if c.opts.Tracker == nil {
		return
	}
	if b.JobStatus != models.JobOnWay {
		c.opts.Tracker.Stop()
		return
	}
	if c.opts.Directory == nil {
		return
	}
	tech, err := c.opts.Directory.Technician(b.TechnicianID)
	if err != nil {
		c.opts.Logger.Warn("Cannot track technician", zap.String("technicianId", b.TechnicianID), zap.Error(err))
		return
	}
	c.opts.Tracker.Start(tracking.Route{
		From:     tech.Location,
		To:       c.opts.ServiceLocation,
		Duration: c.opts.TrackingDuration,
	})
}

// ActiveBooking returns the first booking in the active set.
func (c *Controller) ActiveBooking() (models.Booking, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Active()
}

// Bookings returns all bookings, most recent first.
func (c *Controller) Bookings() []models.Booking {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Booking{}, c.state.Bookings...)
}

func (c *Controller) History() (active, past []models.Booking) {
	return History(c.Bookings())
}

// Bill returns the amount payable for the active booking. A bill exists only
// once the technician has marked the job PAYMENT_PENDING.
func (c *Controller) Bill() (models.Bill, error) {
	b, ok := c.ActiveBooking()
	if !ok {
		return models.Bill{}, newLifecycleError("noActiveBooking", ErrNoActiveBooking, "nothing to bill")
	}
	if b.JobStatus != models.JobPaymentPending {
		return models.Bill{}, newLifecycleError("billNotReady", ErrInvalidTransition,
			"booking %s is %s, bill is issued at %s", b.ID, b.JobStatus, models.JobPaymentPending)
	}
	return ComputeBill(b, c.opts.ServiceCharge, c.opts.Currency), nil
}

// RateBooking stores the customer's review of a completed booking.
func (c *Controller) RateBooking(ctx context.Context, bookingID string, stars int, comment string) (models.Booking, error) {
	c.mu.Lock()
	next, b, err := Rate(c.state, bookingID, models.Review{
		Stars:   stars,
		Comment: strings.TrimSpace(comment),
		RatedAt: c.opts.Clock(),
	})
	if err != nil {
		c.mu.Unlock()
		return models.Booking{}, err
	}
	c.commit(next)

	c.opts.Logger.Info("Booking rated", zap.String("bookingId", b.ID), zap.Int("stars", stars))
	c.publish(ctx, models.BookingEvent{Type: models.EventBookingRated, Booking: &b})
	return b, nil
}

func (c *Controller) Page() models.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Page
}

func (c *Controller) Navigate(page models.Page) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := Navigate(c.state, page)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// Messages returns the chat log of the current session.
func (c *Controller) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Chat.Messages()
}

// Send appends a message written by sender.
func (c *Controller) Send(ctx context.Context, sender models.Sender, text string) (models.ChatMessage, error) {
	msg, err := chat.NewMessage(c.opts.IDs.MessageID(), sender, text, c.opts.Clock())
	if err != nil {
		return models.ChatMessage{}, err
	}
	c.appendMessage(ctx, msg)
	return msg, nil
}

// System appends a controller-generated notice.
func (c *Controller) System(ctx context.Context, text string) models.ChatMessage {
	msg := chat.SystemMessage(c.opts.IDs.MessageID(), text, c.opts.Clock())
	c.appendMessage(ctx, msg)
	return msg
}

func (c *Controller) appendMessage(ctx context.Context, msg models.ChatMessage) {
	c.mu.Lock()
	next := c.state
	next.Chat = c.state.Chat.Append(msg)
	active, hasActive := next.Active()
	c.commit(next)

	ev := models.BookingEvent{Type: models.EventMessageAppended, Message: &msg}
	if hasActive {
		ev.Booking = &active
	}
	c.publish(ctx, ev)
}

// UnreadCount reports unread peer messages for viewer.
func (c *Controller) UnreadCount(viewer models.Sender) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Chat.UnreadCount(viewer)
}

// MarkRead marks peer messages read for viewer and returns how many changed.
func (c *Controller) MarkRead(ctx context.Context, viewer models.Sender) int {
	c.mu.Lock()
	log, n := c.state.Chat.MarkRead(viewer)
	if n == 0 {
		c.mu.Unlock()
		return 0
	}
	next := c.state
	next.Chat = log
	c.commit(next)

	c.publish(ctx, models.BookingEvent{Type: models.EventMessagesRead, Reader: viewer})
	return n
}

// Snapshot returns a copy of the whole session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Bookings: append([]models.Booking{}, c.state.Bookings...),
		Chat:     c.state.Chat.Messages(),
		Page:     c.state.Page,
	}
}
