package booking

import (
	"strings"
	"time"

	"vijayfix/models"
	"vijayfix/services/chat"
)

// State is everything the lifecycle controller owns. Transitions below take a
// State by value and return a new one; they never write through to the input.
type State struct {
	Bookings []models.Booking
	Chat     chat.Log
	Page     models.Page
}

// InitialState is the state of a fresh session.
func InitialState() State {
	return State{Page: models.PageHome}
}

// ActiveIndex returns the position of the first active booking, or -1.
func (s State) ActiveIndex() int {
	for i, b := range s.Bookings {
		if b.Status.IsActive() {
			return i
		}
	}
	return -1
}

// Active returns the first active booking.
func (s State) Active() (models.Booking, bool) {
	i := s.ActiveIndex()
	if i < 0 {
		return models.Booking{}, false
	}
	return s.Bookings[i], true
}

// CreateRequest carries the inputs of Create. IDs and time are supplied by the
// caller so the transition stays deterministic.
type CreateRequest struct {
	Service    models.ServiceType
	Technician *models.Technician
	Location   string
	BookingID  string
	MessageID  string
	Now        time.Time
}

// Create prepends a new confirmed booking, resets the chat with the request
// notice and moves to the tracking page.
func Create(s State, req CreateRequest) (State, models.Booking, error) {
	if req.Service == "" || req.Technician == nil {
		return s, models.Booking{}, newLifecycleError("missingSelection", ErrMissingSelection,
			"cannot book without a service and a technician")
	}
	if active, ok := s.Active(); ok {
		return s, models.Booking{}, newLifecycleError("activeBookingExists", ErrActiveBookingExists,
			"booking %s is still %s", active.ID, active.Status)
	}

	b := models.Booking{
		ID:             req.BookingID,
		ServiceType:    req.Service,
		TechnicianID:   req.Technician.ID,
		TechnicianName: req.Technician.Name,
		Status:         models.BookingConfirmed,
		JobStatus:      models.JobPending,
		TotalAmount:    req.Technician.PriceEstimate,
		Date:           req.Now.Format("2006-01-02"),
		CreatedAt:      req.Now,
		Location:       strings.TrimSpace(req.Location),
	}

	bookings := make([]models.Booking, 0, len(s.Bookings)+1)
	bookings = append(bookings, b)
	bookings = append(bookings, s.Bookings...)

	return State{
		Bookings: bookings,
		Chat:     chat.Log{}.Append(chat.SystemMessage(req.MessageID, bookingRequestedNotice, req.Now)),
		Page:     models.PageTracking,
	}, b, nil
}

// Advance moves the active booking to next and appends the matching notice.
// messageID is used only when a notice is appended.
func Advance(s State, next models.JobStatus, messageID string, now time.Time) (State, models.Booking, error) {
	i := s.ActiveIndex()
	if i < 0 {
		return s, models.Booking{}, newLifecycleError("noActiveBooking", ErrNoActiveBooking,
			"cannot move to %s", next)
	}
	cur := s.Bookings[i]
	if !CanTransition(cur.JobStatus, next) {
		return s, models.Booking{}, newLifecycleError("invalidTransition", ErrInvalidTransition,
			"%s cannot move from %s to %s", cur.ID, cur.JobStatus, next)
	}

	bookings := append([]models.Booking(nil), s.Bookings...)
	bookings[i].JobStatus = next
	bookings[i].Status = CoarseStatus(next)

	out := State{Bookings: bookings, Chat: s.Chat, Page: s.Page}
	if notice, ok := Notice(next); ok {
		out.Chat = s.Chat.Append(chat.SystemMessage(messageID, notice, now))
	}
	return out, bookings[i], nil
}

// Rate attaches a review to a completed booking. A booking can be rated once.
func Rate(s State, bookingID string, review models.Review) (State, models.Booking, error) {
	if review.Stars < 1 || review.Stars > 5 {
		return s, models.Booking{}, newLifecycleError("invalidRating", ErrInvalidRating,
			"got %d stars", review.Stars)
	}
	for i, b := range s.Bookings {
		if b.ID != bookingID {
			continue
		}
		if b.Status != models.BookingCompleted {
			return s, models.Booking{}, newLifecycleError("notCompleted", ErrNotCompleted,
				"booking %s is %s", b.ID, b.Status)
		}
		if b.Review != nil {
			return s, models.Booking{}, newLifecycleError("alreadyRated", ErrAlreadyRated,
				"booking %s", b.ID)
		}
		bookings := append([]models.Booking(nil), s.Bookings...)
		r := review
		bookings[i].Review = &r
		return State{Bookings: bookings, Chat: s.Chat, Page: s.Page}, bookings[i], nil
	}
	return s, models.Booking{}, newLifecycleError("bookingNotFound", ErrBookingNotFound,
		"booking %s", bookingID)
}

// Navigate switches the visible page.
func Navigate(s State, page models.Page) (State, error) {
	if !page.Valid() {
		return s, newLifecycleError("unknownPage", ErrUnknownPage, "page %q", page)
	}
	s.Page = page
	return s, nil
}

// History splits bookings into active and past, preserving order.
func History(bookings []models.Booking) (active, past []models.Booking) {
	active, past = []models.Booking{}, []models.Booking{}
	for _, b := range bookings {
		if b.Status.IsActive() {
			active = append(active, b)
		} else {
			past = append(past, b)
		}
	}
	return active, past
}
