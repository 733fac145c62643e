package notification

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"vijayfix/models"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Feed is what one role currently knows about the session.
type Feed struct {
	Role      models.Sender        `json:"role"`
	Active    *models.Booking      `json:"active,omitempty"`
	Bookings  []models.Booking     `json:"bookings"`
	Notices   []models.ChatMessage `json:"notices"`
	Unread    int                  `json:"unread"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// RoleView is a read model built only from booking events.
type RoleView struct {
	role models.Sender

	mu       sync.RWMutex
	active   *models.Booking
	bookings []models.Booking
	notices  []models.ChatMessage
	unread   int
	updated  time.Time
}

func NewRoleView(role models.Sender) *RoleView {
	return &RoleView{role: role}
}

func (v *RoleView) Role() models.Sender {
	return v.role
}

// Handle decodes a watermill message and applies it.
func (v *RoleView) Handle(msg *message.Message) error {
	var ev models.BookingEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return fmt.Errorf("decoding booking event: %w", err)
	}
	v.Apply(ev)
	return nil
}

// Apply folds one event into the view.
func (v *RoleView) Apply(ev models.BookingEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if ev.Type == models.EventBookingCreated {
		v.notices = nil
		v.unread = 0
	}
	if ev.Booking != nil {
		v.upsert(*ev.Booking)
	}

	switch ev.Type {
	case models.EventMessagesRead:
		if ev.Reader == v.role {
			v.unread = 0
		}
	default:
		if ev.Message == nil {
			break
		}
		switch {
		case ev.Message.Sender == models.SenderSystem:
			v.notices = append(v.notices, *ev.Message)
		case ev.Message.Sender != v.role && !ev.Message.Read:
			v.unread++
		}
	}
	v.updated = ev.Header.PublishedAt
}

func (v *RoleView) upsert(b models.Booking) {
	found := false
	for i := range v.bookings {
		if v.bookings[i].ID == b.ID {
			v.bookings[i] = b
			found = true
			break
		}
	}
	if !found {
		v.bookings = append([]models.Booking{b}, v.bookings...)
	}

	v.active = nil
	for i := range v.bookings {
		if v.bookings[i].Status.IsActive() {
			a := v.bookings[i]
			v.active = &a
			break
		}
	}
}

// ActiveBooking returns the active booking as this role last saw it.
func (v *RoleView) ActiveBooking() (models.Booking, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.active == nil {
		return models.Booking{}, false
	}
	return *v.active, true
}

func (v *RoleView) Unread() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.unread
}

// Feed returns a copy of the read model.
func (v *RoleView) Feed() Feed {
	v.mu.RLock()
	defer v.mu.RUnlock()

	f := Feed{
		Role:      v.role,
		Bookings:  append([]models.Booking{}, v.bookings...),
		Notices:   append([]models.ChatMessage{}, v.notices...),
		Unread:    v.unread,
		UpdatedAt: v.updated,
	}
	if v.active != nil {
		a := *v.active
		f.Active = &a
	}
	return f
}
