package models

import "time"

// EventType names a booking state change.
type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventJobStatusChanged EventType = "job_status_changed"
	EventPaymentRecorded  EventType = "payment_recorded"
	EventMessageAppended  EventType = "message_appended"
	EventMessagesRead     EventType = "messages_read"
	EventBookingRated     EventType = "booking_rated"
)

// EventHeader identifies a published event.
type EventHeader struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"publishedAt"`
}

// BookingEvent is what each role receives when the controller changes state.
type BookingEvent struct {
	Header  EventHeader  `json:"header"`
	Type    EventType    `json:"type"`
	Booking *Booking     `json:"booking,omitempty"`
	Message *ChatMessage `json:"message,omitempty"`
	// Reader is set on messages_read events.
	Reader Sender `json:"reader,omitempty"`
}
