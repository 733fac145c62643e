package booking

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator issues identifiers for bookings and chat messages.
type IDGenerator interface {
	BookingID() string
	MessageID() string
}

type uuidGenerator struct{}

// NewIDGenerator returns a generator backed by random UUIDs.
func NewIDGenerator() IDGenerator {
	return uuidGenerator{}
}

// BookingID returns a display id of the form BK-XXXXXXXX.
func (uuidGenerator) BookingID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "BK-" + strings.ToUpper(raw[:8])
}

func (uuidGenerator) MessageID() string {
	return uuid.New().String()
}
