package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vijayfix/models"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

const TopicBookingEvents = "booking-events"

// EventPublisher stamps booking events with a header and publishes them as JSON.
type EventPublisher struct {
	publisher message.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewEventPublisher(publisher message.Publisher, logger *zap.Logger) *EventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventPublisher{publisher: publisher, logger: logger, now: time.Now}
}

func (p *EventPublisher) Publish(ctx context.Context, event models.BookingEvent) error {
	event.Header = models.EventHeader{
		ID:          watermill.NewUUID(),
		PublishedAt: p.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}

	msg := message.NewMessage(event.Header.ID, payload)
	msg.Metadata.Set("type", string(event.Type))
	msg.SetContext(ctx)

	if err := p.publisher.Publish(TopicBookingEvents, msg); err != nil {
		return fmt.Errorf("publishing %s: %w", event.Type, err)
	}
	p.logger.Debug("Booking event published",
		zap.String("eventId", event.Header.ID),
		zap.String("type", string(event.Type)))
	return nil
}
