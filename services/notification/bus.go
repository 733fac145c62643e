package notification

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

// Bus is the in-process event channel between the controller and the role views.
type Bus struct {
	pubSub *gochannel.GoChannel
	router *message.Router
}

// NewBus creates the pub/sub and registers one handler per view. Publishing
// blocks until every view has acked, so a view is current once the publishing
// call returns.
func NewBus(logger *zap.Logger, views ...*RoleView) (*Bus, error) {
	wmLogger := NewZapLoggerAdapter(logger)

	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            64,
		BlockPublishUntilSubscriberAck: true,
	}, wmLogger)

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("creating router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)

	for _, v := range views {
		router.AddNoPublisherHandler(
			"role-view."+string(v.Role()),
			TopicBookingEvents,
			pubSub,
			v.Handle,
		)
	}

	return &Bus{pubSub: pubSub, router: router}, nil
}

func (b *Bus) Publisher() message.Publisher {
	return b.pubSub
}

// Run starts the router and blocks until ctx is cancelled or the router stops.
func (b *Bus) Run(ctx context.Context) error {
	return b.router.Run(ctx)
}

// Running is closed once every handler is subscribed.
func (b *Bus) Running() chan struct{} {
	return b.router.Running()
}

func (b *Bus) Close() error {
	if err := b.router.Close(); err != nil {
		return err
	}
	return b.pubSub.Close()
}
