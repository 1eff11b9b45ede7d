package messaging

import "context"

// Topics carrying fan-out events. One topic per originating flow.
const (
	TopicDemandPosted  = "marketplace.demands.posted"
	TopicProductListed = "marketplace.products.listed"
	TopicOrderPlaced   = "marketplace.orders.placed"
)

// Publisher publishes events to a message broker. Implementations must be
// safe for concurrent use by HTTP handlers.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}

// Subscriber consumes a topic as part of a consumer group. Consume blocks
// until the context is cancelled; delivery is at-least-once, so handlers
// may see the same payload more than once.
type Subscriber interface {
	Consume(ctx context.Context, topic string, groupID string, handler func(ctx context.Context, payload []byte) error)
}
