package ports

import "context"

// BroadcastPublisher is the primary event channel: a topic-based broadcast
// with no delivery guarantee. Available must be cheap and is consulted fresh
// on every publish attempt.
type BroadcastPublisher interface {
	Available() bool
	Publish(ctx context.Context, topic string, payload []byte) error
}

// Emitter delivers an event directly to in-process listeners.
// Fire-and-forget: no delivery confirmation, slow listeners are skipped.
type Emitter interface {
	Emit(eventName string, payload []byte)
}

// Notifier publishes a structured event on a topic, choosing between the
// broadcast channel and direct delivery at call time. Exactly one path is
// used per attempt; when both are unavailable the event is dropped, since
// events are liveness hints, not the source of truth.
type Notifier interface {
	Publish(ctx context.Context, topic string, evt any)
}
