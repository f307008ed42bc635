package events

import (
	"context"
	"encoding/json"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/clinicboard/clinicboard/internal/core/ports"
)

var eventsPublished = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "events_published_total",
		Help: "Events handed to the notifier, labeled by the delivery path taken",
	},
	[]string{"path"},
)

func init() {
	prometheus.MustRegister(eventsPublished)
}

// FallbackNotifier publishes each event over the broadcast channel when one
// is configured and currently open, and otherwise delivers it directly to
// the in-process listener registry. Exactly one path carries an event; when
// both are unavailable the event is dropped without retry, since a client
// can always re-fetch current state through the read path.
type FallbackNotifier struct {
	broadcast ports.BroadcastPublisher
	direct    ports.Emitter
	logger    *logrus.Logger
}

// NewFallbackNotifier wires the two delivery paths. broadcast may be nil
// when no broker was ever configured.
func NewFallbackNotifier(broadcast ports.BroadcastPublisher, direct ports.Emitter, logger *logrus.Logger) *FallbackNotifier {
	return &FallbackNotifier{broadcast: broadcast, direct: direct, logger: logger}
}

func (n *FallbackNotifier) Publish(ctx context.Context, topic string, evt any) {
	payload, err := json.Marshal(evt)
	if err != nil {
		if n.logger != nil {
			n.logger.WithFields(logrus.Fields{"topic": topic}).WithError(err).Error("failed to encode event")
		}
		return
	}

	if n.broadcast != nil && n.broadcast.Available() {
		if err := n.broadcast.Publish(ctx, topic, payload); err == nil {
			eventsPublished.WithLabelValues("broadcast").Inc()
			return
		} else if n.logger != nil {
			n.logger.WithFields(logrus.Fields{"topic": topic}).WithError(err).Warn("broadcast publish failed, delivering directly")
		}
	}

	if n.direct != nil {
		n.direct.Emit(topic, payload)
		eventsPublished.WithLabelValues("direct").Inc()
		return
	}

	eventsPublished.WithLabelValues("dropped").Inc()
	if n.logger != nil {
		n.logger.WithFields(logrus.Fields{"topic": topic}).Debug("no delivery path available, event dropped")
	}
}

var _ ports.Notifier = (*FallbackNotifier)(nil)
