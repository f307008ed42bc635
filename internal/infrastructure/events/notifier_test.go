package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicboard/clinicboard/internal/infrastructure/events"
)

type broadcastMock struct {
	available bool
	publishFn func(ctx context.Context, topic string, payload []byte) error
	published int
}

func (m *broadcastMock) Available() bool { return m.available }
func (m *broadcastMock) Publish(ctx context.Context, topic string, payload []byte) error {
	m.published++
	if m.publishFn != nil {
		return m.publishFn(ctx, topic, payload)
	}
	return nil
}

type emitterMock struct {
	emitted int
	lastMsg []byte
}

func (m *emitterMock) Emit(eventName string, payload []byte) {
	m.emitted++
	m.lastMsg = payload
}

func TestPublish_BroadcastOnlyWhenAvailable(t *testing.T) {
	broadcast := &broadcastMock{available: true}
	direct := &emitterMock{}

	n := events.NewFallbackNotifier(broadcast, direct, nil)
	n.Publish(context.Background(), "appointment.status", map[string]string{"k": "v"})

	assert.Equal(t, 1, broadcast.published)
	assert.Equal(t, 0, direct.emitted, "direct path must not be used when broadcast delivered")
}

func TestPublish_DirectWhenChannelUnavailable(t *testing.T) {
	broadcast := &broadcastMock{available: false}
	direct := &emitterMock{}

	n := events.NewFallbackNotifier(broadcast, direct, nil)
	n.Publish(context.Background(), "appointment.status", map[string]string{"k": "v"})

	assert.Equal(t, 0, broadcast.published)
	assert.Equal(t, 1, direct.emitted)
}

func TestPublish_DirectWhenChannelNeverConfigured(t *testing.T) {
	direct := &emitterMock{}

	n := events.NewFallbackNotifier(nil, direct, nil)
	n.Publish(context.Background(), "doctor.presence", map[string]string{"k": "v"})

	assert.Equal(t, 1, direct.emitted)
	assert.JSONEq(t, `{"k":"v"}`, string(direct.lastMsg))
}

func TestPublish_FallsBackWhenBroadcastFails(t *testing.T) {
	broadcast := &broadcastMock{
		available: true,
		publishFn: func(ctx context.Context, topic string, payload []byte) error {
			return errors.New("channel closed")
		},
	}
	direct := &emitterMock{}

	n := events.NewFallbackNotifier(broadcast, direct, nil)
	n.Publish(context.Background(), "appointment.status", map[string]string{"k": "v"})

	assert.Equal(t, 1, broadcast.published)
	assert.Equal(t, 1, direct.emitted, "a failed broadcast attempt falls back to direct delivery")
}

func TestPublish_BothUnavailableDropsSilently(t *testing.T) {
	n := events.NewFallbackNotifier(nil, nil, nil)
	// Must not panic or block; the event is permanently lost.
	n.Publish(context.Background(), "appointment.status", map[string]string{"k": "v"})
}

func TestPublish_UnencodableEventDropped(t *testing.T) {
	direct := &emitterMock{}
	n := events.NewFallbackNotifier(nil, direct, nil)
	n.Publish(context.Background(), "appointment.status", func() {})
	assert.Equal(t, 0, direct.emitted)
}
