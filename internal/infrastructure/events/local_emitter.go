package events

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Message is one event as seen by an in-process listener.
type Message struct {
	Event   string `json:"event"`
	Payload []byte `json:"payload"`
}

// LocalEmitter is the direct-delivery registry: currently connected
// listeners receive events without any broker in between. Delivery is
// fire-and-forget; a listener whose buffer is full misses the event.
type LocalEmitter struct {
	mu     sync.RWMutex
	subs   map[int]chan Message
	nextID int
	logger *logrus.Logger
}

func NewLocalEmitter(logger *logrus.Logger) *LocalEmitter {
	return &LocalEmitter{
		subs:   make(map[int]chan Message),
		logger: logger,
	}
}

// Subscribe registers a listener and returns its channel plus a cancel func.
func (e *LocalEmitter) Subscribe(buffer int) (<-chan Message, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Message, buffer)

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subs[id] = ch
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		if sub, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(sub)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

// Emit delivers the event to every current listener without blocking.
func (e *LocalEmitter) Emit(eventName string, payload []byte) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for id, ch := range e.subs {
		select {
		case ch <- Message{Event: eventName, Payload: payload}:
		default:
			if e.logger != nil {
				e.logger.WithFields(logrus.Fields{"event": eventName, "listener": id}).Debug("listener buffer full, event skipped")
			}
		}
	}
}

// ListenerCount returns the number of currently registered listeners.
func (e *LocalEmitter) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs)
}
