package event

import (
	"fmt"
	"runtime/debug"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Iron-Ham/archiveflow/internal/logging"
)

// Handler receives one diagram event.
type Handler func(Event)

// Wildcard is the topic of listeners registered with SubscribeAll.
const Wildcard = "*"

type listener struct {
	id      string
	topic   string
	handler Handler
}

// Bus delivers diagram events (step transitions, progress, info panel
// changes and run lifecycle) to every presentation layer that listens.
// Delivery is synchronous on the goroutine that publishes.
type Bus struct {
	mu        sync.RWMutex
	listeners []listener // registration order
	seq       atomic.Uint64
	logger    *logging.Logger
}

// NewBus returns an empty bus. Panics raised by listeners are reported to
// logger; nil means they are dropped.
func NewBus(logger *logging.Logger) *Bus {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Bus{logger: logger}
}

// Subscribe listens for events of one type, such as TypeStepChanged. The
// returned id is what Unsubscribe expects.
func (b *Bus) Subscribe(eventType string, handler Handler) string {
	id := "sub-" + strconv.FormatUint(b.seq.Add(1), 10)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, listener{id: id, topic: eventType, handler: handler})
	return id
}

// SubscribeAll listens for every event. The console printer uses this to
// stream a whole run.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe(Wildcard, handler)
}

// Unsubscribe stops the listener with the given id. It reports whether
// the id was registered.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.listeners)
	b.listeners = slices.DeleteFunc(b.listeners, func(l listener) bool { return l.id == id })
	return len(b.listeners) < n
}

// Publish hands e to the listeners of its type, then to the wildcard
// listeners. A listener that panics is logged and the rest still run.
func (b *Bus) Publish(e Event) {
	topic := e.EventType()

	b.mu.RLock()
	var targeted, catchAll []Handler
	for _, l := range b.listeners {
		switch l.topic {
		case topic:
			targeted = append(targeted, l.handler)
		case Wildcard:
			catchAll = append(catchAll, l.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range append(targeted, catchAll...) {
		b.deliver(h, e)
	}
}

func (b *Bus) deliver(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("diagram event listener panicked",
				"event", e.EventType(),
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()))
		}
	}()
	h(e)
}

// SubscriptionCount reports how many listeners are registered.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
