// Package broker provides in-process fan-out of room events to live
// subscribers, keyed by room code.
package broker

import (
	"log/slog"
	"sync"

	"splitpot/internal/model"
)

// Broker maintains per-room subscriber sets and delivers published events
// to every live subscription for that room, each in publish order.
type Broker struct {
	mu     sync.RWMutex
	subs   map[model.RoomCode]map[*Subscription]struct{}
	logger *slog.Logger
}

// New creates a new Broker
func New(logger *slog.Logger) *Broker {
	return &Broker{
		subs:   make(map[model.RoomCode]map[*Subscription]struct{}),
		logger: logger.With(slog.String("component", "broker")),
	}
}

// Subscribe registers a new subscription for the given room code. Events
// published after Subscribe returns are delivered on the subscription's
// channel. The caller must call Close when done.
func (b *Broker) Subscribe(code model.RoomCode) *Subscription {
	sub := &Subscription{
		broker: b,
		code:   code,
		wake:   make(chan struct{}, 1),
		out:    make(chan model.Event),
		done:   make(chan struct{}),
	}

	b.mu.Lock()
	if b.subs[code] == nil {
		b.subs[code] = make(map[*Subscription]struct{})
	}
	b.subs[code][sub] = struct{}{}
	count := len(b.subs[code])
	b.mu.Unlock()

	go sub.pump()

	b.logger.Debug("subscriber registered",
		slog.String("room", string(code)),
		slog.Int("subscribers", count))
	return sub
}

// Publish delivers the event to every subscription currently registered for
// its room code. Each subscription has its own unbounded queue, so Publish
// never blocks on slow subscribers. Publishing to a room with no
// subscribers is a no-op.
func (b *Broker) Publish(code model.RoomCode, event model.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs[code] {
		sub.enqueue(event)
	}
}

// SubscriberCount returns the number of live subscriptions for a room
func (b *Broker) SubscriberCount(code model.RoomCode) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[code])
}

// remove deregisters a subscription, dropping the room's registry entry
// once it is empty
func (b *Broker) remove(code model.RoomCode, sub *Subscription) {
	b.mu.Lock()
	if set, ok := b.subs[code]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(b.subs, code)
		}
	}
	b.mu.Unlock()

	b.logger.Debug("subscriber removed", slog.String("room", string(code)))
}

// Subscription is one listener's ordered event stream for a single room.
// Events are buffered in a growable queue between Publish and the reader,
// so a slow reader never blocks publishers.
type Subscription struct {
	broker *Broker
	code   model.RoomCode

	mu    sync.Mutex
	queue []model.Event

	wake chan struct{}
	out  chan model.Event
	done chan struct{}

	closeOnce sync.Once
}

// Events returns the channel on which events are delivered, in publish
// order. The channel is closed after Close.
func (s *Subscription) Events() <-chan model.Event {
	return s.out
}

// Close deregisters the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.broker.remove(s.code, s)
		close(s.done)
	})
}

func (s *Subscription) enqueue(event model.Event) {
	s.mu.Lock()
	s.queue = append(s.queue, event)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// pump moves events from the queue to the output channel until Close
func (s *Subscription) pump() {
	defer close(s.out)
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}
		event := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- event:
		case <-s.done:
			return
		}
	}
}
