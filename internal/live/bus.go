// Package live delivers change notifications for threads and per-thread
// replies to open viewers. Delivery is at-least-once with no ordering
// guarantee beyond source commit order; a missed notification is never fatal
// because viewers fall back to re-fetching.
package live

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ctchan-dev/ctchan/internal/domain"
	"github.com/ctchan-dev/ctchan/internal/logger"
)

// subscriberBuffer bounds how far a consumer may lag before events are
// dropped for it. Publishing never blocks on a slow consumer.
const subscriberBuffer = 32

var (
	liveSubscribers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "live_subscribers",
			Help: "Number of active live update subscriptions",
		},
		[]string{"scope"},
	)

	liveDroppedEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "live_dropped_events_total",
			Help: "Events dropped because a subscriber was not keeping up",
		},
		[]string{"scope"},
	)
)

// Bus is the in-process fan-out point between the store and connected
// viewers. A nil *Bus is valid: subscriptions on it are inert and publishes
// are discarded, which models "no backing transport configured".
type Bus struct {
	mu     sync.RWMutex
	nextId int

	threadSubs map[int]chan ThreadEvent
	replySubs  map[domain.ThreadId]map[int]chan ReplyEvent
}

func NewBus() *Bus {
	return &Bus{
		threadSubs: make(map[int]chan ThreadEvent),
		replySubs:  make(map[domain.ThreadId]map[int]chan ReplyEvent),
	}
}

// ThreadSubscription receives every thread mutation until unsubscribed.
type ThreadSubscription struct {
	C      <-chan ThreadEvent
	cancel func()
}

// Unsubscribe releases the registration. Idempotent; deliveries already
// buffered may still be drained by the consumer.
func (s *ThreadSubscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// ReplySubscription receives reply inserts for a single thread.
type ReplySubscription struct {
	C      <-chan ReplyEvent
	cancel func()
}

func (s *ReplySubscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// SubscribeThreads registers for all thread events across all boards.
func (b *Bus) SubscribeThreads() *ThreadSubscription {
	if b == nil {
		return &ThreadSubscription{C: make(chan ThreadEvent)}
	}

	ch := make(chan ThreadEvent, subscriberBuffer)

	b.mu.Lock()
	id := b.nextId
	b.nextId++
	b.threadSubs[id] = ch
	b.mu.Unlock()

	liveSubscribers.WithLabelValues("threads").Inc()

	var once sync.Once
	return &ThreadSubscription{
		C: ch,
		cancel: func() {
			once.Do(func() {
				b.mu.Lock()
				delete(b.threadSubs, id)
				b.mu.Unlock()
				liveSubscribers.WithLabelValues("threads").Dec()
			})
		},
	}
}

// SubscribeReplies registers for reply inserts on one thread.
func (b *Bus) SubscribeReplies(threadId domain.ThreadId) *ReplySubscription {
	if b == nil {
		return &ReplySubscription{C: make(chan ReplyEvent)}
	}

	ch := make(chan ReplyEvent, subscriberBuffer)

	b.mu.Lock()
	id := b.nextId
	b.nextId++
	subs, ok := b.replySubs[threadId]
	if !ok {
		subs = make(map[int]chan ReplyEvent)
		b.replySubs[threadId] = subs
	}
	subs[id] = ch
	b.mu.Unlock()

	liveSubscribers.WithLabelValues("replies").Inc()

	var once sync.Once
	return &ReplySubscription{
		C: ch,
		cancel: func() {
			once.Do(func() {
				b.mu.Lock()
				if subs, ok := b.replySubs[threadId]; ok {
					delete(subs, id)
					if len(subs) == 0 {
						delete(b.replySubs, threadId)
					}
				}
				b.mu.Unlock()
				liveSubscribers.WithLabelValues("replies").Dec()
			})
		},
	}
}

// PublishThread fans ev out to every thread subscriber. Slow subscribers lose
// the event with a log line instead of stalling the mutation path.
func (b *Bus) PublishThread(ev ThreadEvent) {
	if b == nil {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.threadSubs {
		select {
		case ch <- ev:
		default:
			liveDroppedEvents.WithLabelValues("threads").Inc()
			logger.Component("live").Warn("dropped thread event for slow subscriber",
				"subscriber", id,
				"thread", ev.Thread.Id,
				"kind", ev.Kind)
		}
	}
}

// PublishReply fans ev out to the subscribers of its thread.
func (b *Bus) PublishReply(ev ReplyEvent) {
	if b == nil {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.replySubs[ev.Reply.ThreadId] {
		select {
		case ch <- ev:
		default:
			liveDroppedEvents.WithLabelValues("replies").Inc()
			logger.Component("live").Warn("dropped reply event for slow subscriber",
				"subscriber", id,
				"thread", ev.Reply.ThreadId,
				"reply", ev.Reply.Id)
		}
	}
}
