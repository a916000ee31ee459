package grpc

import (
	"sync"
	"sync/atomic"

	"github.com/mr1hm/go-emergency-prep/internal/metrics"
	"github.com/mr1hm/go-emergency-prep/internal/models"
)

const subscriberBuffer = 100

type subscriber struct {
	ch    chan *models.AlertEvent
	types map[models.AlertType]bool // empty means every type
}

func (s *subscriber) wants(t models.AlertType) bool {
	return len(s.types) == 0 || s.types[t]
}

// Broadcaster fans alert events out to stream subscribers. Events for a
// subscriber whose buffer is full are dropped and counted.
type Broadcaster struct {
	subscribers map[uint64]*subscriber
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]*subscriber),
	}
}

// Subscribe registers a subscriber for events about the given alert types,
// or all types when none are given.
func (b *Broadcaster) Subscribe(types ...models.AlertType) (uint64, chan *models.AlertEvent) {
	id := b.nextID.Add(1)
	sub := &subscriber{
		ch:    make(chan *models.AlertEvent, subscriberBuffer),
		types: make(map[models.AlertType]bool, len(types)),
	}
	for _, t := range types {
		sub.types[t] = true
	}

	b.mu.Lock()
	b.subscribers[id] = sub
	b.mu.Unlock()

	return id, sub.ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if sub, ok := b.subscribers[id]; ok {
		close(sub.ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Broadcast(e *models.AlertEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		if !sub.wants(e.Alert.Type) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			metrics.StreamDropped.WithLabelValues(string(e.Kind)).Inc()
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close ends every subscription. Streams see their channel closed and
// return.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, sub := range b.subscribers {
		close(sub.ch)
		delete(b.subscribers, id)
	}
}
