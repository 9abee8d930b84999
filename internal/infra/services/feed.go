package services

import (
	"fmt"
	"sync"
	"time"

	"hrbot-connector/internal/infra/logger"

	"github.com/google/uuid"
)

// subscriberBufferSize is the channel buffer for each feed subscriber.
const subscriberBufferSize = 64

const (
	// EventConversation signals that one conversation changed.
	EventConversation = "conversation"
	// EventConversations signals that the conversation list changed.
	EventConversations = "conversations"
)

// Notification carries only the changed party id and a timestamp; observers
// re-fetch full state on receipt.
type Notification struct {
	Event string    `json:"-"`
	WaID  string    `json:"waId,omitempty"`
	At    time.Time `json:"at"`
}

// Feed is the in-memory fan-out for admin live updates. Subscriptions are
// volatile per-connection registrations with no replay buffer; a slow
// subscriber has notifications dropped rather than blocking a mutation.
type Feed struct {
	mu          sync.RWMutex
	subscribers map[string]chan Notification
	log         *logger.Logger
}

func NewFeed(log *logger.Logger) *Feed {
	return &Feed{
		subscribers: make(map[string]chan Notification),
		log:         log,
	}
}

// Subscribe registers an observer and returns its channel plus the
// subscription id for Unsubscribe.
func (f *Feed) Subscribe() (<-chan Notification, string) {
	id := uuid.New().String()
	ch := make(chan Notification, subscriberBufferSize)

	f.mu.Lock()
	f.subscribers[id] = ch
	f.mu.Unlock()

	return ch, id
}

// Unsubscribe removes a subscription and closes its channel.
func (f *Feed) Unsubscribe(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch, ok := f.subscribers[id]
	if !ok {
		return
	}
	delete(f.subscribers, id)
	close(ch)
}

// NotifyConversation pushes a change notification for one party.
func (f *Feed) NotifyConversation(waID string) {
	f.publish(Notification{Event: EventConversation, WaID: waID, At: time.Now()})
}

// NotifyConversations pushes a "list changed" notification.
func (f *Feed) NotifyConversations() {
	f.publish(Notification{Event: EventConversations, At: time.Now()})
}

func (f *Feed) publish(n Notification) {
	// Sends happen under the read lock so a channel is never closed while a
	// publish is in flight. Sends are non-blocking, so the lock is held only
	// briefly.
	f.mu.RLock()
	defer f.mu.RUnlock()

	for id, ch := range f.subscribers {
		select {
		case ch <- n:
		default:
			f.log.Debug(fmt.Sprintf("Dropped %s notification for slow subscriber %s", n.Event, id))
		}
	}
}
