package services

import (
	"sync"
	"time"
)

type handoverEntry struct {
	waID       string
	enqueuedAt time.Time
}

// HandoverQueue is the FIFO of parties waiting for a human operator. A party
// appears at most once; positions are 1-based and recomputed by linear scan,
// which is fine for the handful of entries this queue ever holds.
type HandoverQueue struct {
	mu      sync.Mutex
	entries []handoverEntry
	members map[string]struct{}
	feed    *Feed
}

func NewHandoverQueue(feed *Feed) *HandoverQueue {
	return &HandoverQueue{
		members: make(map[string]struct{}),
		feed:    feed,
	}
}

// Enqueue adds a party to the queue and returns its 1-based position.
// Idempotent: when the party is already queued, only the current position is
// returned.
func (q *HandoverQueue) Enqueue(waID string) int {
	q.mu.Lock()
	if _, ok := q.members[waID]; !ok {
		q.members[waID] = struct{}{}
		q.entries = append(q.entries, handoverEntry{waID: waID, enqueuedAt: time.Now()})
	}
	pos := q.position(waID)
	q.mu.Unlock()

	q.feed.NotifyConversations()
	q.feed.NotifyConversation(waID)

	return pos
}

// Remove takes a party out of the queue. No-op when absent.
func (q *HandoverQueue) Remove(waID string) {
	q.mu.Lock()
	for i, e := range q.entries {
		if e.waID == waID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			break
		}
	}
	delete(q.members, waID)
	q.mu.Unlock()

	q.feed.NotifyConversations()
	q.feed.NotifyConversation(waID)
}

// Contains reports queue membership.
func (q *HandoverQueue) Contains(waID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.members[waID]
	return ok
}

// Position returns the party's 1-based position, or 0 when not queued.
func (q *HandoverQueue) Position(waID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.position(waID)
}

func (q *HandoverQueue) position(waID string) int {
	for i, e := range q.entries {
		if e.waID == waID {
			return i + 1
		}
	}
	return 0
}

// Len returns the number of queued parties.
func (q *HandoverQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
