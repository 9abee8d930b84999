package services

import (
	"context"
	"testing"

	"hrbot-connector/internal/infra/logger"

	"github.com/stretchr/testify/assert"
)

func newTestQueue() *HandoverQueue {
	log := logger.NewLogger(context.Background(), false)
	return NewHandoverQueue(NewFeed(log))
}

func TestEnqueueIsIdempotent(t *testing.T) {
	q := newTestQueue()

	assert.Equal(t, 1, q.Enqueue("p1"))
	assert.Equal(t, 1, q.Enqueue("p1"))
	assert.Equal(t, 1, q.Len())
}

func TestEnqueueOrdersFIFO(t *testing.T) {
	q := newTestQueue()

	assert.Equal(t, 1, q.Enqueue("p1"))
	assert.Equal(t, 2, q.Enqueue("p2"))
	assert.Equal(t, 3, q.Enqueue("p3"))

	// Re-enqueueing never moves a party.
	assert.Equal(t, 2, q.Enqueue("p2"))
}

func TestRemoveShiftsPositions(t *testing.T) {
	q := newTestQueue()
	q.Enqueue("p1")
	q.Enqueue("p2")

	q.Remove("p1")

	assert.False(t, q.Contains("p1"))
	assert.Equal(t, 1, q.Position("p2"))
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	q := newTestQueue()
	q.Enqueue("p1")

	q.Remove("ghost")

	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 1, q.Position("p1"))
}

func TestPositionOfAbsentPartyIsZero(t *testing.T) {
	q := newTestQueue()
	assert.Equal(t, 0, q.Position("nobody"))
}

func TestQueueMutationsNotifyObservers(t *testing.T) {
	log := logger.NewLogger(context.Background(), false)
	feed := NewFeed(log)
	q := NewHandoverQueue(feed)

	ch, id := feed.Subscribe()
	defer feed.Unsubscribe(id)

	q.Enqueue("p1")
	q.Remove("p1")

	// Two mutations, each pushing a list event and a conversation event.
	events := 0
	for len(ch) > 0 {
		<-ch
		events++
	}
	assert.Equal(t, 4, events)
}
