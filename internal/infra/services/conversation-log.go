package services

import (
	"sync"
	"time"

	"hrbot-connector/internal/domain/entities"
)

// ConversationLog is the append-only per-party message history backing the
// admin panel. Records are created lazily on first reference and live for
// the process lifetime.
type ConversationLog struct {
	mu      sync.Mutex
	records map[string]*entities.ConversationRecord
	feed    *Feed
}

func NewConversationLog(feed *Feed) *ConversationLog {
	return &ConversationLog{
		records: make(map[string]*entities.ConversationRecord),
		feed:    feed,
	}
}

func (cl *ConversationLog) record(waID string) *entities.ConversationRecord {
	rec, ok := cl.records[waID]
	if !ok {
		rec = &entities.ConversationRecord{WaID: waID, Messages: []entities.Message{}}
		cl.records[waID] = rec
	}
	return rec
}

// Append adds a message to a party's record. The unread counter moves only
// for party-authored messages. Observers are notified on every append.
func (cl *ConversationLog) Append(waID string, from entities.Author, text string) {
	ts := time.Now()

	cl.mu.Lock()
	rec := cl.record(waID)
	rec.Messages = append(rec.Messages, entities.Message{Timestamp: ts, From: from, Text: text})
	rec.LastMessageAt = &ts
	if from == entities.AuthorUser {
		rec.LastUserMessageAt = &ts
		rec.Unread++
	}
	cl.mu.Unlock()

	cl.feed.NotifyConversation(waID)
	cl.feed.NotifyConversations()
}

// MarkRead zeroes a party's unread counter.
func (cl *ConversationLog) MarkRead(waID string) {
	cl.mu.Lock()
	cl.record(waID).Unread = 0
	cl.mu.Unlock()

	cl.feed.NotifyConversation(waID)
	cl.feed.NotifyConversations()
}

// Record returns a copy of a party's record, creating it when absent. The
// message slice is truncated to the most recent limit entries when limit > 0.
func (cl *ConversationLog) Record(waID string, limit int) entities.ConversationRecord {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	rec := cl.record(waID)
	copied := *rec
	msgs := rec.Messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	copied.Messages = append([]entities.Message(nil), msgs...)
	return copied
}

// WaIDs returns the ids of every known conversation.
func (cl *ConversationLog) WaIDs() []string {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	ids := make([]string, 0, len(cl.records))
	for waID := range cl.records {
		ids = append(ids, waID)
	}
	return ids
}
