package dto

import (
	"time"

	"hrbot-connector/internal/domain/entities"
)

// ConversationSummary is one row of the admin conversation list.
type ConversationSummary struct {
	WaID              string     `json:"waId"`
	Name              string     `json:"name"`
	DisplayPhone      string     `json:"displayPhone"`
	State             string     `json:"state"`
	InQueue           bool       `json:"inQueue"`
	QueuePos          int        `json:"queuePos"`
	Unread            int        `json:"unread"`
	LastMessageAt     *time.Time `json:"lastMessageAt"`
	LastUserMessageAt *time.Time `json:"lastUserMessageAt"`
}

// ConversationDetail is the full view of a single conversation.
type ConversationDetail struct {
	ConversationSummary
	Messages []entities.Message `json:"messages"`
}

type ConversationsResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
}

type ConversationResponse struct {
	Conversation ConversationDetail `json:"conversation"`
}

type HumanMessageRequest struct {
	Text string `json:"text"`
}
