package entities

import "time"

// ConversationState identifies where a party currently is in the bot flow.
// Absence of an entry in the session store means StateIdle.
type ConversationState string

const (
	StateIdle                ConversationState = "idle"
	StateEnded               ConversationState = "ended"
	StateAwaitMainChoice     ConversationState = "await_main_choice"
	StateAwaitPontoChoice    ConversationState = "await_ponto_choice"
	StateAwaitFolhaChoice    ConversationState = "await_folha_choice"
	StateAwaitBackMenu       ConversationState = "await_back_menu"
	StateAwaitHoleriteInput  ConversationState = "await_holerite_question"
	StateAwaitHumanName      ConversationState = "await_human_name"
	StateHandover            ConversationState = "handover"
	StateAwaitHandoverChoice ConversationState = "await_handover_choice"
	StateManual              ConversationState = "manual"
)

// Author is who produced a conversation message.
type Author string

const (
	AuthorUser  Author = "user"
	AuthorBot   Author = "bot"
	AuthorHuman Author = "human"
)

// InboundEvent is the normalized form of a provider webhook message.
type InboundEvent struct {
	WaID      string
	Text      string
	HasImage  bool
	Timestamp time.Time
}

// Message is one entry in a conversation record.
type Message struct {
	Timestamp time.Time `json:"ts"`
	From      Author    `json:"from"`
	Text      string    `json:"text"`
}

// ConversationRecord is the append-only per-party history kept for the
// admin panel. Created lazily on first reference, never deleted.
type ConversationRecord struct {
	WaID              string     `json:"waId"`
	Messages          []Message  `json:"messages"`
	Unread            int        `json:"unread"`
	LastMessageAt     *time.Time `json:"lastMessageAt"`
	LastUserMessageAt *time.Time `json:"lastUserMessageAt"`
}

// MenuContext remembers the last menu shown to a party. It is a short-lived
// recovery hint, not authoritative state.
type MenuContext struct {
	Menu string
	At   time.Time
}

// TopicSession tracks the partial two-part input (question text + payslip
// image) collected during the holerite flow. Exists only while the party is
// in StateAwaitHoleriteInput.
type TopicSession struct {
	HasText  bool
	HasImage bool
}
