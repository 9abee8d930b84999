package services

import (
	"hrbot-connector/internal/domain/dto"
	"hrbot-connector/internal/domain/entities"
)

// IBotService is the surface the transport layer drives: webhook events in,
// admin control operations on top.
type IBotService interface {
	HandleInbound(ev entities.InboundEvent)

	ListConversations() []dto.ConversationSummary
	GetConversation(waID string) dto.ConversationDetail
	MarkRead(waID string)
	Assume(waID string)
	End(waID string)
	SendAsHuman(waID, text string) error
}
