package services

import (
	"fmt"
	"sort"

	"hrbot-connector/internal/domain/dto"
	"hrbot-connector/internal/domain/entities"
	phone "hrbot-connector/internal/pkg"
)

// detailMessageLimit bounds how many messages the conversation detail view
// returns.
const detailMessageLimit = 500

// ListConversations returns the admin list view, most recent activity first.
func (b *BotService) ListConversations() []dto.ConversationSummary {
	ids := b.Convos.WaIDs()
	summaries := make([]dto.ConversationSummary, 0, len(ids))
	for _, waID := range ids {
		summaries = append(summaries, b.summary(waID))
	}
	sort.Slice(summaries, func(i, j int) bool {
		a, bb := summaries[i].LastMessageAt, summaries[j].LastMessageAt
		switch {
		case a == nil:
			return false
		case bb == nil:
			return true
		default:
			return a.After(*bb)
		}
	})
	return summaries
}

// GetConversation returns one conversation's full view, creating the record
// lazily like every other reference.
func (b *BotService) GetConversation(waID string) dto.ConversationDetail {
	rec := b.Convos.Record(waID, detailMessageLimit)
	return dto.ConversationDetail{
		ConversationSummary: b.summary(waID),
		Messages:            rec.Messages,
	}
}

// MarkRead zeroes the unread counter for a conversation.
func (b *BotService) MarkRead(waID string) {
	b.Convos.MarkRead(waID)
}

// Assume lets an operator take the conversation over: the party leaves the
// queue, the bot goes fully silent and the inactivity timer stops.
func (b *BotService) Assume(waID string) {
	b.mu.Lock()
	b.Queue.Remove(waID)
	b.setState(waID, entities.StateManual)
	b.Timers.StopInactivity(waID)
	b.Timers.StopEscalation(waID)
	b.Convos.MarkRead(waID)

	name := b.Store.Name(waID)
	greeting := "✅ Atendimento iniciado. Pode me explicar sua dúvida?"
	if name != "" {
		greeting = fmt.Sprintf("✅ Atendimento iniciado, %s. Pode me explicar sua dúvida?", name)
	}
	b.sendHumanText(waID, greeting)
	b.mu.Unlock()
}

// End force-closes a conversation from the admin panel.
func (b *BotService) End(waID string) {
	b.mu.Lock()
	b.Queue.Remove(waID)
	b.setState(waID, entities.StateEnded)
	b.Timers.StopInactivity(waID)
	b.Timers.StopEscalation(waID)
	b.Convos.MarkRead(waID)
	b.sendHumanText(waID, msgThanks)
	b.mu.Unlock()
}

// SendAsHuman relays an operator message through the dispatch queue. A
// conversation not yet owned by a human is forced to manual first.
func (b *BotService) SendAsHuman(waID, text string) error {
	if text == "" {
		return fmt.Errorf("empty message text")
	}

	b.mu.Lock()
	if b.Store.State(waID) != entities.StateManual {
		b.Queue.Remove(waID)
		b.setState(waID, entities.StateManual)
		b.Timers.StopInactivity(waID)
	}
	b.Convos.MarkRead(waID)
	b.sendHumanText(waID, text)
	b.mu.Unlock()

	return nil
}

func (b *BotService) summary(waID string) dto.ConversationSummary {
	rec := b.Convos.Record(waID, 0)
	inQueue := b.Queue.Contains(waID)
	pos := 0
	if inQueue {
		pos = b.Queue.Position(waID)
	}
	return dto.ConversationSummary{
		WaID:              waID,
		Name:              b.Store.Name(waID),
		DisplayPhone:      phone.ToDisplayPhone(waID),
		State:             string(b.Store.State(waID)),
		InQueue:           inQueue,
		QueuePos:          pos,
		Unread:            rec.Unread,
		LastMessageAt:     rec.LastMessageAt,
		LastUserMessageAt: rec.LastUserMessageAt,
	}
}
