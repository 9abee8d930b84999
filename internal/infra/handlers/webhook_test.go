package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hrbot-connector/internal/domain/dto"
	"hrbot-connector/internal/domain/entities"
	"hrbot-connector/internal/infra/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBotService struct {
	mu     sync.Mutex
	events []entities.InboundEvent
}

func (f *fakeBotService) HandleInbound(ev entities.InboundEvent) {
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
}

func (f *fakeBotService) ListConversations() []dto.ConversationSummary { return nil }
func (f *fakeBotService) GetConversation(string) dto.ConversationDetail {
	return dto.ConversationDetail{}
}
func (f *fakeBotService) MarkRead(string)                  {}
func (f *fakeBotService) Assume(string)                    {}
func (f *fakeBotService) End(string)                       {}
func (f *fakeBotService) SendAsHuman(string, string) error { return nil }

func (f *fakeBotService) received() []entities.InboundEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entities.InboundEvent(nil), f.events...)
}

type fakeProvider struct {
	mu        sync.Mutex
	templates []string
}

func (f *fakeProvider) SendTextMessage(to, message string) error { return nil }

func (f *fakeProvider) SendTemplateMessage(to, templateName string) error {
	f.mu.Lock()
	f.templates = append(f.templates, to+":"+templateName)
	f.mu.Unlock()
	return nil
}

type fakeNotifier struct{ notified int }

func (f *fakeNotifier) Notify(waID string, position int) error {
	f.notified++
	return nil
}

func newWebhookHandlers(bot *fakeBotService) *WebhookHandlers {
	log := logger.NewLogger(context.Background(), false)
	return NewWebhookHandlers(log, bot, &fakeProvider{}, &fakeNotifier{}, "segredo")
}

func TestVerifyAnswersChallenge(t *testing.T) {
	h := newWebhookHandlers(&fakeBotService{})

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=segredo&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()

	h.Verify(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12345", rec.Body.String())
}

func TestVerifyRejectsWrongToken(t *testing.T) {
	h := newWebhookHandlers(&fakeBotService{})

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=errado&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()

	h.Verify(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestInboundForwardsTextMessage(t *testing.T) {
	bot := &fakeBotService{}
	h := newWebhookHandlers(bot)

	body := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "1",
			"changes": [{
				"field": "messages",
				"value": {
					"messaging_product": "whatsapp",
					"messages": [{
						"from": "5511987654321",
						"id": "wamid.x",
						"type": "text",
						"text": {"body": "olá"}
					}]
				}
			}]
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Inbound(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Eventually(t, func() bool { return len(bot.received()) == 1 },
		2*time.Second, 5*time.Millisecond)
	ev := bot.received()[0]
	assert.Equal(t, "5511987654321", ev.WaID)
	assert.Equal(t, "olá", ev.Text)
	assert.False(t, ev.HasImage)
}

func TestInboundForwardsImageFlag(t *testing.T) {
	bot := &fakeBotService{}
	h := newWebhookHandlers(bot)

	body := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{
						"from": "5511987654321",
						"type": "image",
						"image": {"id": "media1", "mime_type": "image/jpeg"}
					}]
				}
			}]
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Inbound(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Eventually(t, func() bool { return len(bot.received()) == 1 },
		2*time.Second, 5*time.Millisecond)
	ev := bot.received()[0]
	assert.True(t, ev.HasImage)
	assert.Equal(t, "", ev.Text)
}

func TestInboundExtractsInteractiveReply(t *testing.T) {
	bot := &fakeBotService{}
	h := newWebhookHandlers(bot)

	body := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{
						"from": "5511987654321",
						"type": "interactive",
						"interactive": {
							"type": "button_reply",
							"button_reply": {"id": "opt1", "title": "1"}
						}
					}]
				}
			}]
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Inbound(rec, req)

	require.Eventually(t, func() bool { return len(bot.received()) == 1 },
		2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "1", bot.received()[0].Text)
}

func TestInboundAcksStatusUpdatesWithoutDispatching(t *testing.T) {
	bot := &fakeBotService{}
	h := newWebhookHandlers(bot)

	body := `{"entry": [{"changes": [{"value": {"statuses": [{"id": "wamid.x"}]}}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Inbound(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, bot.received())
}

func TestInboundAcksMalformedJSONWithoutDispatching(t *testing.T) {
	bot := &fakeBotService{}
	h := newWebhookHandlers(bot)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()

	h.Inbound(rec, req)

	// Always 200, or Meta keeps redelivering the same broken payload.
	assert.Equal(t, http.StatusOK, rec.Code)
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, bot.received())
}

func TestTestMessageRequiresTarget(t *testing.T) {
	h := newWebhookHandlers(&fakeBotService{})

	req := httptest.NewRequest(http.MethodGet, "/test-message", nil)
	rec := httptest.NewRecorder()

	h.TestMessage(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTestMessageSendsHelloWorldTemplate(t *testing.T) {
	bot := &fakeBotService{}
	log := logger.NewLogger(context.Background(), false)
	prov := &fakeProvider{}
	h := NewWebhookHandlers(log, bot, prov, &fakeNotifier{}, "segredo")

	req := httptest.NewRequest(http.MethodGet, "/test-message?to=%2B55(11)98765-4321", nil)
	rec := httptest.NewRecorder()

	h.TestMessage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, prov.templates, 1)
	assert.Equal(t, "5511987654321:hello_world", prov.templates[0])
}
