package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"hrbot-connector/internal/config"
	"hrbot-connector/internal/domain/dto"
	"hrbot-connector/internal/domain/entities"
	Iservices "hrbot-connector/internal/domain/interfaces/services"
	"hrbot-connector/internal/infra/logger"
	"hrbot-connector/internal/infra/notifier"
	"hrbot-connector/internal/infra/provider"
)

var digitsOnly = regexp.MustCompile(`\D`)

type WebhookHandlers struct {
	Logger      *logger.Logger
	BotService  Iservices.IBotService
	Provider    provider.IWhatsAppProvider
	Notifier    notifier.INotifier
	VerifyToken string
}

func NewWebhookHandlers(log *logger.Logger, bot Iservices.IBotService, whatsAppProvider provider.IWhatsAppProvider, operatorNotifier notifier.INotifier, verifyToken string) *WebhookHandlers {
	return &WebhookHandlers{
		Logger:      log,
		BotService:  bot,
		Provider:    whatsAppProvider,
		Notifier:    operatorNotifier,
		VerifyToken: verifyToken,
	}
}

// Verify answers the Meta webhook subscription handshake.
func (th *WebhookHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && token == th.VerifyToken {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, challenge)
		return
	}
	w.WriteHeader(http.StatusForbidden)
}

// Inbound receives the Meta webhook POST for user messages. The provider is
// always answered 200; processing happens asynchronously.
func (th *WebhookHandlers) Inbound(w http.ResponseWriter, r *http.Request) {
	var envelope dto.WebhookEnvelope
	err := json.NewDecoder(r.Body).Decode(&envelope)
	if err != nil {
		// Always 200: a non-2xx answer makes Meta redeliver the same broken
		// payload.
		th.Logger.Warn(fmt.Sprintf("Ignoring undecodable webhook body: %v", err))
		w.WriteHeader(http.StatusOK)
		return
	}
	defer r.Body.Close()

	msg := firstMessage(&envelope)
	if msg == nil {
		// Delivery receipts and status updates arrive on the same route.
		w.WriteHeader(http.StatusOK)
		return
	}

	ev := entities.InboundEvent{
		WaID:      msg.From,
		Text:      msg.BodyText(),
		HasImage:  msg.Image != nil,
		Timestamp: time.Now(),
	}

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				th.Logger.Error(fmt.Sprintf("Recovered from panic: %v", rec))
			}
		}()
		th.BotService.HandleInbound(ev)
	}()

	w.WriteHeader(http.StatusOK)
}

// TestMessage opens a conversation with a test number via the hello_world
// template. Pass ?to=5511999999999 to target another authorized number.
func (th *WebhookHandlers) TestMessage(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("to")
	if raw == "" {
		raw = config.GetEnvOr("TEST_NUMBER", "")
	}
	to := digitsOnly.ReplaceAllString(raw, "")
	if to == "" {
		http.Error(w, "missing ?to= or TEST_NUMBER", http.StatusBadRequest)
		return
	}

	th.Logger.Info(fmt.Sprintf("Sending hello_world template to %s", to))
	if err := th.Provider.SendTemplateMessage(to, "hello_world"); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to send template: %v", err))
		http.Error(w, "Failed to send template message", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "Template message (hello_world) sent. Check WhatsApp and the logs.")
}

// TestEmail fires a probe notification to the operator channel.
func (th *WebhookHandlers) TestEmail(w http.ResponseWriter, r *http.Request) {
	if err := th.Notifier.Notify("teste", 0); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to send test email: %v", err))
		http.Error(w, "Failed to send test email", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "Test email sent.")
}

// firstMessage digs the first user message out of the webhook envelope.
func firstMessage(envelope *dto.WebhookEnvelope) *dto.InboundMessage {
	if len(envelope.Entry) == 0 {
		return nil
	}
	entry := envelope.Entry[0]
	if len(entry.Changes) == 0 {
		return nil
	}
	change := entry.Changes[0]
	if len(change.Value.Messages) == 0 {
		return nil
	}
	return &change.Value.Messages[0]
}
