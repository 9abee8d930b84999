package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hrbot-connector/internal/domain/dto"
	Iservices "hrbot-connector/internal/domain/interfaces/services"
	"hrbot-connector/internal/infra/logger"
	"hrbot-connector/internal/infra/services"

	"github.com/gorilla/mux"
)

type AdminHandlers struct {
	Logger     *logger.Logger
	BotService Iservices.IBotService
	Feed       *services.Feed
}

func NewAdminHandlers(log *logger.Logger, bot Iservices.IBotService, feed *services.Feed) *AdminHandlers {
	return &AdminHandlers{Logger: log, BotService: bot, Feed: feed}
}

func (th *AdminHandlers) Conversations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, dto.ConversationsResponse{Conversations: th.BotService.ListConversations()})
}

func (th *AdminHandlers) Conversation(w http.ResponseWriter, r *http.Request) {
	waID := pathWaID(r)
	if waID == "" {
		http.Error(w, "missing waId", http.StatusBadRequest)
		return
	}
	writeJSON(w, dto.ConversationResponse{Conversation: th.BotService.GetConversation(waID)})
}

func (th *AdminHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	waID := pathWaID(r)
	if waID == "" {
		http.Error(w, "missing waId", http.StatusBadRequest)
		return
	}
	th.BotService.MarkRead(waID)
	writeJSON(w, map[string]bool{"ok": true})
}

func (th *AdminHandlers) Assume(w http.ResponseWriter, r *http.Request) {
	waID := pathWaID(r)
	if waID == "" {
		http.Error(w, "missing waId", http.StatusBadRequest)
		return
	}
	th.BotService.Assume(waID)
	writeJSON(w, map[string]bool{"ok": true})
}

func (th *AdminHandlers) End(w http.ResponseWriter, r *http.Request) {
	waID := pathWaID(r)
	if waID == "" {
		http.Error(w, "missing waId", http.StatusBadRequest)
		return
	}
	th.BotService.End(waID)
	writeJSON(w, map[string]bool{"ok": true})
}

func (th *AdminHandlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	waID := pathWaID(r)
	if waID == "" {
		http.Error(w, "missing waId", http.StatusBadRequest)
		return
	}

	var req dto.HumanMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Error to process JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := th.BotService.SendAsHuman(waID, strings.TrimSpace(req.Text)); err != nil {
		writeJSONStatus(w, http.StatusBadRequest, map[string]string{"error": "empty_text"})
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

// Events streams live-update notifications to the admin panel over SSE.
// Subscriptions are per-connection and volatile; there is no replay.
func (th *AdminHandlers) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("Connection", "keep-alive")

	ch, id := th.Feed.Subscribe()
	defer th.Feed.Unsubscribe(id)

	sseSend(w, "hello", map[string]any{"ok": true, "at": time.Now()})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case n, open := <-ch:
			if !open {
				return
			}
			sseSend(w, n.Event, n)
			flusher.Flush()
		}
	}
}

func sseSend(w http.ResponseWriter, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}

func pathWaID(r *http.Request) string {
	return strings.TrimSpace(mux.Vars(r)["waId"])
}

func writeJSON(w http.ResponseWriter, body any) {
	writeJSONStatus(w, http.StatusOK, body)
}

func writeJSONStatus(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
