package routes

import (
	"encoding/json"
	"net/http"

	"hrbot-connector/internal/infra/handlers"

	"github.com/gorilla/mux"
)

type Routes struct {
	Mux            *mux.Router
	WebhookHandler *handlers.WebhookHandlers
	AdminHandler   *handlers.AdminHandlers
}

func NewRoutes(mux *mux.Router, webhookHandler *handlers.WebhookHandlers, adminHandler *handlers.AdminHandlers) *Routes {
	return &Routes{mux, webhookHandler, adminHandler}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/webhook", r.WebhookHandler.Verify).Methods(http.MethodGet)
	r.Mux.HandleFunc("/webhook", r.WebhookHandler.Inbound).Methods(http.MethodPost)

	r.Mux.HandleFunc("/test-message", r.WebhookHandler.TestMessage).Methods(http.MethodGet)
	r.Mux.HandleFunc("/test-email", r.WebhookHandler.TestEmail).Methods(http.MethodGet)

	r.Mux.HandleFunc("/admin/events", r.AdminHandler.Events).Methods(http.MethodGet)
	r.Mux.HandleFunc("/admin/api/conversations", r.AdminHandler.Conversations).Methods(http.MethodGet)
	r.Mux.HandleFunc("/admin/api/conversation/{waId}", r.AdminHandler.Conversation).Methods(http.MethodGet)
	r.Mux.HandleFunc("/admin/api/conversation/{waId}/mark-read", r.AdminHandler.MarkRead).Methods(http.MethodPost)
	r.Mux.HandleFunc("/admin/api/conversation/{waId}/assume", r.AdminHandler.Assume).Methods(http.MethodPost)
	r.Mux.HandleFunc("/admin/api/conversation/{waId}/end", r.AdminHandler.End).Methods(http.MethodPost)
	r.Mux.HandleFunc("/admin/api/conversation/{waId}/message", r.AdminHandler.SendMessage).Methods(http.MethodPost)

	r.Mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("HR bot connector is running."))
	}).Methods(http.MethodGet)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}
