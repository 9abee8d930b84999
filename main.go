package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"hrbot-connector/internal/config"
	Iservices "hrbot-connector/internal/domain/interfaces/services"
	"hrbot-connector/internal/infra/dispatch"
	"hrbot-connector/internal/infra/handlers"
	"hrbot-connector/internal/infra/logger"
	"hrbot-connector/internal/infra/notifier"
	"hrbot-connector/internal/infra/provider"
	"hrbot-connector/internal/infra/routes"
	"hrbot-connector/internal/infra/services"
	"hrbot-connector/internal/middleware"

	"github.com/gorilla/mux"
)

func main() {
	config.LoadEnv()

	ctx := context.Background()
	log := logger.NewLogger(ctx, true)

	httpClient := http.Client{Timeout: 30 * time.Second}
	whatsAppProvider := provider.NewMetaWhatsAppProvider(log, &httpClient)

	minGap := time.Duration(config.GetEnvInt("MIN_GAP_MS", 900)) * time.Millisecond
	dispatchQueue := dispatch.NewQueue(log, minGap)

	mailNotifier := notifier.NewMailNotifier(log)
	if err := mailNotifier.Verify(); err != nil {
		log.Warn(fmt.Sprintf("SMTP verify failed: %v", err))
	} else {
		log.Info("SMTP verify OK")
	}

	feed := services.NewFeed(log)
	convos := services.NewConversationLog(feed)
	store := services.NewSessionStore()
	queue := services.NewHandoverQueue(feed)
	timers := services.NewTimerRegistry()

	var botService Iservices.IBotService = services.NewBotService(
		log,
		whatsAppProvider,
		dispatchQueue,
		mailNotifier,
		store,
		queue,
		timers,
		convos,
		feed,
		services.ConfigFromEnv(),
	)

	verifyToken := config.GetEnv("VERIFY_TOKEN")

	webhookHandlers := handlers.NewWebhookHandlers(log, botService, whatsAppProvider, mailNotifier, verifyToken)
	adminHandlers := handlers.NewAdminHandlers(log, botService, feed)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	routes := routes.NewRoutes(
		router,
		webhookHandlers,
		adminHandlers,
	)

	routes.Init()

	port := config.GetEnvOr("PORT", "3000")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}
