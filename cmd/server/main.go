// cmd/server is the application entry point. It wires the repositories,
// adapters, and services together and runs the HTTP server until a
// shutdown signal arrives.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"leadcapture/config"
	_ "leadcapture/docs"
	"leadcapture/internal/adapters/email"
	"leadcapture/internal/adapters/messaging"
	"leadcapture/internal/adapters/qr"
	"leadcapture/internal/adapters/storage"
	httpdelivery "leadcapture/internal/delivery/http"
	"leadcapture/internal/delivery/http/controllers"
	"leadcapture/internal/delivery/http/middleware"
	"leadcapture/internal/repository/postgres"
	"leadcapture/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title Lead Capture API
// @version 1.0
// @description Event registration and lead capture backend: time-boxed events, public registrations keyed by phone number, WhatsApp notifications, and flat exports.
// @BasePath /
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)

	// Adapters
	sender := messaging.NewSender(messaging.Config{
		Provider:    cfg.Messaging.Provider,
		APIURL:      cfg.Messaging.APIURL,
		PhoneID:     cfg.Messaging.PhoneID,
		AccessToken: cfg.Messaging.AccessToken,
	}, nil, logger)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:        cfg.Email.Provider,
		FromAddress:     cfg.Email.FromAddress,
		FromName:        cfg.Email.FromName,
		Region:          cfg.Email.SESRegion,
		AccessKeyID:     cfg.Email.SESAccessKeyID,
		SecretAccessKey: cfg.Email.SESSecretKey,
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	qrGenerator := qr.NewHTTPGenerator(nil, cfg.Artifacts.QRAPIURL)
	artifactStore := storage.NewArtifactStore(storage.Config{
		Bucket:          cfg.Artifacts.Bucket,
		Region:          cfg.Artifacts.Region,
		AccessKeyID:     cfg.Artifacts.AccessKeyID,
		SecretAccessKey: cfg.Artifacts.SecretKey,
		PublicURLBase:   cfg.Artifacts.PublicURLBase,
	}, logger)

	// Services
	dispatcher := services.NewNotificationDispatcher(sender, cfg.Messaging.TemplateName, cfg.Messaging.LanguageCode, logger)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	eventService := services.NewEventService(eventRepo, registrationRepo, qrGenerator, artifactStore, cfg.PublicBaseURL, logger, serviceTimeout)
	registrationService := services.NewRegistrationService(eventRepo, registrationRepo, dispatcher, emailService, cfg.DefaultCountryCode, logger, serviceTimeout)
	exportService := services.NewExportService(registrationRepo, serviceTimeout)
	inbox := services.NewMessageInbox(cfg.InboxCapacity)

	// Controllers and router
	eventController := controllers.NewEventController(logger, eventService)
	registrationController := controllers.NewRegistrationController(logger, registrationService)
	exportController := controllers.NewExportController(logger, exportService)
	webhookController := controllers.NewWebhookController(logger, inbox, cfg.WebhookVerifyToken)

	mux := httpdelivery.NewRouter(eventController, registrationController, exportController, webhookController)

	var allowedOrigins []string
	if cfg.CORSAllowedOrigins != "" {
		allowedOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	}
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
