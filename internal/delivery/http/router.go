package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"leadcapture/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	exportController *controllers.ExportController,
	webhookController *controllers.WebhookController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Event management
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)
	mux.HandleFunc("PATCH /events/{eventID}", eventController.UpdateEvent)
	mux.HandleFunc("DELETE /events/{eventID}", eventController.DeleteEvent)

	// Public registration form
	mux.HandleFunc("GET /public/events/{eventID}", eventController.GetPublicEvent)
	mux.HandleFunc("POST /public/events/{eventID}/registrations", registrationController.SubmitRegistration)

	// Admin registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", registrationController.SubmitAssistedRegistration)
	mux.HandleFunc("GET /events/{eventID}/registrations", registrationController.ListRegistrations)
	mux.HandleFunc("GET /events/{eventID}/export", exportController.ExportRegistrations)

	// WhatsApp webhook
	mux.HandleFunc("GET /webhook", webhookController.Verify)
	mux.HandleFunc("POST /webhook", webhookController.Receive)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
