package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"leadcapture/internal/delivery/http/helpers"
	"leadcapture/internal/domain"
)

// RegistrationRequest is the shared form body for public and assisted
// registration submissions. The public path additionally requires email and
// location; the assisted path accepts the lead-capture extras and an explicit
// bypass_time_gate flag.
type RegistrationRequest struct {
	Name             string   `json:"name"`
	PhoneNumber      string   `json:"phone_number"`
	Email            string   `json:"email"`
	Location         string   `json:"location"`
	CustomerType     string   `json:"customer_type"`
	Organization     string   `json:"organization"`
	SelectedProducts []string `json:"selected_products"`
	Rating           *int     `json:"rating"`
	ImageBase64      string   `json:"image_base64"`
	BypassTimeGate   bool     `json:"bypass_time_gate"`
}

// Validate implements Validator. Field-presence rules shared by both paths;
// the service re-checks everything, this just gives earlier, cheaper 400s.
func (r RegistrationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.PhoneNumber) == "" {
		errs = append(errs, "phone_number is required")
	}
	if len(r.SelectedProducts) == 0 {
		errs = append(errs, "selected_products must have at least one entry")
	}
	if r.Rating != nil && (*r.Rating < 1 || *r.Rating > 5) {
		errs = append(errs, "rating must be between 1 and 5")
	}
	return errs
}

func (r RegistrationRequest) toForm() *domain.RegistrationForm {
	return &domain.RegistrationForm{
		Name:             r.Name,
		PhoneNumber:      r.PhoneNumber,
		Email:            r.Email,
		Location:         r.Location,
		CustomerType:     r.CustomerType,
		Organization:     r.Organization,
		SelectedProducts: r.SelectedProducts,
		Rating:           r.Rating,
		ImageBase64:      r.ImageBase64,
	}
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitRegistration godoc
// @Summary Submit a public registration for an event
// @Description Registers an attendee through the public form. The event's time gate is enforced; after the window closes this returns 409. A resubmission with the same phone number replaces the earlier record. Notification and email receipt outcomes are reported in the response, never as request failures.
// @Tags public
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param registration body RegistrationRequest true "Registration form"
// @Success 201 {object} helpers.APIResponse "data contains the submit outcome"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: registration_closed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /public/events/{eventID}/registrations [post]
func (c *RegistrationController) SubmitRegistration(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req RegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	outcome, err := c.Service.SubmitRegistration(r.Context(), eventID, req.toForm())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, outcome)
}

// SubmitAssistedRegistration godoc
// @Summary Submit an assisted registration for an event
// @Description Registers a lead captured by staff on behalf of an attendee. Email and location are optional here, and bypass_time_gate may be set to record a lead after the event window has closed.
// @Tags registrations
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param registration body RegistrationRequest true "Registration form"
// @Success 201 {object} helpers.APIResponse "data contains the submit outcome"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: registration_closed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) SubmitAssistedRegistration(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req RegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	outcome, err := c.Service.SubmitAssistedRegistration(r.Context(), eventID, req.toForm(), req.BypassTimeGate)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, outcome)
}

// ListRegistrations godoc
// @Summary List registrations for an event
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the registrations"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [get]
func (c *RegistrationController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	registrations, err := c.Service.ListRegistrations(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, registrations)
}
