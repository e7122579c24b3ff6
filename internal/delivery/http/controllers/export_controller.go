package controllers

import (
	"log/slog"
	"net/http"

	"leadcapture/internal/delivery/http/helpers"
	"leadcapture/internal/services"
)

type ExportController struct {
	Logger  *slog.Logger
	Service services.ExportService
}

func NewExportController(logger *slog.Logger, svc services.ExportService) *ExportController {
	return &ExportController{
		Logger:  logger,
		Service: svc,
	}
}

// ExportRegistrations godoc
// @Summary Export an event's registrations as flat rows
// @Description Returns the registrations projected into ordered spreadsheet rows (serial number, name, phone, products joined with ", ", dd/MM/yyyy HH:mm timestamps). Sheet file generation is left to the caller.
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the export rows"
// @Failure 404 {object} helpers.APIResponse "error.code: no_registrations"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/export [get]
func (c *ExportController) ExportRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	rows, err := c.Service.ExportRegistrations(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}
