package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadcapture/internal/delivery/http/helpers"
	"leadcapture/internal/domain"
	"leadcapture/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExportService implements services.ExportService for handler tests.
type fakeExportService struct {
	err         error
	rows        []services.ExportRow
	lastEventID string
}

func (f *fakeExportService) ExportRegistrations(ctx context.Context, eventID string) ([]services.ExportRow, error) {
	f.lastEventID = eventID
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func TestExportController_ExportRegistrations(t *testing.T) {
	tests := []struct {
		name        string
		fakeErr     error
		wantStatus  int
		wantErrCode string
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "no registrations", fakeErr: domain.ErrNoRegistrations, wantStatus: http.StatusNotFound, wantErrCode: helpers.ErrCodeNoRegistrations},
		{name: "service error", fakeErr: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantErrCode: helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeExportService{
				err: tt.fakeErr,
				rows: []services.ExportRow{
					{SrNo: 1, Name: "Asha", PhoneNumber: "+915550001111", SelectedProducts: "Shampoo, Serum", RegisteredAt: "01/06/2025 10:30"},
				},
			}
			ctrl := NewExportController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "/events/ev-1/export", nil)
			req.SetPathValue("eventID", "ev-1")
			rr := httptest.NewRecorder()

			ctrl.ExportRegistrations(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				assert.Equal(t, "ev-1", fake.lastEventID)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var rows []services.ExportRow
				require.NoError(t, json.Unmarshal(dataBytes, &rows))
				require.Len(t, rows, 1)
				assert.Equal(t, 1, rows[0].SrNo)
				assert.Equal(t, "Shampoo, Serum", rows[0].SelectedProducts)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
		})
	}
}
