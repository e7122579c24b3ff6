package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name            string
		allowedOrigins  []string
		origin          string
		method          string
		wantStatus      int
		wantAllowOrigin string
	}{
		{
			name:            "allowed origin gets header",
			allowedOrigins:  []string{"https://events.example.com"},
			origin:          "https://events.example.com",
			method:          http.MethodGet,
			wantStatus:      http.StatusOK,
			wantAllowOrigin: "https://events.example.com",
		},
		{
			name:            "trailing slash in config is trimmed",
			allowedOrigins:  []string{"https://events.example.com/"},
			origin:          "https://events.example.com",
			method:          http.MethodGet,
			wantStatus:      http.StatusOK,
			wantAllowOrigin: "https://events.example.com",
		},
		{
			name:           "unknown origin gets no header",
			allowedOrigins: []string{"https://events.example.com"},
			origin:         "https://evil.example.com",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
		},
		{
			name:            "wildcard echoes any origin",
			allowedOrigins:  []string{"*"},
			origin:          "https://microsite.example.net",
			method:          http.MethodGet,
			wantStatus:      http.StatusOK,
			wantAllowOrigin: "https://microsite.example.net",
		},
		{
			name:            "preflight for allowed origin",
			allowedOrigins:  []string{"https://events.example.com"},
			origin:          "https://events.example.com",
			method:          http.MethodOptions,
			wantStatus:      http.StatusNoContent,
			wantAllowOrigin: "https://events.example.com",
		},
		{
			name:           "preflight for unknown origin carries no headers",
			allowedOrigins: []string{"https://events.example.com"},
			origin:         "https://evil.example.com",
			method:         http.MethodOptions,
			wantStatus:     http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORS(tt.allowedOrigins, next)
			req := httptest.NewRequest(tt.method, "http://test/events", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllowOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
			if tt.method == http.MethodOptions && tt.wantAllowOrigin != "" {
				assert.Equal(t, corsAllowMethods, rr.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}
