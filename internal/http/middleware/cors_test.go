package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		preflight   string
		wantOrigin  string
		wantCode    int
		wantReached bool
	}{
		{
			name:        "listed origin",
			allowed:     []string{"https://app.example.com"},
			method:      http.MethodGet,
			origin:      "https://app.example.com",
			wantOrigin:  "https://app.example.com",
			wantCode:    http.StatusOK,
			wantReached: true,
		},
		{
			name:        "unknown origin still served without headers",
			allowed:     []string{"https://app.example.com"},
			method:      http.MethodGet,
			origin:      "https://evil.example",
			wantCode:    http.StatusOK,
			wantReached: true,
		},
		{
			name:        "wildcard echoes origin",
			allowed:     []string{"*"},
			method:      http.MethodPost,
			origin:      "https://kiosk.example",
			wantOrigin:  "https://kiosk.example",
			wantCode:    http.StatusOK,
			wantReached: true,
		},
		{
			name:        "entries are trimmed and blanks ignored",
			allowed:     []string{" https://app.example.com ", ""},
			method:      http.MethodGet,
			origin:      "https://app.example.com",
			wantOrigin:  "https://app.example.com",
			wantCode:    http.StatusOK,
			wantReached: true,
		},
		{
			name:       "preflight short circuits",
			allowed:    []string{"https://app.example.com"},
			method:     http.MethodOptions,
			origin:     "https://app.example.com",
			preflight:  http.MethodPatch,
			wantOrigin: "https://app.example.com",
			wantCode:   http.StatusNoContent,
		},
		{
			name:        "options without request method is passed through",
			allowed:     []string{"https://app.example.com"},
			method:      http.MethodOptions,
			origin:      "https://app.example.com",
			wantOrigin:  "https://app.example.com",
			wantCode:    http.StatusOK,
			wantReached: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/api/appointments", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight != "" {
				req.Header.Set("Access-Control-Request-Method", tt.preflight)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantReached, reached)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantOrigin != "" {
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-User-Id")
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
				assert.Equal(t, "X-Request-Id", rec.Header().Get("Access-Control-Expose-Headers"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Headers"))
			}
		})
	}
}
