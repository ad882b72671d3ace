package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cafeteria-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		keyHash    string
		header     string
		wantStatus int
	}{
		{name: "valid key", keyHash: string(hash), header: "super-secret", wantStatus: http.StatusNoContent},
		{name: "wrong key", keyHash: string(hash), header: "guess", wantStatus: http.StatusForbidden},
		{name: "missing key", keyHash: string(hash), header: "", wantStatus: http.StatusForbidden},
		{name: "unconfigured hash", keyHash: "", header: "super-secret", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := AdminKey(utils.AdminConfig{KeyHash: tt.keyHash}, zap.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
			if tt.header != "" {
				req.Header.Set("X-Admin-Key", tt.header)
			}

			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
