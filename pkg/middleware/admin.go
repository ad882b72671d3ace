package middleware

import (
	"net/http"

	"cafeteria-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminKey guards the admin surface with a shared key. Only the bcrypt hash
// of the key is configured; the request carries the plain key in X-Admin-Key.
// Identities come from the provider and carry no role claim, so there is no
// per-user admin flag to check instead.
func AdminKey(config utils.AdminConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.KeyHash == "" {
				logger.Warn("Admin key hash not configured, admin route rejected",
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access not configured")
				return
			}

			key := r.Header.Get("X-Admin-Key")
			if key == "" {
				utils.ResponseForbidden(w, "Admin key required")
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(config.KeyHash), []byte(key)); err != nil {
				logger.Warn("Admin key rejected",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseForbidden(w, "Invalid admin key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
