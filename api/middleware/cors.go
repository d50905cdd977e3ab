package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/juanfvasquez/pedidos-backend/pkg/config"
)

// CORS builds the cross-origin policy from configuration. Credentials stay
// enabled because the session rides in a cookie.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id", "Idempotency-Key"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
