package middleware

import (
	"fmt"
	"net/http"

	"github.com/juanfvasquez/pedidos-backend/api/responses"
	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
)

// Recoverer converts a handler panic into a 500 response instead of
// tearing down the connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := pkgerrors.Wrap(
						pkgerrors.CodeInternal,
						fmt.Errorf("panic: %v", rec),
						"unhandled panic",
					)
					responses.WriteError(w, r, logg, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
