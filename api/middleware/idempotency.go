package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/juanfvasquez/pedidos-backend/api/responses"
	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
	redisclient "github.com/juanfvasquez/pedidos-backend/pkg/redis"
)

const (
	idempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 24 * time.Hour
)

// Idempotency rejects replays of mutation requests carrying the same
// Idempotency-Key. The header is optional; requests without it pass
// through. A nil store disables the check entirely.
func Idempotency(store redisclient.IdempotencyStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || r.Method == http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			scope := fmt.Sprintf("%s:%s", r.Method, r.URL.Path)
			if p := PrincipalFromContext(r.Context()); p != nil {
				scope = fmt.Sprintf("%s:%d", scope, p.UserID)
			}

			fresh, err := store.SetNX(r.Context(), store.IdempotencyKey(scope, key), time.Now().UTC().Format(time.RFC3339), idempotencyTTL)
			if err != nil {
				responses.WriteError(w, r, logg, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency key"))
				return
			}
			if !fresh {
				responses.WriteError(w, r, logg, pkgerrors.New(pkgerrors.CodeConflict, "request with this idempotency key was already processed"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
