package middleware

import (
	"context"
	"net/http"

	"github.com/juanfvasquez/pedidos-backend/internal/authz"
)

type ctxKey string

const (
	ctxKeyPrincipal ctxKey = "principal"
	ctxKeySessionID ctxKey = "session_id"
	ctxKeyRequestID ctxKey = "request_id"
)

// PrincipalFromContext returns the authenticated principal, or nil for
// anonymous requests.
func PrincipalFromContext(ctx context.Context) *authz.Principal {
	p, _ := ctx.Value(ctxKeyPrincipal).(*authz.Principal)
	return p
}

// SessionIDFromContext returns the jti behind the request's session token.
func SessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(ctxKeySessionID).(string)
	return sid
}

// RequestIDFromContext returns the request correlation id.
func RequestIDFromContext(ctx context.Context) string {
	rid, _ := ctx.Value(ctxKeyRequestID).(string)
	return rid
}

func withPrincipal(r *http.Request, p *authz.Principal, sessionID string) *http.Request {
	ctx := context.WithValue(r.Context(), ctxKeyPrincipal, p)
	ctx = context.WithValue(ctx, ctxKeySessionID, sessionID)
	return r.WithContext(ctx)
}
