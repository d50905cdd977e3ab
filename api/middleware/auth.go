package middleware

import (
	"net/http"
	"strings"

	"github.com/juanfvasquez/pedidos-backend/api/responses"
	"github.com/juanfvasquez/pedidos-backend/internal/authz"
	pkgauth "github.com/juanfvasquez/pedidos-backend/pkg/auth"
	"github.com/juanfvasquez/pedidos-backend/pkg/auth/session"
	"github.com/juanfvasquez/pedidos-backend/pkg/config"
	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
)

// Auth requires a valid session token. The cookie is the primary carrier;
// a Bearer header works for non-browser clients. When a session checker is
// provided, tokens whose jti was revoked are rejected even before expiry.
func Auth(jwtCfg config.JWTConfig, sessionCfg config.SessionConfig, sessions session.Checker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, sessionID, err := resolvePrincipal(r, jwtCfg, sessionCfg, sessions)
			if err != nil {
				responses.WriteError(w, r, logg, err)
				return
			}
			next.ServeHTTP(w, attachPrincipal(r, principal, sessionID, logg))
		})
	}
}

// OptionalAuth resolves the principal when a usable token is present and
// otherwise lets the request through anonymously. It never writes an error.
func OptionalAuth(jwtCfg config.JWTConfig, sessionCfg config.SessionConfig, sessions session.Checker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, sessionID, err := resolvePrincipal(r, jwtCfg, sessionCfg, sessions)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, attachPrincipal(r, principal, sessionID, logg))
		})
	}
}

func resolvePrincipal(r *http.Request, jwtCfg config.JWTConfig, sessionCfg config.SessionConfig, sessions session.Checker) (*authz.Principal, string, error) {
	tokenString := extractToken(r, sessionCfg.CookieName)
	if tokenString == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	claims, err := pkgauth.ParseSessionToken(jwtCfg, tokenString)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session token")
	}

	if sessions != nil && claims.ID != "" {
		alive, err := sessions.HasSession(r.Context(), claims.ID)
		if err != nil {
			return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check session")
		}
		if !alive {
			return nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "session has been revoked")
		}
	}

	principal := &authz.Principal{
		UserID: claims.UserID,
		OpenID: claims.OpenID,
		Role:   claims.Role,
	}
	return principal, claims.ID, nil
}

func extractToken(r *http.Request, cookieName string) string {
	if cookieName != "" {
		if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
			return cookie.Value
		}
	}

	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func attachPrincipal(r *http.Request, p *authz.Principal, sessionID string, logg *logger.Logger) *http.Request {
	r = withPrincipal(r, p, sessionID)
	if logg != nil && p != nil {
		ctx := logg.WithUserID(r.Context(), p.UserID)
		ctx = logg.WithActorRole(ctx, p.Role.String())
		r = r.WithContext(ctx)
	}
	return r
}
