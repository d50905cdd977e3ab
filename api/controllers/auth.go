package controllers

import (
	"net/http"
	"strings"

	"github.com/juanfvasquez/pedidos-backend/api/middleware"
	"github.com/juanfvasquez/pedidos-backend/api/responses"
	"github.com/juanfvasquez/pedidos-backend/api/validators"
	internalauth "github.com/juanfvasquez/pedidos-backend/internal/auth"
	pkgauth "github.com/juanfvasquez/pedidos-backend/pkg/auth"
	"github.com/juanfvasquez/pedidos-backend/pkg/config"
	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
	"github.com/juanfvasquez/pedidos-backend/pkg/types"
)

type devLoginRequest struct {
	OpenID string `json:"openId" validate:"required"`
	Name   string `json:"name"`
}

// Me returns the caller's user record, or null for anonymous requests.
func Me(svc internalauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := middleware.PrincipalFromContext(r.Context())
		user, err := svc.Me(r.Context(), actor)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// Logout revokes the caller's session and expires the cookie.
func Logout(svc internalauth.Service, sessionCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID != "" {
			if err := svc.Logout(r.Context(), sessionID); err != nil {
				responses.WriteError(w, r, logg, err)
				return
			}
		}
		http.SetCookie(w, pkgauth.ClearSessionCookie(sessionCfg))
		responses.WriteSuccess(w, types.AckOK)
	}
}

// DevLogin signs a user in by bare openId. Mounted outside production
// only.
func DevLogin(svc internalauth.Service, jwtCfg config.JWTConfig, sessionCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body devLoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		result, err := svc.DevLogin(r.Context(), body.OpenID, body.Name)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		http.SetCookie(w, pkgauth.NewSessionCookie(sessionCfg, result.Token, jwtCfg.TokenTTL()))
		responses.WriteSuccess(w, result.User)
	}
}

// OAuthCallback finishes the provider redirect: exchange the code, set the
// session cookie and bounce the browser back to the app.
func OAuthCallback(svc internalauth.Service, jwtCfg config.JWTConfig, sessionCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(r.URL.Query().Get("code"))
		state := r.URL.Query().Get("state")
		if code == "" {
			responses.WriteError(w, r, logg, pkgerrors.New(pkgerrors.CodeValidation, "code query parameter is required"))
			return
		}

		result, err := svc.LoginWithOAuth(r.Context(), code, state)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		http.SetCookie(w, pkgauth.NewSessionCookie(sessionCfg, result.Token, jwtCfg.TokenTTL()))
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
