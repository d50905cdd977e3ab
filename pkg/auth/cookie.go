package auth

import (
	"net/http"
	"time"

	"github.com/juanfvasquez/pedidos-backend/pkg/config"
)

// NewSessionCookie wraps a signed session token in the hardened cookie the
// frontend rides on. SameSite stays Lax so the OAuth redirect back from the
// provider still carries it.
func NewSessionCookie(cfg config.SessionConfig, token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   int(ttl / time.Second),
		Secure:   cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie expires the session cookie using the same attributes
// that were used to set it.
func ClearSessionCookie(cfg config.SessionConfig) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
