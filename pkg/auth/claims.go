package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/juanfvasquez/pedidos-backend/pkg/enums"
)

// SessionTokenPayload captures the data available when minting a JWT.
type SessionTokenPayload struct {
	UserID int64
	OpenID string
	Role   enums.Role
	JTI    string
}

// SessionTokenClaims represents the typed JWT carried by the session cookie.
type SessionTokenClaims struct {
	UserID int64      `json:"user_id"`
	OpenID string     `json:"open_id"`
	Role   enums.Role `json:"role"`
	jwt.RegisteredClaims
}
