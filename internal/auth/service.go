package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/juanfvasquez/pedidos-backend/internal/authz"
	"github.com/juanfvasquez/pedidos-backend/internal/users"
	pkgauth "github.com/juanfvasquez/pedidos-backend/pkg/auth"
	"github.com/juanfvasquez/pedidos-backend/pkg/auth/session"
	"github.com/juanfvasquez/pedidos-backend/pkg/config"
	"github.com/juanfvasquez/pedidos-backend/pkg/db/models"
	"github.com/juanfvasquez/pedidos-backend/pkg/enums"
	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
	"github.com/juanfvasquez/pedidos-backend/pkg/oauth"
)

// LoginResult carries the signed session token alongside the upserted user.
type LoginResult struct {
	Token string
	User  *models.User
}

// Service handles login, logout and the caller's own profile.
type Service interface {
	LoginWithOAuth(ctx context.Context, code, state string) (*LoginResult, error)
	DevLogin(ctx context.Context, openID, name string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, actor *authz.Principal) (*models.User, error)
}

// OAuthClient is the provider surface the login flow depends on. Exported
// so the composition root can leave it nil when no provider is configured.
type OAuthClient interface {
	ExchangeCode(ctx context.Context, code, state string) (*oauth.TokenResponse, error)
	GetUserInfo(ctx context.Context, accessToken string) (*oauth.UserInfo, error)
}

type userStore interface {
	Upsert(ctx context.Context, input users.UpsertInput) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type sessionRegistry interface {
	Create(ctx context.Context, sessionID string) error
	Revoke(ctx context.Context, sessionID string) error
}

// Config narrows the application configuration to what login needs.
type Config struct {
	JWT             config.JWTConfig
	OwnerOpenID     string
	DevLoginEnabled bool
}

type service struct {
	oauth    OAuthClient
	users    userStore
	sessions sessionRegistry
	cfg      Config
	logg     *logger.Logger
}

// NewService constructs the auth service. The oauth client may be nil when
// no provider is configured; LoginWithOAuth then refuses at call time.
func NewService(oauthc OAuthClient, store userStore, sessions sessionRegistry, cfg Config, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("user store required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session registry required")
	}
	return &service{oauth: oauthc, users: store, sessions: sessions, cfg: cfg, logg: logg}, nil
}

// LoginWithOAuth runs the callback flow: exchange the code, fetch the
// profile, upsert the user and open a revocable session.
func (s *service) LoginWithOAuth(ctx context.Context, code, state string) (*LoginResult, error) {
	if s.oauth == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "oauth provider is not configured")
	}
	if strings.TrimSpace(code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "authorization code is required")
	}

	token, err := s.oauth.ExchangeCode(ctx, code, state)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "exchange authorization code")
	}
	info, err := s.oauth.GetUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch user info")
	}

	input := users.UpsertInput{
		OpenID:      info.OpenID,
		Name:        optional(info.Name),
		Email:       optional(info.Email),
		LoginMethod: optional(info.LoginMethod),
	}
	return s.establishSession(ctx, input)
}

// DevLogin signs a user in by bare openId. Only wired up outside
// production.
func (s *service) DevLogin(ctx context.Context, openID, name string) (*LoginResult, error) {
	if !s.cfg.DevLoginEnabled {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "dev login is disabled")
	}
	openID = strings.TrimSpace(openID)
	if openID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "openId is required")
	}

	method := "dev"
	input := users.UpsertInput{
		OpenID:      openID,
		Name:        optional(name),
		LoginMethod: &method,
	}
	return s.establishSession(ctx, input)
}

func (s *service) establishSession(ctx context.Context, input users.UpsertInput) (*LoginResult, error) {
	// The configured owner is promoted to admin on every sign-in, so the
	// first deployment bootstraps its administrator without a manual row
	// edit.
	if s.cfg.OwnerOpenID != "" && input.OpenID == s.cfg.OwnerOpenID {
		admin := enums.RoleAdmin
		input.Role = &admin
	}

	user, err := s.users.Upsert(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert user")
	}

	sessionID := session.NewSessionID()
	if err := s.sessions.Create(ctx, sessionID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register session")
	}

	signed, err := pkgauth.MintSessionToken(s.cfg.JWT, time.Now().UTC(), pkgauth.SessionTokenPayload{
		UserID: user.ID,
		OpenID: user.OpenID,
		Role:   user.Role,
		JTI:    sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}

	return &LoginResult{Token: signed, User: user}, nil
}

// Logout revokes the session registration behind the caller's token.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// Me returns the caller's user record, or nil for anonymous callers. A
// storage failure degrades to nil rather than breaking the page load.
func (s *service) Me(ctx context.Context, actor *authz.Principal) (*models.User, error) {
	if actor == nil || actor.UserID <= 0 {
		return nil, nil
	}
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "auth.me degraded to nil", err)
		}
		return nil, nil
	}
	return user, nil
}

func optional(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}
