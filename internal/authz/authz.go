package authz

import (
	"github.com/juanfvasquez/pedidos-backend/pkg/enums"
	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
)

// Principal is the authenticated identity attached to a request. A nil
// *Principal means the caller is anonymous.
type Principal struct {
	UserID int64
	OpenID string
	Role   enums.Role
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == enums.RoleAdmin
}

// RequirePrincipal ensures a caller is authenticated. Role does not matter.
func RequirePrincipal(p *Principal) error {
	if p == nil || p.UserID <= 0 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return nil
}

// RequireAdmin gates an action behind the admin role. An anonymous caller
// is unauthorized; an authenticated non-admin is forbidden with a message
// naming the denied action. Callers must run this before touching storage
// so a denial never leaves a partial write behind.
func RequireAdmin(p *Principal, action string) error {
	if err := RequirePrincipal(p); err != nil {
		return err
	}
	if p.Role != enums.RoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only administrators may "+action)
	}
	return nil
}
