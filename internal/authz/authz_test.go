package authz

import (
	"testing"

	"github.com/juanfvasquez/pedidos-backend/pkg/enums"
	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
)

func TestRequirePrincipal(t *testing.T) {
	t.Run("nil principal", func(t *testing.T) {
		err := RequirePrincipal(nil)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected UNAUTHORIZED, got %v", err)
		}
	})

	t.Run("zero user id", func(t *testing.T) {
		err := RequirePrincipal(&Principal{UserID: 0, Role: enums.RoleUser})
		if pkgerrors.As(err) == nil {
			t.Fatalf("expected error, got %v", err)
		}
	})

	t.Run("valid principal", func(t *testing.T) {
		if err := RequirePrincipal(&Principal{UserID: 1, Role: enums.RoleUser}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("anonymous is unauthorized not forbidden", func(t *testing.T) {
		err := RequireAdmin(nil, "close group orders")
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected UNAUTHORIZED, got %v", err)
		}
	})

	t.Run("non-admin gets the action in the message", func(t *testing.T) {
		err := RequireAdmin(&Principal{UserID: 2, Role: enums.RoleUser}, "close group orders")
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
			t.Fatalf("expected FORBIDDEN, got %v", err)
		}
		if got, want := typed.Message(), "only administrators may close group orders"; got != want {
			t.Errorf("message = %q, want %q", got, want)
		}
	})

	t.Run("admin passes", func(t *testing.T) {
		if err := RequireAdmin(&Principal{UserID: 1, Role: enums.RoleAdmin}, "close group orders"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestIsAdmin(t *testing.T) {
	var p *Principal
	if p.IsAdmin() {
		t.Error("nil principal must not be admin")
	}
	if (&Principal{UserID: 1, Role: enums.RoleUser}).IsAdmin() {
		t.Error("user role must not be admin")
	}
	if !(&Principal{UserID: 1, Role: enums.RoleAdmin}).IsAdmin() {
		t.Error("admin role must be admin")
	}
}
