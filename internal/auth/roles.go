package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/deskops/incident-desk/pkg/util/errorutil"
)

// Role grants access to groups of desk operations.
type Role string

const (
	RoleOperator   Role = "operator"
	RoleSupervisor Role = "supervisor"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleOperator || r == RoleSupervisor
}

// Satisfies reports whether r may act where required is needed. Supervisors
// may do everything operators can.
func (r Role) Satisfies(required Role) bool {
	if r == RoleSupervisor {
		return required.Valid()
	}
	return r == required
}

// RequireRole ensures the principal holds required or a role above it.
func RequireRole(required Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Role.Satisfies(required) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures caller is authenticated.
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
