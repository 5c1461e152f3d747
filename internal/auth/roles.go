package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/medicine-service/internal/domain"
	apperrors "github.com/spec-kit/medicine-service/pkg/util"
)

// RequireRole ensures the authenticated principal holds one of the allowed
// roles. Must run after AuthMiddleware: a request that never authenticated
// is rejected as unauthenticated, not forbidden.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAuthenticated passes any principal through regardless of role.
func RequireAuthenticated() fiber.Handler {
	return RequireRole()
}
