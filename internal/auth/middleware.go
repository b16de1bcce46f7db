package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/store"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Technician domain.Technician
}

// Middleware validates bearer tokens and loads the technician principal
// from the directory.
type Middleware struct {
	tokens    *TokenManager
	directory *store.TechnicianDirectory
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, directory *store.TechnicianDirectory) *Middleware {
	return &Middleware{tokens: tokens, directory: directory}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	tech, ok := m.directory.ByID(claims.TechnicianID)
	if !ok || !tech.Active {
		return apperrors.NewUnauthorized("technician not found")
	}

	c.Locals(principalKey, &Principal{Technician: tech})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated technician.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequireRole ensures the principal has one of the allowed roles. With no
// roles given it only requires authentication.
func RequireRole(allowed ...domain.TechnicianRole) fiber.Handler {
	allowedSet := make(map[domain.TechnicianRole]struct{}, len(allowed))
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
		if _, exists := allowedSet[principal.Technician.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
