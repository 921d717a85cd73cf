package middleware

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

const (
	// PrincipalLocalKey stores the authenticated *model.Principal.
	PrincipalLocalKey = "principal"
	// TokenLocalKey stores the raw bearer token, needed to revoke it on logout.
	TokenLocalKey = "auth_token"
)

// Authenticator resolves a bearer token to the calling user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Principal, error)
}

// Authorize rejects requests without a valid bearer token with 401.
func Authorize(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing or malformed bearer token")
		}

		p, err := a.Authenticate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				return fiber.NewError(fiber.StatusUnauthorized, err.Error())
			}
			return err
		}

		c.Locals(PrincipalLocalKey, p)
		c.Locals(TokenLocalKey, token)
		return c.Next()
	}
}

// RequireRole allows only principals holding one of roles. It must run after Authorize.
func RequireRole(roles ...string) fiber.Handler {
	msg := "forbidden: " + strings.Join(roles, " or ") + " only"
	return func(c *fiber.Ctx) error {
		p := PrincipalFrom(c)
		if p == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		if !slices.Contains(roles, p.Role) {
			return fiber.NewError(fiber.StatusForbidden, msg)
		}
		return c.Next()
	}
}

// PrincipalFrom returns the caller stored by Authorize, or nil.
func PrincipalFrom(c *fiber.Ctx) *model.Principal {
	p, _ := c.Locals(PrincipalLocalKey).(*model.Principal)
	return p
}

// TokenFrom returns the bearer token stored by Authorize.
func TokenFrom(c *fiber.Ctx) string {
	t, _ := c.Locals(TokenLocalKey).(string)
	return t
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
