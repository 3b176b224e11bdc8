// Package auth implements the shared-secret admin gate.
package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/valubaby/valu-store/internal/apperr"
)

// HeaderName carries the admin secret verbatim on every admin request.
const HeaderName = "X-Admin-Token"

type ctxKeyAdmin struct{}

// AdminGate compares request tokens against a single shared secret. An empty
// secret disables admin access entirely.
type AdminGate struct {
	secret []byte
}

func NewAdminGate(secret string) *AdminGate {
	if secret == "" {
		slog.Warn("ADMIN_PASSWORD is not set; admin endpoints will reject every request")
	}
	return &AdminGate{secret: []byte(secret)}
}

// Valid reports whether token matches the secret, in constant time.
func (g *AdminGate) Valid(token string) bool {
	if len(g.secret) == 0 || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), g.secret) == 1
}

// Token is what a successful login hands back: the secret itself.
func (g *AdminGate) Token() string {
	return string(g.secret)
}

// RequireAdmin rejects requests whose X-Admin-Token does not match.
func (g *AdminGate) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !g.Valid(c.Request().Header.Get(HeaderName)) {
				slog.Debug("admin token rejected", "path", c.Request().URL.Path, "ip", c.RealIP())
				return apperr.Unauthorized("Unauthorized: Invalid admin credentials")
			}

			ctx := context.WithValue(c.Request().Context(), ctxKeyAdmin{}, true)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// IsAdmin reports whether the request passed RequireAdmin.
func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(ctxKeyAdmin{}).(bool)
	return ok
}
