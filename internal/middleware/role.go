package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http defines status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireRole rejects requests whose "role" claim is not in the allowed set.
// It must run after JWTAuth, which is what puts the role on the context.
// The dashboard accepts ADMIN and EDITOR; anything else is a 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
