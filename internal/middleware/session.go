package middleware

// session.go assigns every visitor an opaque session ID carried in a cookie.
// The ID is the key under which the show-creation wizard keeps its draft, so
// a draft is visible only to the browser that started it.  The middleware
// never stores anything server-side; it only guarantees the cookie exists
// and exposes its value on the request context.

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the visitor session ID.
const SessionCookieName = "lb_session"

// sessionContextKey is the echo context key the session ID is stored under.
const sessionContextKey = "session_id"

// VisitorSession returns a middleware that reads the session cookie, minting
// a fresh random ID when the cookie is missing or empty.  ttlDays bounds the
// cookie lifetime, which in turn bounds how long an abandoned draft
// survives.
func VisitorSession(ttlDays int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(SessionCookieName); err == nil && ck.Value != "" {
				id = ck.Value
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    id,
					Path:     "/",
					Expires:  time.Now().Add(time.Duration(ttlDays) * 24 * time.Hour),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(sessionContextKey, id)
			return next(c)
		}
	}
}

// SessionID extracts the visitor session ID placed by VisitorSession.  The
// empty string means the middleware did not run for this route.
func SessionID(c echo.Context) string {
	if v, ok := c.Get(sessionContextKey).(string); ok {
		return v
	}
	return ""
}
