package session

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mednexus/hms/internal/domain/navigation"
)

const identityKey = "session"

// Middleware resolves the bearer token on each request and attaches the
// session, when one exists, to the echo context. Requests without a
// usable token pass through anonymously; the guards below decide what
// that means per route.
func Middleware(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token != "" {
				sess, err := svc.Restore(c.Request().Context(), token)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "session lookup failed")
				}
				if sess != nil {
					c.Set(identityKey, sess)
				}
			}
			return next(c)
		}
	}
}

// CurrentIdentity returns the session attached to the request, if any.
func CurrentIdentity(c echo.Context) (*Session, bool) {
	sess, ok := c.Get(identityKey).(*Session)
	return sess, ok
}

// RequireIdentity rejects anonymous requests.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentIdentity(c); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
			}
			return next(c)
		}
	}
}

// RequireSection rejects callers whose role cannot see the section
// mounted at path. Anonymous callers get 401, signed-in callers outside
// the section get 403.
func RequireSection(path string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := CurrentIdentity(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
			}
			if !navigation.Visible(sess.User.Role, path) {
				return echo.NewHTTPError(http.StatusForbidden, "section not available for role")
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
