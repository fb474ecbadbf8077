package middleware

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"smartMarket/business/recommender"
	jsonres "smartMarket/pkg/response"
)

const (
	HeaderUserKey   = "X-User-Key"
	HeaderRequestID = echo.HeaderXRequestID

	// ContextUserKey is the echo context key holding the caller's user key.
	ContextUserKey = "user_key"

	GuestUserKey = "guest"
)

var userKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_.:@-]{1,128}$`)

// Session identifies the caller by the X-User-Key header. There is no
// authentication; callers without a key share the guest profile.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(HeaderUserKey)
			if key == "" {
				key = GuestUserKey
			}

			if !userKeyPattern.MatchString(key) {
				return c.JSON(http.StatusBadRequest, jsonres.Error(
					"BAD_REQUEST", "Invalid user key", nil,
				))
			}

			c.Set(ContextUserKey, key)

			return next(c)
		}
	}
}

// UserKey returns the key set by Session, or the guest key.
func UserKey(c echo.Context) string {
	if key, ok := c.Get(ContextUserKey).(string); ok && key != "" {
		return key
	}
	return GuestUserKey
}

// Trace attaches a request id to the request context and echoes it back in the
// response headers. An incoming X-Request-ID is reused.
func Trace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}

			req := c.Request()
			c.SetRequest(req.WithContext(recommender.WithTraceID(req.Context(), id)))
			c.Response().Header().Set(HeaderRequestID, id)

			return next(c)
		}
	}
}
