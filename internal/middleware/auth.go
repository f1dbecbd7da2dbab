package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Authentication itself happens at the API gateway; by the time a request
// reaches this service the gateway has verified the session token and
// asserts the caller's identity in this header.
const userIDHeader = "X-User-ID"

const userIDKey = "userID"

// GatewayIdentity rejects requests without a usable identity header and
// stores the caller's user id in the request context.
func GatewayIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(userIDHeader)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
		}
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid identity")
		}
		c.Set(userIDKey, uint(userID))
		return next(c)
	}
}

// UserID returns the caller identity stored by GatewayIdentity.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(userIDKey).(uint)
	return id, ok
}
