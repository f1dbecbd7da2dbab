package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func callWithHeader(t *testing.T, value string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/booking", nil)
	if value != "" {
		req.Header.Set("X-User-ID", value)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return c, GatewayIdentity(next)(c)
}

func TestGatewayIdentity_MissingHeader(t *testing.T) {
	_, err := callWithHeader(t, "")

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestGatewayIdentity_MalformedHeader(t *testing.T) {
	for _, value := range []string{"abc", "-1", "0"} {
		_, err := callWithHeader(t, value)

		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok, "value %q should be rejected", value)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	}
}

func TestGatewayIdentity_Valid(t *testing.T) {
	c, err := callWithHeader(t, "17")

	assert.NoError(t, err)
	userID, ok := UserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint(17), userID)
}
