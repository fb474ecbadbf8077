package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartMarket/business/recommender"
)

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSession(t *testing.T) {
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, UserKey(c))
	}, Session())

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, GuestUserKey, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderUserKey, "alice@example.com")
	rec = serve(e, req)
	assert.Equal(t, "alice@example.com", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderUserKey, "bad key with spaces")
	rec = serve(e, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrace(t *testing.T) {
	e := echo.New()
	e.GET("/trace", func(c echo.Context) error {
		return c.String(http.StatusOK, recommender.TraceIDFromContext(c.Request().Context()))
	}, Trace())

	req := httptest.NewRequest(http.MethodGet, "/trace", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	rec := serve(e, req)
	assert.Equal(t, "req-123", rec.Body.String())
	assert.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/trace", nil))
	require.NotEmpty(t, rec.Body.String())
	assert.Equal(t, rec.Body.String(), rec.Header().Get(HeaderRequestID))
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"code":"NOT_FOUND","message":"Not Found"}`, rec.Body.String())

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, rec.Body.String(), "short and stout")
}
