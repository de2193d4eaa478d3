package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSession(t *testing.T, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got string
	h := VisitorSession(7)(func(c echo.Context) error {
		got = SessionID(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return got, rec
}

func TestVisitorSessionMintsCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/shows/create", nil)
	id, rec := runSession(t, req)

	require.NotEmpty(t, id)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, SessionCookieName, ck.Name)
	assert.Equal(t, id, ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, "/", ck.Path)
}

func TestVisitorSessionReusesExistingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/shows/create", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "existing-id"})
	id, rec := runSession(t, req)

	assert.Equal(t, "existing-id", id)
	assert.Empty(t, rec.Result().Cookies(), "no new cookie when one is present")
}

func TestVisitorSessionIDsAreUnique(t *testing.T) {
	a, _ := runSession(t, httptest.NewRequest(http.MethodGet, "/", nil))
	b, _ := runSession(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEqual(t, a, b)
}

func TestSessionIDMissingMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, SessionID(c))
}
