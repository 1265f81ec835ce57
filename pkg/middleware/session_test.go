package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveUID(t *testing.T, secret string, decorate func(*http.Request)) string {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var uid string
	h := Session(secret, "U_DEV_DEFAULT")(func(c echo.Context) error {
		uid, _ = c.Get("uid").(string)
		return nil
	})
	require.NoError(t, h(c))
	return uid
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestSession(t *testing.T) {
	t.Run("verified bearer claim wins", func(t *testing.T) {
		tok := signedToken(t, "s3cret", jwt.MapClaims{"user_id": float64(7)})
		uid := resolveUID(t, "s3cret", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+tok)
		})
		assert.Equal(t, "7", uid)
	})

	t.Run("bad signature falls back to default", func(t *testing.T) {
		tok := signedToken(t, "wrong", jwt.MapClaims{"user_id": float64(7)})
		uid := resolveUID(t, "s3cret", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+tok)
		})
		assert.Equal(t, "U_DEV_DEFAULT", uid)
	})

	t.Run("unverified claim extraction without a secret", func(t *testing.T) {
		tok := signedToken(t, "whatever", jwt.MapClaims{"user_id": "u-9"})
		uid := resolveUID(t, "", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+tok)
		})
		assert.Equal(t, "u-9", uid)
	})

	t.Run("uid query param fallback", func(t *testing.T) {
		uid := resolveUID(t, "", func(r *http.Request) {
			q := r.URL.Query()
			q.Set("uid", "u-42")
			r.URL.RawQuery = q.Encode()
		})
		assert.Equal(t, "u-42", uid)
	})

	t.Run("dev default as last resort", func(t *testing.T) {
		assert.Equal(t, "U_DEV_DEFAULT", resolveUID(t, "", nil))
	})
}
