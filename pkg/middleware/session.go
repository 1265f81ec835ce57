package middleware

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// Session resolves the acting user for every request and stores it in
// the echo context as "uid" (plus "token" when a bearer credential is
// present). Resolution order: bearer JWT "user_id" claim, explicit
// ?uid= query parameter, then the configured dev default. The backend
// issues HS256 tokens; with no secret configured the claim is read
// without signature verification.
func Session(secret, defaultUID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			auth := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
				c.Set("token", raw)
				uid = claimUID(raw, secret)
			}
			if uid == "" {
				uid = c.QueryParam("uid")
			}
			if uid == "" {
				uid = defaultUID
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}

func claimUID(raw, secret string) string {
	claims := jwt.MapClaims{}
	if secret != "" {
		tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return ""
		}
	} else {
		if _, _, err := new(jwt.Parser).ParseUnverified(raw, claims); err != nil {
			return ""
		}
	}
	switch v := claims["user_id"].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}
