package auth

import (
	"errors"
	"net/http"
	"strings"

	apierr "github.com/bearnovel/bearnovel/pkg/api/errors"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/labstack/echo/v4"
)

const (
	// cookie names
	AccessTokenCookie  = "jwt"
	RefreshTokenCookie = "refreshToken"

	viewerKey = "bearnovel.viewer"
)

// AccessToken extracts an access token from cookie or Authorization header.
//
// The cookie has priority.
func AccessToken(c echo.Context) (string, bool) {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(h, "Bearer "); ok && token != "" {
		return token, true
	}
	return "", false
}

// Viewer returns claims of the authenticated user of the request.
func Viewer(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(viewerKey).(*Claims)
	return claims, ok && claims != nil
}

// ViewerId returns id of the authenticated user, or nil.
func ViewerId(c echo.Context) *int {
	claims, ok := Viewer(c)
	if !ok {
		return nil
	}
	id, err := claims.UserId()
	if err != nil {
		return nil
	}
	return &id
}

func verify(c echo.Context, tokens Tokens) (*Claims, bool, error) {
	token, ok := AccessToken(c)
	if !ok {
		return nil, false, nil
	}
	claims, err := tokens.VerifyAccess(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return claims, true, nil
}

// RequireAuth rejects requests without valid access token with 401.
//
// When tokens can not be verified for now, it responds 503.
func RequireAuth(tokens Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok, err := verify(c, tokens)
			if err != nil {
				return apierr.FromError(err)
			}
			if !ok {
				return apierr.NewErrorMessage(
					http.StatusUnauthorized, "authentication required",
					apierr.WithAdvice("login, or refresh your token."),
				)
			}
			c.Set(viewerKey, claims)
			return next(c)
		}
	}
}

// OptionalAuth sets the viewer when the request has valid access token.
//
// Requests without valid token pass as anonymous.
func OptionalAuth(tokens Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok, err := verify(c, tokens)
			if err != nil {
				c.Logger().Warnf("failed to verify access token. treated as anonymous: %v", err)
			} else if ok {
				c.Set(viewerKey, claims)
			}
			return next(c)
		}
	}
}
