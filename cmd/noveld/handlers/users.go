package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/bearnovel/bearnovel/pkg/accounts"
	apierr "github.com/bearnovel/bearnovel/pkg/api/errors"
	"github.com/bearnovel/bearnovel/pkg/api/types"
	"github.com/bearnovel/bearnovel/pkg/auth"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/labstack/echo/v4"
)

func RegisterHandler(acc accounts.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := bindJSON[types.RegisterRequest](c)
		if err != nil {
			return err
		}
		if _, err := acc.Register(c.Request().Context(), domain.RegisterParam{
			UserName: req.UserName,
			Email:    req.Email,
			Password: req.Password,
			NickName: req.NickName,
		}); err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.Message{Message: "User created successfully"})
	}
}

// LoginHandler authenticates the user and sets tokens as cookies.
//
// Tokens are also returned in the response body.
func LoginHandler(acc accounts.Service, tokens auth.Tokens) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := bindJSON[types.LoginRequest](c)
		if err != nil {
			return err
		}
		session, err := acc.Login(c.Request().Context(), req.UserNameOrEmail, req.Password)
		if err != nil {
			return apierr.FromError(err)
		}

		setCookie(c, auth.AccessTokenCookie, session.AccessToken, tokens.AccessTokenExpire())
		setCookie(c, auth.RefreshTokenCookie, session.RefreshToken, tokens.RefreshTokenExpire())
		return c.JSON(http.StatusOK, types.LoginResponse{
			AccessToken:  session.AccessToken,
			RefreshToken: session.RefreshToken,
		})
	}
}

// LogoutHandler clears cookies, and revokes tokens if the request is authenticated.
//
// This handler should be used with auth.OptionalAuth.
func LogoutHandler(acc accounts.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		if userId := auth.ViewerId(c); userId != nil {
			if err := acc.Logout(c.Request().Context(), *userId); err != nil {
				return apierr.FromError(err)
			}
		}
		clearCookie(c, auth.AccessTokenCookie)
		clearCookie(c, auth.RefreshTokenCookie)
		return c.JSON(http.StatusOK, types.Message{Message: "User logged out successfully"})
	}
}

// GetUserHandler responses profile of the authenticated user.
//
// When not authenticated, it responses 401 with a message telling which token is missing:
// "jwt not found" when only the refresh token remains, so the client can refresh,
// or "token not found" when neither remains.
//
// This handler should be used with auth.OptionalAuth.
func GetUserHandler(acc accounts.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId := auth.ViewerId(c)
		if userId == nil {
			msg := "token not found"
			if cookie, err := c.Cookie(auth.RefreshTokenCookie); err == nil && cookie.Value != "" {
				msg = "jwt not found"
			}
			return c.JSON(http.StatusUnauthorized, types.Message{Message: msg})
		}

		profile, err := acc.Me(c.Request().Context(), *userId)
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.ComposeProfile(profile))
	}
}

// RefreshTokenHandler rotates the refresh token in cookie, and issues a new access token.
func RefreshTokenHandler(acc accounts.Service, tokens auth.Tokens) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(auth.RefreshTokenCookie)
		if err != nil || cookie.Value == "" {
			return apierr.Unauthorized("token not found", err)
		}

		session, err := acc.Refresh(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				clearCookie(c, auth.RefreshTokenCookie)
			}
			return apierr.FromError(err)
		}

		setCookie(c, auth.AccessTokenCookie, session.AccessToken, tokens.AccessTokenExpire())
		setCookie(c, auth.RefreshTokenCookie, session.RefreshToken, tokens.RefreshTokenExpire())
		return c.JSON(http.StatusOK, types.RefreshResponse{AccessToken: session.AccessToken})
	}
}

// UploadProfilePictureHandler stores a picture sent as multipart form file.
//
// Args:
//
// - acc: accounts service
//
// - field: name of the form field carrying the picture
//
// - maxBytes: size limit of the picture
func UploadProfilePictureHandler(acc accounts.Service, field string, maxBytes int64) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := viewer(c)
		if err != nil {
			return err
		}

		fh, err := c.FormFile(field)
		if err != nil {
			return apierr.BadRequest("form file "+field+" is required", err)
		}
		if 0 < maxBytes && maxBytes < fh.Size {
			return apierr.FromError(accounts.ErrPictureTooLarge)
		}
		f, err := fh.Open()
		if err != nil {
			return apierr.BadRequest("can not read uploaded file", err)
		}
		defer f.Close()

		// read one more byte to detect oversize
		limit := fh.Size + 1
		if 0 < maxBytes {
			limit = maxBytes + 1
		}
		picture, err := io.ReadAll(io.LimitReader(f, limit))
		if err != nil {
			return apierr.BadRequest("can not read uploaded file", err)
		}

		if err := acc.UploadProfilePicture(
			c.Request().Context(), userId, fh.Header.Get(echo.HeaderContentType), picture,
		); err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.Message{Message: "profile picture is uploaded"})
	}
}
