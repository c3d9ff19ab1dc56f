package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	apierr "github.com/bearnovel/bearnovel/pkg/api/errors"
	"github.com/bearnovel/bearnovel/pkg/auth"
	"github.com/labstack/echo/v4"
)

// bindJSON decodes the request body as JSON.
//
// It returns HTTPError (400) when the request is not JSON.
func bindJSON[T any](c echo.Context) (T, error) {
	var body T
	req := c.Request()
	ctype, _, _ := strings.Cut(req.Header.Get(echo.HeaderContentType), ";")
	if strings.ToLower(strings.TrimSpace(ctype)) != echo.MIMEApplicationJSON {
		return body, apierr.BadRequest(
			"unexpected content type. it should be application/json", nil,
		)
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return body, apierr.BadRequest("can not understand the requested json", err)
	}
	return body, nil
}

// intParam reads path parameter as an id.
func intParam(c echo.Context, name string) (int, error) {
	raw := c.Param(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.BadRequest(name+" should be an integer: "+raw, err)
	}
	return v, nil
}

// viewer returns the id of authenticated user.
//
// Handlers using this should be guarded by auth.RequireAuth.
func viewer(c echo.Context) (int, error) {
	id := auth.ViewerId(c)
	if id == nil {
		return 0, apierr.Unauthorized("authentication required", nil)
	}
	return *id, nil
}

func setCookie(c echo.Context, name string, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
	})
}

func clearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
