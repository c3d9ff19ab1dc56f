package echoutil

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
)

// LogHandlerFunc returns a middleware logging each request and its response.
func LogHandlerFunc(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			begin := time.Now()
			logger.Debug().
				Str("method", req.Method).Str("uri", req.RequestURI).
				Msg("< request")

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			} else if err != nil {
				status = http.StatusInternalServerError
			}

			ev := logger.Info()
			if http.StatusInternalServerError <= status {
				ev = logger.Error()
			}
			ev.Str("method", req.Method).Str("uri", req.RequestURI).
				Int("status", status).
				Dur("latency", time.Since(begin)).
				Err(err).
				Msg("> response")
			return err
		}
	}
}

// SetLevel sets log level of echo's logger and returns the equivalent zerolog level.
//
// Empty or unknown level falls back to "warn".
func SetLevel(e *echo.Echo, loglevel string) zerolog.Level {
	switch strings.ToLower(loglevel) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
		return zerolog.DebugLevel
	case "info":
		e.Logger.SetLevel(log.INFO)
		return zerolog.InfoLevel
	case "warn", "":
		e.Logger.SetLevel(log.WARN)
		return zerolog.WarnLevel
	case "error":
		e.Logger.SetLevel(log.ERROR)
		return zerolog.ErrorLevel
	case "off":
		e.Logger.SetLevel(log.OFF)
		return zerolog.Disabled
	default:
		e.Logger.SetLevel(log.WARN)
		e.Logger.Warnf("unknown loglevel: %s . fall-backed to warn", loglevel)
		return zerolog.WarnLevel
	}
}
