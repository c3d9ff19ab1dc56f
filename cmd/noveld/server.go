package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bearnovel/bearnovel/cmd/noveld/handlers"
	"github.com/bearnovel/bearnovel/pkg/accounts"
	apierr "github.com/bearnovel/bearnovel/pkg/api/errors"
	"github.com/bearnovel/bearnovel/pkg/auth"
	"github.com/bearnovel/bearnovel/pkg/echoutil"
	"github.com/bearnovel/bearnovel/pkg/metrics"
	"github.com/bearnovel/bearnovel/pkg/novels"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var API_ROOT = "/api"

func api(subpath string) string {
	return fmt.Sprintf("%s/%s", API_ROOT, strings.TrimPrefix(subpath, "/"))
}

// Services are what the server serves.
type Services struct {
	Accounts accounts.Service
	Novels   novels.Service
	Tokens   auth.Tokens
}

type ServerOptions struct {
	// origins allowed to call API with credentials. empty means no CORS.
	AllowOrigins []string

	// rate of login and register per client IP. 0 means unlimited.
	LoginRatePerSecond float64

	// max size of profile picture.
	MaxProfilePictureBytes int64

	// log level of echo. debug|info|warn|error|off
	LogLevel string
}

func BuildServer(svc Services, opts ServerOptions, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	echoutil.SetLevel(e, opts.LogLevel)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		e.DefaultHTTPErrorHandler(err, c)
		if he, ok := err.(*echo.HTTPError); ok && he.Code < http.StatusInternalServerError {
			return
		}
		logger.Error().Err(err).
			Str("method", c.Request().Method).Str("uri", c.Request().RequestURI).
			Msg("unexpected error")
	}

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(echoutil.LogHandlerFunc(logger))
	e.Use(metrics.Middleware())
	if 0 < len(opts.AllowOrigins) {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     opts.AllowOrigins,
			AllowCredentials: true,
		}))
	}

	requireAuth := auth.RequireAuth(svc.Tokens)
	optionalAuth := auth.OptionalAuth(svc.Tokens)
	limited := loginRateLimit(opts.LoginRatePerSecond)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	{
		users := e.Group(api("users"))
		users.POST("/register", handlers.RegisterHandler(svc.Accounts), limited...)
		users.POST("/login", handlers.LoginHandler(svc.Accounts, svc.Tokens), limited...)
		users.POST("/logout", handlers.LogoutHandler(svc.Accounts), optionalAuth)
		users.GET("/user", handlers.GetUserHandler(svc.Accounts), optionalAuth)
		users.POST("/refresh-token", handlers.RefreshTokenHandler(svc.Accounts, svc.Tokens))

		// leave room for multipart headers
		bodyLimit := middleware.BodyLimit(fmt.Sprintf("%dK", opts.MaxProfilePictureBytes/1024+64))
		users.POST(
			"/upload-profile-picture",
			handlers.UploadProfilePictureHandler(svc.Accounts, "profilePicture", opts.MaxProfilePictureBytes),
			bodyLimit, requireAuth,
		)
	}

	{
		const id = "id"
		const chapterId = "chapterId"
		const commentId = "commentId"

		ns := e.Group(api("novels"))
		ns.GET("", handlers.ListNovelsHandler(svc.Novels), optionalAuth)
		ns.POST("", handlers.CreateNovelHandler(svc.Novels), requireAuth)
		ns.GET("/types", handlers.NovelTypesHandler())
		ns.GET("/popular", handlers.PopularNovelsHandler(svc.Novels))
		ns.GET("/rankings/daily", handlers.DailyRankingsHandler(svc.Novels))
		ns.GET("/my-novels", handlers.MyNovelsHandler(svc.Novels), requireAuth)
		ns.GET("/user/:userId", handlers.NovelsByAuthorHandler(svc.Novels, "userId"), optionalAuth)
		ns.GET("/authorName/:nickName", handlers.NovelsByNickNameHandler(svc.Novels, "nickName"), optionalAuth)
		ns.GET("/keywords/:keywords", handlers.SearchNovelsHandler(svc.Novels, "keywords"), optionalAuth)

		ns.GET("/:id", handlers.GetNovelHandler(svc.Novels, id), optionalAuth)
		ns.PUT("/:id", handlers.UpdateNovelHandler(svc.Novels, id), requireAuth)
		ns.DELETE("/:id", handlers.DeleteNovelHandler(svc.Novels, id), requireAuth)
		ns.POST("/:id/like", handlers.ToggleLikeHandler(svc.Novels, id), requireAuth)
		ns.POST("/:id/view", handlers.RecordViewHandler(svc.Novels, id), requireAuth)
		ns.GET("/:id/check-author", handlers.CheckAuthorHandler(svc.Novels, id), requireAuth)

		ns.GET("/:id/chapters", handlers.ListChaptersHandler(svc.Novels, id))
		ns.POST("/:id/chapters", handlers.CreateChapterHandler(svc.Novels, id), requireAuth)
		ns.GET("/chapter/:chapterId", handlers.GetChapterHandler(svc.Novels, chapterId))
		ns.PUT("/chapter/:chapterId", handlers.UpdateChapterHandler(svc.Novels, chapterId), requireAuth)
		ns.DELETE("/chapter/:chapterId", handlers.DeleteChapterHandler(svc.Novels, chapterId), requireAuth)

		ns.GET("/:id/comments", handlers.ListCommentsHandler(svc.Novels, id))
		ns.POST("/:id/comments", handlers.CreateCommentHandler(svc.Novels, id), requireAuth)
		ns.DELETE("/comment/:commentId", handlers.DeleteCommentHandler(svc.Novels, commentId), requireAuth)
	}

	return e
}

// loginRateLimit limits requests per client IP.
//
// It returns no middleware when ratePerSecond is not positive.
func loginRateLimit(ratePerSecond float64) []echo.MiddlewareFunc {
	if ratePerSecond <= 0 {
		return nil
	}
	burst := int(ratePerSecond)
	if burst < 1 {
		burst = 1
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(ratePerSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		},
	)
	return []echo.MiddlewareFunc{
		middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: store,
			IdentifierExtractor: func(c echo.Context) (string, error) {
				return c.RealIP(), nil
			},
			ErrorHandler: func(c echo.Context, err error) error {
				return apierr.BadRequest("can not identify the client", err)
			},
			DenyHandler: func(c echo.Context, _ string, _ error) error {
				return apierr.TooManyRequests()
			},
		}),
	}
}
