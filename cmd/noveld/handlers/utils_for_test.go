package handlers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bearnovel/bearnovel/pkg/accounts"
	apierr "github.com/bearnovel/bearnovel/pkg/api/errors"
	"github.com/bearnovel/bearnovel/pkg/auth"
	cachemock "github.com/bearnovel/bearnovel/pkg/cache/mocks"
	"github.com/bearnovel/bearnovel/pkg/db/mocks"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/bearnovel/bearnovel/pkg/novels"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// fixture is a set of services backed by mocks.
type fixture struct {
	db     *mocks.MockDatabase
	cache  *cachemock.MockNovelCache
	store  *cachemock.MemoryStore
	tokens auth.Tokens

	novels   novels.Service
	accounts accounts.Service
}

func newFixture() *fixture {
	db := mocks.NewMockDatabase()
	nc := cachemock.NewMockNovelCache()
	store := cachemock.NewMemoryStore()
	tokens := auth.NewTokens(
		auth.HS256([]byte("0123456789abcdef0123456789abcdef")), store,
		auth.Config{
			Issuer:             "bearnovel",
			Audience:           "bearnovel-web",
			AccessTokenExpire:  15 * time.Minute,
			RefreshTokenExpire: 24 * time.Hour,
		},
	)
	return &fixture{
		db:       db,
		cache:    nc,
		store:    store,
		tokens:   tokens,
		novels:   novels.New(db, nc, novels.Config{PopularCount: 10, DeleteRetention: time.Hour}),
		accounts: accounts.New(db.MockUsers, tokens, accounts.Config{MaxProfilePictureBytes: 16}, zerolog.Nop()),
	}
}

// login issues tokens of the user, as if the user logged in.
func (f *fixture) login(t *testing.T, user domain.User) (access string, refresh string) {
	t.Helper()
	ctx := context.Background()
	access, err := f.tokens.IssueAccess(ctx, user)
	if err != nil {
		t.Fatal(err)
	}
	refresh, err = f.tokens.IssueRefresh(ctx, user.Id)
	if err != nil {
		t.Fatal(err)
	}
	return access, refresh
}

// serve calls handler through middlewares, and reflects returned error to the response.
func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) error {
	for i := len(mw) - 1; 0 <= i; i-- {
		h = mw[i](h)
	}
	err := h(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return err
}

func statusOf(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(resp.Body.Bytes(), &v); err != nil {
		t.Fatalf("can not decode response: %v\n%s", err, resp.Body.String())
	}
	return v
}

type errorBody struct {
	Message apierr.ErrorMessage `json:"message"`
}

var bob = domain.User{
	Id: 3, UserName: "bob", Email: "bob@example.com", NickName: "Bobby", Role: domain.RoleUser,
}

func novelOf(id int, author domain.User) domain.Novel {
	return domain.Novel{
		NovelId:    id,
		Title:      "novel",
		AuthorId:   author.Id,
		Author:     author.Author(),
		NovelTypes: []domain.NovelType{domain.Romance},
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
