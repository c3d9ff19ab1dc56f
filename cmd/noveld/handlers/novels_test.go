package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bearnovel/bearnovel/cmd/noveld/handlers"
	httptestutil "github.com/bearnovel/bearnovel/internal/testutils/http"
	"github.com/bearnovel/bearnovel/pkg/api/types"
	"github.com/bearnovel/bearnovel/pkg/auth"
	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"
)

var alice = domain.User{
	Id: 5, UserName: "alice", Email: "alice@example.com", NickName: "Alice", Role: domain.RoleUser,
}

func TestListNovelsHandler(t *testing.T) {
	novel1 := novelOf(1, alice)
	novel2 := novelOf(2, alice)

	t.Run("anonymous viewer sees no likes", func(t *testing.T) {
		f := newFixture()
		f.db.MockNovels.Impl.List = func(context.Context) ([]domain.Novel, error) {
			return []domain.Novel{novel1, novel2}, nil
		}

		e := echo.New()
		c, resp := httptestutil.Get(e, "/api/novels")
		if err := serve(e, c, handlers.ListNovelsHandler(f.novels), auth.OptionalAuth(f.tokens)); err != nil {
			t.Fatal(err)
		}

		actual := decode[[]types.Novel](t, resp)
		expected := []types.Novel{types.ComposeNovel(novel1), types.ComposeNovel(novel2)}
		if !cmp.Equal(actual, expected) {
			t.Errorf("unexpected novels:\n%s", cmp.Diff(actual, expected))
		}
		if f.db.MockEngagement.Calls.LikedBy.Times() != 0 {
			t.Errorf("likes should not be looked up for anonymous")
		}
	})

	t.Run("authenticated viewer sees own likes", func(t *testing.T) {
		f := newFixture()
		f.db.MockNovels.Impl.List = func(context.Context) ([]domain.Novel, error) {
			return []domain.Novel{novel1, novel2}, nil
		}
		f.db.MockEngagement.Impl.LikedBy = func(_ context.Context, userId int, _ []int) (map[int]bool, error) {
			if userId != bob.Id {
				t.Errorf("unexpected viewer: %d", userId)
			}
			return map[int]bool{2: true}, nil
		}
		access, _ := f.login(t, bob)

		e := echo.New()
		c, resp := httptestutil.Get(e, "/api/novels", httptestutil.WithCookie(auth.AccessTokenCookie, access))
		if err := serve(e, c, handlers.ListNovelsHandler(f.novels), auth.OptionalAuth(f.tokens)); err != nil {
			t.Fatal(err)
		}

		actual := decode[[]types.Novel](t, resp)
		if len(actual) != 2 || actual[0].IsLiked || !actual[1].IsLiked {
			t.Errorf("unexpected likes: %+v", actual)
		}
	})
}

func TestNovelTypesHandler(t *testing.T) {
	e := echo.New()
	c, resp := httptestutil.Get(e, "/api/novels/types")
	if err := serve(e, c, handlers.NovelTypesHandler()); err != nil {
		t.Fatal(err)
	}

	actual := decode[[]types.NovelType](t, resp)
	if len(actual) != len(domain.AllNovelTypes()) {
		t.Fatalf("unexpected number of types: %d", len(actual))
	}
	if actual[0] != (types.NovelType{Value: 0, Name: "Romance"}) {
		t.Errorf("unexpected first type: %+v", actual[0])
	}
}

func TestGetNovelHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		param  string
		status int
	}{
		"existing novel": {param: "1", status: http.StatusOK},
		"missing novel":  {param: "99", status: http.StatusNotFound},
		"non integer id": {param: "one", status: http.StatusBadRequest},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.db.MockNovels.Impl.Get = func(_ context.Context, id int) (domain.Novel, error) {
				if id == 1 {
					return novelOf(1, alice), nil
				}
				return domain.Novel{}, kdb.ErrMissing
			}

			e := echo.New()
			c, resp := httptestutil.Get(e, "/api/novels/"+testcase.param)
			c.SetParamNames("id")
			c.SetParamValues(testcase.param)
			err := serve(e, c, handlers.GetNovelHandler(f.novels, "id"), auth.OptionalAuth(f.tokens))

			if resp.Code != testcase.status {
				t.Errorf("status: (actual, expected) = (%d, %d): %v", resp.Code, testcase.status, err)
			}
		})
	}
}

func TestCreateNovelHandler(t *testing.T) {
	t.Run("it creates a novel written by the viewer", func(t *testing.T) {
		f := newFixture()
		f.db.MockNovels.Impl.Create = func(_ context.Context, authorId int, spec *domain.NovelSpec) (domain.Novel, error) {
			n := novelOf(10, bob)
			n.Title = spec.Title()
			return n, nil
		}
		access, _ := f.login(t, bob)

		e := echo.New()
		c, resp := httptestutil.Post(
			e, "/api/novels",
			httptestutil.JSON(t, types.NovelRequest{Title: "  My Story  ", NovelTypes: []int{0, 3}}),
			httptestutil.ContentType(echo.MIMEApplicationJSON), httptestutil.Bearer(access),
		)
		if err := serve(e, c, handlers.CreateNovelHandler(f.novels), auth.RequireAuth(f.tokens)); err != nil {
			t.Fatal(err)
		}

		if resp.Code != http.StatusCreated {
			t.Fatalf("unexpected status: %d", resp.Code)
		}
		created := decode[types.Novel](t, resp)
		if created.NovelId != 10 || created.Title != "My Story" {
			t.Errorf("unexpected response: %+v", created)
		}
		calls := f.db.MockNovels.Calls.Create
		if calls.Times() != 1 || calls[0].AuthorId != bob.Id {
			t.Errorf("unexpected call: %+v", calls)
		}
		if f.cache.Calls.InvalidateNovels != 1 {
			t.Errorf("cache should be invalidated")
		}
	})

	t.Run("without token, it responses 401", func(t *testing.T) {
		f := newFixture()

		e := echo.New()
		c, resp := httptestutil.Post(
			e, "/api/novels",
			httptestutil.JSON(t, types.NovelRequest{Title: "My Story"}),
			httptestutil.ContentType(echo.MIMEApplicationJSON),
		)
		err := serve(e, c, handlers.CreateNovelHandler(f.novels), auth.RequireAuth(f.tokens))

		if statusOf(err) != http.StatusUnauthorized || resp.Code != http.StatusUnauthorized {
			t.Errorf("unexpected response: %d, %v", resp.Code, err)
		}
		if f.db.MockNovels.Calls.Create.Times() != 0 {
			t.Errorf("novel should not be created")
		}
	})

	t.Run("with empty title, it responses 400", func(t *testing.T) {
		f := newFixture()
		access, _ := f.login(t, bob)

		e := echo.New()
		c, resp := httptestutil.Post(
			e, "/api/novels",
			httptestutil.JSON(t, types.NovelRequest{Title: " "}),
			httptestutil.ContentType(echo.MIMEApplicationJSON), httptestutil.Bearer(access),
		)
		err := serve(e, c, handlers.CreateNovelHandler(f.novels), auth.RequireAuth(f.tokens))

		if resp.Code != http.StatusBadRequest {
			t.Errorf("unexpected response: %d, %v", resp.Code, err)
		}
		body := decode[errorBody](t, resp)
		if body.Message.Reason == "" {
			t.Errorf("error reason is empty")
		}
	})
}

func TestUpdateNovelHandler(t *testing.T) {
	ptr := func(i int) *int { return &i }

	for name, testcase := range map[string]struct {
		viewer  domain.User
		param   string
		body    types.NovelRequest
		status  int
		updated bool
	}{
		"author updates the novel": {
			viewer: alice, param: "1",
			body:   types.NovelRequest{NovelId: ptr(1), Title: "renamed"},
			status: http.StatusNoContent, updated: true,
		},
		"body without novel id is accepted": {
			viewer: alice, param: "1",
			body:   types.NovelRequest{Title: "renamed"},
			status: http.StatusNoContent, updated: true,
		},
		"novel id mismatch": {
			viewer: alice, param: "1",
			body:   types.NovelRequest{NovelId: ptr(2), Title: "renamed"},
			status: http.StatusBadRequest,
		},
		"not an author": {
			viewer: bob, param: "1",
			body:   types.NovelRequest{NovelId: ptr(1), Title: "renamed"},
			status: http.StatusForbidden,
		},
		"missing novel": {
			viewer: alice, param: "99",
			body:   types.NovelRequest{Title: "renamed"},
			status: http.StatusNotFound,
		},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.db.MockNovels.Impl.Get = func(_ context.Context, id int) (domain.Novel, error) {
				if id == 1 {
					return novelOf(1, alice), nil
				}
				return domain.Novel{}, kdb.ErrMissing
			}
			f.db.MockNovels.Impl.Update = func(_ context.Context, id int, spec *domain.NovelSpec) (domain.Novel, error) {
				n := novelOf(id, alice)
				n.Title = spec.Title()
				return n, nil
			}
			access, _ := f.login(t, testcase.viewer)

			e := echo.New()
			c, resp := httptestutil.Put(
				e, "/api/novels/"+testcase.param, httptestutil.JSON(t, testcase.body),
				httptestutil.ContentType(echo.MIMEApplicationJSON), httptestutil.Bearer(access),
			)
			c.SetParamNames("id")
			c.SetParamValues(testcase.param)
			err := serve(e, c, handlers.UpdateNovelHandler(f.novels, "id"), auth.RequireAuth(f.tokens))

			if resp.Code != testcase.status {
				t.Errorf("status: (actual, expected) = (%d, %d): %v", resp.Code, testcase.status, err)
			}
			if updated := 0 < f.db.MockNovels.Calls.Update.Times(); updated != testcase.updated {
				t.Errorf("updated: (actual, expected) = (%v, %v)", updated, testcase.updated)
			}
		})
	}
}

func TestDeleteNovelHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		viewer  domain.User
		status  int
		deleted bool
	}{
		"author deletes the novel": {viewer: alice, status: http.StatusNoContent, deleted: true},
		"others can not":           {viewer: bob, status: http.StatusForbidden},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.db.MockNovels.Impl.Get = func(context.Context, int) (domain.Novel, error) {
				return novelOf(1, alice), nil
			}
			f.db.MockNovels.Impl.SoftDelete = func(context.Context, int, time.Time) error {
				return nil
			}
			access, _ := f.login(t, testcase.viewer)

			e := echo.New()
			c, resp := httptestutil.Delete(e, "/api/novels/1", httptestutil.Bearer(access))
			c.SetParamNames("id")
			c.SetParamValues("1")
			err := serve(e, c, handlers.DeleteNovelHandler(f.novels, "id"), auth.RequireAuth(f.tokens))

			if resp.Code != testcase.status {
				t.Errorf("status: (actual, expected) = (%d, %d): %v", resp.Code, testcase.status, err)
			}
			if deleted := 0 < f.db.MockNovels.Calls.SoftDelete.Times(); deleted != testcase.deleted {
				t.Errorf("deleted: (actual, expected) = (%v, %v)", deleted, testcase.deleted)
			}
		})
	}
}

func TestToggleLikeHandler(t *testing.T) {
	f := newFixture()
	f.db.MockEngagement.Impl.ToggleLike = func(_ context.Context, novelId int, userId int) (bool, int, error) {
		return true, 8, nil
	}
	access, _ := f.login(t, bob)

	e := echo.New()
	c, resp := httptestutil.Post(e, "/api/novels/1/like", nil, httptestutil.Bearer(access))
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := serve(e, c, handlers.ToggleLikeHandler(f.novels, "id"), auth.RequireAuth(f.tokens)); err != nil {
		t.Fatal(err)
	}

	if actual := decode[types.Like](t, resp); actual != (types.Like{LikeCount: 8, IsLiked: true}) {
		t.Errorf("unexpected response: %+v", actual)
	}
	calls := f.db.MockEngagement.Calls.ToggleLike
	if calls.Times() != 1 || calls[0].NovelId != 1 || calls[0].UserId != bob.Id {
		t.Errorf("unexpected call: %+v", calls)
	}
}

func TestRecordViewHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		record error
		status int
	}{
		"first view":    {status: http.StatusOK},
		"deleted novel": {record: kdb.ErrMissing, status: http.StatusNotFound},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.db.MockEngagement.Impl.RecordView = func(context.Context, int, int) (bool, error) {
				return testcase.record == nil, testcase.record
			}
			access, _ := f.login(t, bob)

			e := echo.New()
			c, resp := httptestutil.Post(e, "/api/novels/1/view", nil, httptestutil.Bearer(access))
			c.SetParamNames("id")
			c.SetParamValues("1")
			err := serve(e, c, handlers.RecordViewHandler(f.novels, "id"), auth.RequireAuth(f.tokens))

			if resp.Code != testcase.status {
				t.Errorf("status: (actual, expected) = (%d, %d): %v", resp.Code, testcase.status, err)
			}
		})
	}
}

func TestCheckAuthorHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		viewer   domain.User
		isAuthor bool
	}{
		"author":     {viewer: alice, isAuthor: true},
		"not author": {viewer: bob, isAuthor: false},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.db.MockNovels.Impl.Get = func(context.Context, int) (domain.Novel, error) {
				return novelOf(1, alice), nil
			}
			access, _ := f.login(t, testcase.viewer)

			e := echo.New()
			c, resp := httptestutil.Get(e, "/api/novels/1/check-author", httptestutil.Bearer(access))
			c.SetParamNames("id")
			c.SetParamValues("1")
			if err := serve(e, c, handlers.CheckAuthorHandler(f.novels, "id"), auth.RequireAuth(f.tokens)); err != nil {
				t.Fatal(err)
			}

			actual := decode[types.IsAuthor](t, resp)
			if actual.IsAuthor != testcase.isAuthor {
				t.Errorf("isAuthor: (actual, expected) = (%v, %v)", actual.IsAuthor, testcase.isAuthor)
			}
		})
	}
}

func TestSearchNovelsHandler(t *testing.T) {
	f := newFixture()
	f.db.MockNovels.Impl.SearchTitle = func(_ context.Context, keyword string) ([]domain.Novel, error) {
		return []domain.Novel{novelOf(1, alice)}, nil
	}

	e := echo.New()
	c, resp := httptestutil.Get(e, "/api/novels/keywords/dragon")
	c.SetParamNames("keywords")
	c.SetParamValues("dragon")
	if err := serve(e, c, handlers.SearchNovelsHandler(f.novels, "keywords"), auth.OptionalAuth(f.tokens)); err != nil {
		t.Fatal(err)
	}

	if actual := decode[[]types.Novel](t, resp); len(actual) != 1 {
		t.Errorf("unexpected response: %+v", actual)
	}
	if calls := f.db.MockNovels.Calls.SearchTitle; calls.Times() != 1 || calls[0] != "dragon" {
		t.Errorf("unexpected call: %+v", calls)
	}
}
