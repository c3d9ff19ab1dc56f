package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bearnovel/bearnovel/cmd/noveld/handlers"
	httptestutil "github.com/bearnovel/bearnovel/internal/testutils/http"
	"github.com/bearnovel/bearnovel/pkg/api/types"
	"github.com/bearnovel/bearnovel/pkg/auth"
	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/labstack/echo/v4"
)

func TestListChaptersHandler(t *testing.T) {
	t.Run("it lists chapters of the novel", func(t *testing.T) {
		f := newFixture()
		f.db.MockNovels.Impl.Get = func(context.Context, int) (domain.Novel, error) {
			return novelOf(1, alice), nil
		}
		f.db.MockChapters.Impl.List = func(_ context.Context, novelId int) ([]domain.Chapter, error) {
			return []domain.Chapter{
				{ChapterId: 11, NovelId: novelId, ChapterNumber: 1, Title: "begin", Content: "once upon a time", WordCount: 13},
				{ChapterId: 12, NovelId: novelId, ChapterNumber: 2, Title: "end", Content: "the end", WordCount: 6},
			}, nil
		}

		e := echo.New()
		c, resp := httptestutil.Get(e, "/api/novels/1/chapters")
		c.SetParamNames("id")
		c.SetParamValues("1")
		if err := serve(e, c, handlers.ListChaptersHandler(f.novels, "id")); err != nil {
			t.Fatal(err)
		}

		actual := decode[[]types.Chapter](t, resp)
		if len(actual) != 2 || actual[0].ChapterNumber != 1 || actual[1].ChapterNumber != 2 {
			t.Errorf("unexpected chapters: %+v", actual)
		}
	})

	t.Run("chapters of missing novel is not found", func(t *testing.T) {
		f := newFixture()
		f.db.MockNovels.Impl.Get = func(context.Context, int) (domain.Novel, error) {
			return domain.Novel{}, kdb.ErrMissing
		}

		e := echo.New()
		c, resp := httptestutil.Get(e, "/api/novels/1/chapters")
		c.SetParamNames("id")
		c.SetParamValues("1")
		err := serve(e, c, handlers.ListChaptersHandler(f.novels, "id"))

		if resp.Code != http.StatusNotFound {
			t.Errorf("unexpected status: %d, %v", resp.Code, err)
		}
		if f.db.MockChapters.Calls.List.Times() != 0 {
			t.Errorf("chapters should not be listed")
		}
	})
}

func TestCreateChapterHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		viewer  domain.User
		body    types.ChapterRequest
		status  int
		created bool
	}{
		"author adds a chapter": {
			viewer:  alice,
			body:    types.ChapterRequest{Title: "chapter 1", Content: "hello world"},
			status:  http.StatusCreated,
			created: true,
		},
		"others can not": {
			viewer: bob,
			body:   types.ChapterRequest{Title: "chapter 1", Content: "hello world"},
			status: http.StatusForbidden,
		},
		"empty content": {
			viewer: alice,
			body:   types.ChapterRequest{Title: "chapter 1", Content: "  "},
			status: http.StatusBadRequest,
		},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.db.MockNovels.Impl.Get = func(context.Context, int) (domain.Novel, error) {
				return novelOf(1, alice), nil
			}
			f.db.MockChapters.Impl.Create = func(_ context.Context, novelId int, spec *domain.ChapterSpec) (domain.Chapter, error) {
				return domain.Chapter{
					ChapterId: 11, NovelId: novelId, ChapterNumber: 1,
					Title: spec.Title(), Content: spec.Content(), WordCount: spec.WordCount(),
				}, nil
			}
			access, _ := f.login(t, testcase.viewer)

			e := echo.New()
			c, resp := httptestutil.Post(
				e, "/api/novels/1/chapters", httptestutil.JSON(t, testcase.body),
				httptestutil.ContentType(echo.MIMEApplicationJSON), httptestutil.Bearer(access),
			)
			c.SetParamNames("id")
			c.SetParamValues("1")
			err := serve(e, c, handlers.CreateChapterHandler(f.novels, "id"), auth.RequireAuth(f.tokens))

			if resp.Code != testcase.status {
				t.Fatalf("status: (actual, expected) = (%d, %d): %v", resp.Code, testcase.status, err)
			}
			if created := 0 < f.db.MockChapters.Calls.Create.Times(); created != testcase.created {
				t.Errorf("created: (actual, expected) = (%v, %v)", created, testcase.created)
			}
			if testcase.created {
				ch := decode[types.Chapter](t, resp)
				if ch.ChapterId != 11 || ch.WordCount != 10 {
					t.Errorf("unexpected chapter: %+v", ch)
				}
			}
		})
	}
}

func TestUpdateAndDeleteChapterHandler(t *testing.T) {
	setup := func(t *testing.T, viewer domain.User) (*fixture, string) {
		f := newFixture()
		f.db.MockChapters.Impl.Get = func(_ context.Context, chapterId int) (domain.Chapter, error) {
			if chapterId != 11 {
				return domain.Chapter{}, kdb.ErrMissing
			}
			return domain.Chapter{ChapterId: 11, NovelId: 1, ChapterNumber: 1, Title: "t", Content: "c"}, nil
		}
		f.db.MockNovels.Impl.Get = func(context.Context, int) (domain.Novel, error) {
			return novelOf(1, alice), nil
		}
		f.db.MockChapters.Impl.Update = func(_ context.Context, chapterId int, spec *domain.ChapterSpec) (domain.Chapter, error) {
			return domain.Chapter{ChapterId: chapterId, NovelId: 1, Title: spec.Title(), Content: spec.Content()}, nil
		}
		f.db.MockChapters.Impl.Delete = func(context.Context, int) error {
			return nil
		}
		access, _ := f.login(t, viewer)
		return f, access
	}

	for name, testcase := range map[string]struct {
		viewer    domain.User
		chapterId string
		status    int
	}{
		"author":          {viewer: alice, chapterId: "11", status: http.StatusNoContent},
		"not author":      {viewer: bob, chapterId: "11", status: http.StatusForbidden},
		"missing chapter": {viewer: alice, chapterId: "12", status: http.StatusNotFound},
	} {
		t.Run("update by "+name, func(t *testing.T) {
			f, access := setup(t, testcase.viewer)

			e := echo.New()
			c, resp := httptestutil.Put(
				e, "/api/novels/chapter/"+testcase.chapterId,
				httptestutil.JSON(t, types.ChapterRequest{Title: "new title", Content: "new content"}),
				httptestutil.ContentType(echo.MIMEApplicationJSON), httptestutil.Bearer(access),
			)
			c.SetParamNames("chapterId")
			c.SetParamValues(testcase.chapterId)
			err := serve(e, c, handlers.UpdateChapterHandler(f.novels, "chapterId"), auth.RequireAuth(f.tokens))

			if resp.Code != testcase.status {
				t.Errorf("status: (actual, expected) = (%d, %d): %v", resp.Code, testcase.status, err)
			}
			if updated := 0 < f.db.MockChapters.Calls.Update.Times(); updated != (testcase.status == http.StatusNoContent) {
				t.Errorf("unexpected update: %v", updated)
			}
		})

		t.Run("delete by "+name, func(t *testing.T) {
			f, access := setup(t, testcase.viewer)

			e := echo.New()
			c, resp := httptestutil.Delete(e, "/api/novels/chapter/"+testcase.chapterId, httptestutil.Bearer(access))
			c.SetParamNames("chapterId")
			c.SetParamValues(testcase.chapterId)
			err := serve(e, c, handlers.DeleteChapterHandler(f.novels, "chapterId"), auth.RequireAuth(f.tokens))

			if resp.Code != testcase.status {
				t.Errorf("status: (actual, expected) = (%d, %d): %v", resp.Code, testcase.status, err)
			}
			if deleted := 0 < f.db.MockChapters.Calls.Delete.Times(); deleted != (testcase.status == http.StatusNoContent) {
				t.Errorf("unexpected deletion: %v", deleted)
			}
		})
	}
}

func TestCommentHandlers(t *testing.T) {
	t.Run("create comment", func(t *testing.T) {
		f := newFixture()
		f.db.MockComments.Impl.Create = func(_ context.Context, novelId int, userId int, spec *domain.CommentSpec) (domain.Comment, error) {
			return domain.Comment{CommentId: 7, NovelId: novelId, Author: bob.Author(), Content: spec.Content()}, nil
		}
		access, _ := f.login(t, bob)

		e := echo.New()
		c, resp := httptestutil.Post(
			e, "/api/novels/1/comments", httptestutil.JSON(t, types.CommentRequest{Content: "nice!"}),
			httptestutil.ContentType(echo.MIMEApplicationJSON), httptestutil.Bearer(access),
		)
		c.SetParamNames("id")
		c.SetParamValues("1")
		if err := serve(e, c, handlers.CreateCommentHandler(f.novels, "id"), auth.RequireAuth(f.tokens)); err != nil {
			t.Fatal(err)
		}

		if resp.Code != http.StatusCreated {
			t.Fatalf("unexpected status: %d", resp.Code)
		}
		comment := decode[types.Comment](t, resp)
		if comment.CommentId != 7 || comment.Content != "nice!" || comment.User.UserId != bob.Id {
			t.Errorf("unexpected comment: %+v", comment)
		}
		if calls := f.db.MockComments.Calls.Create; calls[0].UserId != bob.Id || calls[0].NovelId != 1 {
			t.Errorf("unexpected call: %+v", calls)
		}
	})

	for name, testcase := range map[string]struct {
		deletion error
		status   int
	}{
		"writer deletes the comment":   {status: http.StatusNoContent},
		"others can not":               {deletion: errors.Join(domain.ErrForbidden, errors.New("not yours")), status: http.StatusForbidden},
		"missing comment is not found": {deletion: kdb.ErrMissing, status: http.StatusNotFound},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.db.MockComments.Impl.Delete = func(context.Context, int, int) error {
				return testcase.deletion
			}
			access, _ := f.login(t, bob)

			e := echo.New()
			c, resp := httptestutil.Delete(e, "/api/novels/comment/7", httptestutil.Bearer(access))
			c.SetParamNames("commentId")
			c.SetParamValues("7")
			err := serve(e, c, handlers.DeleteCommentHandler(f.novels, "commentId"), auth.RequireAuth(f.tokens))

			if resp.Code != testcase.status {
				t.Errorf("status: (actual, expected) = (%d, %d): %v", resp.Code, testcase.status, err)
			}
			calls := f.db.MockComments.Calls.Delete
			if calls.Times() != 1 || calls[0].CommentId != 7 || calls[0].UserId != bob.Id {
				t.Errorf("unexpected call: %+v", calls)
			}
		})
	}
}
