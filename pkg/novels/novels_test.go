package novels_test

import (
	"context"
	"errors"
	"testing"
	"time"

	cachemock "github.com/bearnovel/bearnovel/pkg/cache/mocks"
	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/db/mocks"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/bearnovel/bearnovel/pkg/novels"
	"github.com/google/go-cmp/cmp"
)

func ref[T any](v T) *T {
	return &v
}

func novel(id int, authorId int) domain.Novel {
	return domain.Novel{
		NovelId:  id,
		Title:    "novel",
		AuthorId: authorId,
		Author:   domain.Author{Id: authorId, UserName: "author"},
	}
}

var defaultConfig = novels.Config{PopularCount: 10, DeleteRetention: 7 * 24 * time.Hour}

func TestList(t *testing.T) {
	type When struct {
		cached []domain.Novel // nil for miss
		viewer *int
		liked  map[int]bool
	}
	type Then struct {
		items          []novels.Item
		queriedDB      bool
		queriedLikedBy bool
	}

	stored := []domain.Novel{novel(2, 10), novel(1, 11)}

	for name, testcase := range map[string]struct {
		when When
		then Then
	}{
		"when cache misses, it reads database and fills cache": {
			when: When{},
			then: Then{
				items:     []novels.Item{{Novel: stored[0]}, {Novel: stored[1]}},
				queriedDB: true,
			},
		},
		"when cache hits, it does not read database": {
			when: When{cached: stored[1:]},
			then: Then{
				items: []novels.Item{{Novel: stored[1]}},
			},
		},
		"when viewer is given, it marks liked novels": {
			when: When{cached: stored, viewer: ref(10), liked: map[int]bool{1: true}},
			then: Then{
				items:          []novels.Item{{Novel: stored[0]}, {Novel: stored[1], IsLiked: true}},
				queriedLikedBy: true,
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			database := mocks.NewMockDatabase()
			database.MockNovels.Impl.List = func(context.Context) ([]domain.Novel, error) {
				return stored, nil
			}
			database.MockEngagement.Impl.LikedBy = func(_ context.Context, _ int, _ []int) (map[int]bool, error) {
				return testcase.when.liked, nil
			}
			nc := cachemock.NewMockNovelCache()
			if testcase.when.cached != nil {
				nc.Impl.AllNovels = func(context.Context) ([]domain.Novel, bool) {
					return testcase.when.cached, true
				}
			}

			testee := novels.New(database, nc, defaultConfig)
			got, err := testee.List(ctx, testcase.when.viewer)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !cmp.Equal(got, testcase.then.items) {
				t.Errorf("items:\n%s", cmp.Diff(testcase.then.items, got))
			}

			if testcase.then.queriedDB {
				if database.MockNovels.Calls.List.Times() != 1 {
					t.Errorf("database is not queried")
				}
				if !cmp.Equal(nc.Calls.SetAllNovels, cachemock.CallLog[[]domain.Novel]{stored}) {
					t.Errorf("cache is not filled: %+v", nc.Calls.SetAllNovels)
				}
			} else {
				if 0 < database.MockNovels.Calls.List.Times() {
					t.Errorf("database is queried on cache hit")
				}
				if 0 < nc.Calls.SetAllNovels.Times() {
					t.Errorf("cache is written on cache hit")
				}
			}

			if testcase.then.queriedLikedBy != (0 < database.MockEngagement.Calls.LikedBy.Times()) {
				t.Errorf("LikedBy calls: %+v", database.MockEngagement.Calls.LikedBy)
			}
		})
	}

	t.Run("when database fails, it returns the error", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		database := mocks.NewMockDatabase()
		database.MockNovels.Impl.List = func(context.Context) ([]domain.Novel, error) {
			return nil, expectedErr
		}
		nc := cachemock.NewMockNovelCache()

		testee := novels.New(database, nc, defaultConfig)
		if _, err := testee.List(context.Background(), nil); !errors.Is(err, expectedErr) {
			t.Errorf("error: expected %v, got %v", expectedErr, err)
		}
		if 0 < nc.Calls.SetAllNovels.Times() {
			t.Errorf("cache is written on error")
		}
	})
}

func TestListByNickName(t *testing.T) {
	t.Run("it lists novels of the user found by nickname", func(t *testing.T) {
		database := mocks.NewMockDatabase()
		database.MockUsers.Impl.FindByNickName = func(context.Context, string) (domain.User, error) {
			return domain.User{Id: 42, NickName: "nick"}, nil
		}
		database.MockNovels.Impl.ListByAuthor = func(context.Context, int) ([]domain.Novel, error) {
			return []domain.Novel{novel(1, 42)}, nil
		}

		testee := novels.New(database, cachemock.NewMockNovelCache(), defaultConfig)
		got, err := testee.ListByNickName(context.Background(), "nick", nil)
		if err != nil {
			t.Fatal(err)
		}
		if want := []novels.Item{{Novel: novel(1, 42)}}; !cmp.Equal(got, want) {
			t.Errorf("items:\n%s", cmp.Diff(want, got))
		}
		if !cmp.Equal(database.MockNovels.Calls.ListByAuthor, mocks.CallLog[int]{42}) {
			t.Errorf("ListByAuthor calls: %v", database.MockNovels.Calls.ListByAuthor)
		}
	})

	t.Run("when no user has the nickname, it returns ErrMissing", func(t *testing.T) {
		database := mocks.NewMockDatabase()
		database.MockUsers.Impl.FindByNickName = func(context.Context, string) (domain.User, error) {
			return domain.User{}, kdb.ErrMissing
		}

		testee := novels.New(database, cachemock.NewMockNovelCache(), defaultConfig)
		if _, err := testee.ListByNickName(context.Background(), "nobody", nil); !errors.Is(err, kdb.ErrMissing) {
			t.Errorf("expected ErrMissing, got %v", err)
		}
	})
}

func TestSearchTitle_EmptyKeyword(t *testing.T) {
	database := mocks.NewMockDatabase()
	testee := novels.New(database, cachemock.NewMockNovelCache(), defaultConfig)

	for _, keyword := range []string{"", "  "} {
		if _, err := testee.SearchTitle(context.Background(), keyword, nil); !errors.Is(err, domain.ErrInvalid) {
			t.Errorf("keyword %q: expected ErrInvalid, got %v", keyword, err)
		}
	}
	if 0 < database.MockNovels.Calls.SearchTitle.Times() {
		t.Errorf("database is queried with empty keyword")
	}
}

func TestCreate(t *testing.T) {
	t.Run("it creates a novel and invalidates cache", func(t *testing.T) {
		database := mocks.NewMockDatabase()
		database.MockNovels.Impl.Create = func(_ context.Context, authorId int, spec *domain.NovelSpec) (domain.Novel, error) {
			n := novel(5, authorId)
			n.Title = spec.Title()
			return n, nil
		}
		nc := cachemock.NewMockNovelCache()

		testee := novels.New(database, nc, defaultConfig)
		got, err := testee.Create(
			context.Background(), 3,
			domain.NovelParam{Title: "The Title", NovelTypes: []domain.NovelType{domain.Romance}},
		)
		if err != nil {
			t.Fatal(err)
		}
		if got.NovelId != 5 || got.Title != "The Title" || got.AuthorId != 3 {
			t.Errorf("unexpected novel: %+v", got)
		}
		if nc.Calls.InvalidateNovels != 1 {
			t.Errorf("cache is invalidated %d times", nc.Calls.InvalidateNovels)
		}
	})

	t.Run("when param is invalid, it does not touch database nor cache", func(t *testing.T) {
		database := mocks.NewMockDatabase()
		nc := cachemock.NewMockNovelCache()

		testee := novels.New(database, nc, defaultConfig)
		_, err := testee.Create(context.Background(), 3, domain.NovelParam{Title: ""})
		if !errors.Is(err, domain.ErrInvalid) {
			t.Errorf("expected ErrInvalid, got %v", err)
		}
		if 0 < database.MockNovels.Calls.Create.Times() {
			t.Errorf("database is written")
		}
		if 0 < nc.Calls.InvalidateNovels {
			t.Errorf("cache is invalidated")
		}
	})
}

func TestAuthorOnlyOperations(t *testing.T) {
	const authorId = 1
	const otherId = 2
	const novelId = 100
	const chapterId = 1000

	param := domain.NovelParam{Title: "renamed", NovelTypes: []domain.NovelType{domain.Campus}}
	chapterParam := domain.ChapterParam{Title: "chapter", Content: "once upon a time"}

	type Then struct {
		err         error
		invalidated bool
	}

	for name, testcase := range map[string]struct {
		userId int
		do     func(novels.Service, int) error
		then   Then
	}{
		"Update by author": {
			userId: authorId,
			do: func(s novels.Service, userId int) error {
				_, err := s.Update(context.Background(), userId, novelId, param)
				return err
			},
			then: Then{invalidated: true},
		},
		"Update by other": {
			userId: otherId,
			do: func(s novels.Service, userId int) error {
				_, err := s.Update(context.Background(), userId, novelId, param)
				return err
			},
			then: Then{err: domain.ErrForbidden},
		},
		"Delete by author": {
			userId: authorId,
			do: func(s novels.Service, userId int) error {
				return s.Delete(context.Background(), userId, novelId)
			},
			then: Then{invalidated: true},
		},
		"Delete by other": {
			userId: otherId,
			do: func(s novels.Service, userId int) error {
				return s.Delete(context.Background(), userId, novelId)
			},
			then: Then{err: domain.ErrForbidden},
		},
		"AddChapter by author": {
			userId: authorId,
			do: func(s novels.Service, userId int) error {
				_, err := s.AddChapter(context.Background(), userId, novelId, chapterParam)
				return err
			},
			then: Then{invalidated: true},
		},
		"AddChapter by other": {
			userId: otherId,
			do: func(s novels.Service, userId int) error {
				_, err := s.AddChapter(context.Background(), userId, novelId, chapterParam)
				return err
			},
			then: Then{err: domain.ErrForbidden},
		},
		"EditChapter by author": {
			userId: authorId,
			do: func(s novels.Service, userId int) error {
				_, err := s.EditChapter(context.Background(), userId, chapterId, chapterParam)
				return err
			},
			then: Then{invalidated: true},
		},
		"EditChapter by other": {
			userId: otherId,
			do: func(s novels.Service, userId int) error {
				_, err := s.EditChapter(context.Background(), userId, chapterId, chapterParam)
				return err
			},
			then: Then{err: domain.ErrForbidden},
		},
		"RemoveChapter by author": {
			userId: authorId,
			do: func(s novels.Service, userId int) error {
				return s.RemoveChapter(context.Background(), userId, chapterId)
			},
			then: Then{invalidated: true},
		},
		"RemoveChapter by other": {
			userId: otherId,
			do: func(s novels.Service, userId int) error {
				return s.RemoveChapter(context.Background(), userId, chapterId)
			},
			then: Then{err: domain.ErrForbidden},
		},
	} {
		t.Run(name, func(t *testing.T) {
			database := mocks.NewMockDatabase()
			database.MockNovels.Impl.Get = func(_ context.Context, id int) (domain.Novel, error) {
				if id != novelId {
					return domain.Novel{}, kdb.ErrMissing
				}
				return novel(novelId, authorId), nil
			}
			database.MockNovels.Impl.Update = func(_ context.Context, id int, _ *domain.NovelSpec) (domain.Novel, error) {
				return novel(id, authorId), nil
			}
			database.MockNovels.Impl.SoftDelete = func(context.Context, int, time.Time) error {
				return nil
			}
			ch := domain.Chapter{ChapterId: chapterId, NovelId: novelId, ChapterNumber: 1}
			database.MockChapters.Impl.Get = func(context.Context, int) (domain.Chapter, error) {
				return ch, nil
			}
			database.MockChapters.Impl.Create = func(context.Context, int, *domain.ChapterSpec) (domain.Chapter, error) {
				return ch, nil
			}
			database.MockChapters.Impl.Update = func(context.Context, int, *domain.ChapterSpec) (domain.Chapter, error) {
				return ch, nil
			}
			database.MockChapters.Impl.Delete = func(context.Context, int) error {
				return nil
			}
			nc := cachemock.NewMockNovelCache()

			testee := novels.New(database, nc, defaultConfig)
			err := testcase.do(testee, testcase.userId)

			if testcase.then.err == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else if !errors.Is(err, testcase.then.err) {
				t.Fatalf("error: expected %v, got %v", testcase.then.err, err)
			}

			if testcase.then.invalidated != (0 < nc.Calls.InvalidateNovels) {
				t.Errorf("invalidated %d times", nc.Calls.InvalidateNovels)
			}
			if testcase.then.err != nil {
				writes := database.MockNovels.Calls.Update.Times() +
					database.MockNovels.Calls.SoftDelete.Times() +
					database.MockChapters.Calls.Create.Times() +
					database.MockChapters.Calls.Update.Times() +
					database.MockChapters.Calls.Delete.Times()
				if 0 < writes {
					t.Errorf("database is written by non-author")
				}
			}
		})
	}
}

func TestDelete_UsesClock(t *testing.T) {
	now := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	database := mocks.NewMockDatabase()
	database.MockNovels.Impl.Get = func(_ context.Context, id int) (domain.Novel, error) {
		return novel(id, 1), nil
	}
	database.MockNovels.Impl.SoftDelete = func(context.Context, int, time.Time) error {
		return nil
	}

	testee := novels.New(
		database, cachemock.NewMockNovelCache(), defaultConfig,
		novels.WithClock(func() time.Time { return now }),
	)
	if err := testee.Delete(context.Background(), 1, 9); err != nil {
		t.Fatal(err)
	}
	want := mocks.CallLog[mocks.NovelSoftDeleteArgs]{{NovelId: 9, At: now}}
	if !cmp.Equal(database.MockNovels.Calls.SoftDelete, want) {
		t.Errorf("SoftDelete calls:\n%s", cmp.Diff(want, database.MockNovels.Calls.SoftDelete))
	}
}

func TestEngagement(t *testing.T) {
	t.Run("ToggleLike invalidates cache", func(t *testing.T) {
		database := mocks.NewMockDatabase()
		database.MockEngagement.Impl.ToggleLike = func(context.Context, int, int) (bool, int, error) {
			return true, 4, nil
		}
		nc := cachemock.NewMockNovelCache()

		testee := novels.New(database, nc, defaultConfig)
		liked, count, err := testee.ToggleLike(context.Background(), 3, 7)
		if err != nil {
			t.Fatal(err)
		}
		if !liked || count != 4 {
			t.Errorf("unexpected result: liked=%v, count=%d", liked, count)
		}
		want := mocks.CallLog[mocks.EngagementArgs]{{NovelId: 7, UserId: 3}}
		if !cmp.Equal(database.MockEngagement.Calls.ToggleLike, want) {
			t.Errorf("ToggleLike calls: %+v", database.MockEngagement.Calls.ToggleLike)
		}
		if nc.Calls.InvalidateNovels != 1 {
			t.Errorf("cache is invalidated %d times", nc.Calls.InvalidateNovels)
		}
	})

	for name, recorded := range map[string]bool{
		"RecordView invalidates cache on first view": true,
		"RecordView keeps cache on repeated view":    false,
	} {
		t.Run(name, func(t *testing.T) {
			database := mocks.NewMockDatabase()
			database.MockEngagement.Impl.RecordView = func(context.Context, int, int) (bool, error) {
				return recorded, nil
			}
			nc := cachemock.NewMockNovelCache()

			testee := novels.New(database, nc, defaultConfig)
			got, err := testee.RecordView(context.Background(), 3, 7)
			if err != nil {
				t.Fatal(err)
			}
			if got != recorded {
				t.Errorf("recorded: expected %v, got %v", recorded, got)
			}
			if recorded != (nc.Calls.InvalidateNovels == 1) {
				t.Errorf("cache is invalidated %d times", nc.Calls.InvalidateNovels)
			}
		})
	}
}

func TestPopular(t *testing.T) {
	popular := []domain.Novel{novel(3, 1), novel(1, 1)}

	t.Run("when cache misses, it reads database with configured count", func(t *testing.T) {
		database := mocks.NewMockDatabase()
		database.MockNovels.Impl.Popular = func(context.Context, int) ([]domain.Novel, error) {
			return popular, nil
		}
		nc := cachemock.NewMockNovelCache()

		testee := novels.New(database, nc, novels.Config{PopularCount: 3})
		got, err := testee.Popular(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if !cmp.Equal(got, popular) {
			t.Errorf("popular:\n%s", cmp.Diff(popular, got))
		}
		if !cmp.Equal(database.MockNovels.Calls.Popular, mocks.CallLog[int]{3}) {
			t.Errorf("Popular calls: %v", database.MockNovels.Calls.Popular)
		}
		if nc.Calls.SetPopularNovels.Times() != 1 {
			t.Errorf("cache is not filled")
		}
	})

	t.Run("when cache hits, it does not read database", func(t *testing.T) {
		database := mocks.NewMockDatabase()
		nc := cachemock.NewMockNovelCache()
		nc.Impl.PopularNovels = func(context.Context) ([]domain.Novel, bool) {
			return popular, true
		}

		testee := novels.New(database, nc, defaultConfig)
		got, err := testee.Popular(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if !cmp.Equal(got, popular) {
			t.Errorf("popular:\n%s", cmp.Diff(popular, got))
		}
		if 0 < database.MockNovels.Calls.Popular.Times() {
			t.Errorf("database is queried on cache hit")
		}
	})
}

func TestComments_MissingNovel(t *testing.T) {
	database := mocks.NewMockDatabase()
	database.MockNovels.Impl.Get = func(context.Context, int) (domain.Novel, error) {
		return domain.Novel{}, kdb.ErrMissing
	}

	testee := novels.New(database, cachemock.NewMockNovelCache(), defaultConfig)
	if _, err := testee.Comments(context.Background(), 1); !errors.Is(err, kdb.ErrMissing) {
		t.Errorf("expected ErrMissing, got %v", err)
	}
	if 0 < database.MockComments.Calls.List.Times() {
		t.Errorf("comments are queried for missing novel")
	}
}

func TestAddComment(t *testing.T) {
	database := mocks.NewMockDatabase()
	database.MockComments.Impl.Create = func(_ context.Context, novelId int, userId int, spec *domain.CommentSpec) (domain.Comment, error) {
		return domain.Comment{CommentId: 1, NovelId: novelId, Author: domain.Author{Id: userId}, Content: spec.Content()}, nil
	}
	testee := novels.New(database, cachemock.NewMockNovelCache(), defaultConfig)

	got, err := testee.AddComment(context.Background(), 2, 3, domain.CommentParam{Content: "  nice  "})
	if err != nil {
		t.Fatal(err)
	}
	if got.Content != "nice" || got.NovelId != 3 || got.Author.Id != 2 {
		t.Errorf("unexpected comment: %+v", got)
	}

	if _, err := testee.AddComment(context.Background(), 2, 3, domain.CommentParam{Content: " "}); !errors.Is(err, domain.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
