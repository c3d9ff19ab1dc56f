// novels implements use cases around novels, chapters, comments and rankings.
//
// Lists of novels are served from cache when possible.
// Every operation changing novels invalidates cached lists after the change is committed.
package novels

import (
	"context"
	"time"

	"github.com/bearnovel/bearnovel/pkg/cache"
	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/rs/zerolog"
)

// Item is a novel as seen by a viewer.
type Item struct {
	domain.Novel

	// whether the viewer likes the novel. always false for anonymous viewer.
	IsLiked bool
}

type Service interface {
	// List returns all novels, newest first.
	//
	// viewer can be nil for anonymous.
	List(ctx context.Context, viewer *int) ([]Item, error)
	Get(ctx context.Context, novelId int, viewer *int) (Item, error)
	ListByAuthor(ctx context.Context, authorId int, viewer *int) ([]Item, error)

	// ListByNickName lists novels written by the user with the nickname.
	//
	// It returns ErrMissing when no such user.
	ListByNickName(ctx context.Context, nickName string, viewer *int) ([]Item, error)
	SearchTitle(ctx context.Context, keyword string, viewer *int) ([]Item, error)
	Mine(ctx context.Context, userId int) ([]Item, error)

	Create(ctx context.Context, authorId int, param domain.NovelParam) (domain.Novel, error)
	Update(ctx context.Context, userId int, novelId int, param domain.NovelParam) (domain.Novel, error)
	Delete(ctx context.Context, userId int, novelId int) error
	IsAuthor(ctx context.Context, userId int, novelId int) (bool, error)

	ToggleLike(ctx context.Context, userId int, novelId int) (liked bool, likeCount int, err error)
	RecordView(ctx context.Context, userId int, novelId int) (bool, error)

	Popular(ctx context.Context) ([]domain.Novel, error)
	DailyRankings(ctx context.Context) ([]domain.RankingEntry, error)

	// RecomputeDailyRankings ranks novels on the day before now, and caches them.
	RecomputeDailyRankings(ctx context.Context, now time.Time) ([]domain.RankingEntry, error)

	// Purge removes a novel soft-deleted before retention period.
	//
	// It returns true when a novel is removed.
	Purge(ctx context.Context, now time.Time) (bool, error)

	Chapters(ctx context.Context, novelId int) ([]domain.Chapter, error)
	Chapter(ctx context.Context, chapterId int) (domain.Chapter, error)
	AddChapter(ctx context.Context, userId int, novelId int, param domain.ChapterParam) (domain.Chapter, error)
	EditChapter(ctx context.Context, userId int, chapterId int, param domain.ChapterParam) (domain.Chapter, error)
	RemoveChapter(ctx context.Context, userId int, chapterId int) error

	Comments(ctx context.Context, novelId int) ([]domain.Comment, error)
	AddComment(ctx context.Context, userId int, novelId int, param domain.CommentParam) (domain.Comment, error)
	RemoveComment(ctx context.Context, userId int, commentId int) error
}

type Config struct {
	// how many novels are listed as popular.
	PopularCount int

	// how long soft-deleted novels are kept.
	DeleteRetention time.Duration
}

type service struct {
	db     kdb.Database
	cache  cache.NovelCache
	conf   Config
	now    func() time.Time
	logger zerolog.Logger
}

type Option func(*service) *service

// WithClock replaces the clock. It is for testing.
func WithClock(now func() time.Time) Option {
	return func(s *service) *service {
		s.now = now
		return s
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *service) *service {
		s.logger = logger
		return s
	}
}

func New(database kdb.Database, novelCache cache.NovelCache, conf Config, options ...Option) Service {
	s := &service{
		db:     database,
		cache:  novelCache,
		conf:   conf,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, o := range options {
		s = o(s)
	}
	return s
}
