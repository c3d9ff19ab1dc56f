package db

import (
	"context"
	"time"

	"github.com/bearnovel/bearnovel/pkg/domain"
)

// NovelInterface handles novels.
//
// Soft-deleted novels are invisible from any method of this interface.
type NovelInterface interface {
	// Create a novel written by the author (user id).
	Create(ctx context.Context, authorId int, spec *domain.NovelSpec) (domain.Novel, error)

	// Get a novel by id. If not found, error is ErrMissing.
	Get(ctx context.Context, novelId int) (domain.Novel, error)

	// List all novels, newest first.
	List(ctx context.Context) ([]domain.Novel, error)

	// ListByAuthor returns novels written by the author, newest first.
	ListByAuthor(ctx context.Context, authorId int) ([]domain.Novel, error)

	// SearchTitle returns novels whose title contains keyword (case insensitive).
	SearchTitle(ctx context.Context, keyword string) ([]domain.Novel, error)

	// Update title, description, novel types and ending status.
	//
	// If not found, error is ErrMissing.
	Update(ctx context.Context, novelId int, spec *domain.NovelSpec) (domain.Novel, error)

	// SoftDelete marks a novel deleted at the time.
	//
	// If not found, error is ErrMissing.
	SoftDelete(ctx context.Context, novelId int, at time.Time) error

	// Popular returns top n novels by view count. Ties are broken by like count.
	Popular(ctx context.Context, n int) ([]domain.Novel, error)
}
