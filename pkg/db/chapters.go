package db

import (
	"context"

	"github.com/bearnovel/bearnovel/pkg/domain"
)

type ChapterInterface interface {
	// List chapters of a novel, by chapter number.
	//
	// If the novel is not found, error is ErrMissing.
	List(ctx context.Context, novelId int) ([]domain.Chapter, error)

	// Get a chapter. If not found, error is ErrMissing.
	Get(ctx context.Context, chapterId int) (domain.Chapter, error)

	// Create a chapter as the last one of the novel.
	//
	// The chapter number is the largest number in the novel plus 1,
	// and the novel is marked as updated.
	//
	// If the novel is not found, error is ErrMissing.
	Create(ctx context.Context, novelId int, spec *domain.ChapterSpec) (domain.Chapter, error)

	// Update title and content of a chapter. The novel is marked as updated.
	//
	// If not found, error is ErrMissing.
	Update(ctx context.Context, chapterId int, spec *domain.ChapterSpec) (domain.Chapter, error)

	// Delete a chapter. Numbers of the other chapters are kept.
	//
	// If not found, error is ErrMissing.
	Delete(ctx context.Context, chapterId int) error
}
