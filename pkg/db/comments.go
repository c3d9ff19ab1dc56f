package db

import (
	"context"

	"github.com/bearnovel/bearnovel/pkg/domain"
)

type CommentInterface interface {
	// List comments on a novel, oldest first.
	List(ctx context.Context, novelId int) ([]domain.Comment, error)

	// Create a comment by the user. If the novel is not found, error is ErrMissing.
	Create(ctx context.Context, novelId int, userId int, spec *domain.CommentSpec) (domain.Comment, error)

	// Delete a comment written by the user.
	//
	// If not found, error is ErrMissing.
	// If it is written by another user, error is domain.ErrForbidden.
	Delete(ctx context.Context, commentId int, userId int) error
}
