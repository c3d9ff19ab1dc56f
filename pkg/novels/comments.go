package novels

import (
	"context"

	"github.com/bearnovel/bearnovel/pkg/domain"
)

func (s *service) Comments(ctx context.Context, novelId int) ([]domain.Comment, error) {
	if _, err := s.db.Novels().Get(ctx, novelId); err != nil {
		return nil, err
	}
	return s.db.Comments().List(ctx, novelId)
}

func (s *service) AddComment(ctx context.Context, userId int, novelId int, param domain.CommentParam) (domain.Comment, error) {
	spec, err := param.Validate()
	if err != nil {
		return domain.Comment{}, err
	}
	return s.db.Comments().Create(ctx, novelId, userId, spec)
}

// RemoveComment deletes the comment. Only its writer can do that.
func (s *service) RemoveComment(ctx context.Context, userId int, commentId int) error {
	return s.db.Comments().Delete(ctx, commentId, userId)
}
