package novels

import (
	"context"

	"github.com/bearnovel/bearnovel/pkg/domain"
)

// Chapters lists chapters of the novel, in chapter number order.
func (s *service) Chapters(ctx context.Context, novelId int) ([]domain.Chapter, error) {
	if _, err := s.db.Novels().Get(ctx, novelId); err != nil {
		return nil, err
	}
	return s.db.Chapters().List(ctx, novelId)
}

func (s *service) Chapter(ctx context.Context, chapterId int) (domain.Chapter, error) {
	return s.db.Chapters().Get(ctx, chapterId)
}

func (s *service) AddChapter(ctx context.Context, userId int, novelId int, param domain.ChapterParam) (domain.Chapter, error) {
	spec, err := param.Validate()
	if err != nil {
		return domain.Chapter{}, err
	}
	if _, err := s.authorize(ctx, userId, novelId); err != nil {
		return domain.Chapter{}, err
	}
	ch, err := s.db.Chapters().Create(ctx, novelId, spec)
	if err != nil {
		return domain.Chapter{}, err
	}
	s.cache.InvalidateNovels(ctx)
	return ch, nil
}

func (s *service) EditChapter(ctx context.Context, userId int, chapterId int, param domain.ChapterParam) (domain.Chapter, error) {
	spec, err := param.Validate()
	if err != nil {
		return domain.Chapter{}, err
	}
	current, err := s.db.Chapters().Get(ctx, chapterId)
	if err != nil {
		return domain.Chapter{}, err
	}
	if _, err := s.authorize(ctx, userId, current.NovelId); err != nil {
		return domain.Chapter{}, err
	}
	ch, err := s.db.Chapters().Update(ctx, chapterId, spec)
	if err != nil {
		return domain.Chapter{}, err
	}
	s.cache.InvalidateNovels(ctx)
	return ch, nil
}

func (s *service) RemoveChapter(ctx context.Context, userId int, chapterId int) error {
	current, err := s.db.Chapters().Get(ctx, chapterId)
	if err != nil {
		return err
	}
	if _, err := s.authorize(ctx, userId, current.NovelId); err != nil {
		return err
	}
	if err := s.db.Chapters().Delete(ctx, chapterId); err != nil {
		return err
	}
	s.cache.InvalidateNovels(ctx)
	return nil
}
