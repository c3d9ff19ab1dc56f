package novels

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bearnovel/bearnovel/pkg/domain"
)

// overlay marks novels liked by the viewer.
func (s *service) overlay(ctx context.Context, novels []domain.Novel, viewer *int) ([]Item, error) {
	items := make([]Item, len(novels))
	for i, n := range novels {
		items[i] = Item{Novel: n}
	}
	if viewer == nil || len(novels) == 0 {
		return items, nil
	}

	ids := make([]int, len(novels))
	for i, n := range novels {
		ids[i] = n.NovelId
	}
	liked, err := s.db.Engagement().LikedBy(ctx, *viewer, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].IsLiked = liked[items[i].NovelId]
	}
	return items, nil
}

func (s *service) List(ctx context.Context, viewer *int) ([]Item, error) {
	novels, ok := s.cache.AllNovels(ctx)
	if !ok {
		var err error
		novels, err = s.db.Novels().List(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.SetAllNovels(ctx, novels)
	}
	return s.overlay(ctx, novels, viewer)
}

func (s *service) Get(ctx context.Context, novelId int, viewer *int) (Item, error) {
	n, err := s.db.Novels().Get(ctx, novelId)
	if err != nil {
		return Item{}, err
	}
	items, err := s.overlay(ctx, []domain.Novel{n}, viewer)
	if err != nil {
		return Item{}, err
	}
	return items[0], nil
}

func (s *service) ListByAuthor(ctx context.Context, authorId int, viewer *int) ([]Item, error) {
	novels, err := s.db.Novels().ListByAuthor(ctx, authorId)
	if err != nil {
		return nil, err
	}
	return s.overlay(ctx, novels, viewer)
}

func (s *service) ListByNickName(ctx context.Context, nickName string, viewer *int) ([]Item, error) {
	author, err := s.db.Users().FindByNickName(ctx, nickName)
	if err != nil {
		return nil, err
	}
	return s.ListByAuthor(ctx, author.Id, viewer)
}

var ErrEmptyKeyword = fmt.Errorf("%w: keyword is required", domain.ErrInvalid)

func (s *service) SearchTitle(ctx context.Context, keyword string, viewer *int) ([]Item, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	novels, err := s.db.Novels().SearchTitle(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return s.overlay(ctx, novels, viewer)
}

func (s *service) Mine(ctx context.Context, userId int) ([]Item, error) {
	return s.ListByAuthor(ctx, userId, &userId)
}

func (s *service) Create(ctx context.Context, authorId int, param domain.NovelParam) (domain.Novel, error) {
	spec, err := param.Validate()
	if err != nil {
		return domain.Novel{}, err
	}
	n, err := s.db.Novels().Create(ctx, authorId, spec)
	if err != nil {
		return domain.Novel{}, err
	}
	s.cache.InvalidateNovels(ctx)
	return n, nil
}

// authorize gets the novel, and checks the user is the author of that.
func (s *service) authorize(ctx context.Context, userId int, novelId int) (domain.Novel, error) {
	n, err := s.db.Novels().Get(ctx, novelId)
	if err != nil {
		return domain.Novel{}, err
	}
	if !n.WrittenBy(userId) {
		return domain.Novel{}, errors.Join(
			domain.ErrForbidden,
			fmt.Errorf("novel %d is not written by user %d", novelId, userId),
		)
	}
	return n, nil
}

func (s *service) Update(ctx context.Context, userId int, novelId int, param domain.NovelParam) (domain.Novel, error) {
	spec, err := param.Validate()
	if err != nil {
		return domain.Novel{}, err
	}
	if _, err := s.authorize(ctx, userId, novelId); err != nil {
		return domain.Novel{}, err
	}
	n, err := s.db.Novels().Update(ctx, novelId, spec)
	if err != nil {
		return domain.Novel{}, err
	}
	s.cache.InvalidateNovels(ctx)
	return n, nil
}

func (s *service) Delete(ctx context.Context, userId int, novelId int) error {
	if _, err := s.authorize(ctx, userId, novelId); err != nil {
		return err
	}
	if err := s.db.Novels().SoftDelete(ctx, novelId, s.now()); err != nil {
		return err
	}
	s.cache.InvalidateNovels(ctx)
	return nil
}

func (s *service) IsAuthor(ctx context.Context, userId int, novelId int) (bool, error) {
	n, err := s.db.Novels().Get(ctx, novelId)
	if err != nil {
		return false, err
	}
	return n.WrittenBy(userId), nil
}

func (s *service) ToggleLike(ctx context.Context, userId int, novelId int) (bool, int, error) {
	liked, count, err := s.db.Engagement().ToggleLike(ctx, novelId, userId)
	if err != nil {
		return false, 0, err
	}
	s.cache.InvalidateNovels(ctx)
	return liked, count, nil
}

func (s *service) RecordView(ctx context.Context, userId int, novelId int) (bool, error) {
	recorded, err := s.db.Engagement().RecordView(ctx, novelId, userId)
	if err != nil {
		return false, err
	}
	if recorded {
		s.cache.InvalidateNovels(ctx)
	}
	return recorded, nil
}

func (s *service) Popular(ctx context.Context) ([]domain.Novel, error) {
	if novels, ok := s.cache.PopularNovels(ctx); ok {
		return novels, nil
	}
	novels, err := s.db.Novels().Popular(ctx, s.conf.PopularCount)
	if err != nil {
		return nil, err
	}
	s.cache.SetPopularNovels(ctx, novels)
	return novels, nil
}
