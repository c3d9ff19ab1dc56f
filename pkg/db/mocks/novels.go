package mocks

import (
	"context"
	"time"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/domain"
)

type NovelCreateArgs struct {
	AuthorId int
	Spec     *domain.NovelSpec
}

type NovelUpdateArgs struct {
	NovelId int
	Spec    *domain.NovelSpec
}

type NovelSoftDeleteArgs struct {
	NovelId int
	At      time.Time
}

type MockNovelInterface struct {
	Impl struct {
		Create       func(context.Context, int, *domain.NovelSpec) (domain.Novel, error)
		Get          func(context.Context, int) (domain.Novel, error)
		List         func(context.Context) ([]domain.Novel, error)
		ListByAuthor func(context.Context, int) ([]domain.Novel, error)
		SearchTitle  func(context.Context, string) ([]domain.Novel, error)
		Update       func(context.Context, int, *domain.NovelSpec) (domain.Novel, error)
		SoftDelete   func(context.Context, int, time.Time) error
		Popular      func(context.Context, int) ([]domain.Novel, error)
	}
	Calls struct {
		Create       CallLog[NovelCreateArgs]
		Get          CallLog[int]
		List         CallLog[struct{}]
		ListByAuthor CallLog[int]
		SearchTitle  CallLog[string]
		Update       CallLog[NovelUpdateArgs]
		SoftDelete   CallLog[NovelSoftDeleteArgs]
		Popular      CallLog[int]
	}
}

var _ kdb.NovelInterface = &MockNovelInterface{}

func NewMockNovelInterface() *MockNovelInterface {
	return &MockNovelInterface{}
}

func (m *MockNovelInterface) Create(ctx context.Context, authorId int, spec *domain.NovelSpec) (domain.Novel, error) {
	m.Calls.Create = append(m.Calls.Create, NovelCreateArgs{AuthorId: authorId, Spec: spec})
	if m.Impl.Create == nil {
		return domain.Novel{}, errNotImplemented
	}
	return m.Impl.Create(ctx, authorId, spec)
}

func (m *MockNovelInterface) Get(ctx context.Context, novelId int) (domain.Novel, error) {
	m.Calls.Get = append(m.Calls.Get, novelId)
	if m.Impl.Get == nil {
		return domain.Novel{}, errNotImplemented
	}
	return m.Impl.Get(ctx, novelId)
}

func (m *MockNovelInterface) List(ctx context.Context) ([]domain.Novel, error) {
	m.Calls.List = append(m.Calls.List, struct{}{})
	if m.Impl.List == nil {
		return nil, errNotImplemented
	}
	return m.Impl.List(ctx)
}

func (m *MockNovelInterface) ListByAuthor(ctx context.Context, authorId int) ([]domain.Novel, error) {
	m.Calls.ListByAuthor = append(m.Calls.ListByAuthor, authorId)
	if m.Impl.ListByAuthor == nil {
		return nil, errNotImplemented
	}
	return m.Impl.ListByAuthor(ctx, authorId)
}

func (m *MockNovelInterface) SearchTitle(ctx context.Context, keyword string) ([]domain.Novel, error) {
	m.Calls.SearchTitle = append(m.Calls.SearchTitle, keyword)
	if m.Impl.SearchTitle == nil {
		return nil, errNotImplemented
	}
	return m.Impl.SearchTitle(ctx, keyword)
}

func (m *MockNovelInterface) Update(ctx context.Context, novelId int, spec *domain.NovelSpec) (domain.Novel, error) {
	m.Calls.Update = append(m.Calls.Update, NovelUpdateArgs{NovelId: novelId, Spec: spec})
	if m.Impl.Update == nil {
		return domain.Novel{}, errNotImplemented
	}
	return m.Impl.Update(ctx, novelId, spec)
}

func (m *MockNovelInterface) SoftDelete(ctx context.Context, novelId int, at time.Time) error {
	m.Calls.SoftDelete = append(m.Calls.SoftDelete, NovelSoftDeleteArgs{NovelId: novelId, At: at})
	if m.Impl.SoftDelete == nil {
		return errNotImplemented
	}
	return m.Impl.SoftDelete(ctx, novelId, at)
}

func (m *MockNovelInterface) Popular(ctx context.Context, n int) ([]domain.Novel, error) {
	m.Calls.Popular = append(m.Calls.Popular, n)
	if m.Impl.Popular == nil {
		return nil, errNotImplemented
	}
	return m.Impl.Popular(ctx, n)
}
