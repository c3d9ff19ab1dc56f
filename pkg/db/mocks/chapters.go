package mocks

import (
	"context"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/domain"
)

type ChapterWriteArgs struct {
	// novel id for Create, chapter id for Update
	Id   int
	Spec *domain.ChapterSpec
}

type MockChapterInterface struct {
	Impl struct {
		List   func(context.Context, int) ([]domain.Chapter, error)
		Get    func(context.Context, int) (domain.Chapter, error)
		Create func(context.Context, int, *domain.ChapterSpec) (domain.Chapter, error)
		Update func(context.Context, int, *domain.ChapterSpec) (domain.Chapter, error)
		Delete func(context.Context, int) error
	}
	Calls struct {
		List   CallLog[int]
		Get    CallLog[int]
		Create CallLog[ChapterWriteArgs]
		Update CallLog[ChapterWriteArgs]
		Delete CallLog[int]
	}
}

var _ kdb.ChapterInterface = &MockChapterInterface{}

func NewMockChapterInterface() *MockChapterInterface {
	return &MockChapterInterface{}
}

func (m *MockChapterInterface) List(ctx context.Context, novelId int) ([]domain.Chapter, error) {
	m.Calls.List = append(m.Calls.List, novelId)
	if m.Impl.List == nil {
		return nil, errNotImplemented
	}
	return m.Impl.List(ctx, novelId)
}

func (m *MockChapterInterface) Get(ctx context.Context, chapterId int) (domain.Chapter, error) {
	m.Calls.Get = append(m.Calls.Get, chapterId)
	if m.Impl.Get == nil {
		return domain.Chapter{}, errNotImplemented
	}
	return m.Impl.Get(ctx, chapterId)
}

func (m *MockChapterInterface) Create(ctx context.Context, novelId int, spec *domain.ChapterSpec) (domain.Chapter, error) {
	m.Calls.Create = append(m.Calls.Create, ChapterWriteArgs{Id: novelId, Spec: spec})
	if m.Impl.Create == nil {
		return domain.Chapter{}, errNotImplemented
	}
	return m.Impl.Create(ctx, novelId, spec)
}

func (m *MockChapterInterface) Update(ctx context.Context, chapterId int, spec *domain.ChapterSpec) (domain.Chapter, error) {
	m.Calls.Update = append(m.Calls.Update, ChapterWriteArgs{Id: chapterId, Spec: spec})
	if m.Impl.Update == nil {
		return domain.Chapter{}, errNotImplemented
	}
	return m.Impl.Update(ctx, chapterId, spec)
}

func (m *MockChapterInterface) Delete(ctx context.Context, chapterId int) error {
	m.Calls.Delete = append(m.Calls.Delete, chapterId)
	if m.Impl.Delete == nil {
		return errNotImplemented
	}
	return m.Impl.Delete(ctx, chapterId)
}
