package mocks

import (
	"context"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/domain"
)

type CommentCreateArgs struct {
	NovelId int
	UserId  int
	Spec    *domain.CommentSpec
}

type CommentDeleteArgs struct {
	CommentId int
	UserId    int
}

type MockCommentInterface struct {
	Impl struct {
		List   func(context.Context, int) ([]domain.Comment, error)
		Create func(context.Context, int, int, *domain.CommentSpec) (domain.Comment, error)
		Delete func(context.Context, int, int) error
	}
	Calls struct {
		List   CallLog[int]
		Create CallLog[CommentCreateArgs]
		Delete CallLog[CommentDeleteArgs]
	}
}

var _ kdb.CommentInterface = &MockCommentInterface{}

func NewMockCommentInterface() *MockCommentInterface {
	return &MockCommentInterface{}
}

func (m *MockCommentInterface) List(ctx context.Context, novelId int) ([]domain.Comment, error) {
	m.Calls.List = append(m.Calls.List, novelId)
	if m.Impl.List == nil {
		return nil, errNotImplemented
	}
	return m.Impl.List(ctx, novelId)
}

func (m *MockCommentInterface) Create(ctx context.Context, novelId int, userId int, spec *domain.CommentSpec) (domain.Comment, error) {
	m.Calls.Create = append(m.Calls.Create, CommentCreateArgs{NovelId: novelId, UserId: userId, Spec: spec})
	if m.Impl.Create == nil {
		return domain.Comment{}, errNotImplemented
	}
	return m.Impl.Create(ctx, novelId, userId, spec)
}

func (m *MockCommentInterface) Delete(ctx context.Context, commentId int, userId int) error {
	m.Calls.Delete = append(m.Calls.Delete, CommentDeleteArgs{CommentId: commentId, UserId: userId})
	if m.Impl.Delete == nil {
		return errNotImplemented
	}
	return m.Impl.Delete(ctx, commentId, userId)
}
