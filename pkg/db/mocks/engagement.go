package mocks

import (
	"context"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
)

type EngagementArgs struct {
	NovelId int
	UserId  int
}

type LikedByArgs struct {
	UserId   int
	NovelIds []int
}

type MockEngagementInterface struct {
	Impl struct {
		ToggleLike func(context.Context, int, int) (bool, int, error)
		LikedBy    func(context.Context, int, []int) (map[int]bool, error)
		RecordView func(context.Context, int, int) (bool, error)
	}
	Calls struct {
		ToggleLike CallLog[EngagementArgs]
		LikedBy    CallLog[LikedByArgs]
		RecordView CallLog[EngagementArgs]
	}
}

var _ kdb.EngagementInterface = &MockEngagementInterface{}

func NewMockEngagementInterface() *MockEngagementInterface {
	return &MockEngagementInterface{}
}

func (m *MockEngagementInterface) ToggleLike(ctx context.Context, novelId int, userId int) (bool, int, error) {
	m.Calls.ToggleLike = append(m.Calls.ToggleLike, EngagementArgs{NovelId: novelId, UserId: userId})
	if m.Impl.ToggleLike == nil {
		return false, 0, errNotImplemented
	}
	return m.Impl.ToggleLike(ctx, novelId, userId)
}

func (m *MockEngagementInterface) LikedBy(ctx context.Context, userId int, novelIds []int) (map[int]bool, error) {
	m.Calls.LikedBy = append(m.Calls.LikedBy, LikedByArgs{UserId: userId, NovelIds: novelIds})
	if m.Impl.LikedBy == nil {
		return nil, errNotImplemented
	}
	return m.Impl.LikedBy(ctx, userId, novelIds)
}

func (m *MockEngagementInterface) RecordView(ctx context.Context, novelId int, userId int) (bool, error) {
	m.Calls.RecordView = append(m.Calls.RecordView, EngagementArgs{NovelId: novelId, UserId: userId})
	if m.Impl.RecordView == nil {
		return false, errNotImplemented
	}
	return m.Impl.RecordView(ctx, novelId, userId)
}
