package mocks

import (
	"context"
	"time"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/domain"
)

type MockGarbageInterface struct {
	Impl struct {
		Pop func(context.Context, time.Time, func(domain.Novel) error) (bool, error)
	}
	Calls struct {
		Pop CallLog[time.Time]
	}
}

var _ kdb.GarbageInterface = &MockGarbageInterface{}

func NewMockGarbageInterface() *MockGarbageInterface {
	return &MockGarbageInterface{}
}

func (m *MockGarbageInterface) Pop(ctx context.Context, olderThan time.Time, callback func(domain.Novel) error) (bool, error) {
	m.Calls.Pop = append(m.Calls.Pop, olderThan)
	if m.Impl.Pop == nil {
		return false, errNotImplemented
	}
	return m.Impl.Pop(ctx, olderThan, callback)
}
