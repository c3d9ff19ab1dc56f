package mocks

import (
	"context"
	"time"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/domain"
)

type RankingWindow struct {
	Since time.Time
	Until time.Time
}

type MockRankingInterface struct {
	Impl struct {
		Daily func(context.Context, time.Time, time.Time) ([]domain.RankingEntry, error)
	}
	Calls struct {
		Daily CallLog[RankingWindow]
	}
}

var _ kdb.RankingInterface = &MockRankingInterface{}

func NewMockRankingInterface() *MockRankingInterface {
	return &MockRankingInterface{}
}

func (m *MockRankingInterface) Daily(ctx context.Context, since time.Time, until time.Time) ([]domain.RankingEntry, error) {
	m.Calls.Daily = append(m.Calls.Daily, RankingWindow{Since: since, Until: until})
	if m.Impl.Daily == nil {
		return nil, errNotImplemented
	}
	return m.Impl.Daily(ctx, since, until)
}
