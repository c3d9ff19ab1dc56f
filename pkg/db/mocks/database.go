package mocks

import (
	"context"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
)

type MockSchemaInterface struct {
	Impl struct {
		Upgrade func(context.Context) error
		Version func(context.Context) (int, error)
		Context func(context.Context) (context.Context, context.CancelFunc)
	}
}

var _ kdb.SchemaInterface = &MockSchemaInterface{}

func (m *MockSchemaInterface) Upgrade(ctx context.Context) error {
	if m.Impl.Upgrade == nil {
		return errNotImplemented
	}
	return m.Impl.Upgrade(ctx)
}

func (m *MockSchemaInterface) Version(ctx context.Context) (int, error) {
	if m.Impl.Version == nil {
		return -1, errNotImplemented
	}
	return m.Impl.Version(ctx)
}

func (m *MockSchemaInterface) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.Impl.Context == nil {
		return context.WithCancel(ctx)
	}
	return m.Impl.Context(ctx)
}

// MockDatabase bundles mocks of each interface.
type MockDatabase struct {
	MockUsers      *MockUserInterface
	MockNovels     *MockNovelInterface
	MockChapters   *MockChapterInterface
	MockEngagement *MockEngagementInterface
	MockComments   *MockCommentInterface
	MockRankings   *MockRankingInterface
	MockGarbage    *MockGarbageInterface
	MockSchema     *MockSchemaInterface
}

var _ kdb.Database = &MockDatabase{}

func NewMockDatabase() *MockDatabase {
	return &MockDatabase{
		MockUsers:      NewMockUserInterface(),
		MockNovels:     NewMockNovelInterface(),
		MockChapters:   NewMockChapterInterface(),
		MockEngagement: NewMockEngagementInterface(),
		MockComments:   NewMockCommentInterface(),
		MockRankings:   NewMockRankingInterface(),
		MockGarbage:    NewMockGarbageInterface(),
		MockSchema:     &MockSchemaInterface{},
	}
}

func (m *MockDatabase) Users() kdb.UserInterface { return m.MockUsers }
func (m *MockDatabase) Novels() kdb.NovelInterface { return m.MockNovels }
func (m *MockDatabase) Chapters() kdb.ChapterInterface { return m.MockChapters }
func (m *MockDatabase) Engagement() kdb.EngagementInterface { return m.MockEngagement }
func (m *MockDatabase) Comments() kdb.CommentInterface { return m.MockComments }
func (m *MockDatabase) Rankings() kdb.RankingInterface { return m.MockRankings }
func (m *MockDatabase) Garbage() kdb.GarbageInterface { return m.MockGarbage }
func (m *MockDatabase) Schema() kdb.SchemaInterface { return m.MockSchema }
func (m *MockDatabase) Close() error { return nil }
