// db package declares persistence interfaces of the novel platform.
//
// Implementations are in `pkg/db/postgres/...`, and mocks for tests are in `pkg/db/mocks`.
package db

type Database interface {
	Users() UserInterface
	Novels() NovelInterface
	Chapters() ChapterInterface
	Engagement() EngagementInterface
	Comments() CommentInterface
	Rankings() RankingInterface
	Garbage() GarbageInterface
	Schema() SchemaInterface
	Close() error
}
