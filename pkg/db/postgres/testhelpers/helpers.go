// testhelpers provides fixtures for tests of postgres backed stores.
package testhelpers

import (
	"context"
	"testing"
	"time"

	kpool "github.com/bearnovel/bearnovel/pkg/db/postgres/pool"
	"github.com/bearnovel/bearnovel/pkg/domain"
)

// get current timestamp in postgres.
func PGNow(ctx context.Context, conn kpool.Queryer) (time.Time, error) {
	var now time.Time
	err := conn.QueryRow(ctx, `select now()`).Scan(&now)
	if err != nil {
		return time.Time{}, err
	}
	return now, nil
}

func Ref[T interface{}](v T) *T { return &v }

// InsertUser inserts a user with role "User", and returns its id.
func InsertUser(ctx context.Context, t *testing.T, conn kpool.Queryer, userName string) int {
	t.Helper()
	var id int
	if err := conn.QueryRow(
		ctx,
		`
		insert into "users" ("user_name", "email", "nick_name", "password_hash")
		values ($1, $1 || '@example.com', $1, 'not-a-hash')
		returning "user_id"
		`,
		userName,
	).Scan(&id); err != nil {
		t.Fatal(err)
	}
	return id
}

// NovelFixture describes a novel to be inserted.
type NovelFixture struct {
	Title      string
	AuthorId   int
	NovelTypes []domain.NovelType
	ViewCount  int
	LikeCount  int
	CreatedAt  time.Time

	// if not nil, the novel is soft-deleted at this time.
	DeletedAt *time.Time
}

// InsertNovel inserts a novel, and returns its id.
func InsertNovel(ctx context.Context, t *testing.T, conn kpool.Queryer, n NovelFixture) int {
	t.Helper()

	types := make([]int32, len(n.NovelTypes))
	for i, nt := range n.NovelTypes {
		types[i] = int32(nt)
	}
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id int
	if err := conn.QueryRow(
		ctx,
		`
		insert into "novel" (
			"title", "author_id", "novel_types", "view_count", "like_count",
			"is_deleted", "deleted_at", "created_at", "updated_at"
		)
		values ($1, $2, $3, $4, $5, $6 is not null, $6, $7, $7)
		returning "novel_id"
		`,
		n.Title, n.AuthorId, types, n.ViewCount, n.LikeCount, n.DeletedAt, createdAt,
	).Scan(&id); err != nil {
		t.Fatal(err)
	}
	return id
}

// InsertChapter inserts a chapter with given number and word count, and returns its id.
func InsertChapter(ctx context.Context, t *testing.T, conn kpool.Queryer, novelId int, number int, wordCount int) int {
	t.Helper()
	var id int
	if err := conn.QueryRow(
		ctx,
		`
		insert into "chapter" ("novel_id", "chapter_number", "title", "content", "word_count")
		values ($1, $2, 'chapter', 'content', $3)
		returning "chapter_id"
		`,
		novelId, number, wordCount,
	).Scan(&id); err != nil {
		t.Fatal(err)
	}
	return id
}

// InsertView records a view at the time.
func InsertView(ctx context.Context, t *testing.T, conn kpool.Queryer, novelId int, userId int, at time.Time) {
	t.Helper()
	if _, err := conn.Exec(
		ctx,
		`insert into "novel_view" ("novel_id", "user_id", "viewed_at") values ($1, $2, $3)`,
		novelId, userId, at,
	); err != nil {
		t.Fatal(err)
	}
}

// InsertLike records a like at the time.
func InsertLike(ctx context.Context, t *testing.T, conn kpool.Queryer, novelId int, userId int, at time.Time) {
	t.Helper()
	if _, err := conn.Exec(
		ctx,
		`insert into "novel_like" ("novel_id", "user_id", "created_at") values ($1, $2, $3)`,
		novelId, userId, at,
	); err != nil {
		t.Fatal(err)
	}
}

// Count counts rows in the table.
func Count(ctx context.Context, t *testing.T, conn kpool.Queryer, table string) int {
	t.Helper()
	var n int
	if err := conn.QueryRow(ctx, `select count(*) from "`+table+`"`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}
