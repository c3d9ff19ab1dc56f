package chapters

import (
	"context"
	"strconv"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	kpgerr "github.com/bearnovel/bearnovel/pkg/db/postgres/errors"
	"github.com/bearnovel/bearnovel/pkg/db/postgres/internal"
	kpool "github.com/bearnovel/bearnovel/pkg/db/postgres/pool"
	"github.com/bearnovel/bearnovel/pkg/domain"
	xe "github.com/bearnovel/bearnovel/pkg/errors"
	"github.com/jackc/pgx/v4"
)

type pgChapter struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdb.ChapterInterface {
	return &pgChapter{pool: pool}
}

// chapters of soft-deleted novels are invisible.
const chapterColumns = `
	"c"."chapter_id", "c"."novel_id", "c"."chapter_number",
	"c"."title", "c"."content", "c"."word_count",
	"c"."created_at", "c"."updated_at"
`

const chapterSource = `"chapter" as "c" inner join "novel" as "n" on "n"."novel_id" = "c"."novel_id" and not "n"."is_deleted"`

func scanChapter(row pgx.Row) (domain.Chapter, error) {
	var c domain.Chapter
	if err := row.Scan(
		&c.ChapterId, &c.NovelId, &c.ChapterNumber,
		&c.Title, &c.Content, &c.WordCount,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return domain.Chapter{}, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func (m *pgChapter) List(ctx context.Context, novelId int) ([]domain.Chapter, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	var exists bool
	if err := conn.QueryRow(
		ctx,
		`select exists (select 1 from "novel" where "novel_id" = $1 and not "is_deleted")`,
		novelId,
	).Scan(&exists); err != nil {
		return nil, xe.Wrap(err)
	}
	if !exists {
		return nil, kpgerr.Missing{Table: "novel", Identity: strconv.Itoa(novelId)}
	}

	rows, err := conn.Query(
		ctx,
		`select `+chapterColumns+` from `+chapterSource+`
		where "c"."novel_id" = $1
		order by "c"."chapter_number"`,
		novelId,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	chapters := []domain.Chapter{}
	for rows.Next() {
		c, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return chapters, nil
}

func (m *pgChapter) get(ctx context.Context, conn kpool.Queryer, chapterId int) (domain.Chapter, error) {
	c, err := scanChapter(conn.QueryRow(
		ctx,
		`select `+chapterColumns+` from `+chapterSource+` where "c"."chapter_id" = $1`,
		chapterId,
	))
	if err != nil {
		return domain.Chapter{}, kpgerr.AsMissing(err, "chapter", chapterId)
	}
	return c, nil
}

func (m *pgChapter) Get(ctx context.Context, chapterId int) (domain.Chapter, error) {
	return m.get(ctx, m.pool, chapterId)
}

func (m *pgChapter) Create(ctx context.Context, novelId int, spec *domain.ChapterSpec) (domain.Chapter, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return domain.Chapter{}, err
	}
	defer tx.Rollback(ctx)

	// locking the novel serializes numbering chapters of the novel.
	if err := internal.LockNovel(ctx, tx, novelId); err != nil {
		return domain.Chapter{}, kpgerr.AsMissing(err, "novel", novelId)
	}

	c, err := scanChapter(tx.QueryRow(
		ctx,
		`
		with "numbered" as (
			select coalesce(max("chapter_number"), 0) + 1 as "chapter_number"
			from "chapter" where "novel_id" = $1
		)
		insert into "chapter" ("novel_id", "chapter_number", "title", "content", "word_count")
		select $1, "chapter_number", $2, $3, $4 from "numbered"
		returning
			"chapter_id", "novel_id", "chapter_number",
			"title", "content", "word_count",
			"created_at", "updated_at"
		`,
		novelId, spec.Title(), spec.Content(), spec.WordCount(),
	))
	if err != nil {
		return domain.Chapter{}, xe.Wrap(kpgerr.AsConflict(err))
	}

	if err := touchNovel(ctx, tx, novelId); err != nil {
		return domain.Chapter{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Chapter{}, err
	}
	return c, nil
}

func (m *pgChapter) Update(ctx context.Context, chapterId int, spec *domain.ChapterSpec) (domain.Chapter, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return domain.Chapter{}, err
	}
	defer tx.Rollback(ctx)

	current, err := m.get(ctx, tx, chapterId)
	if err != nil {
		return domain.Chapter{}, err
	}

	if _, err := tx.Exec(
		ctx,
		`
		update "chapter"
		set "title" = $2, "content" = $3, "word_count" = $4, "updated_at" = now()
		where "chapter_id" = $1
		`,
		chapterId, spec.Title(), spec.Content(), spec.WordCount(),
	); err != nil {
		return domain.Chapter{}, xe.Wrap(err)
	}
	if err := touchNovel(ctx, tx, current.NovelId); err != nil {
		return domain.Chapter{}, err
	}

	updated, err := m.get(ctx, tx, chapterId)
	if err != nil {
		return domain.Chapter{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Chapter{}, err
	}
	return updated, nil
}

func (m *pgChapter) Delete(ctx context.Context, chapterId int) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	current, err := m.get(ctx, tx, chapterId)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `delete from "chapter" where "chapter_id" = $1`, chapterId); err != nil {
		return xe.Wrap(err)
	}
	if err := touchNovel(ctx, tx, current.NovelId); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func touchNovel(ctx context.Context, conn kpool.Queryer, novelId int) error {
	_, err := conn.Exec(ctx, `update "novel" set "updated_at" = now() where "novel_id" = $1`, novelId)
	return xe.Wrap(err)
}
