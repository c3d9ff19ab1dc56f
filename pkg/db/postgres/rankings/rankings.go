package rankings

import (
	"context"
	"time"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/db/postgres/internal"
	kpool "github.com/bearnovel/bearnovel/pkg/db/postgres/pool"
	"github.com/bearnovel/bearnovel/pkg/domain"
	xe "github.com/bearnovel/bearnovel/pkg/errors"
)

type pgRanking struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdb.RankingInterface {
	return &pgRanking{pool: pool}
}

// Daily ranks every living novel by its views and likes in [since, until).
//
// Novels without activity in the window are ranked too, with score 0.
func (m *pgRanking) Daily(ctx context.Context, since time.Time, until time.Time) ([]domain.RankingEntry, error) {
	rows, err := m.pool.Query(
		ctx,
		`
		with "views" as (
			select "novel_id", count(*) as "views" from "novel_view"
			where $1 <= "viewed_at" and "viewed_at" < $2
			group by "novel_id"
		),
		"likes" as (
			select "novel_id", count(*) as "likes" from "novel_like"
			where $1 <= "created_at" and "created_at" < $2
			group by "novel_id"
		)
		select
			coalesce("v"."views", 0) as "views",
			coalesce("l"."likes", 0) as "likes",
			`+internal.NovelColumns+`
		from `+internal.NovelSource+`
		left outer join "views" as "v" on "v"."novel_id" = "n"."novel_id"
		left outer join "likes" as "l" on "l"."novel_id" = "n"."novel_id"
		where not "n"."is_deleted"
		order by coalesce("v"."views", 0) + $3 * coalesce("l"."likes", 0) desc, "n"."novel_id"
		`,
		since, until, domain.LikeWeight,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	entries := []domain.RankingEntry{}
	for rows.Next() {
		var views, likes int64
		n, err := internal.ScanNovel(prefixed{row: rows, prefix: []any{&views, &likes}})
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.RankingEntry{
			Rank:  len(entries) + 1,
			Novel: n,
			Views: int(views),
			Likes: int(likes),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// prefixed scans leading columns into prefix, and the rest into dest.
type prefixed struct {
	row interface {
		Scan(dest ...any) error
	}
	prefix []any
}

func (p prefixed) Scan(dest ...any) error {
	return p.row.Scan(append(append([]any{}, p.prefix...), dest...)...)
}
