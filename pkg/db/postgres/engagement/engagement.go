package engagement

import (
	"context"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	kpgerr "github.com/bearnovel/bearnovel/pkg/db/postgres/errors"
	"github.com/bearnovel/bearnovel/pkg/db/postgres/internal"
	kpool "github.com/bearnovel/bearnovel/pkg/db/postgres/pool"
	xe "github.com/bearnovel/bearnovel/pkg/errors"
)

type pgEngagement struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdb.EngagementInterface {
	return &pgEngagement{pool: pool}
}

func (m *pgEngagement) ToggleLike(ctx context.Context, novelId int, userId int) (bool, int, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback(ctx)

	if err := internal.LockNovel(ctx, tx, novelId); err != nil {
		return false, 0, kpgerr.AsMissing(err, "novel", novelId)
	}

	tag, err := tx.Exec(
		ctx,
		`delete from "novel_like" where "novel_id" = $1 and "user_id" = $2`,
		novelId, userId,
	)
	if err != nil {
		return false, 0, xe.Wrap(err)
	}

	liked := tag.RowsAffected() == 0
	delta := -1
	if liked {
		if _, err := tx.Exec(
			ctx,
			`insert into "novel_like" ("novel_id", "user_id") values ($1, $2)`,
			novelId, userId,
		); err != nil {
			return false, 0, xe.Wrap(err)
		}
		delta = 1
	}

	var likeCount int
	if err := tx.QueryRow(
		ctx,
		`
		update "novel" set "like_count" = greatest("like_count" + $2, 0)
		where "novel_id" = $1
		returning "like_count"
		`,
		novelId, delta,
	).Scan(&likeCount); err != nil {
		return false, 0, xe.Wrap(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, err
	}
	return liked, likeCount, nil
}

func (m *pgEngagement) LikedBy(ctx context.Context, userId int, novelIds []int) (map[int]bool, error) {
	ret := map[int]bool{}
	if len(novelIds) == 0 {
		return ret, nil
	}

	ids := make([]int32, len(novelIds))
	for i, id := range novelIds {
		ids[i] = int32(id)
	}

	rows, err := m.pool.Query(
		ctx,
		`select "novel_id" from "novel_like" where "user_id" = $1 and "novel_id" = any($2::integer[])`,
		userId, ids,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		var novelId int
		if err := rows.Scan(&novelId); err != nil {
			return nil, err
		}
		ret[novelId] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (m *pgEngagement) RecordView(ctx context.Context, novelId int, userId int) (bool, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if err := internal.LockNovel(ctx, tx, novelId); err != nil {
		return false, kpgerr.AsMissing(err, "novel", novelId)
	}

	tag, err := tx.Exec(
		ctx,
		`
		insert into "novel_view" ("novel_id", "user_id") values ($1, $2)
		on conflict ("novel_id", "user_id") do nothing
		`,
		novelId, userId,
	)
	if err != nil {
		return false, xe.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(
		ctx,
		`update "novel" set "view_count" = "view_count" + 1 where "novel_id" = $1`,
		novelId,
	); err != nil {
		return false, xe.Wrap(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
