package garbage

import (
	"context"
	"time"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/db/postgres/internal"
	kpool "github.com/bearnovel/bearnovel/pkg/db/postgres/pool"
	"github.com/bearnovel/bearnovel/pkg/domain"
	xe "github.com/bearnovel/bearnovel/pkg/errors"
	"github.com/jackc/pgx/v4"
)

type pgGarbage struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdb.GarbageInterface {
	return &pgGarbage{pool: pool}
}

func (g *pgGarbage) Pop(ctx context.Context, olderThan time.Time, callback func(domain.Novel) error) (bool, error) {
	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	// pick a soft-deleted novel which nobody else is removing
	var novelId int
	if err := tx.QueryRow(
		ctx,
		`
		select "novel_id" from "novel"
		where "is_deleted" and "deleted_at" < $1
		order by "deleted_at", "novel_id"
		limit 1
		for update skip locked
		`,
		olderThan,
	).Scan(&novelId); err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, xe.Wrap(err)
	}

	novel, err := internal.ScanNovel(tx.QueryRow(
		ctx,
		`select `+internal.NovelColumns+` from `+internal.NovelSource+` where "n"."novel_id" = $1`,
		novelId,
	))
	if err != nil {
		return false, xe.Wrap(err)
	}

	for _, stmt := range []string{
		`delete from "comment" where "novel_id" = $1`,
		`delete from "novel_view" where "novel_id" = $1`,
		`delete from "novel_like" where "novel_id" = $1`,
		`delete from "chapter" where "novel_id" = $1`,
		`delete from "novel" where "novel_id" = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, novelId); err != nil {
			return false, xe.Wrap(err)
		}
	}

	if callback != nil {
		if err := callback(novel); err != nil {
			return false, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
