package novels

import (
	"context"
	"strconv"
	"strings"
	"time"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	kpgerr "github.com/bearnovel/bearnovel/pkg/db/postgres/errors"
	"github.com/bearnovel/bearnovel/pkg/db/postgres/internal"
	kpool "github.com/bearnovel/bearnovel/pkg/db/postgres/pool"
	"github.com/bearnovel/bearnovel/pkg/domain"
	xe "github.com/bearnovel/bearnovel/pkg/errors"
)

type pgNovel struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdb.NovelInterface {
	return &pgNovel{pool: pool}
}

func missing(novelId int) error {
	return kpgerr.Missing{Table: "novel", Identity: strconv.Itoa(novelId)}
}

func (m *pgNovel) get(ctx context.Context, conn kpool.Queryer, novelId int) (domain.Novel, error) {
	n, err := internal.ScanNovel(conn.QueryRow(
		ctx,
		`select `+internal.NovelColumns+` from `+internal.NovelSource+`
		where "n"."novel_id" = $1 and not "n"."is_deleted"`,
		novelId,
	))
	if err != nil {
		return domain.Novel{}, kpgerr.AsMissing(err, "novel", novelId)
	}
	return n, nil
}

func (m *pgNovel) Create(ctx context.Context, authorId int, spec *domain.NovelSpec) (domain.Novel, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return domain.Novel{}, err
	}
	defer tx.Rollback(ctx)

	var novelId int
	if err := tx.QueryRow(
		ctx,
		`
		insert into "novel" ("title", "description", "author_id", "novel_types", "is_ending")
		values ($1, $2, $3, $4, $5)
		returning "novel_id"
		`,
		spec.Title(), spec.Description(), authorId,
		internal.NovelTypesParam(spec.NovelTypes()), spec.IsEnding(),
	).Scan(&novelId); err != nil {
		return domain.Novel{}, xe.Wrap(err)
	}

	n, err := m.get(ctx, tx, novelId)
	if err != nil {
		return domain.Novel{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Novel{}, err
	}
	return n, nil
}

func (m *pgNovel) Get(ctx context.Context, novelId int) (domain.Novel, error) {
	return m.get(ctx, m.pool, novelId)
}

func (m *pgNovel) List(ctx context.Context) ([]domain.Novel, error) {
	return internal.QueryNovels(
		ctx, m.pool,
		`select `+internal.NovelColumns+` from `+internal.NovelSource+`
		where not "n"."is_deleted"
		order by "n"."created_at" desc, "n"."novel_id" desc`,
	)
}

func (m *pgNovel) ListByAuthor(ctx context.Context, authorId int) ([]domain.Novel, error) {
	return internal.QueryNovels(
		ctx, m.pool,
		`select `+internal.NovelColumns+` from `+internal.NovelSource+`
		where not "n"."is_deleted" and "n"."author_id" = $1
		order by "n"."created_at" desc, "n"."novel_id" desc`,
		authorId,
	)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (m *pgNovel) SearchTitle(ctx context.Context, keyword string) ([]domain.Novel, error) {
	return internal.QueryNovels(
		ctx, m.pool,
		`select `+internal.NovelColumns+` from `+internal.NovelSource+`
		where not "n"."is_deleted" and "n"."title" ilike $1 escape '\'
		order by "n"."created_at" desc, "n"."novel_id" desc`,
		"%"+likeEscaper.Replace(keyword)+"%",
	)
}

func (m *pgNovel) Update(ctx context.Context, novelId int, spec *domain.NovelSpec) (domain.Novel, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return domain.Novel{}, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(
		ctx,
		`
		update "novel"
		set "title" = $2, "description" = $3, "novel_types" = $4, "is_ending" = $5,
			"updated_at" = now()
		where "novel_id" = $1 and not "is_deleted"
		`,
		novelId, spec.Title(), spec.Description(),
		internal.NovelTypesParam(spec.NovelTypes()), spec.IsEnding(),
	)
	if err != nil {
		return domain.Novel{}, xe.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Novel{}, missing(novelId)
	}

	n, err := m.get(ctx, tx, novelId)
	if err != nil {
		return domain.Novel{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Novel{}, err
	}
	return n, nil
}

func (m *pgNovel) SoftDelete(ctx context.Context, novelId int, at time.Time) error {
	tag, err := m.pool.Exec(
		ctx,
		`
		update "novel" set "is_deleted" = true, "deleted_at" = $2
		where "novel_id" = $1 and not "is_deleted"
		`,
		novelId, at,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return missing(novelId)
	}
	return nil
}

func (m *pgNovel) Popular(ctx context.Context, n int) ([]domain.Novel, error) {
	return internal.QueryNovels(
		ctx, m.pool,
		`select `+internal.NovelColumns+` from `+internal.NovelSource+`
		where not "n"."is_deleted"
		order by "n"."view_count" desc, "n"."like_count" desc, "n"."novel_id"
		limit $1`,
		n,
	)
}
