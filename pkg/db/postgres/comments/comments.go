package comments

import (
	"context"
	"errors"
	"strconv"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	kpgerr "github.com/bearnovel/bearnovel/pkg/db/postgres/errors"
	"github.com/bearnovel/bearnovel/pkg/db/postgres/internal"
	kpool "github.com/bearnovel/bearnovel/pkg/db/postgres/pool"
	"github.com/bearnovel/bearnovel/pkg/domain"
	xe "github.com/bearnovel/bearnovel/pkg/errors"
	"github.com/jackc/pgx/v4"
)

type pgComment struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdb.CommentInterface {
	return &pgComment{pool: pool}
}

const commentColumns = `
	"c"."comment_id", "c"."novel_id", "c"."content", "c"."created_at",
	"u"."user_id", "u"."user_name", "u"."nick_name",
	"u"."profile_picture", "u"."profile_picture_content_type"
`

const commentSource = `"comment" as "c" inner join "users" as "u" on "u"."user_id" = "c"."user_id"`

func scanComment(row pgx.Row) (domain.Comment, error) {
	var c domain.Comment
	var picture []byte
	var pictureType *string
	if err := row.Scan(
		&c.CommentId, &c.NovelId, &c.Content, &c.CreatedAt,
		&c.Author.Id, &c.Author.UserName, &c.Author.NickName,
		&picture, &pictureType,
	); err != nil {
		return domain.Comment{}, err
	}
	contentType := ""
	if pictureType != nil {
		contentType = *pictureType
	}
	c.Author.ProfilePicture = domain.DataURI(contentType, picture)
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

func (m *pgComment) List(ctx context.Context, novelId int) ([]domain.Comment, error) {
	rows, err := m.pool.Query(
		ctx,
		`select `+commentColumns+` from `+commentSource+`
		where "c"."novel_id" = $1
		order by "c"."created_at", "c"."comment_id"`,
		novelId,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

func (m *pgComment) Create(ctx context.Context, novelId int, userId int, spec *domain.CommentSpec) (domain.Comment, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return domain.Comment{}, err
	}
	defer tx.Rollback(ctx)

	if err := internal.LockNovel(ctx, tx, novelId); err != nil {
		return domain.Comment{}, kpgerr.AsMissing(err, "novel", novelId)
	}

	var commentId int
	if err := tx.QueryRow(
		ctx,
		`insert into "comment" ("novel_id", "user_id", "content") values ($1, $2, $3) returning "comment_id"`,
		novelId, userId, spec.Content(),
	).Scan(&commentId); err != nil {
		return domain.Comment{}, xe.Wrap(err)
	}

	c, err := scanComment(tx.QueryRow(
		ctx,
		`select `+commentColumns+` from `+commentSource+` where "c"."comment_id" = $1`,
		commentId,
	))
	if err != nil {
		return domain.Comment{}, xe.Wrap(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}

func (m *pgComment) Delete(ctx context.Context, commentId int, userId int) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var owner int
	if err := tx.QueryRow(
		ctx,
		`select "user_id" from "comment" where "comment_id" = $1 for update`,
		commentId,
	).Scan(&owner); err != nil {
		return kpgerr.AsMissing(err, "comment", commentId)
	}
	if owner != userId {
		return errors.Join(
			domain.ErrForbidden,
			errors.New("comment "+strconv.Itoa(commentId)+" is not written by the user"),
		)
	}

	if _, err := tx.Exec(ctx, `delete from "comment" where "comment_id" = $1`, commentId); err != nil {
		return xe.Wrap(err)
	}
	return tx.Commit(ctx)
}
