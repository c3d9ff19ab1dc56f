package internal

import (
	"context"
	"time"

	kpool "github.com/bearnovel/bearnovel/pkg/db/postgres/pool"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

// NovelColumns selects columns of novels, scanned by ScanNovel.
//
// Use this as `select ` + NovelColumns + ` from ` + NovelSource + ` where ...`.
// Aliases "n" (novel) and "u" (users, the author) are available in where clause.
const NovelColumns = `
	"n"."novel_id", "n"."title", "n"."description",
	"n"."author_id", "u"."user_name", "u"."nick_name",
	"u"."profile_picture", "u"."profile_picture_content_type",
	"n"."novel_types", "n"."is_ending",
	"n"."view_count", "n"."like_count",
	coalesce(
		(select sum("c"."word_count") from "chapter" as "c" where "c"."novel_id" = "n"."novel_id"),
		0
	) as "total_word_count",
	"n"."is_deleted", "n"."deleted_at",
	"n"."created_at", "n"."updated_at"
`

const NovelSource = `"novel" as "n" inner join "users" as "u" on "u"."user_id" = "n"."author_id"`

// ScanNovel reads a row selected with NovelColumns.
func ScanNovel(row pgx.Row) (domain.Novel, error) {
	var n domain.Novel
	var picture []byte
	var pictureType *string
	var types pgtype.Int4Array
	var totalWordCount int64
	var deletedAt *time.Time

	if err := row.Scan(
		&n.NovelId, &n.Title, &n.Description,
		&n.AuthorId, &n.Author.UserName, &n.Author.NickName,
		&picture, &pictureType,
		&types, &n.IsEnding,
		&n.ViewCount, &n.LikeCount,
		&totalWordCount,
		&n.IsDeleted, &deletedAt,
		&n.CreatedAt, &n.UpdatedAt,
	); err != nil {
		return domain.Novel{}, err
	}

	n.Author.Id = n.AuthorId
	contentType := ""
	if pictureType != nil {
		contentType = *pictureType
	}
	n.Author.ProfilePicture = domain.DataURI(contentType, picture)

	n.NovelTypes = make([]domain.NovelType, 0, len(types.Elements))
	for _, e := range types.Elements {
		if e.Status != pgtype.Present {
			continue
		}
		n.NovelTypes = append(n.NovelTypes, domain.NovelType(e.Int))
	}
	n.TotalWordCount = int(totalWordCount)
	if deletedAt != nil {
		d := deletedAt.UTC()
		n.DeletedAt = &d
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return n, nil
}

// QueryNovels runs query built with NovelColumns and reads all novels.
func QueryNovels(ctx context.Context, conn kpool.Queryer, query string, args ...any) ([]domain.Novel, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	novels := []domain.Novel{}
	for rows.Next() {
		n, err := ScanNovel(rows)
		if err != nil {
			return nil, err
		}
		novels = append(novels, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return novels, nil
}

// NovelTypesParam converts NovelTypes as a parameter for integer[] column.
func NovelTypesParam(types []domain.NovelType) []int32 {
	ret := make([]int32, len(types))
	for i, t := range types {
		ret[i] = int32(t)
	}
	return ret
}

// LockNovel locks a living novel for update.
//
// It returns pgx.ErrNoRows if the novel is not found or soft-deleted.
func LockNovel(ctx context.Context, conn kpool.Queryer, novelId int) error {
	var id int
	return conn.QueryRow(
		ctx,
		`select "novel_id" from "novel" where "novel_id" = $1 and not "is_deleted" for update`,
		novelId,
	).Scan(&id)
}
