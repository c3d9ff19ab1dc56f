package users

import (
	"context"
	"strconv"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	kpgerr "github.com/bearnovel/bearnovel/pkg/db/postgres/errors"
	kpool "github.com/bearnovel/bearnovel/pkg/db/postgres/pool"
	"github.com/bearnovel/bearnovel/pkg/domain"
	xe "github.com/bearnovel/bearnovel/pkg/errors"
	"github.com/jackc/pgx/v4"
)

type pgUser struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdb.UserInterface {
	return &pgUser{pool: pool}
}

const userColumns = `
	"user_id", "user_name", "email", "nick_name", "role", "created_at",
	"password_hash", "profile_picture", "profile_picture_content_type"
`

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	var role string
	var pictureType *string
	if err := row.Scan(
		&u.Id, &u.UserName, &u.Email, &u.NickName, &role, &u.CreatedAt,
		&u.PasswordHash, &u.ProfilePicture, &pictureType,
	); err != nil {
		return domain.User{}, err
	}
	r, err := domain.AsRole(role)
	if err != nil {
		return domain.User{}, xe.Wrap(err)
	}
	u.Role = r
	if pictureType != nil {
		u.ProfilePictureContentType = *pictureType
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func (m *pgUser) Create(ctx context.Context, spec *domain.RegisterSpec, passwordHash string) (domain.User, error) {
	u, err := scanUser(m.pool.QueryRow(
		ctx,
		`
		insert into "users" ("user_name", "email", "nick_name", "password_hash", "role")
		values ($1, $2, $3, $4, $5)
		returning `+userColumns,
		spec.UserName(), spec.Email(), spec.NickName(), passwordHash, domain.RoleUser.String(),
	))
	if err != nil {
		return domain.User{}, kpgerr.AsConflict(err)
	}
	return u, nil
}

func (m *pgUser) findBy(ctx context.Context, where string, identity any) (domain.User, error) {
	u, err := scanUser(m.pool.QueryRow(
		ctx,
		`select `+userColumns+` from "users" where `+where+` order by "user_id" limit 1`,
		identity,
	))
	if err != nil {
		return domain.User{}, kpgerr.AsMissing(err, "users", identity)
	}
	return u, nil
}

func (m *pgUser) Get(ctx context.Context, userId int) (domain.User, error) {
	return m.findBy(ctx, `"user_id" = $1`, userId)
}

func (m *pgUser) FindByName(ctx context.Context, userName string) (domain.User, error) {
	return m.findBy(ctx, `"user_name" = $1`, userName)
}

func (m *pgUser) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.findBy(ctx, `lower("email") = lower($1)`, email)
}

func (m *pgUser) FindByNickName(ctx context.Context, nickName string) (domain.User, error) {
	return m.findBy(ctx, `"nick_name" = $1`, nickName)
}

func (m *pgUser) UpdateProfilePicture(ctx context.Context, userId int, contentType string, picture []byte) error {
	tag, err := m.pool.Exec(
		ctx,
		`
		update "users"
		set "profile_picture" = $2, "profile_picture_content_type" = $3
		where "user_id" = $1
		`,
		userId, picture, contentType,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{Table: "users", Identity: strconv.Itoa(userId)}
	}
	return nil
}
