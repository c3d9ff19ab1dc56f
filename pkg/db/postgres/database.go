package postgres

import (
	"context"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	kpgchapter "github.com/bearnovel/bearnovel/pkg/db/postgres/chapters"
	kpgcomment "github.com/bearnovel/bearnovel/pkg/db/postgres/comments"
	kpgengage "github.com/bearnovel/bearnovel/pkg/db/postgres/engagement"
	kpggbg "github.com/bearnovel/bearnovel/pkg/db/postgres/garbage"
	kpgnovel "github.com/bearnovel/bearnovel/pkg/db/postgres/novels"
	kpool "github.com/bearnovel/bearnovel/pkg/db/postgres/pool"
	kpgrank "github.com/bearnovel/bearnovel/pkg/db/postgres/rankings"
	kpgschema "github.com/bearnovel/bearnovel/pkg/db/postgres/schema"
	kpguser "github.com/bearnovel/bearnovel/pkg/db/postgres/users"
	xe "github.com/bearnovel/bearnovel/pkg/errors"
	"github.com/jackc/pgx/v4/pgxpool"
)

type novelDBPostgres struct {
	pool       *pgxpool.Pool
	users      kdb.UserInterface
	novels     kdb.NovelInterface
	chapters   kdb.ChapterInterface
	engagement kdb.EngagementInterface
	comments   kdb.CommentInterface
	rankings   kdb.RankingInterface
	garbage    kdb.GarbageInterface
	schema     kdb.SchemaInterface
}

type Config struct {
	SchemaRepository string
}

type Option func(*Config) *Config

func WithSchemaRepository(repository string) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

func New(ctx context.Context, url string, options ...Option) (kdb.Database, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	c := Config{}
	for _, option := range options {
		c = *option(&c)
	}

	return Wrap(pool, c), nil
}

// Wrap builds a Database on the connected pool.
//
// The pool is closed by Close of returned Database.
func Wrap(pool *pgxpool.Pool, c Config) kdb.Database {
	p := kpool.Wrap(pool)
	var schema kdb.SchemaInterface = kpgschema.Null()
	if c.SchemaRepository != "" {
		schema = kpgschema.New(p, c.SchemaRepository)
	}

	return &novelDBPostgres{
		pool:       pool,
		users:      kpguser.New(p),
		novels:     kpgnovel.New(p),
		chapters:   kpgchapter.New(p),
		engagement: kpgengage.New(p),
		comments:   kpgcomment.New(p),
		rankings:   kpgrank.New(p),
		garbage:    kpggbg.New(p),
		schema:     schema,
	}
}

func (k *novelDBPostgres) Users() kdb.UserInterface {
	return k.users
}

func (k *novelDBPostgres) Novels() kdb.NovelInterface {
	return k.novels
}

func (k *novelDBPostgres) Chapters() kdb.ChapterInterface {
	return k.chapters
}

func (k *novelDBPostgres) Engagement() kdb.EngagementInterface {
	return k.engagement
}

func (k *novelDBPostgres) Comments() kdb.CommentInterface {
	return k.comments
}

func (k *novelDBPostgres) Rankings() kdb.RankingInterface {
	return k.rankings
}

func (k *novelDBPostgres) Garbage() kdb.GarbageInterface {
	return k.garbage
}

func (k *novelDBPostgres) Schema() kdb.SchemaInterface {
	return k.schema
}

func (k *novelDBPostgres) Close() error {
	k.pool.Close()
	return nil
}
