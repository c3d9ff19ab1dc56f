package testenv

import (
	"context"
	"os"
	"testing"

	kpool "github.com/bearnovel/bearnovel/pkg/db/postgres/pool"
	"github.com/jackc/pgx/v4/pgxpool"
)

// EnvDatabaseURL names the environment variable holding the url of the test database.
//
// Tests need the database are skipped when it is empty.
const EnvDatabaseURL = "NOVEL_TEST_DATABASE"

type pg struct {
	pool *pgxpool.Pool
}

func (p *pg) GetPool(ctx context.Context, t *testing.T) kpool.Pool {
	t.Cleanup(func() {
		t.Helper()
		ClearTables(ctx, p.pool, t)
	})

	ClearTables(ctx, p.pool, t)
	return kpool.Wrap(p.pool)
}

type pgNoClean struct {
	pool *pgxpool.Pool
}

func (p *pgNoClean) GetPool(ctx context.Context, t *testing.T) kpool.Pool {
	return kpool.Wrap(p.pool)
}

// PoolBroaker is a interface to get a pool.
type PoolBroaker interface {
	// GetPool returns a pool.
	//
	// Tables are cleaned up before returning and after t.
	GetPool(ctx context.Context, t *testing.T) kpool.Pool
}

type pgConnOptions struct {
	DoNotCleanup bool
}

type PgConnOption func(*pgConnOptions) *pgConnOptions

func WithDoNotCleanup() PgConnOption {
	return func(o *pgConnOptions) *pgConnOptions {
		o.DoNotCleanup = true
		return o
	}
}

// NewPoolBroaker returns a PoolBroaker connecting the database at $NOVEL_TEST_DATABASE.
//
// The database should have the schema applied already (see cmd/schema_upgrader).
//
// When the variable is not set, t is skipped.
func NewPoolBroaker(ctx context.Context, t *testing.T, options ...PgConnOption) PoolBroaker {
	t.Helper()

	url := os.Getenv(EnvDatabaseURL)
	if url == "" {
		t.Skipf("%s is not set. skip tests with postgres.", EnvDatabaseURL)
	}

	opts := &pgConnOptions{}
	for _, o := range options {
		opts = o(opts)
	}

	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)

	if opts.DoNotCleanup {
		return &pgNoClean{pool: pool}
	}
	return &pg{pool: pool}
}

func ClearTables(ctx context.Context, p *pgxpool.Pool, t *testing.T) {
	t.Helper()

	conn, err := p.Acquire(ctx)
	if err != nil {
		t.Errorf("fail to clean-up tables.: %v", err)
		return
	}
	defer conn.Release()

	// by cascade, all row in tables referring users should be deleted.
	if _, err := conn.Exec(ctx, `truncate "users" restart identity cascade`); err != nil {
		t.Errorf("fail to clean-up tables.: %v", err)
	}
}
