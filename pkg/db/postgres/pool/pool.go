package pool

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// something sending query with SQL.
//
// this is extracted interface from `*pgxpool.Pool`, `*pgxpool.Conn` and `pgx.Tx`.
// When you need more details, see them.
type Queryer interface {
	// sending SQL Command which does not have any result rows.
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)

	// sending SQL Command which has result rows.
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)

	// sending SQL Command which has just single result row.
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// something begins SQL Transaction
type Begin interface {
	Begin(ctx context.Context) (Tx, error)
}

// interface extracted from `pgx.Tx`
//
// `pgx.Tx` does NOT implement `Tx`, because `Begin` returns `Tx`, not `pgx.Tx`.
// Begin a transaction from `Pool` or `Conn` in this package to get `Tx`.
type Tx interface {
	Queryer
	Begin

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// interface extracted from `*pgxpool.Conn`
type Conn interface {
	Queryer
	Begin

	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (Tx, error)
	Ping(ctx context.Context) error
	Release()
}

// interface extracted from `*pgxpool.Pool`
//
// If you need to wrap `*pgxpool.Pool` as `Pool`, you can `Wrap` it.
type Pool interface {
	Queryer
	Begin

	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (Tx, error)
	Acquire(ctx context.Context) (Conn, error)
	Ping(ctx context.Context) error
}

type pgxTx struct {
	pgx.Tx
}

var _ Tx = &pgxTx{}

func (tx *pgxTx) Begin(ctx context.Context) (Tx, error) {
	nested, err := tx.Tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxTx{nested}, nil
}

type pgxPoolConn struct {
	*pgxpool.Conn
}

var _ Conn = &pgxPoolConn{}

func (c *pgxPoolConn) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.Conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxTx{tx}, nil
}

func (c *pgxPoolConn) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (Tx, error) {
	tx, err := c.Conn.BeginTx(ctx, txOptions)
	if err != nil {
		return nil, err
	}
	return &pgxTx{tx}, nil
}

type pgxPool struct {
	*pgxpool.Pool
}

var _ Pool = &pgxPool{}

func (p *pgxPool) Begin(ctx context.Context) (Tx, error) {
	tx, err := p.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxTx{tx}, nil
}

func (p *pgxPool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (Tx, error) {
	tx, err := p.Pool.BeginTx(ctx, txOptions)
	if err != nil {
		return nil, err
	}
	return &pgxTx{tx}, nil
}

func (p *pgxPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxPoolConn{conn}, nil
}

func Wrap(p *pgxpool.Pool) Pool {
	return &pgxPool{p}
}
