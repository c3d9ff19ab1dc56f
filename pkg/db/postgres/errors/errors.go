package errors

import (
	"errors"
	"fmt"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
)

// requested data is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return kdb.ErrMissing
}

// data to be written conflicts with existing one.
type Conflict struct {
	Table      string
	Constraint string
}

var _ error = Conflict{}

func (c Conflict) Error() string {
	return fmt.Sprintf("conflicts in %s (constraint: %s)", c.Table, c.Constraint)
}

func (c Conflict) Unwrap() error {
	return kdb.ErrConflict
}

// AsMissing converts pgx.ErrNoRows into Missing. Other errors are returned as they are.
func AsMissing(err error, table string, identity any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return Missing{Table: table, Identity: fmt.Sprint(identity)}
	}
	return err
}

// AsConflict converts unique violation into Conflict. Other errors are returned as they are.
func AsConflict(err error) error {
	if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation {
		return Conflict{Table: pgerr.TableName, Constraint: pgerr.ConstraintName}
	}
	return err
}
