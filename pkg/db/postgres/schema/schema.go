package schema

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	kpool "github.com/bearnovel/bearnovel/pkg/db/postgres/pool"
	xe "github.com/bearnovel/bearnovel/pkg/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
)

// lock id for pg_advisory_xact_lock, held while upgrading.
const upgradeLockId = 0x6e6f76656c

type repository struct {
	pool kpool.Pool
	root string
}

// New creates a schema backed by a repository directory.
//
// The repository has subdirectories named with version numbers ("1", "2", ...),
// and each of them has .sql files which are applied in lexical order.
func New(pool kpool.Pool, root string) *repository {
	return &repository{pool: pool, root: root}
}

type version struct {
	Number int
	Files  []string
}

func (v version) apply(ctx context.Context, conn kpool.Queryer) error {
	for _, f := range v.Files {
		query, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		if _, err := conn.Exec(ctx, string(query)); err != nil {
			return xe.WrapWithNote("applying "+f, err)
		}
	}
	return nil
}

func (s *repository) Version(ctx context.Context) (int, error) {
	var version *int
	if err := s.pool.QueryRow(
		ctx, `select max("version") from "schema_version"`,
	).Scan(&version); err != nil {
		if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UndefinedTable {
			return 0, nil
		}
		return -1, err
	}
	if version == nil {
		return 0, nil
	}
	return *version, nil
}

func (s *repository) Upgrade(ctx context.Context) error {
	versions, err := s.versions()
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `select pg_advisory_xact_lock($1)`, upgradeLockId); err != nil {
		return err
	}

	current, err := s.Version(ctx)
	if err != nil {
		return err
	}

	for _, v := range versions {
		if v.Number <= current {
			continue
		}
		if err := v.apply(ctx, tx); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `delete from "schema_version"`); err != nil {
			return err
		}
		if _, err := tx.Exec(
			ctx, `insert into "schema_version" ("version") values ($1)`, v.Number,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *repository) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	cctx, can := context.WithCancelCause(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		can(err)
		return cctx, func() {}
	}
	if err := w.Add(s.root); err != nil {
		w.Close()
		can(err)
		return cctx, func() {}
	}

	check := func() {
		latest, err := s.latest()
		if err != nil {
			can(fmt.Errorf("failed to read schema repository: %w", err))
			return
		}
		current, err := s.Version(ctx)
		if err != nil {
			can(fmt.Errorf("failed to get current schema version: %w", err))
			return
		}
		if current < latest {
			can(fmt.Errorf("schema is outdated: %d (in db) < %d (in repository)", current, latest))
		}
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-cctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				can(err)
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) {
					continue
				}
				if filepath.Dir(ev.Name) != filepath.Clean(s.root) {
					continue
				}
				check()
			}
		}
	}()

	check()
	return cctx, func() { can(nil) }
}

func (s *repository) latest() (int, error) {
	vs, err := s.versions()
	if err != nil {
		return 0, err
	}
	if len(vs) == 0 {
		return 0, nil
	}
	return vs[len(vs)-1].Number, nil
}

// versions lists versions in the repository, sorted by version number.
//
// Entries not named with a number are ignored.
func (s *repository) versions() ([]version, error) {
	dir, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	versions := make([]version, 0, len(dir))
	for _, entry := range dir {
		if !entry.IsDir() {
			continue
		}
		n, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}

		root := filepath.Join(s.root, entry.Name())
		files, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		v := version{Number: n}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".sql") {
				continue
			}
			v.Files = append(v.Files, filepath.Join(root, f.Name()))
		}
		versions = append(versions, v)
	}
	slices.SortFunc(versions, func(a, b version) int { return cmp.Compare(a.Number, b.Number) })

	return versions, nil
}

func Null() *nullSchema {
	return &nullSchema{}
}

type nullSchema struct{}

func (nullSchema) Upgrade(ctx context.Context) error {
	return errors.New("no schema repository available")
}

func (nullSchema) Version(ctx context.Context) (int, error) {
	return -1, nil
}

func (nullSchema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	return ctx, func() {}
}
