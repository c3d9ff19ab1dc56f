package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/bearnovel/bearnovel/pkg/buildtime"
	kpg "github.com/bearnovel/bearnovel/pkg/db/postgres"
	"github.com/bearnovel/bearnovel/pkg/logging"
	"github.com/spf13/cobra"
)

type dbFlags struct {
	host     string
	port     int
	user     string
	password string
	database string
	schema   string
}

// URL builds the connection string of postgres.
func (f dbFlags) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(f.user, f.password),
		Host:   fmt.Sprintf("%s:%d", f.host, f.port),
		Path:   "/" + f.database,
	}
	return u.String()
}

func envInt(name string, d int) int {
	if s := os.Getenv(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return d
}

func newRootCommand(flags *dbFlags) *cobra.Command {
	root := &cobra.Command{
		Use:          "schema_upgrader",
		Short:        "upgrade database schema of bearnovel",
		SilenceUsage: true,
		Version:      buildtime.VersionString(),
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.host, "host", os.Getenv("DB_HOST"), "host of the database")
	pf.IntVar(&flags.port, "port", envInt("DB_PORT", 5432), "port of the database")
	pf.StringVar(&flags.user, "user", os.Getenv("DB_USER"), "user of the database")
	pf.StringVar(&flags.password, "pass", os.Getenv("DB_PASSWORD"), "password of the database")
	pf.StringVar(&flags.database, "database", os.Getenv("DB_NAME"), "name of the database")
	pf.StringVar(&flags.schema, "schema", os.Getenv("NOVEL_SCHEMA"), "path to the schema repository directory")

	root.AddCommand(
		&cobra.Command{
			Use:   "upgrade",
			Short: "apply schema versions newer than the database has",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if flags.schema == "" {
					return fmt.Errorf("--schema is required")
				}
				db, err := kpg.New(cmd.Context(), flags.URL(), kpg.WithSchemaRepository(flags.schema))
				if err != nil {
					return err
				}
				defer db.Close()

				before, err := db.Schema().Version(cmd.Context())
				if err != nil {
					return err
				}
				if err := db.Schema().Upgrade(cmd.Context()); err != nil {
					return err
				}
				after, err := db.Schema().Version(cmd.Context())
				if err != nil {
					return err
				}
				logging.Logger.Info().Int("from", before).Int("to", after).Msg("schema is up to date")
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "print the schema version of the database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := kpg.New(cmd.Context(), flags.URL())
				if err != nil {
					return err
				}
				defer db.Close()

				v, err := db.Schema().Version(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
				return err
			},
		},
	)
	return root
}

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	logging.Init(logging.Config{Level: logging.InfoLevel})

	if err := newRootCommand(&dbFlags{}).ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
