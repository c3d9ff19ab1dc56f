package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bearnovel "github.com/bearnovel/bearnovel/pkg"
	"github.com/bearnovel/bearnovel/pkg/buildtime"
	configs "github.com/bearnovel/bearnovel/pkg/configs/backend"
	"github.com/bearnovel/bearnovel/pkg/logging"
	"github.com/bearnovel/bearnovel/pkg/loop/looper"
	"github.com/bearnovel/bearnovel/pkg/loop/recurring"
	"github.com/bearnovel/bearnovel/pkg/utils/filewatch"
	"github.com/bearnovel/bearnovel/pkg/utils/try"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	pconfig := flag.String("config", os.Getenv("NOVEL_CONFIG"), "path to config file")
	pschema := flag.String("schema-repo", os.Getenv("NOVEL_SCHEMA"), "schema repository path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	jsonlog := flag.Bool("log-json", false, "write logs as JSON lines")
	embedded := flag.Bool("embedded-loops", false, "run ranking and purge loops in this process")
	pversion := flag.Bool("version", false, "show version and exit")
	flag.Parse()

	if *pversion {
		fmt.Println(buildtime.VersionString())
		return
	}

	logger := logging.Init(logging.Config{
		Level: logging.Level(*loglevel), JSONOutput: *jsonlog,
	})

	logger.Info().Str("version", buildtime.VersionString()).Msg("noveld")

	conf := try.To(configs.LoadBackendConfig(*pconfig)).OrFatal(fatal{})

	{
		// restart on config change: quit, and let the supervisor start again.
		wctx, wcancel, err := filewatch.UntilModifyContext(ctx, *pconfig)
		if err != nil {
			logger.Fatal().Err(err).Msg("can not watch config")
		}
		defer wcancel()
		ctx = wctx
	}

	platform := try.To(bearnovel.Connect(ctx, conf, logger, *pschema)).OrFatal(fatal{})
	defer platform.Close()

	{
		sctx, scancel := platform.Database().Schema().Context(ctx)
		defer scancel()
		ctx = sctx
	}

	e := BuildServer(
		Services{
			Accounts: platform.Accounts(),
			Novels:   platform.Novels(),
			Tokens:   platform.Tokens(),
		},
		ServerOptions{
			AllowOrigins:           conf.Server().AllowOrigins(),
			LoginRatePerSecond:     conf.Server().LoginRatePerSecond(),
			MaxProfilePictureBytes: conf.Novels().MaxProfilePictureBytes(),
			LogLevel:               *loglevel,
		},
		logging.WithComponent("server"),
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		addr := fmt.Sprintf(":%d", conf.Server().Port())
		logger.Info().Str("addr", addr).Msg("start server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return e.Shutdown(graceful)
	})

	if *embedded {
		loopLogger := logging.WithComponent("loops")
		eg.Go(func() error {
			return ignoreCancel(looper.StartRankingLoop(
				ctx, loopLogger, platform.Novels(),
				looper.Manifest{
					Policy:  recurring.Forever(conf.Novels().RankingInterval()),
					Timeout: time.Minute,
				},
			))
		})
		eg.Go(func() error {
			return ignoreCancel(looper.StartPurgeLoop(
				ctx, loopLogger, platform.Novels(),
				looper.Manifest{
					Policy:  recurring.Forever(24 * time.Hour),
					Timeout: time.Minute,
				},
			))
		})
	}

	if err := eg.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped by error")
	}
	logger.Info().AnErr("cause", context.Cause(ctx)).Msg("server stopped")
}

// ignoreCancel drops errors caused by shutting down.
func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// fatal reports errors to the process-wide logger, and exits.
type fatal struct{}

func (fatal) Fatal(args ...any) {
	logging.Logger.Fatal().Msg(fmt.Sprint(args...))
}
