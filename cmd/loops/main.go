package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
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
	"github.com/bearnovel/bearnovel/pkg/utils/args"
	"github.com/bearnovel/bearnovel/pkg/utils/filewatch"
	"github.com/bearnovel/bearnovel/pkg/utils/try"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	pconfig := flag.String("config", os.Getenv("NOVEL_CONFIG"), "path to config file")
	pschema := flag.String("schema-repo", os.Getenv("NOVEL_SCHEMA"), "schema repository path")

	loopType := args.Parser(looper.ParseLoopType)
	flag.Var(loopType, "type", "loop type. ranking|purge")

	policy := args.Parser(recurring.ParsePolicy)
	flag.Var(
		policy, "policy",
		`loop policy (syntax: forever[:COOLDOWN]|backlog|once).`+
			` "forever[:COOLDOWN]" = run until error, waiting COOLDOWN (default: 0) when backlog is over.`+
			` "backlog" = run until error or backlog is over.`+
			` "once" = run just one iteration.`,
	)
	timeout := flag.Duration("timeout", time.Minute, "timeout of each iteration. 0 means no timeout")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	jsonlog := flag.Bool("log-json", false, "write logs as JSON lines")
	flag.Parse()

	logger := logging.Init(logging.Config{
		Level: logging.Level(*loglevel), JSONOutput: *jsonlog,
	})

	if !loopType.IsSet() {
		logger.Fatal().Msg("-type is required")
	}
	if !policy.IsSet() {
		logger.Fatal().Msg("-policy is required")
	}

	logger.Info().Str("version", buildtime.VersionString()).Msg("loops")

	conf := try.To(configs.LoadBackendConfig(*pconfig)).OrFatal(fatal{})

	{
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

	lt := loopType.Value()
	loopLogger := logging.WithComponent("loops").With().Stringer("loop", lt).Logger()
	loopLogger.Info().Stringer("policy", policy.Value()).Msg("start loop")

	err := looper.Start(
		ctx, loopLogger, lt, platform.Novels(),
		looper.Manifest{
			Policy:  recurring.UntilError(policy.Value()),
			Timeout: *timeout,
		},
	)
	if err != nil && !errors.Is(err, context.Canceled) {
		loopLogger.Fatal().Err(err).Msg("loop stopped by error")
	}
	loopLogger.Info().AnErr("cause", context.Cause(ctx)).Msg("loop stopped")
}

type fatal struct{}

func (fatal) Fatal(args ...any) {
	logging.Logger.Fatal().Msg(fmt.Sprint(args...))
}
