package bearnovel

import (
	"context"
	"errors"
	"time"

	"github.com/bearnovel/bearnovel/pkg/accounts"
	"github.com/bearnovel/bearnovel/pkg/auth"
	"github.com/bearnovel/bearnovel/pkg/cache"
	bconf "github.com/bearnovel/bearnovel/pkg/configs/backend"
	kdb "github.com/bearnovel/bearnovel/pkg/db"
	kpg "github.com/bearnovel/bearnovel/pkg/db/postgres"
	"github.com/bearnovel/bearnovel/pkg/novels"
	"github.com/bearnovel/bearnovel/pkg/utils/retry"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// Platform bundles middlewares and services of the novel platform.
type Platform interface {
	Config() *bconf.BackendConfig
	Database() kdb.Database
	Store() cache.Store
	Tokens() auth.Tokens
	Novels() novels.Service
	Accounts() accounts.Service

	// Close releases connections to middlewares.
	Close() error
}

type platform struct {
	config   *bconf.BackendConfig
	database kdb.Database
	store    cache.Store
	tokens   auth.Tokens
	novels   novels.Service
	accounts accounts.Service
	closers  []func() error
}

var _ Platform = &platform{}

// Attach builds services on the database and the store.
//
// Closing the Platform closes the database.
func Attach(config *bconf.BackendConfig, database kdb.Database, store cache.Store, logger zerolog.Logger) Platform {
	nconf := config.Novels()
	jconf := config.JWT()

	tokens := auth.NewTokens(
		auth.HS256(jconf.Key()), store,
		auth.Config{
			Issuer:             jconf.Issuer(),
			Audience:           jconf.Audience(),
			AccessTokenExpire:  jconf.AccessTokenExpire(),
			RefreshTokenExpire: jconf.RefreshTokenExpire(),
		},
	)
	novelCache := cache.NewNovelCache(
		store, nconf.CacheTTL(), nconf.RankingInterval(),
		logger.With().Str("component", "cache").Logger(),
	)

	return &platform{
		config:   config,
		database: database,
		store:    store,
		tokens:   tokens,
		novels: novels.New(
			database, novelCache,
			novels.Config{
				PopularCount:    nconf.PopularCount(),
				DeleteRetention: nconf.DeleteRetention(),
			},
			novels.WithLogger(logger.With().Str("component", "novels").Logger()),
		),
		accounts: accounts.New(
			database.Users(), tokens,
			accounts.Config{MaxProfilePictureBytes: nconf.MaxProfilePictureBytes()},
			logger.With().Str("component", "accounts").Logger(),
		),
		closers: []func() error{database.Close},
	}
}

// times to retry connecting to postgres
const connectAttempts = 5

// Connect connects to postgres and redis as configured, and attaches services on them.
//
// Args:
//
// - ctx
//
// - config
//
// - logger
//
// - schemaRepository: path to schema repository. if empty, schema changes are not watched.
func Connect(ctx context.Context, config *bconf.BackendConfig, logger zerolog.Logger, schemaRepository string) (Platform, error) {
	options := []kpg.Option{}
	if schemaRepository != "" {
		options = append(options, kpg.WithSchemaRepository(schemaRepository))
	}
	// postgres may be starting up together with us.
	database, err := retry.Blocking(
		ctx, retry.Limit(connectAttempts, retry.ExponentialBackoff(time.Second, 2)),
		func() (kdb.Database, error) {
			database, err := kpg.New(ctx, config.Database(), options...)
			if err != nil {
				logger.Warn().Err(err).Msg("can not connect to postgres. retrying")
				return nil, errors.Join(retry.ErrRetry, err)
			}
			return database, nil
		},
	)
	if err != nil {
		return nil, err
	}

	rconf := config.Redis()
	client := redis.NewClient(&redis.Options{
		Addr:     rconf.Addr(),
		Password: rconf.Password(),
		DB:       rconf.DB(),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		// served without cache until redis is back.
		logger.Warn().Err(err).Str("addr", rconf.Addr()).Msg("redis is not reachable")
	}

	cacheLogger := logger.With().Str("component", "cache").Logger()
	store := cache.NewRedisStore(
		client, rconf.InstanceName(),
		cache.WithStateChange(func(from, to gobreaker.State) {
			cacheLogger.Warn().Stringer("from", from).Stringer("to", to).Msg("redis circuit breaker state changed")
		}),
	)

	p := Attach(config, database, store, logger).(*platform)
	p.closers = append(p.closers, client.Close)
	return p, nil
}

func (p *platform) Config() *bconf.BackendConfig { return p.config }
func (p *platform) Database() kdb.Database        { return p.database }
func (p *platform) Store() cache.Store            { return p.store }
func (p *platform) Tokens() auth.Tokens           { return p.tokens }
func (p *platform) Novels() novels.Service        { return p.novels }
func (p *platform) Accounts() accounts.Service    { return p.accounts }

func (p *platform) Close() error {
	errs := make([]error, 0, len(p.closers))
	for _, c := range p.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
