package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/config"
	"github.com/dmitrymomot/notifykit/pkg/httpserver"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/mongo"
	"github.com/dmitrymomot/notifykit/pkg/pg"
	"github.com/dmitrymomot/notifykit/pkg/redis"
	"github.com/dmitrymomot/notifykit/svc/store"
)

// backend is an opened store plus the readiness checks and cleanup of the
// connections behind it.
type backend struct {
	store   store.Store
	checks  map[string]httpserver.Check
	closers []func()
}

func (b *backend) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackend(ctx context.Context, cfg appConfig, log *slog.Logger) (*backend, error) {
	b := &backend{checks: map[string]httpserver.Check{}}
	log = log.With(logger.Driver(cfg.StoreDriver))

	switch cfg.StoreDriver {
	case driverMemory:
		mem := store.NewMemory()
		if cfg.SeedDemo {
			seedDemo(mem, log)
		}
		b.store = mem

	case driverPostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)
		if pgCfg.AutoMigrate {
			if err := pg.Migrate(ctx, pool, pgCfg, store.Migrations, store.MigrationsDir, log); err != nil {
				b.close()
				return nil, err
			}
		}
		b.store = store.NewPostgres(pool)
		b.checks["postgres"] = pg.Healthcheck(pool)

	case driverMongo:
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return nil, err
		}
		db, err := mongo.NewWithDatabase(ctx, mongoCfg)
		if err != nil {
			return nil, err
		}
		client := db.Client()
		b.closers = append(b.closers, func() { _ = client.Disconnect(context.Background()) })
		ms := store.NewMongo(db)
		if err := ms.EnsureIndexes(ctx); err != nil {
			b.close()
			return nil, err
		}
		b.store = ms
		b.checks["mongo"] = mongo.Healthcheck(client)

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	log.InfoContext(ctx, "store opened")
	return b, nil
}

// withUserCache wraps b.store with the configured user cache. A redis
// connection is added to b's checks and closers.
func withUserCache(ctx context.Context, cfg appConfig, b *backend, log *slog.Logger) (store.Store, error) {
	cacheLog := log.With(logger.Component("user_cache"))

	switch cfg.UserCache {
	case cacheNone, "":
		return b.store, nil

	case cacheLRU:
		return store.NewCachedUsers(b.store,
			store.NewLRUUserCache(cfg.UserCacheSize, cfg.UserCacheTTL),
			store.WithCacheLogger(cacheLog),
		), nil

	case cacheRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.checks["redis"] = redis.Healthcheck(client)
		return store.NewCachedUsers(b.store,
			store.NewRedisUserCache(client, redisCfg.KeyPrefix, cfg.UserCacheTTL),
			store.WithCacheLogger(cacheLog),
		), nil
	}

	return nil, fmt.Errorf("unknown user cache %q", cfg.UserCache)
}
