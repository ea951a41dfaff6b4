package main

import "time"

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`   // Env selects logging presets ("production", "staging", anything else is development).
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`   // StoreDriver is one of memory, postgres, mongo.
	UserCache   string `env:"USER_CACHE" envDefault:"none"`       // UserCache is one of none, lru, redis.
	SeedDemo    bool   `env:"SEED_DEMO_DATA" envDefault:"false"` // SeedDemo fills the memory store with sample records.

	UserCacheSize int           `env:"USER_CACHE_SIZE" envDefault:"10000"` // UserCacheSize bounds the lru cache.
	UserCacheTTL  time.Duration `env:"USER_CACHE_TTL" envDefault:"1m"`     // UserCacheTTL is how long a cached user stays valid.
}

const (
	driverMemory   = "memory"
	driverPostgres = "postgres"
	driverMongo    = "mongo"

	cacheNone  = "none"
	cacheLRU   = "lru"
	cacheRedis = "redis"
)
