// Package redis connects to Redis with github.com/redis/go-redis/v9.
//
// Config is read from REDIS_* environment variables. Connect retries until the
// server answers PING and Healthcheck returns a readiness probe. notifykit
// uses Redis as a shared read-through cache for user records (see
// store.NewRedisUserCache).
package redis
