// Package store provides the record lookups behind notification packing.
//
// Three backends implement Store: Memory for development and tests, Postgres
// on a pgx pool with goose migrations embedded in Migrations, and Mongo on a
// mongo-driver v2 database. All of them return an empty slice for an empty id
// list without touching the backend, and silently omit ids that do not exist.
//
// CachedUsers wraps any Store with a read-through user cache, either
// in-process (NewLRUUserCache) or shared (NewRedisUserCache):
//
//	base := store.NewPostgres(pool)
//	s := store.NewCachedUsers(base, store.NewRedisUserCache(client, "notifykit:", time.Minute))
//
// ListNotifications pages a user's notifications newest first and is what the
// feed endpoint reads before packing.
package store
