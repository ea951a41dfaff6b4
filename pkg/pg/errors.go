package pg

import "errors"

var (
	ErrEmptyConnString = errors.New("pg: empty connection string, set PG_CONN_URL")
	ErrParseConfig     = errors.New("pg: invalid pool configuration")
	ErrConnect         = errors.New("pg: database did not become reachable")
	ErrNotReady        = errors.New("pg: readiness probe failed")
	ErrMigrate         = errors.New("pg: schema migration failed")
	ErrNoMigrations    = errors.New("pg: no migration source given")
)
