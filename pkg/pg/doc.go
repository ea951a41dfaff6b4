// Package pg bootstraps PostgreSQL access on top of pgx/v5.
//
// Config is populated from PG_* environment variables. Connect opens a
// *pgxpool.Pool and retries until the server answers a ping, Migrate applies
// goose migrations from an fs.FS (typically an embed.FS owned by the store
// package), and Healthcheck returns a probe suitable for readiness endpoints.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, store.Migrations, "migrations", log); err != nil {
//	    return err
//	}
package pg
