package store

import "embed"

// Migrations holds the Postgres schema. Apply it with pg.Migrate(ctx, pool, cfg, Migrations, MigrationsDir, log).
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
