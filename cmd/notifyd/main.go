// Command notifyd serves packed notification feeds over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/notifykit/pkg/config"
	"github.com/dmitrymomot/notifykit/pkg/httpserver"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/requestid"
	"github.com/dmitrymomot/notifykit/svc/entity"
	"github.com/dmitrymomot/notifykit/svc/feed"
	"github.com/dmitrymomot/notifykit/svc/notification"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, "notifyd"),
		logger.WithContextExtractors(requestid.LoggerExtractor(), feed.ViewerExtractor()),
	)
	slog.SetDefault(log)

	backend, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.close()

	st, err := withUserCache(ctx, cfg, backend, log)
	if err != nil {
		return err
	}

	users := entity.NewUserPacker(st)
	notes := entity.NewNotePacker(st, users)
	users.BindNotePacker(notes)
	packer := notification.NewPacker(st, notes, users,
		notification.WithPackerLogger(log.With(logger.Component("packer"))),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, backend.checks))
	r.Mount("/notifications", feed.NewHandler(st, packer, feed.WithLogger(log)).Routes())

	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return err
	}
	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))

	return srv.Run(ctx, r)
}
