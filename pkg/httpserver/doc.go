// Package httpserver runs an http.Handler with graceful shutdown and provides
// liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// Run returns once ctx is canceled and in-flight requests have drained, or
// when the listener fails.
package httpserver
