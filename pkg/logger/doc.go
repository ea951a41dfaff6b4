// Package logger builds *slog.Logger instances for notifykit services.
//
// New applies functional options (format, level, output, static attributes,
// environment presets). ContextExtractor callbacks registered with
// WithContextExtractors add request-scoped attributes, such as the request
// id or the viewer, to every record logged with a context.
//
// The attr helpers (Error, ViewerID, NotificationID, Count, ...) keep key
// names consistent across packages. Helpers that receive an empty value
// return an empty slog.Attr, which slog skips.
//
// # Usage
//
//	log := logger.New(logger.WithEnvironment(cfg.Env, "notifyd"))
//	log.InfoContext(ctx, "notifications packed",
//	    logger.ViewerID(viewerID),
//	    logger.Count("packed", len(out)),
//	)
package logger
