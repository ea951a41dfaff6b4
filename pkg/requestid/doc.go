// Package requestid tags every HTTP request with a correlation id.
//
// Middleware takes the id from the X-Request-ID header when it is well formed
// and generates a UUID otherwise. The id is echoed back in the response and
// stored in the request context, where LoggerExtractor picks it up for
// pkg/logger:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid
