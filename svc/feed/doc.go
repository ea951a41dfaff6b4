// Package feed serves a user's packed notifications over HTTP.
//
// Routes mounts GET / on a chi router. The viewer is taken from the
// X-User-ID header by ViewerMiddleware; authentication happens upstream.
//
// Query parameters:
//
//	limit         page size, 1..100 (default 10)
//	untilId       return notifications older than this id
//	includeTypes  comma-separated kinds to keep
//	excludeTypes  comma-separated kinds to drop
//
// Responses use the envelope {"data": [...], "meta": {...}} on success and
// {"error": {"code": ..., "message": ...}} on failure. meta.nextUntilId is
// set when another page may exist; it is the id of the last stored
// notification read, which can differ from the last packed one because
// PackMany drops stale entries.
package feed
