// Package logger provides structured logging built on log/slog, with
// per-request context extraction and optional Sentry delivery.
//
// A ContextExtractor pulls a request-scoped attribute (request ID, user ID)
// out of a context.Context on every log call, so handlers log through
// c.Logger() without threading identifiers by hand:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "user created", slog.Int64("id", id))
//
// NewWithSentry adds error delivery to Sentry on top of stdout JSON logs.
// With an empty DSN it degrades to stdout only, so the same wiring works in
// development and production.
package logger
