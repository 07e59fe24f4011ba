// Package internal provides the core types and implementation for the Jazzy
// framework.
//
// This package is internal and should not be used directly. Import
// "github.com/jazzy-go/jazzy" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: Orchestrates the application lifecycle, routing, middleware and
//     graceful shutdown
//   - Context: Provides request/response access, auth state and helper
//     methods for one request
//   - Router: Interface handlers use to declare routes and groups
//   - Handler: Interface implemented by types that declare routes
//   - HandlerFunc: Signature for route handlers, which report failure by
//     returning an error
//   - Middleware: Wraps handlers to add cross-cutting concerns
//   - ErrorHandler: Custom error conversion consulted before the built-in
//     boundary
//
// # Request Lifecycle
//
// ServeHTTP builds a buffered Response and a requestContext, restores auth
// state from the bearer token, runs the composed middleware chain around
// dispatch, converts any returned error or recovered panic into a response,
// and flushes the buffer exactly once.
package internal
