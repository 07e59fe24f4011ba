// Package middlewares provides HTTP middleware for Jazzy applications.
//
// The middlewares compose through jazzy.WithMiddleware (global) or as route
// and group middleware. Recommended global order:
//
//	jazzy.WithMiddleware(
//	    middlewares.CORS(),       // handle preflight before anything else
//	    middlewares.RequestID(),  // assign ID for all subsequent logging
//	    middlewares.Logging(),    // access log with final status and size
//	    middlewares.Recover(),    // catch panics with stack traces
//	    middlewares.Timeout(5*time.Second),
//	)
//
// RequireAuth guards routes behind bearer-token authentication:
//
//	app.RouteGroup("/account", func(r jazzy.Router) {
//	    r.GET("/profile", profile)
//	}, middlewares.RequireAuth())
//
// Use RequestIDExtractor with WithLogger for automatic request_id in logs:
//
//	app := jazzy.New(
//	    jazzy.WithLogger("api", middlewares.RequestIDExtractor()),
//	    jazzy.WithMiddleware(middlewares.RequestID()),
//	)
package middlewares
