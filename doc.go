// Package jazzy is a small web framework for building JSON APIs in Go.
//
// Jazzy keeps the surface deliberately thin: handlers return errors, a
// single boundary converts them to HTTP responses, and everything else is
// plain Go. There is no reflection-driven binding and no code generation.
//
// # Quick Start
//
// Create an application with jazzy.New(), register routes, and call Run()
// to start the HTTP server:
//
//	app := jazzy.New(
//	    jazzy.WithLogger("api"),
//	    jazzy.WithHandlers(
//	        handlers.NewAuth(repo),
//	        handlers.NewPosts(repo),
//	    ),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// Routes can also be declared directly on the app:
//
//	app.GET("/posts/:id", showPost)
//	app.POST("/posts", createPost)
//
//	app.RouteGroup("/admin", func(r jazzy.Router) {
//	    r.GET("/stats", showStats)
//	}, middlewares.RequireAuth())
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	type PostsHandler struct {
//	    repo *repository.Posts
//	}
//
//	func NewPosts(repo *repository.Posts) *PostsHandler {
//	    return &PostsHandler{repo: repo}
//	}
//
//	func (h *PostsHandler) Routes(r jazzy.Router) {
//	    r.GET("/posts", h.list)
//	    r.GET("/posts/:id", h.show)
//	    r.POST("/posts", h.create)
//	}
//
//	func (h *PostsHandler) show(c jazzy.Context) error {
//	    post, err := h.repo.Find(c, jazzy.Param[int64](c, "id"))
//	    if err != nil {
//	        return jazzy.ErrNotFound("post not found", jazzy.WithError(err))
//	    }
//	    return c.JSON(post)
//	}
//
// # Errors and Validation
//
// Handlers report failure by returning an error. Returning an [HTTPError]
// sets the status code; validation failures render as a 422 with per-field
// messages; anything else becomes a 500:
//
//	func (h *PostsHandler) create(c jazzy.Context) error {
//	    if err := c.Validate(jazzy.Rules{
//	        "title": "required|min:3",
//	        "body":  "required",
//	    }); err != nil {
//	        return err
//	    }
//	    in := jazzy.BodyAs[createPostInput](c)
//	    ...
//	}
//
// # Middleware
//
// Middleware wraps handlers to add cross-cutting concerns:
//
//	func tenant(next jazzy.HandlerFunc) jazzy.HandlerFunc {
//	    return func(c jazzy.Context) error {
//	        c.Set(tenantKey{}, c.Request().Header.Get("X-Tenant"))
//	        return next(c)
//	    }
//	}
//
// The middlewares package ships ready-made request ID, logging, recovery,
// timeout, CORS, auth-guard and rate-limit middleware.
//
// # Shutdown
//
// Run handles SIGINT/SIGTERM for graceful shutdown. Register cleanup with
// run options:
//
//	err := app.Run(cfg.Addr,
//	    jazzy.StartupHook(func(ctx context.Context) error {
//	        return db.Migrate(ctx, pool, migrations, cfg.Database.MigrationsTable, log)
//	    }),
//	    jazzy.ShutdownHook(db.Shutdown(pool)),
//	)
package jazzy
