// Package redis provides Redis connection management with retries, a
// healthcheck closure and a graceful shutdown hook.
//
//	client := redis.MustOpen(ctx, os.Getenv("REDIS_URL"))
//
//	app.Run(":8080",
//	    jazzy.ShutdownHook(redis.Shutdown(client)),
//	)
package redis
