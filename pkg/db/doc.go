// Package db provides PostgreSQL connection management on pgxpool, schema
// migrations via goose, transaction helpers, and a small fluent query
// builder with positional placeholders.
//
//	pool, err := db.Connect(ctx, cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	app.Run(":8080",
//	    jazzy.StartupHook(func(ctx context.Context) error {
//	        return db.Migrate(ctx, pool, migrationsFS, cfg.Database.MigrationsTable, log)
//	    }),
//	    jazzy.ShutdownHook(db.Shutdown(pool)),
//	)
//
// The query builder renders SQL with pgx-style $N placeholders:
//
//	sql, args := db.Table("users").
//	    Select("id", "name").
//	    Where("age > ?", 21).
//	    OrderBy("id DESC").
//	    Limit(10).
//	    SQL()
//	rows, err := pool.Query(ctx, sql, args...)
package db
