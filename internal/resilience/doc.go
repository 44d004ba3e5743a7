// Package resilience groups the fault tolerance helpers used around the
// database: a circuit breaker that stops hammering an unavailable
// PostgreSQL, and retry with exponential backoff for the startup
// connection.
//
//	cb := circuitbreaker.NewDBCircuitBreaker(db)
//	repo := postgres.NewNoteRepo(cb)
//
//	err := retry.WithBackoff(ctx, retry.StartupConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
