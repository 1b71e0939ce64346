// Package resilience provides fault tolerance patterns for the application.
//
// The package supports:
//   - Circuit breakers guarding the content stores
//   - Retry logic with exponential backoff and jitter for the startup database ping
//
// Usage Example:
//
//	news := circuitbreaker.Guard[entity.News, entity.NewsPatch](
//	    sqlstore.NewsStore(db), "news", circuitbreaker.DBConfig("news-store"))
//
//	err := retry.WithBackoff(ctx, retry.DBStartupConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
