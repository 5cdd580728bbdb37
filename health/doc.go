// Package health provides health checks for the solver service.
//
// A Checker reports the state of one component. The Aggregator fans
// checks out with a shared timeout and folds the results into an
// overall status. HTTP handlers expose liveness, readiness and a
// detailed JSON report.
//
//	agg := health.NewAggregator()
//	agg.Register("cache", health.NewCacheChecker(store, cache.DefaultMaxEntries))
//	agg.Register("memory", health.NewMemoryChecker(health.MemoryCheckerConfig{}))
//	health.RegisterHandlers(mux, agg)
package health
