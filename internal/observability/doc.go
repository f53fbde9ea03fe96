// Package observability provides logging and metrics support for the
// pokedex service.
//
// # Overview
//
// The observability package provides:
//
//   - Structured logging with zerolog
//   - Prometheus metrics for HTTP handling, store operations, the
//     connection pool, and the blocking-call worker pool
//   - Context helpers for propagating the request ID
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Int64("pokemon_id", id).Msg("pokemon created")
//
// # Metrics
//
// Initialize metrics:
//
//	metrics := observability.NewMetrics("pokedex")
//
// Record metrics:
//
//	metrics.RecordHTTPRequest("GET", "/api/v1/pokemons", 200, elapsed.Seconds())
//	metrics.RecordOperation("create", "success", elapsed.Seconds())
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
