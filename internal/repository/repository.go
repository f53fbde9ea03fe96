// Package repository provides data access interfaces and implementations
// for the pokedex service.
//
// # Overview
//
// This package defines repository interfaces and their PostgreSQL implementations
// following the repository pattern to abstract data persistence from business logic.
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use by multiple goroutines.
// The underlying pgxpool handles connection pooling and synchronization.
//
// # Error Handling
//
// All methods return domain-specific errors from the domain package.
// Wrap database errors with context using fmt.Errorf with %w verb.
// Common errors include:
//
//   - domain.ErrNotFound: Resource does not exist
//   - domain.ErrConstraintViolation: Database constraint rejected the write
//   - domain.ErrPoolExhausted: No connection became available in time
//   - domain.ErrConnection: The database could not be reached
//
// # Connection Leases
//
// Every operation checks a connection lease out of the pool for its full
// duration and releases it on all paths, so a slow consumer cannot starve
// the pool through abandoned connections.
//
// # Usage Pattern
//
// Repositories are typically created at application startup and passed to services:
//
//	db, _ := database.New(ctx, cfg, logger, metrics)
//	pokemonRepo := repository.NewPgPokemonRepository(db, logger)
package repository
