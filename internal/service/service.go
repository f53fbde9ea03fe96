// Package service orchestrates pokemon operations: it validates input,
// dispatches store calls onto the worker pool, and shapes results for the
// transport layer.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/poketeam/pokedex-service/internal/domain"
	"github.com/poketeam/pokedex-service/internal/executor"
	"github.com/poketeam/pokedex-service/internal/observability"
	"github.com/poketeam/pokedex-service/internal/pagination"
	"github.com/poketeam/pokedex-service/internal/repository"
	"github.com/poketeam/pokedex-service/internal/validation"
)

// Service coordinates validation, dispatch, and persistence for pokemons.
type Service struct {
	repo      repository.PokemonRepository
	exec      *executor.Pool
	validator *validation.Validator
	metrics   *observability.Metrics
	logger    zerolog.Logger
}

// New creates a Service. metrics may be nil.
func New(repo repository.PokemonRepository, exec *executor.Pool, validator *validation.Validator, metrics *observability.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		exec:      exec,
		validator: validator,
		metrics:   metrics,
		logger:    logger.With().Str("component", "service").Logger(),
	}
}

// listResult carries a page of rows and the snapshot total through the pool.
type listResult struct {
	pokemons []*domain.Pokemon
	total    int64
}

// List returns one page of pokemons together with pagination bookkeeping.
// The requested page is echoed back even when it lies past the last row.
func (s *Service) List(ctx context.Context, page, pageSize int64) (*domain.PokemonPage, error) {
	start := time.Now()

	if page < 1 {
		return nil, s.fail("list", start, domain.NewValidationErrors(domain.FieldViolation{
			Field:      "page",
			Constraint: "must be ≥ 1",
		}))
	}

	effective := pagination.EffectivePageSize(pageSize)
	limit, offset := pagination.Window(page, effective)

	f := executor.Submit(s.exec, ctx, func(taskCtx context.Context) (listResult, error) {
		pokemons, total, err := s.repo.List(taskCtx, limit, offset)
		return listResult{pokemons: pokemons, total: total}, err
	})
	result, err := f.Await(ctx)
	if err != nil {
		return nil, s.fail("list", start, err)
	}

	summary := pagination.Summarize(page, effective, result.total)
	s.record("list", "success", start)
	return &domain.PokemonPage{
		Pokemons:   result.pokemons,
		Page:       summary.Page,
		PageSize:   summary.PageSize,
		TotalPages: summary.TotalPages,
	}, nil
}

// Get returns the pokemon with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Pokemon, error) {
	start := time.Now()

	f := executor.Submit(s.exec, ctx, func(taskCtx context.Context) (*domain.Pokemon, error) {
		return s.repo.Get(taskCtx, id)
	})
	p, err := f.Await(ctx)
	if err != nil {
		return nil, s.fail("get", start, err)
	}

	s.record("get", "success", start)
	return p, nil
}

// Create validates and stores a new pokemon.
func (s *Service) Create(ctx context.Context, create *domain.CreatePokemon) (*domain.Pokemon, error) {
	start := time.Now()

	if err := s.validator.Struct(create); err != nil {
		return nil, s.fail("create", start, err)
	}

	f := executor.Submit(s.exec, ctx, func(taskCtx context.Context) (*domain.Pokemon, error) {
		return s.repo.Create(taskCtx, create)
	})
	p, err := f.Await(ctx)
	if err != nil {
		return nil, s.fail("create", start, err)
	}

	s.logger.Info().Int64("pokemon_id", p.ID).Str("name", p.Name).Msg("pokemon created")
	s.record("create", "success", start)
	return p, nil
}

// Update validates and fully replaces the pokemon with the given id.
func (s *Service) Update(ctx context.Context, id int64, update *domain.UpdatePokemon) (*domain.Pokemon, error) {
	start := time.Now()

	if err := s.validator.Struct(update); err != nil {
		return nil, s.fail("update", start, err)
	}

	f := executor.Submit(s.exec, ctx, func(taskCtx context.Context) (*domain.Pokemon, error) {
		return s.repo.Update(taskCtx, id, update)
	})
	p, err := f.Await(ctx)
	if err != nil {
		return nil, s.fail("update", start, err)
	}

	s.record("update", "success", start)
	return p, nil
}

// Patch validates and applies a partial update to the pokemon with the
// given id. An empty patch is rejected.
func (s *Service) Patch(ctx context.Context, id int64, patch *domain.PatchPokemon) (*domain.Pokemon, error) {
	start := time.Now()

	if patch.IsEmpty() {
		return nil, s.fail("patch", start, domain.NewValidationErrors(domain.FieldViolation{
			Field:      "body",
			Constraint: "at least one field must be set",
		}))
	}
	if err := s.validator.Struct(patch); err != nil {
		return nil, s.fail("patch", start, err)
	}

	f := executor.Submit(s.exec, ctx, func(taskCtx context.Context) (*domain.Pokemon, error) {
		return s.repo.Patch(taskCtx, id, patch)
	})
	p, err := f.Await(ctx)
	if err != nil {
		return nil, s.fail("patch", start, err)
	}

	s.record("patch", "success", start)
	return p, nil
}

// Delete removes the pokemon with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	f := executor.Submit(s.exec, ctx, func(taskCtx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.Delete(taskCtx, id)
	})
	if _, err := f.Await(ctx); err != nil {
		return s.fail("delete", start, err)
	}

	s.logger.Info().Int64("pokemon_id", id).Msg("pokemon deleted")
	s.record("delete", "success", start)
	return nil
}

// fail records an operation failure and passes the error through untouched.
func (s *Service) fail(operation string, start time.Time, err error) error {
	outcome := outcomeForError(err)
	if outcome == "internal" {
		s.logger.Error().Err(err).Str("operation", operation).Msg("operation failed")
	}
	s.record(operation, outcome, start)
	return err
}

func (s *Service) record(operation, outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordOperation(operation, outcome, time.Since(start).Seconds())
	}
}

// outcomeForError maps the error taxonomy to a metric label.
func outcomeForError(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, domain.ErrConstraintViolation):
		return "constraint"
	case errors.Is(err, domain.ErrPoolExhausted):
		return "pool_exhausted"
	case errors.Is(err, domain.ErrConnection):
		return "connection"
	default:
		return "internal"
	}
}
