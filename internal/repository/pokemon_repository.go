package repository

import (
	"context"

	"github.com/poketeam/pokedex-service/internal/domain"
)

// PokemonRepository manages pokemon persistence.
type PokemonRepository interface {
	// List returns a page of pokemons ordered by id, along with the total
	// number of rows in the table. The total is observed in the same
	// repeatable read snapshot as the page itself.
	List(ctx context.Context, limit, offset int64) ([]*domain.Pokemon, int64, error)

	// Get returns the pokemon with the given id.
	// Returns domain.ErrNotFound if no such row exists.
	Get(ctx context.Context, id int64) (*domain.Pokemon, error)

	// Create inserts a new pokemon and returns the stored row with its
	// assigned id. The total stat is derived from the individual stats.
	Create(ctx context.Context, p *domain.CreatePokemon) (*domain.Pokemon, error)

	// Update replaces every mutable column of the pokemon with the given id
	// and returns the stored row. Returns domain.ErrNotFound if no such row
	// exists.
	Update(ctx context.Context, id int64, p *domain.UpdatePokemon) (*domain.Pokemon, error)

	// Patch updates only the fields set on p, leaving the rest untouched,
	// and returns the stored row. The total stat is recomputed from the
	// effective stat values. Returns domain.ErrNotFound if no such row
	// exists.
	Patch(ctx context.Context, id int64, p *domain.PatchPokemon) (*domain.Pokemon, error)

	// Delete removes the pokemon with the given id.
	// Returns domain.ErrNotFound if no such row exists.
	Delete(ctx context.Context, id int64) error

	// CreateBatch inserts many pokemons in a single round trip and returns
	// the number of rows written. Used by bulk seeding.
	CreateBatch(ctx context.Context, ps []*domain.CreatePokemon) (int64, error)
}
