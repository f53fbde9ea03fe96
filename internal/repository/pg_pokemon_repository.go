package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/poketeam/pokedex-service/internal/database"
	"github.com/poketeam/pokedex-service/internal/domain"
	"github.com/poketeam/pokedex-service/internal/observability"
)

// PostgreSQL error codes used for constraint violation detection.
const (
	pgUniqueViolation     = "23505" // unique_violation
	pgForeignKeyViolation = "23503" // foreign_key_violation
	pgNotNullViolation    = "23502" // not_null_violation
	pgCheckViolation      = "23514" // check_violation
)

// pokemonColumns is the column list shared by every SELECT and RETURNING clause.
const pokemonColumns = `id, number, name, type_1, type_2, total, hp, attack, defense, sp_atk, sp_def, speed, generation, legendary`

// Compile-time interface verification.
var _ PokemonRepository = (*PgPokemonRepository)(nil)

// PgPokemonRepository is a PostgreSQL implementation of PokemonRepository.
// Each operation holds a connection lease for exactly its own duration.
type PgPokemonRepository struct {
	pool   database.LeasePool
	logger zerolog.Logger
}

// NewPgPokemonRepository creates a new PostgreSQL pokemon repository.
func NewPgPokemonRepository(pool database.LeasePool, logger zerolog.Logger) *PgPokemonRepository {
	return &PgPokemonRepository{pool: pool, logger: logger}
}

// List returns a page of pokemons ordered by id along with the total row
// count. Page and count are read inside a single repeatable read, read-only
// transaction so both reflect the same snapshot. The count normally comes
// from a window function on the page query; when the requested window lies
// past the last row the window produces nothing, and a plain COUNT falls
// back inside the same snapshot.
func (r *PgPokemonRepository) List(ctx context.Context, limit, offset int64) ([]*domain.Pokemon, int64, error) {
	lease, err := r.pool.AcquireLease(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer lease.Release()

	var (
		pokemons   []*domain.Pokemon
		totalCount int64
	)

	txOpts := pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}
	err = database.WithTransactionOptions(ctx, r.logger, lease, txOpts, func(tx pgx.Tx) error {
		query := `
			SELECT ` + pokemonColumns + `, COUNT(*) OVER() AS total_count
			FROM pokemons
			ORDER BY id
			LIMIT $1 OFFSET $2`

		rows, err := tx.Query(ctx, query, limit, offset)
		if err != nil {
			return fmt.Errorf("failed to list pokemons: %w", err)
		}
		defer rows.Close()

		pokemons = make([]*domain.Pokemon, 0, limit)
		for rows.Next() {
			p := &domain.Pokemon{}
			if err := rows.Scan(
				&p.ID, &p.Number, &p.Name, &p.Type1, &p.Type2,
				&p.Total, &p.HP, &p.Attack, &p.Defense,
				&p.SpAtk, &p.SpDef, &p.Speed,
				&p.Generation, &p.Legendary,
				&totalCount,
			); err != nil {
				return fmt.Errorf("failed to scan pokemon: %w", err)
			}
			pokemons = append(pokemons, p)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating pokemons: %w", err)
		}

		if len(pokemons) == 0 {
			// Window lies past the last row. The window count produced no
			// value, so count in the same snapshot.
			if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM pokemons").Scan(&totalCount); err != nil {
				return fmt.Errorf("failed to count pokemons: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return pokemons, totalCount, nil
}

// Get retrieves a pokemon by id.
func (r *PgPokemonRepository) Get(ctx context.Context, id int64) (*domain.Pokemon, error) {
	lease, err := r.pool.AcquireLease(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	query := `
		SELECT ` + pokemonColumns + `
		FROM pokemons
		WHERE id = $1`

	p, err := scanPokemon(lease.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("pokemon", id)
		}
		return nil, fmt.Errorf("failed to get pokemon: %w", err)
	}

	return p, nil
}

// Create inserts a new pokemon. The total column is derived from the
// individual stats rather than trusting client input.
func (r *PgPokemonRepository) Create(ctx context.Context, p *domain.CreatePokemon) (*domain.Pokemon, error) {
	lease, err := r.pool.AcquireLease(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	query := `
		INSERT INTO pokemons (
			number, name, type_1, type_2, total,
			hp, attack, defense, sp_atk, sp_def, speed,
			generation, legendary
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		RETURNING ` + pokemonColumns

	created, err := scanPokemon(lease.QueryRow(ctx, query,
		p.Number, p.Name, p.Type1, p.Type2, p.StatTotal(),
		p.HP, p.Attack, p.Defense, p.SpAtk, p.SpDef, p.Speed,
		p.Generation, p.Legendary,
	))
	if err != nil {
		return nil, classifyWriteError("failed to create pokemon", err)
	}

	logger := observability.WithPokemonContext(r.logger, created.ID)
	logger.Debug().Msg("pokemon row inserted")
	return created, nil
}

// Update replaces every mutable column of the pokemon with the given id.
func (r *PgPokemonRepository) Update(ctx context.Context, id int64, p *domain.UpdatePokemon) (*domain.Pokemon, error) {
	lease, err := r.pool.AcquireLease(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	query := `
		UPDATE pokemons SET
			number = $2, name = $3, type_1 = $4, type_2 = $5, total = $6,
			hp = $7, attack = $8, defense = $9, sp_atk = $10, sp_def = $11, speed = $12,
			generation = $13, legendary = $14
		WHERE id = $1
		RETURNING ` + pokemonColumns

	updated, err := scanPokemon(lease.QueryRow(ctx, query,
		id,
		p.Number, p.Name, p.Type1, p.Type2, p.StatTotal(),
		p.HP, p.Attack, p.Defense, p.SpAtk, p.SpDef, p.Speed,
		p.Generation, p.Legendary,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("pokemon", id)
		}
		return nil, classifyWriteError("failed to update pokemon", err)
	}

	return updated, nil
}

// Patch updates only the fields set on p. SET expressions read the old row,
// so the total can be recomputed from the effective stat values in the same
// statement.
func (r *PgPokemonRepository) Patch(ctx context.Context, id int64, p *domain.PatchPokemon) (*domain.Pokemon, error) {
	lease, err := r.pool.AcquireLease(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	query := `
		UPDATE pokemons SET
			number = COALESCE($2, number),
			name = COALESCE($3, name),
			type_1 = COALESCE($4, type_1),
			type_2 = COALESCE($5, type_2),
			hp = COALESCE($6, hp),
			attack = COALESCE($7, attack),
			defense = COALESCE($8, defense),
			sp_atk = COALESCE($9, sp_atk),
			sp_def = COALESCE($10, sp_def),
			speed = COALESCE($11, speed),
			generation = COALESCE($12, generation),
			legendary = COALESCE($13, legendary),
			total = COALESCE($6, hp) + COALESCE($7, attack) + COALESCE($8, defense) +
				COALESCE($9, sp_atk) + COALESCE($10, sp_def) + COALESCE($11, speed)
		WHERE id = $1
		RETURNING ` + pokemonColumns

	patched, err := scanPokemon(lease.QueryRow(ctx, query,
		id,
		p.Number, p.Name, p.Type1, p.Type2,
		p.HP, p.Attack, p.Defense, p.SpAtk, p.SpDef, p.Speed,
		p.Generation, p.Legendary,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("pokemon", id)
		}
		return nil, classifyWriteError("failed to patch pokemon", err)
	}

	return patched, nil
}

// Delete removes the pokemon with the given id.
func (r *PgPokemonRepository) Delete(ctx context.Context, id int64) error {
	lease, err := r.pool.AcquireLease(ctx)
	if err != nil {
		return err
	}
	defer lease.Release()

	tag, err := lease.Exec(ctx, "DELETE FROM pokemons WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete pokemon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("pokemon", id)
	}

	logger := observability.WithPokemonContext(r.logger, id)
	logger.Debug().Msg("pokemon row deleted")
	return nil
}

// CreateBatch inserts many pokemons in a single batch round trip.
func (r *PgPokemonRepository) CreateBatch(ctx context.Context, ps []*domain.CreatePokemon) (int64, error) {
	if len(ps) == 0 {
		return 0, nil
	}

	lease, err := r.pool.AcquireLease(ctx)
	if err != nil {
		return 0, err
	}
	defer lease.Release()

	query := `
		INSERT INTO pokemons (
			number, name, type_1, type_2, total,
			hp, attack, defense, sp_atk, sp_def, speed,
			generation, legendary
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)`

	batch := &pgx.Batch{}
	for _, p := range ps {
		batch.Queue(query,
			p.Number, p.Name, p.Type1, p.Type2, p.StatTotal(),
			p.HP, p.Attack, p.Defense, p.SpAtk, p.SpDef, p.Speed,
			p.Generation, p.Legendary,
		)
	}

	results := lease.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range ps {
		tag, err := results.Exec()
		if err != nil {
			return inserted, classifyWriteError("failed to batch insert pokemon", err)
		}
		inserted += tag.RowsAffected()
	}

	return inserted, nil
}

// scanPokemon scans a single pokemon row.
func scanPokemon(row pgx.Row) (*domain.Pokemon, error) {
	p := &domain.Pokemon{}
	err := row.Scan(
		&p.ID, &p.Number, &p.Name, &p.Type1, &p.Type2,
		&p.Total, &p.HP, &p.Attack, &p.Defense,
		&p.SpAtk, &p.SpDef, &p.Speed,
		&p.Generation, &p.Legendary,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// classifyWriteError maps PostgreSQL constraint errors to the domain error
// taxonomy and wraps everything else with context.
func classifyWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation, pgNotNullViolation, pgCheckViolation:
			return domain.NewConstraintViolationError(pgErr.ConstraintName, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
