package repository

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poketeam/pokedex-service/internal/database"
	"github.com/poketeam/pokedex-service/internal/domain"
)

// stubLease adapts a pgxmock pool into a database.Lease with a no-op Release.
type stubLease struct {
	pgxmock.PgxPoolIface
}

func (stubLease) Release() {}

// stubPool hands out the same lease every time, or fails with err.
type stubPool struct {
	lease database.Lease
	err   error
}

func (p stubPool) AcquireLease(ctx context.Context) (database.Lease, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.lease, nil
}

func newMockRepo(t *testing.T) (*PgPokemonRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := NewPgPokemonRepository(stubPool{lease: stubLease{mock}}, zerolog.Nop())
	return repo, mock
}

// Helper to create a valid creation payload for testing.
func newTestCreate() *domain.CreatePokemon {
	return &domain.CreatePokemon{
		Number:     1,
		Name:       "Bulbasaur",
		Type1:      "Grass",
		Type2:      ptr("Poison"),
		HP:         45,
		Attack:     49,
		Defense:    49,
		SpAtk:      65,
		SpDef:      65,
		Speed:      45,
		Generation: 1,
		Legendary:  false,
	}
}

func ptr[T any](v T) *T { return &v }

func pokemonRowColumns() []string {
	return []string{
		"id", "number", "name", "type_1", "type_2", "total",
		"hp", "attack", "defense", "sp_atk", "sp_def", "speed",
		"generation", "legendary",
	}
}

func addPokemonRow(rows *pgxmock.Rows, id int64) *pgxmock.Rows {
	return rows.AddRow(
		id, int32(1), "Bulbasaur", "Grass", ptr("Poison"), int32(318),
		int32(45), int32(49), int32(49), int32(65), int32(65), int32(45),
		int32(1), false,
	)
}

func TestNewPgPokemonRepository(t *testing.T) {
	repo := NewPgPokemonRepository(nil, zerolog.Nop())
	assert.NotNil(t, repo)
	assert.Nil(t, repo.pool)
}

func TestPgPokemonRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns pokemon", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM pokemons").
			WithArgs(int64(1)).
			WillReturnRows(addPokemonRow(pgxmock.NewRows(pokemonRowColumns()), 1))

		p, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
		assert.Equal(t, "Bulbasaur", p.Name)
		require.NotNil(t, p.Type2)
		assert.Equal(t, "Poison", *p.Type2)
		assert.Equal(t, int32(318), p.Total)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing id", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM pokemons").
			WithArgs(int64(404)).
			WillReturnError(pgx.ErrNoRows)

		p, err := repo.Get(ctx, 404)
		assert.Nil(t, p)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var nfe *domain.NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.Equal(t, int64(404), nfe.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates pool exhaustion", func(t *testing.T) {
		repo := NewPgPokemonRepository(stubPool{err: domain.ErrPoolExhausted}, zerolog.Nop())

		_, err := repo.Get(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrPoolExhausted)
	})
}

func TestPgPokemonRepository_List(t *testing.T) {
	ctx := context.Background()
	txOpts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

	t.Run("returns page with window count", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		rows := pgxmock.NewRows(append(pokemonRowColumns(), "total_count")).
			AddRow(
				int64(1), int32(1), "Bulbasaur", "Grass", ptr("Poison"), int32(318),
				int32(45), int32(49), int32(49), int32(65), int32(65), int32(45),
				int32(1), false, int64(151),
			).
			AddRow(
				int64(2), int32(2), "Ivysaur", "Grass", ptr("Poison"), int32(405),
				int32(60), int32(62), int32(63), int32(80), int32(80), int32(60),
				int32(1), false, int64(151),
			)

		mock.ExpectBeginTx(txOpts)
		mock.ExpectQuery("SELECT (.+) FROM pokemons").
			WithArgs(int64(2), int64(0)).
			WillReturnRows(rows)
		mock.ExpectCommit()

		pokemons, total, err := repo.List(ctx, 2, 0)
		require.NoError(t, err)
		assert.Len(t, pokemons, 2)
		assert.Equal(t, int64(151), total)
		assert.Equal(t, "Ivysaur", pokemons[1].Name)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to plain count past the last row", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBeginTx(txOpts)
		mock.ExpectQuery("SELECT (.+) FROM pokemons").
			WithArgs(int64(10), int64(1000)).
			WillReturnRows(pgxmock.NewRows(append(pokemonRowColumns(), "total_count")))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM pokemons").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(151)))
		mock.ExpectCommit()

		pokemons, total, err := repo.List(ctx, 10, 1000)
		require.NoError(t, err)
		assert.Empty(t, pokemons)
		assert.Equal(t, int64(151), total)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on query failure", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBeginTx(txOpts)
		mock.ExpectQuery("SELECT (.+) FROM pokemons").
			WithArgs(int64(10), int64(0)).
			WillReturnError(errors.New("read failed"))
		mock.ExpectRollback()

		_, _, err := repo.List(ctx, 10, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list pokemons")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgPokemonRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pokemon with derived total", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		create := newTestCreate()

		mock.ExpectQuery("INSERT INTO pokemons").
			WithArgs(
				create.Number, create.Name, create.Type1, create.Type2, int32(318),
				create.HP, create.Attack, create.Defense, create.SpAtk, create.SpDef, create.Speed,
				create.Generation, create.Legendary,
			).
			WillReturnRows(addPokemonRow(pgxmock.NewRows(pokemonRowColumns()), 1))

		p, err := repo.Create(ctx, create)
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
		assert.Equal(t, int32(318), p.Total)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("logs the inserted row id at debug level", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		t.Cleanup(mock.Close)

		var buf bytes.Buffer
		logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
		repo := NewPgPokemonRepository(stubPool{lease: stubLease{mock}}, logger)
		create := newTestCreate()

		mock.ExpectQuery("INSERT INTO pokemons").
			WithArgs(
				create.Number, create.Name, create.Type1, create.Type2, int32(318),
				create.HP, create.Attack, create.Defense, create.SpAtk, create.SpDef, create.Speed,
				create.Generation, create.Legendary,
			).
			WillReturnRows(addPokemonRow(pgxmock.NewRows(pokemonRowColumns()), 7))

		_, err = repo.Create(ctx, create)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"pokemon_id":7`)
		assert.Contains(t, buf.String(), "pokemon row inserted")
	})

	t.Run("maps constraint errors", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		create := newTestCreate()

		mock.ExpectQuery("INSERT INTO pokemons").
			WithArgs(
				create.Number, create.Name, create.Type1, create.Type2, int32(318),
				create.HP, create.Attack, create.Defense, create.SpAtk, create.SpDef, create.Speed,
				create.Generation, create.Legendary,
			).
			WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "pokemons_hp_check"})

		p, err := repo.Create(ctx, create)
		assert.Nil(t, p)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConstraintViolation)

		var cve *domain.ConstraintViolationError
		require.ErrorAs(t, err, &cve)
		assert.Equal(t, "pokemons_hp_check", cve.Constraint)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgPokemonRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces all columns", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		update := newTestCreate()

		mock.ExpectQuery("UPDATE pokemons SET").
			WithArgs(
				int64(1),
				update.Number, update.Name, update.Type1, update.Type2, int32(318),
				update.HP, update.Attack, update.Defense, update.SpAtk, update.SpDef, update.Speed,
				update.Generation, update.Legendary,
			).
			WillReturnRows(addPokemonRow(pgxmock.NewRows(pokemonRowColumns()), 1))

		p, err := repo.Update(ctx, 1, update)
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing id", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		update := newTestCreate()

		mock.ExpectQuery("UPDATE pokemons SET").
			WithArgs(
				int64(404),
				update.Number, update.Name, update.Type1, update.Type2, int32(318),
				update.HP, update.Attack, update.Defense, update.SpAtk, update.SpDef, update.Speed,
				update.Generation, update.Legendary,
			).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Update(ctx, 404, update)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgPokemonRepository_Patch(t *testing.T) {
	ctx := context.Background()

	t.Run("updates only set fields", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		patch := &domain.PatchPokemon{
			Name: ptr("Venusaur"),
			HP:   ptr(int32(80)),
		}

		mock.ExpectQuery("UPDATE pokemons SET").
			WithArgs(
				int64(3),
				patch.Number, patch.Name, patch.Type1, patch.Type2,
				patch.HP, patch.Attack, patch.Defense, patch.SpAtk, patch.SpDef, patch.Speed,
				patch.Generation, patch.Legendary,
			).
			WillReturnRows(addPokemonRow(pgxmock.NewRows(pokemonRowColumns()), 3))

		p, err := repo.Patch(ctx, 3, patch)
		require.NoError(t, err)
		assert.Equal(t, int64(3), p.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing id", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		patch := &domain.PatchPokemon{Name: ptr("Mew")}

		mock.ExpectQuery("UPDATE pokemons SET").
			WithArgs(
				int64(404),
				patch.Number, patch.Name, patch.Type1, patch.Type2,
				patch.HP, patch.Attack, patch.Defense, patch.SpAtk, patch.SpDef, patch.Speed,
				patch.Generation, patch.Legendary,
			).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Patch(ctx, 404, patch)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgPokemonRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing pokemon", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("DELETE FROM pokemons").
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, repo.Delete(ctx, 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("DELETE FROM pokemons").
			WithArgs(int64(404)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.Delete(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgPokemonRepository_CreateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts all rows in one batch", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		creates := []*domain.CreatePokemon{newTestCreate(), newTestCreate()}

		batch := mock.ExpectBatch()
		for _, create := range creates {
			batch.ExpectExec("INSERT INTO pokemons").
				WithArgs(
					create.Number, create.Name, create.Type1, create.Type2, int32(318),
					create.HP, create.Attack, create.Defense, create.SpAtk, create.SpDef, create.Speed,
					create.Generation, create.Legendary,
				).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
		}

		inserted, err := repo.CreateBatch(ctx, creates)
		require.NoError(t, err)
		assert.Equal(t, int64(2), inserted)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		repo, _ := newMockRepo(t)

		inserted, err := repo.CreateBatch(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, inserted)
	})
}
