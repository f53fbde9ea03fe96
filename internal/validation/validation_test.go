package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poketeam/pokedex-service/internal/domain"
)

func validCreate() *domain.CreatePokemon {
	poison := "Poison"
	return &domain.CreatePokemon{
		Number:     1,
		Name:       "Bulbasaur",
		Type1:      "Grass",
		Type2:      &poison,
		HP:         45,
		Attack:     49,
		Defense:    49,
		SpAtk:      65,
		SpDef:      65,
		Speed:      45,
		Generation: 1,
	}
}

func TestValidatorStruct_Create(t *testing.T) {
	v := New()

	t.Run("valid payload passes", func(t *testing.T) {
		assert.NoError(t, v.Struct(validCreate()))
	})

	t.Run("missing secondary type is allowed", func(t *testing.T) {
		c := validCreate()
		c.Type2 = nil
		assert.NoError(t, v.Struct(c))
	})

	t.Run("collects all violations in one error", func(t *testing.T) {
		c := validCreate()
		c.Number = 0
		c.Name = ""
		c.Type1 = "Love"

		err := v.Struct(c)
		require.Error(t, err)

		var ve *domain.ValidationErrors
		require.True(t, errors.As(err, &ve))
		assert.Len(t, ve.Violations, 3)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("details name the field and the violated constraint", func(t *testing.T) {
		c := validCreate()
		c.Number = -2

		err := v.Struct(c)
		require.Error(t, err)

		var ve *domain.ValidationErrors
		require.True(t, errors.As(err, &ve))
		require.Len(t, ve.Violations, 1)
		assert.Equal(t, "number", ve.Violations[0].Field)
		assert.Equal(t, "must be ≥ 1", ve.Violations[0].Constraint)
	})

	t.Run("negative stat is reported", func(t *testing.T) {
		c := validCreate()
		c.Speed = -1

		err := v.Struct(c)
		require.Error(t, err)

		var ve *domain.ValidationErrors
		require.True(t, errors.As(err, &ve))
		require.Len(t, ve.Violations, 1)
		assert.Equal(t, "speed", ve.Violations[0].Field)
		assert.Equal(t, "must be ≥ 0", ve.Violations[0].Constraint)
	})

	t.Run("invalid type names the canonical set", func(t *testing.T) {
		c := validCreate()
		bogus := "Patience"
		c.Type2 = &bogus

		err := v.Struct(c)
		require.Error(t, err)

		var ve *domain.ValidationErrors
		require.True(t, errors.As(err, &ve))
		require.Len(t, ve.Violations, 1)
		assert.Equal(t, "type_2", ve.Violations[0].Field)
		assert.Contains(t, ve.Violations[0].Constraint, "Grass")
		assert.Contains(t, ve.Violations[0].Constraint, "Fairy")
	})
}

func TestValidatorStruct_Patch(t *testing.T) {
	v := New()

	t.Run("empty patch passes field validation", func(t *testing.T) {
		assert.NoError(t, v.Struct(&domain.PatchPokemon{}))
	})

	t.Run("only supplied fields are checked", func(t *testing.T) {
		name := "Mew"
		assert.NoError(t, v.Struct(&domain.PatchPokemon{Name: &name}))
	})

	t.Run("supplied invalid fields are reported", func(t *testing.T) {
		number := int32(0)
		badType := "Cuteness"
		err := v.Struct(&domain.PatchPokemon{Number: &number, Type1: &badType})
		require.Error(t, err)

		var ve *domain.ValidationErrors
		require.True(t, errors.As(err, &ve))
		assert.Len(t, ve.Violations, 2)
	})
}
