package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPokemonType(t *testing.T) {
	t.Run("accepts canonical types", func(t *testing.T) {
		assert.True(t, IsPokemonType("Grass"))
		assert.True(t, IsPokemonType("Fairy"))
	})

	t.Run("is case-sensitive", func(t *testing.T) {
		assert.False(t, IsPokemonType("grass"))
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		assert.False(t, IsPokemonType("Love"))
		assert.False(t, IsPokemonType(""))
	})
}

func TestCreatePokemonStatTotal(t *testing.T) {
	c := &CreatePokemon{HP: 45, Attack: 49, Defense: 49, SpAtk: 65, SpDef: 65, Speed: 45}
	assert.Equal(t, int32(318), c.StatTotal())
}

func TestPatchPokemonIsEmpty(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		assert.True(t, (&PatchPokemon{}).IsEmpty())
	})

	t.Run("single field set", func(t *testing.T) {
		name := "Mew"
		assert.False(t, (&PatchPokemon{Name: &name}).IsEmpty())
	})
}
