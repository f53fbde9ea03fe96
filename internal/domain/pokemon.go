// Package domain contains the core entity models and error types for the
// pokedex service.
package domain

// Pokemon is the persisted pokedex entity. The ID is assigned by the
// repository at creation and never changes afterward.
type Pokemon struct {
	// ID is the unique id of this pokemon in the pokedex database.
	ID int64 `json:"id"`

	// Number is the pokedex number; different from the id and not unique
	// (all variants of the same pokemon share the same number).
	Number int32 `json:"number"`

	// Name is the pokemon name.
	Name string `json:"name"`

	// Type1 is the pokemon's primary type.
	Type1 string `json:"type_1"`

	// Type2 is the pokemon's secondary type, nil for single-typed species.
	Type2 *string `json:"type_2"`

	// Total is the sum of the six battle stats, stored alongside them.
	Total int32 `json:"total"`

	// HP is the pokemon's hit points.
	HP int32 `json:"hp"`

	// Attack is the pokemon's attack stat.
	Attack int32 `json:"attack"`

	// Defense is the pokemon's defense stat.
	Defense int32 `json:"defense"`

	// SpAtk is the pokemon's special attack stat.
	SpAtk int32 `json:"sp_atk"`

	// SpDef is the pokemon's special defense stat.
	SpDef int32 `json:"sp_def"`

	// Speed is the pokemon's speed stat.
	Speed int32 `json:"speed"`

	// Generation is the pokemon's generation number.
	Generation int32 `json:"generation"`

	// Legendary reports whether the pokemon is legendary.
	Legendary bool `json:"legendary"`
}

// CreatePokemon carries the fields needed to insert a new pokemon.
// The id is assigned by the repository; Total is recomputed server-side
// from the six stats regardless of the submitted value.
type CreatePokemon struct {
	Number     int32   `json:"number" validate:"min=1"`
	Name       string  `json:"name" validate:"required,min=1"`
	Type1      string  `json:"type_1" validate:"required,pokemontype"`
	Type2      *string `json:"type_2" validate:"omitempty,pokemontype"`
	HP         int32   `json:"hp" validate:"min=0"`
	Attack     int32   `json:"attack" validate:"min=0"`
	Defense    int32   `json:"defense" validate:"min=0"`
	SpAtk      int32   `json:"sp_atk" validate:"min=0"`
	SpDef      int32   `json:"sp_def" validate:"min=0"`
	Speed      int32   `json:"speed" validate:"min=0"`
	Generation int32   `json:"generation" validate:"min=1"`
	Legendary  bool    `json:"legendary"`
}

// StatTotal returns the sum of the six battle stats.
func (c *CreatePokemon) StatTotal() int32 {
	return c.HP + c.Attack + c.Defense + c.SpAtk + c.SpDef + c.Speed
}

// UpdatePokemon overwrites every mutable field of an existing pokemon.
// It carries the same fields and constraints as CreatePokemon.
type UpdatePokemon = CreatePokemon

// PatchPokemon updates only the fields that are non-nil; omitted fields
// retain their prior values. Total is kept consistent with the final stat
// values by the repository.
type PatchPokemon struct {
	Number     *int32  `json:"number" validate:"omitempty,min=1"`
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Type1      *string `json:"type_1" validate:"omitempty,pokemontype"`
	Type2      *string `json:"type_2" validate:"omitempty,pokemontype"`
	HP         *int32  `json:"hp" validate:"omitempty,min=0"`
	Attack     *int32  `json:"attack" validate:"omitempty,min=0"`
	Defense    *int32  `json:"defense" validate:"omitempty,min=0"`
	SpAtk      *int32  `json:"sp_atk" validate:"omitempty,min=0"`
	SpDef      *int32  `json:"sp_def" validate:"omitempty,min=0"`
	Speed      *int32  `json:"speed" validate:"omitempty,min=0"`
	Generation *int32  `json:"generation" validate:"omitempty,min=1"`
	Legendary  *bool   `json:"legendary"`
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p *PatchPokemon) IsEmpty() bool {
	return p.Number == nil && p.Name == nil && p.Type1 == nil && p.Type2 == nil &&
		p.HP == nil && p.Attack == nil && p.Defense == nil && p.SpAtk == nil &&
		p.SpDef == nil && p.Speed == nil && p.Generation == nil && p.Legendary == nil
}

// PokemonPage is one page of pokemons plus its paging summary.
type PokemonPage struct {
	// Pokemons are the entities in the page window, ordered by id.
	Pokemons []*Pokemon `json:"pokemons"`

	// Page is the 1-based page number that was requested.
	Page int64 `json:"page"`

	// PageSize is the effective page size after clamping.
	PageSize int64 `json:"page_size"`

	// TotalPages is the total number of pages available.
	TotalPages int64 `json:"total_pages"`
}

// PokemonTypes are the valid values for the Type1 and Type2 fields.
// Type values are case-sensitive.
var PokemonTypes = []string{
	"Normal", "Fire", "Water", "Grass", "Flying", "Fighting", "Poison",
	"Electric", "Ground", "Rock", "Psychic", "Ice", "Bug", "Ghost",
	"Steel", "Dragon", "Dark", "Fairy",
}

// IsPokemonType reports whether value is one of the canonical type names.
func IsPokemonType(value string) bool {
	for _, t := range PokemonTypes {
		if t == value {
			return true
		}
	}
	return false
}
