// Package seed loads pokemon seed data from a CSV file into the database.
//
// The expected file layout is the classic pokedex export: a header row with
// the columns "#", "Name", "Type 1", "Type 2", "Total", "HP", "Attack",
// "Defense", "Sp. Atk", "Sp. Def", "Speed", "Generation" and "Legendary".
// Column order is taken from the header, not assumed.
package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/poketeam/pokedex-service/internal/domain"
	"github.com/poketeam/pokedex-service/internal/validation"
)

// Header column names recognized in the seed file.
const (
	colNumber     = "#"
	colName       = "Name"
	colType1      = "Type 1"
	colType2      = "Type 2"
	colTotal      = "Total"
	colHP         = "HP"
	colAttack     = "Attack"
	colDefense    = "Defense"
	colSpAtk      = "Sp. Atk"
	colSpDef      = "Sp. Def"
	colSpeed      = "Speed"
	colGeneration = "Generation"
	colLegendary  = "Legendary"
)

var requiredColumns = []string{
	colNumber, colName, colType1, colType2, colTotal, colHP, colAttack,
	colDefense, colSpAtk, colSpDef, colSpeed, colGeneration, colLegendary,
}

// LoadFile reads and parses a pokemon seed CSV file, validating every row.
func LoadFile(path string, validator *validation.Validator) ([]*domain.CreatePokemon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return Parse(f, validator)
}

// Parse reads pokemon seed data from r. Each row is validated with the same
// rules as API create payloads; the first invalid row aborts the parse.
func Parse(r io.Reader, validator *validation.Validator) ([]*domain.CreatePokemon, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read seed header: %w", err)
	}

	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var pokemons []*domain.CreatePokemon
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read seed row: %w", err)
		}

		create, err := parseRow(record, columns)
		if err != nil {
			return nil, fmt.Errorf("seed line %d: %w", line, err)
		}
		if err := validator.Struct(create); err != nil {
			return nil, fmt.Errorf("seed line %d (%s): %w", line, create.Name, err)
		}
		pokemons = append(pokemons, create)
	}

	return pokemons, nil
}

// indexColumns maps each required column name to its position in the header.
func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("seed header is missing column %q", name)
		}
	}
	return columns, nil
}

func parseRow(record []string, columns map[string]int) (*domain.CreatePokemon, error) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	number, err := parseInt32(colNumber, field(colNumber))
	if err != nil {
		return nil, err
	}
	hp, err := parseInt32(colHP, field(colHP))
	if err != nil {
		return nil, err
	}
	attack, err := parseInt32(colAttack, field(colAttack))
	if err != nil {
		return nil, err
	}
	defense, err := parseInt32(colDefense, field(colDefense))
	if err != nil {
		return nil, err
	}
	spAtk, err := parseInt32(colSpAtk, field(colSpAtk))
	if err != nil {
		return nil, err
	}
	spDef, err := parseInt32(colSpDef, field(colSpDef))
	if err != nil {
		return nil, err
	}
	speed, err := parseInt32(colSpeed, field(colSpeed))
	if err != nil {
		return nil, err
	}
	generation, err := parseInt32(colGeneration, field(colGeneration))
	if err != nil {
		return nil, err
	}
	legendary, err := parseBool(colLegendary, field(colLegendary))
	if err != nil {
		return nil, err
	}

	create := &domain.CreatePokemon{
		Number:     number,
		Name:       field(colName),
		Type1:      field(colType1),
		HP:         hp,
		Attack:     attack,
		Defense:    defense,
		SpAtk:      spAtk,
		SpDef:      spDef,
		Speed:      speed,
		Generation: generation,
		Legendary:  legendary,
	}
	if t2 := field(colType2); t2 != "" {
		create.Type2 = &t2
	}
	return create, nil
}

func parseInt32(column, value string) (int32, error) {
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("column %q: %q is not an integer", column, value)
	}
	return int32(n), nil
}

// parseBool accepts the Python-style booleans the pokedex export uses
// ("True"/"False") in addition to the usual Go spellings.
func parseBool(column, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no", "":
		return false, nil
	default:
		return false, fmt.Errorf("column %q: %q is not a boolean", column, value)
	}
}
