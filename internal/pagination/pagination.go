// Package pagination implements the page arithmetic for listing pokemons.
// It is pure computation with no I/O and no failure cases; the repository
// supplies the total row count and this package keeps the math in one place.
package pagination

import "math"

// Page size bounds.
const (
	// DefaultPageSize is used when the caller does not specify a page size.
	DefaultPageSize = 10

	// MaxPageSize is the largest effective page size; larger requests are
	// clamped rather than rejected.
	MaxPageSize = 100
)

// Summary describes one page of a result set.
type Summary struct {
	// Page is the 1-based page number that was requested.
	Page int64

	// PageSize is the effective page size after clamping.
	PageSize int64

	// TotalPages is the number of pages needed to cover the full result
	// set, never less than 1 even for an empty set.
	TotalPages int64
}

// EffectivePageSize clamps the requested page size into [1, MaxPageSize].
// Zero and negative values fall back to DefaultPageSize.
func EffectivePageSize(requested int64) int64 {
	if requested <= 0 {
		return DefaultPageSize
	}
	if requested > MaxPageSize {
		return MaxPageSize
	}
	return requested
}

// Window returns the limit/offset pair for the given page and effective page
// size. Requesting a page beyond the end of the result set yields an offset
// past the last row, which the repository answers with an empty window; it is
// not an error. The offset saturates at math.MaxInt64 instead of wrapping
// negative, so even an absurd page number still produces a valid OFFSET.
func Window(page, effectivePageSize int64) (limit, offset int64) {
	if page-1 > math.MaxInt64/effectivePageSize {
		return effectivePageSize, math.MaxInt64
	}
	return effectivePageSize, (page - 1) * effectivePageSize
}

// Summarize builds the page summary for a result set of totalCount rows.
func Summarize(page, effectivePageSize, totalCount int64) Summary {
	totalPages := (totalCount + effectivePageSize - 1) / effectivePageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return Summary{
		Page:       page,
		PageSize:   effectivePageSize,
		TotalPages: totalPages,
	}
}
