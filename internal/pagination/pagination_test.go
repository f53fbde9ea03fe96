package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePageSize(t *testing.T) {
	t.Run("passes through in-range sizes", func(t *testing.T) {
		assert.Equal(t, int64(1), EffectivePageSize(1))
		assert.Equal(t, int64(25), EffectivePageSize(25))
		assert.Equal(t, int64(100), EffectivePageSize(100))
	})

	t.Run("clamps oversized requests to the maximum", func(t *testing.T) {
		assert.Equal(t, int64(100), EffectivePageSize(101))
		assert.Equal(t, int64(100), EffectivePageSize(500))
	})

	t.Run("falls back to the default for zero and negatives", func(t *testing.T) {
		assert.Equal(t, int64(10), EffectivePageSize(0))
		assert.Equal(t, int64(10), EffectivePageSize(-3))
	})
}

func TestWindow(t *testing.T) {
	t.Run("first page starts at offset zero", func(t *testing.T) {
		limit, offset := Window(1, 10)
		assert.Equal(t, int64(10), limit)
		assert.Equal(t, int64(0), offset)
	})

	t.Run("later pages advance by effective page size", func(t *testing.T) {
		limit, offset := Window(4, 25)
		assert.Equal(t, int64(25), limit)
		assert.Equal(t, int64(75), offset)
	})

	t.Run("absurd page numbers saturate instead of going negative", func(t *testing.T) {
		limit, offset := Window(math.MaxInt64, MaxPageSize)
		assert.Equal(t, int64(MaxPageSize), limit)
		assert.Equal(t, int64(math.MaxInt64), offset)

		limit, offset = Window(math.MaxInt64/2, 3)
		assert.Equal(t, int64(3), limit)
		assert.GreaterOrEqual(t, offset, int64(0))
	})

	t.Run("largest non-overflowing page is still exact", func(t *testing.T) {
		_, offset := Window(math.MaxInt64/MaxPageSize+1, MaxPageSize)
		assert.Equal(t, (math.MaxInt64/MaxPageSize)*int64(MaxPageSize), offset)
	})
}

func TestSummarize(t *testing.T) {
	t.Run("ceiling division", func(t *testing.T) {
		// 17 rows at 5 per page needs 4 pages.
		s := Summarize(1, 5, 17)
		assert.Equal(t, int64(4), s.TotalPages)
	})

	t.Run("exact multiple", func(t *testing.T) {
		s := Summarize(1, 5, 20)
		assert.Equal(t, int64(4), s.TotalPages)
	})

	t.Run("empty set still reports one page", func(t *testing.T) {
		s := Summarize(1, 10, 0)
		assert.Equal(t, int64(1), s.TotalPages)
	})

	t.Run("page beyond the end is echoed back unchanged", func(t *testing.T) {
		s := Summarize(10, 5, 17)
		assert.Equal(t, int64(10), s.Page)
		assert.Equal(t, int64(5), s.PageSize)
		assert.Equal(t, int64(4), s.TotalPages)
	})

	t.Run("total_pages matches ceil for a range of inputs", func(t *testing.T) {
		for total := int64(0); total <= 250; total += 7 {
			for _, size := range []int64{1, 3, 10, 100} {
				s := Summarize(1, size, total)
				want := (total + size - 1) / size
				if want < 1 {
					want = 1
				}
				assert.Equal(t, want, s.TotalPages, "total=%d size=%d", total, size)
				assert.GreaterOrEqual(t, s.TotalPages, int64(1))
			}
		}
	})
}
