package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestClampPaging(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, 1},
		{-3, 10, 1, 10},
		{2, 500, 2, 100},
		{5, 100, 5, 100},
		{1, 1, 1, 1},
	}
	for _, tt := range tests {
		page, size := ClampPaging(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantSize, size)
	}
}

func TestClampPaging_Bounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		page, size := ClampPaging(rapid.Int().Draw(rt, "page"), rapid.Int().Draw(rt, "size"))
		if page < 1 {
			rt.Fatalf("page %d below 1", page)
		}
		if size < 1 || size > MaxPageSize {
			rt.Fatalf("size %d out of range", size)
		}
	})
}

func TestClampPaging_InRangeUnchanged(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := rapid.IntRange(1, 10000).Draw(rt, "page")
		s := rapid.IntRange(1, MaxPageSize).Draw(rt, "size")
		page, size := ClampPaging(p, s)
		if page != p || size != s {
			rt.Fatalf("(%d,%d) changed to (%d,%d)", p, s, page, size)
		}
	})
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 20, Offset(3, 10))
}

func TestSplitTerms(t *testing.T) {
	assert.Equal(t, []string{"rowling", "harry"}, SplitTerms("rowling, harry"))
	assert.Nil(t, SplitTerms(" , ,"))
	assert.Equal(t, []string{"a"}, SplitTerms(" , a , ,"))
	assert.Nil(t, SplitTerms("   "))
	assert.Empty(t, SplitTerms(",,"))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"b1", "b2"}, Dedupe([]string{"b1", " ", "b2", "b1"}))
	assert.Empty(t, Dedupe(nil))
}

func TestLikePatterns(t *testing.T) {
	assert.Equal(t, `%50\%%`, ContainsPattern("50%"))
	assert.Equal(t, `snake\_case%`, PrefixPattern("snake_case"))
	assert.Equal(t, `%a\\b%`, ContainsPattern(`a\b`))
}
