package catalog

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"two empty strings are identical", "", "", 1},
		{"identical strings", "kalem", "kalem", 1},
		{"case-insensitive", "KALEM", "kalem", 1},
		{"completely different", "abc", "xyz", 0},
		{"one edit in five runes", "kalem", "kalen", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestProperty_SimilarityIsBoundedAndSymmetric(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("similarity stays within [0,1] and is symmetric", prop.ForAll(
		func(a, b string) bool {
			s := Similarity(a, b)
			return s >= 0 && s <= 1 && s == Similarity(b, a)
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestFindSimilarNames(t *testing.T) {
	names := []string{"KALEM SIYAH", "KALEM BEYAZ", "SILGI"}

	got := FindSimilarNames("kalem siya", names, 0.6, 3)

	require.NotEmpty(t, got)
	assert.Equal(t, "KALEM SIYAH", got[0])
}

func TestFindSimilarNames_ExcludesExactTerm(t *testing.T) {
	got := FindSimilarNames("silgi", []string{"SILGI", "Silgi", "SILGI BUYUK"}, 0.3, 5)

	assert.NotContains(t, got, "SILGI")
	assert.NotContains(t, got, "Silgi")
	assert.Contains(t, got, "SILGI BUYUK")
}

func TestFindSimilarNames_ShortOrBlankTerms(t *testing.T) {
	names := []string{"KALEM", "SILGI"}

	assert.Empty(t, FindSimilarNames("", names, 0.6, 3))
	assert.Empty(t, FindSimilarNames("  ", names, 0.6, 3))
	assert.Empty(t, FindSimilarNames("k", names, 0.6, 3))
}

func TestFindSimilarNames_RespectsMax(t *testing.T) {
	names := []string{"kalem1", "kalem2", "kalem3", "kalem4"}

	got := FindSimilarNames("kalem0", names, 0.6, 3)

	require.Len(t, got, 3)
	// Equal similarity: ties keep input order.
	assert.Equal(t, []string{"kalem1", "kalem2", "kalem3"}, got)
}

func TestProperty_ThresholdAboveOneReturnsNothing(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("no candidate can beat a threshold above 1", prop.ForAll(
		func(term string, names []string) bool {
			return len(FindSimilarNames(term, names, 1.01, 3)) == 0
		},
		gen.AlphaString(),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
