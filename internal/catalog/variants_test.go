package catalog

import (
	"testing"

	"toptan-katalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDetectVariants_GroupsColorSKUs(t *testing.T) {
	products := []domain.Product{
		{Name: "KALEM SIYAH", Company: "X"},
		{Name: "KALEM BEYAZ", Company: "X"},
	}

	items := DetectVariants(products)

	require.Len(t, items, 1)
	require.True(t, IsVariant(items[0]))

	group := items[0].(ProductVariant)
	assert.Equal(t, "KALEM SIYAH", group.BaseProduct.Name)
	assert.Len(t, group.Variants, 2)
	assert.Equal(t, []string{"SIYAH", "BEYAZ"}, group.VariantOptions)
}

func TestDetectVariants_SingletonStaysUnwrapped(t *testing.T) {
	products := []domain.Product{{Name: "KALEM SIYAH", Company: "X"}}

	items := DetectVariants(products)

	require.Len(t, items, 1)
	assert.False(t, IsVariant(items[0]))
	assert.Equal(t, products[0], items[0].(domain.Product))
}

func TestDetectVariants_CompanySplitsGroups(t *testing.T) {
	products := []domain.Product{
		{Name: "KALEM SIYAH", Company: "X"},
		{Name: "KALEM BEYAZ", Company: "Y"},
	}

	items := DetectVariants(products)

	require.Len(t, items, 2)
	assert.False(t, IsVariant(items[0]))
	assert.False(t, IsVariant(items[1]))
}

func TestDetectVariants_ShortBaseNameFallsBack(t *testing.T) {
	// Stripping "XL" from "XL S" would leave less than three characters,
	// so each product keeps its full name as the group key.
	products := []domain.Product{
		{Name: "XL S", Company: "X"},
		{Name: "XL M", Company: "X"},
	}

	items := DetectVariants(products)

	require.Len(t, items, 2)
}

func TestDetectVariants_NothingStrippedKeepsOriginalName(t *testing.T) {
	products := []domain.Product{
		{Name: "DEFTER A5", Company: "X"},
		{Name: "DEFTER A4", Company: "X"},
	}

	items := DetectVariants(products)

	// No variant keyword occurs in either name, so the names stay distinct
	// keys and no group forms.
	require.Len(t, items, 2)
}

func TestDetectVariants_SizeTokensAndStandardLabel(t *testing.T) {
	products := []domain.Product{
		{Name: "TULUM XL", Company: "Z"},
		{Name: "TULUM XXL", Company: "Z"},
		{Name: "TULUM", Company: "Z"},
	}

	items := DetectVariants(products)

	require.Len(t, items, 1)
	group := items[0].(ProductVariant)
	assert.Equal(t, []string{"XL", "XXL", StandardOption}, group.VariantOptions)
}

func TestDetectVariants_KeywordStripIsWholeWord(t *testing.T) {
	// "SARIYER" contains the color token "SARI" but is not a whole-word
	// occurrence, so nothing is stripped.
	products := []domain.Product{
		{Name: "SARIYER PEYNIRI", Company: "X"},
		{Name: "SARIYER PEYNIRI SIYAH", Company: "X"},
	}

	items := DetectVariants(products)

	require.Len(t, items, 1)
	group := items[0].(ProductVariant)
	assert.Equal(t, "SARIYER PEYNIRI", group.BaseProduct.Name)
	assert.Equal(t, []string{StandardOption, "SIYAH"}, group.VariantOptions)
}

func TestDetectVariants_SkipsNamelessProducts(t *testing.T) {
	products := []domain.Product{
		{Name: "", Company: "X"},
		{Name: "KALEM SIYAH", Company: "X"},
	}

	items := DetectVariants(products)

	require.Len(t, items, 1)
	assert.False(t, IsVariant(items[0]))
}

func TestDetectVariants_DeterministicForFixedInput(t *testing.T) {
	products := []domain.Product{
		{Name: "KALEM SIYAH", Company: "X", StockCode: "1"},
		{Name: "MAKAS", Company: "Y", StockCode: "2"},
		{Name: "KALEM BEYAZ", Company: "X", StockCode: "3"},
		{Name: "TULUM XL", Company: "Z", StockCode: "4"},
		{Name: "TULUM XXL", Company: "Z", StockCode: "5"},
	}

	first := DetectVariants(products)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DetectVariants(products))
	}

	// Groups appear at the position of their first member.
	require.Len(t, first, 3)
	assert.True(t, IsVariant(first[0]))
	assert.Equal(t, "1", first[0].(ProductVariant).BaseProduct.StockCode)
	assert.False(t, IsVariant(first[1]))
	assert.True(t, IsVariant(first[2]))
}

func TestLogSuspectGroups_FlagsDuplicateLabels(t *testing.T) {
	products := []domain.Product{
		{Name: "KALEM SIYAH", Company: "X"},
		{Name: "SIYAH KALEM", Company: "X"},
	}

	items := DetectVariants(products)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"SIYAH", "SIYAH"}, items[0].(ProductVariant).VariantOptions)

	// Must not panic with or without a logger.
	LogSuspectGroups(items, nil)
	LogSuspectGroups(items, zap.NewNop())
}
