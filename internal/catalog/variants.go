package catalog

import (
	"regexp"
	"strings"

	"toptan-katalog/internal/domain"

	"go.uber.org/zap"
)

// Item is either a plain domain.Product or a ProductVariant. Use IsVariant
// to discriminate.
type Item any

// ProductVariant groups two or more products that differ only by a
// color/size token, for rendering as one card with a selector. It is
// derived per computation and never persisted.
type ProductVariant struct {
	BaseProduct    domain.Product   `json:"base_product"`
	Variants       []domain.Product `json:"variants"`
	VariantOptions []string         `json:"variant_options"`
}

// StandardOption is the label used when a group member carries no
// recognizable variant token of its own.
const StandardOption = "Standart"

// variantKeywords are the whole-word tokens stripped from names when
// computing a group's base name: Turkish and English colors plus size
// tokens. Order matters only for readability; stripping is whole-word.
var variantKeywords = []string{
	"SIYAH", "BEYAZ", "GRI", "KIRMIZI", "MAVI", "YESIL", "SARI", "KAHVE", "PEMBE",
	"BLACK", "WHITE", "GREY", "GRAY", "RED", "BLUE", "GREEN", "YELLOW", "BROWN", "PINK",
	"SMALL", "MEDIUM", "LARGE", "XL", "XXL", "S", "M", "L",
}

var keywordPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(variantKeywords))
	for i, kw := range variantKeywords {
		patterns[i] = regexp.MustCompile(`\b` + kw + `\b`)
	}
	return patterns
}()

var whitespaceRun = regexp.MustCompile(`\s+`)

// baseNameOf strips every whole-word variant keyword from the uppercased
// name. When stripping leaves fewer than 3 characters, or removes nothing,
// the original name wins: short names must not collapse into ambiguous
// group keys.
func baseNameOf(name string) string {
	original := strings.TrimSpace(strings.ToUpper(name))
	stripped := original
	for _, re := range keywordPatterns {
		stripped = re.ReplaceAllString(stripped, "")
	}
	stripped = strings.TrimSpace(whitespaceRun.ReplaceAllString(stripped, " "))

	if len([]rune(stripped)) < 3 || stripped == original {
		return original
	}
	return stripped
}

// isVariantToken reports whether a word counts as a variant token: it must
// substring-intersect a keyword in either direction, not only match one
// exactly. That keeps compound tokens like "XL-40" recognizable.
func isVariantToken(word string) bool {
	for _, kw := range variantKeywords {
		if strings.Contains(word, kw) || strings.Contains(kw, word) {
			return true
		}
	}
	return false
}

// optionLabel extracts the member's variant label: the tokens of its full
// uppercased name that are absent from the base name and recognizable as
// variant tokens, joined by spaces.
func optionLabel(name, baseName string) string {
	words := strings.Fields(strings.ToUpper(name))
	baseWords := make(map[string]bool)
	for _, w := range strings.Fields(baseName) {
		baseWords[w] = true
	}

	var labelWords []string
	for _, w := range words {
		if !baseWords[w] && isVariantToken(w) {
			labelWords = append(labelWords, w)
		}
	}

	if len(labelWords) == 0 {
		return StandardOption
	}
	return strings.Join(labelWords, " ")
}

// DetectVariants partitions the product list into display items: groups of
// two or more products sharing a base name and company become a
// ProductVariant, everything else is emitted as the plain product. Group
// membership and output order follow input order, so the result is
// deterministic for a fixed input.
//
// The group key reuses the raw company value on purpose: the same field
// drives category/supplier filtering, and diverging normalization here
// would let the two views disagree.
func DetectVariants(products []domain.Product) []Item {
	groups := make(map[string][]domain.Product)
	baseNames := make(map[string]string)
	var keyOrder []string

	for _, p := range products {
		if p.Name == "" {
			continue
		}

		baseName := baseNameOf(p.Name)
		key := baseName + "-" + p.Company

		if _, ok := groups[key]; !ok {
			keyOrder = append(keyOrder, key)
			baseNames[key] = baseName
		}
		groups[key] = append(groups[key], p)
	}

	items := make([]Item, 0, len(keyOrder))
	for _, key := range keyOrder {
		members := groups[key]
		if len(members) == 1 {
			items = append(items, members[0])
			continue
		}

		options := make([]string, len(members))
		for i, m := range members {
			options[i] = optionLabel(m.Name, baseNames[key])
		}

		items = append(items, ProductVariant{
			BaseProduct:    members[0],
			Variants:       members,
			VariantOptions: options,
		})
	}
	return items
}

// IsVariant reports whether a catalog item is a variant group.
func IsVariant(it Item) bool {
	_, ok := it.(ProductVariant)
	return ok
}

// LogSuspectGroups surfaces likely mis-groupings as telemetry rather than
// errors: duplicate option labels inside one group, or a group keyed on a
// company value with surrounding whitespace. Both usually point at dirty
// upstream data.
func LogSuspectGroups(items []Item, log *zap.Logger) {
	if log == nil {
		return
	}
	for _, it := range items {
		group, ok := it.(ProductVariant)
		if !ok {
			continue
		}

		if group.BaseProduct.Company != strings.TrimSpace(group.BaseProduct.Company) {
			log.Warn("variant group keyed on padded company value",
				zap.String("company", group.BaseProduct.Company),
				zap.String("base_product", group.BaseProduct.Name),
			)
		}

		seen := make(map[string]bool)
		for _, opt := range group.VariantOptions {
			if seen[opt] {
				log.Warn("variant group has duplicate option label",
					zap.String("base_product", group.BaseProduct.Name),
					zap.String("option", opt),
					zap.Int("members", len(group.Variants)),
				)
				break
			}
			seen[opt] = true
		}
	}
}
