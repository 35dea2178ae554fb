package catalog

import (
	"regexp"
	"strings"
)

// turkishCharVariants maps a base Latin letter to every accepted Turkish
// spelling of it, base form included. Case is preserved per entry so that
// pattern classes stay faithful to the typed input.
var turkishCharVariants = map[rune][]rune{
	'a': {'a', 'â'},
	'c': {'c', 'ç'},
	'g': {'g', 'ğ'},
	'i': {'i', 'ı', 'î'},
	'o': {'o', 'ö', 'ô'},
	's': {'s', 'ş'},
	'u': {'u', 'ü', 'û'},
	'A': {'A', 'Â'},
	'C': {'C', 'Ç'},
	'G': {'G', 'Ğ'},
	'I': {'I', 'İ', 'Î'},
	'O': {'O', 'Ö', 'Ô'},
	'S': {'S', 'Ş'},
	'U': {'U', 'Ü', 'Û'},
}

// normalizeTable is the reverse of turkishCharVariants: every variant folds
// to its base letter.
var normalizeTable = func() map[rune]rune {
	table := make(map[rune]rune)
	for base, variants := range turkishCharVariants {
		for _, v := range variants {
			table[v] = base
		}
	}
	return table
}()

// Normalize folds Turkish-specific characters to their base Latin forms,
// rune by rune. Unmapped runes pass through unchanged. The function is
// total and idempotent.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if base, ok := normalizeTable[r]; ok {
			b.WriteRune(base)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// flexiblePattern builds a case-insensitive regexp in which every letter of
// the normalized search term expands to the class of its Turkish variants.
// This sidesteps transliteration ambiguity at the cost of pattern size,
// which is fine for short product-name queries.
func flexiblePattern(term string) (*regexp.Regexp, error) {
	normalized := Normalize(strings.ToLower(term))

	var b strings.Builder
	b.WriteString("(?i)")
	for _, r := range normalized {
		if variants, ok := turkishCharVariants[r]; ok && len(variants) > 1 {
			b.WriteRune('[')
			b.WriteString(string(variants))
			b.WriteRune(']')
		} else {
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return regexp.Compile(b.String())
}

// Matches reports whether the search term hits the target text. A blank
// term matches everything: that is the documented "no filter entered"
// behavior. The plain case-insensitive substring check runs first; the
// variant-class pattern is only built when it fails.
func Matches(term, target string) bool {
	if strings.TrimSpace(term) == "" {
		return true
	}

	if strings.Contains(strings.ToLower(target), strings.ToLower(term)) {
		return true
	}

	re, err := flexiblePattern(term)
	if err != nil {
		return false
	}
	return re.MatchString(target)
}

// EnhancedMatch extends Matches with the curated word-variation dictionary.
// The dictionary is keyed on the exact lowercase search term only; no
// substring or stemming lookup happens here, on purpose.
func EnhancedMatch(term, target string) bool {
	if strings.TrimSpace(term) == "" {
		return true
	}

	if Matches(term, target) {
		return true
	}

	for _, variation := range wordVariations[strings.ToLower(term)] {
		if Matches(variation, target) {
			return true
		}
	}
	return false
}
