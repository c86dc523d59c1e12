// Package collate orders ingredient names for presentation: names starting
// with a Latin letter come first, compared case-insensitively, followed by
// everything else (Hangul included) in plain string order.
package collate

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"nutrilabel/models"
)

// SortKey is the comparison key derived from a display name.
type SortKey struct {
	Group   int
	Primary string
	Cleaned string
}

// Key derives the sort key for name. Only the part before the first '|' is
// considered, and any leading run of runes that are neither ASCII
// alphanumerics nor Hangul syllables is dropped.
func Key(name string) SortKey {
	if idx := strings.IndexByte(name, '|'); idx >= 0 {
		name = name[:idx]
	}
	cleaned := strings.TrimLeftFunc(name, func(r rune) bool {
		return !isSortable(r)
	})

	first, _ := utf8.DecodeRuneInString(cleaned)
	if isASCIILetter(first) {
		return SortKey{Group: 0, Primary: strings.ToLower(cleaned), Cleaned: cleaned}
	}
	return SortKey{Group: 1, Primary: cleaned, Cleaned: cleaned}
}

// Compare orders two keys by group, then primary key, then cleaned name.
func (k SortKey) Compare(other SortKey) int {
	return cmp.Or(
		cmp.Compare(k.Group, other.Group),
		strings.Compare(k.Primary, other.Primary),
		strings.Compare(k.Cleaned, other.Cleaned),
	)
}

// compare orders two display names.
func compare(a, b string) int {
	return Key(a).Compare(Key(b))
}

// SortFunc sorts items in place by the display name returned by name. The sort
// is stable, so items with identical cleaned names keep their input order.
func SortFunc[T any](items []T, name func(T) string) {
	keys := make(map[int]SortKey, len(items))
	indexed := make([]int, len(items))
	for i := range items {
		indexed[i] = i
		keys[i] = Key(name(items[i]))
	}
	slices.SortStableFunc(indexed, func(a, b int) int {
		return keys[a].Compare(keys[b])
	})

	sorted := make([]T, len(items))
	for i, idx := range indexed {
		sorted[i] = items[idx]
	}
	copy(items, sorted)
}

// sortedNames returns a sorted copy of names.
func sortedNames(names []string) []string {
	result := slices.Clone(names)
	SortFunc(result, func(s string) string { return s })
	return result
}

// Ingredients returns a copy of items sorted by display name.
func Ingredients(items []models.Ingredient) []models.Ingredient {
	result := slices.Clone(items)
	SortFunc(result, func(ing models.Ingredient) string { return ing.DisplayName })
	return result
}

func isSortable(r rune) bool {
	return isASCIILetter(r) || ('0' <= r && r <= '9') || isHangulSyllable(r)
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isHangulSyllable(r rune) bool {
	return 0xAC00 <= r && r <= 0xD7A3
}
