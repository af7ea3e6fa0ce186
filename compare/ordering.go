package compare

import (
	"cmp"
	"unicode/utf8"
)

// Natural returns the ascending comparer of an ordered type.
func Natural[T cmp.Ordered]() func(a, b T) int {
	return cmp.Compare[T]
}

// Reverse inverts a comparer.
func Reverse[T any](c func(a, b T) int) func(a, b T) int {
	return func(a, b T) int { return c(b, a) }
}

// By orders values of T by an ordered key derived from them.
func By[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

// FoldOrder orders strings case-insensitively. Strings equal under
// FoldString compare as 0.
func FoldOrder(a, b string) int {
	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if c := cmp.Compare(foldRune(ra), foldRune(rb)); c != 0 {
			return c
		}
		a, b = a[na:], b[nb:]
	}
	return cmp.Compare(len(a), len(b))
}
