package compare

import (
	"bytes"
	"hash/maphash"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Equality compares and hashes values of type T. Equal values must hash
// identically.
type Equality[T any] interface {
	Equal(a, b T) bool
	Hash(v T) uint64
}

// Default returns the equality of Go's == operator.
func Default[T comparable]() Equality[T] {
	return defaultEquality[T]{seed: maphash.MakeSeed()}
}

type defaultEquality[T comparable] struct {
	seed maphash.Seed
}

func (d defaultEquality[T]) Equal(a, b T) bool { return a == b }

func (d defaultEquality[T]) Hash(v T) uint64 { return maphash.Comparable(d.seed, v) }

// FoldString compares strings under Unicode case folding.
func FoldString() Equality[string] { return foldString{} }

type foldString struct{}

func (foldString) Equal(a, b string) bool { return strings.EqualFold(a, b) }

func (foldString) Hash(s string) uint64 {
	d := xxhash.New()
	var buf [utf8.UTFMax]byte
	for _, r := range s {
		n := utf8.EncodeRune(buf[:], foldRune(r))
		_, _ = d.Write(buf[:n])
	}
	return d.Sum64()
}

// foldRune maps r to the smallest rune of its case-folding orbit, so every
// rune strings.EqualFold treats as equal hashes the same.
func foldRune(r rune) rune {
	min := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < min {
			min = f
		}
	}
	return min
}

// Bytes compares byte slices by content.
func Bytes() Equality[[]byte] { return byteSlices{} }

type byteSlices struct{}

func (byteSlices) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

func (byteSlices) Hash(b []byte) uint64 { return xxhash.Sum64(b) }

// EqualityFunc builds an Equality from an equality test and a hash function.
func EqualityFunc[T any](equal func(a, b T) bool, hash func(T) uint64) Equality[T] {
	return funcEquality[T]{equal: equal, hash: hash}
}

type funcEquality[T any] struct {
	equal func(a, b T) bool
	hash  func(T) uint64
}

func (f funcEquality[T]) Equal(a, b T) bool { return f.equal(a, b) }

func (f funcEquality[T]) Hash(v T) uint64 { return f.hash(v) }

// Project compares values of T by a comparable key derived from them.
func Project[T any, K comparable](key func(T) K) Equality[T] {
	inner := Default[K]()
	return EqualityFunc(
		func(a, b T) bool { return key(a) == key(b) },
		func(v T) uint64 { return inner.Hash(key(v)) },
	)
}
