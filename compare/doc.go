// Package compare defines the comparers used by seqkit's hashing and
// ordering stages.
//
// An Equality supplies both an equality test and a hash consistent with it,
// which is what every hash-based stage (grouping, set algebra, joins,
// lookups) needs to bucket keys that are not Go-comparable or that use a
// custom notion of equality. Ordering comparers are plain three-way
// functions, matching slices.SortFunc.
package compare
