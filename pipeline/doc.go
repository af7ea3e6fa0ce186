// Package pipeline provides composable, pull-based sequence operators.
//
// Pipelines are lazy: no work happens until values are pulled via Collect,
// Drain, First or another terminal. A *Pipeline is an immutable definition;
// every Iter call builds a fresh chain of iterators, so one definition can be
// run any number of times. Iterators must be closed, and closing the outermost
// iterator closes every upstream iterator it opened.
//
// Iterators may answer three optional capability queries: Counter, Spanner
// and CopierTo. Stages forward them where the answer stays exact, and
// terminals use them to skip pulling (CountOf on a Map over a slice never
// calls the projection).
//
// # Operators
//
// Element-wise (streaming):
//
//   - Map, TryMap, MapIndexed, WithIndex: transform each value
//   - Filter, TryFilter, FilterIndexed, OfType: keep matching values
//   - Cast: convert every value, failing on a type mismatch
//   - Tap: side-effect without altering the value
//   - FlatMap, FlatMapWith, FlatMapSlice: expand each value into many
//   - Concat, Append, Prepend, DefaultIfEmpty, Zip, ZipWith, Zip3
//   - Take, Skip, TakeWhile, SkipWhile, SkipLast, TakeRange, Chunk
//   - Distinct, Union, Intersect, Except and their By/Func variants
//
// Buffering (consume the upstream before the first value):
//
//   - OrderBy, OrderByDescending, ThenBy, ThenByDescending, Order, Reverse
//   - GroupBy, GroupBySelect, TakeLast, Reduce
//   - Join, LeftJoin, RightJoin, GroupJoin (buffer one side only)
//
// Terminals:
//
//   - Collect, ToMap, ToLookup, ForEach, Drain
//   - CountOf, Any, AnyFunc, All, Contains, SequenceEqual
//   - First, Last, Single, ElementAt and their OrDefault variants
//   - Fold, Sum, Average, Min, Max, MinBy, MaxBy
//
// # Usage
//
//	src := pipeline.FromSlice([]int{1, 2, 3, 4, 5})
//	doubled := pipeline.Map(src, func(n int) int { return n * 2 })
//	evens := pipeline.Filter(doubled, func(n int) bool { return n%4 == 0 })
//	results, err := pipeline.Collect(evens)
//
// Sorting is stable and multi-level:
//
//	byAge := pipeline.OrderBy(people, func(p Person) int { return p.Age })
//	sorted := pipeline.ThenBy(byAge, func(p Person) string { return p.Name })
//	oldest, err := pipeline.Last(sorted.Pipeline)
//
// Every stage can be traced at debug level with Trace, or globally with
// Configure(Config{Trace: true}). Configure(Config{Telemetry: true}) opens an
// OpenTelemetry span per cursor and records cursor metrics through the global
// providers (see package observability).
package pipeline
