// Package collections adapts third-party and built-in collections into
// pipeline sources.
//
// Every adapter returns a reusable *pipeline.Pipeline: each iteration walks
// the collection from the beginning. Adapters report a known remaining count
// where the collection has one. None of them exposes a contiguous view,
// except FromSortedMap, which materializes its entries up front.
//
//	list := doublylinkedlist.New(3, 1, 2)
//	sorted, err := pipeline.Collect(pipeline.Order(collections.FromList[int](list)).Pipeline)
package collections
