package pipeline

import "github.com/kbukum/seqkit/errors"

// Chunk collects the values of p into slices of size values. The final chunk
// holds whatever remains and may be shorter. A non-positive size is rejected.
func Chunk[T any](p *Pipeline[T], size int) (*Pipeline[[]T], error) {
	if size <= 0 {
		return nil, errors.InvalidArgument("size", "must be positive")
	}
	return newPipeline("chunk", func() Iterator[[]T] {
		return &chunkIter[T]{source: p.open(), size: size}
	}), nil
}

type chunkIter[T any] struct {
	source Iterator[T]
	size   int
	done   bool
}

func (it *chunkIter[T]) Next() ([]T, bool, error) {
	if it.done {
		return nil, false, nil
	}
	capacity := min(it.size, bufferCapacity())
	if n, ok := TryCount(it.source); ok {
		capacity = min(n, it.size)
	}
	chunk := make([]T, 0, capacity)
	for len(chunk) < it.size {
		val, ok, err := it.source.Next()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			it.done = true
			break
		}
		chunk = append(chunk, val)
	}
	if len(chunk) == 0 {
		return nil, false, nil
	}
	return chunk, true, nil
}

func (it *chunkIter[T]) Count() (int, bool) {
	if it.done {
		return 0, true
	}
	n, ok := TryCount(it.source)
	if !ok {
		return 0, false
	}
	if n == 0 {
		return 0, true
	}
	return (n-1)/it.size + 1, true
}

func (it *chunkIter[T]) Close() error {
	it.done = true
	return it.source.Close()
}
