package pipeline

import "golang.org/x/sync/errgroup"

// DefaultConcurrency bounds the number of concurrent store operations.
const DefaultConcurrency = 8

// fanOut calls fn for every index in [0, n) with at most limit calls in
// flight and waits for all of them. There is no early cancellation: every
// call runs even after one has failed. The first error is returned.
func fanOut(n, limit int, fn func(i int) error) error {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i := range n {
		g.Go(func() error {
			return fn(i)
		})
	}
	return g.Wait()
}
