package async

import (
	"context"
	"sync"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the computation to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// IsComplete reports whether the computation has finished without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn in its own goroutine and returns a Future for its result.
// If ctx is already canceled, fn is not invoked and the Future completes with ctx.Err().
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Resolved returns an already completed Future holding value.
// Useful when a value is known up front but the caller expects a Future.
func Resolved[U any](value U) *Future[U] {
	f := &Future[U]{result: value, done: make(chan struct{})}
	close(f.done)
	return f
}

// WaitAll waits for all futures and returns their results in argument order.
// The first error encountered in argument order is returned alongside the results collected so far.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// Map applies fn to every item concurrently and returns the results in input order.
// All goroutines are awaited before returning, even when one of them fails;
// the error of the lowest-indexed failing item is returned.
func Map[T any, U any](ctx context.Context, items []T, fn func(context.Context, T) (U, error)) ([]U, error) {
	results := make([]U, len(items))
	if len(items) == 0 {
		return results, nil
	}

	errs := make([]error, len(items))
	var wg sync.WaitGroup
	wg.Add(len(items))
	for i, item := range items {
		go func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = fn(ctx, item)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
