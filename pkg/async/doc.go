// Package async provides small generic helpers for running computations concurrently and
// joining their results.
//
// A Future represents the eventual result of a computation started with Async. Resolved wraps a
// value that is already known, so code paths that sometimes compute a value and sometimes read it
// from a cache can treat both the same way. WaitAll joins a fixed set of futures, and Map fans a
// function out over a slice and returns the results in input order.
//
// # Usage
//
//	userF := async.Async(ctx, userID, loadUser)
//	noteF := async.Resolved(cachedNote)
//
//	user, err := userF.Await()
//	if err != nil {
//	    return err
//	}
//	note, _ := noteF.Await()
//
//	packed, err := async.Map(ctx, items, packOne)
//
// # Error Handling
//
// The package has no error types of its own. Futures carry the error returned by the callback, or
// the context error when the context was canceled before the callback started. Map waits for every
// goroutine and returns the error of the lowest-indexed failing item, discarding partial results.
//
// # Performance Considerations
//
// Every Async call and every Map item costs one goroutine. Bound the input size at the caller when
// the workload could be unbounded.
package async
