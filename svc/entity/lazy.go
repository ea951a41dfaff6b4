package entity

import (
	"sync/atomic"
)

// Lazy is a set-once reference cell. It lets two components that depend on
// each other be constructed in sequence and bound afterwards.
type Lazy[T any] struct {
	v atomic.Pointer[T]
}

// Bind stores v. Binding twice panics.
func (l *Lazy[T]) Bind(v T) {
	if !l.v.CompareAndSwap(nil, &v) {
		panic("entity: Lazy bound twice")
	}
}

// Get returns the bound value, or false if Bind has not been called.
func (l *Lazy[T]) Get() (T, bool) {
	p := l.v.Load()
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
