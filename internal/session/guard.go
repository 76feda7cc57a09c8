package session

import "sync/atomic"

// Guard owns the single-flight invariant: at most one interaction may be
// in progress. There is no queueing; a rejected caller simply gives up.
// The flag is atomic because interactions run on a worker goroutine while
// the UI event loop may probe Busy.
type Guard struct {
	busy atomic.Bool
}

// TryAcquire claims the guard. It returns false, with no side effects,
// if an interaction is already in flight.
func (g *Guard) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release returns the guard to ready. Safe to call from a defer on every
// exit path, including a panic inside the guarded work.
func (g *Guard) Release() {
	g.busy.Store(false)
}

// Busy reports whether an interaction is in flight.
func (g *Guard) Busy() bool {
	return g.busy.Load()
}
