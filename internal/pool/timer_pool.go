// Package pool provides pooled timers for short-lived waits, avoiding a
// time.Timer allocation per retry or delay in the exchange loop.
package pool

import (
	"sync"
	"time"
)

var timerPool sync.Pool

// GetTimer returns a timer for the given duration d from the pool.
//
// Return the timer to the pool with PutTimer once it is no longer needed.
func GetTimer(d time.Duration) *time.Timer {
	v := timerPool.Get()
	if v == nil {
		return time.NewTimer(d)
	}

	t := v.(*time.Timer) // the pool only ever holds *time.Timer
	if t.Reset(d) {
		// Timer was still active; drain the channel to avoid a stale fire.
		select {
		case <-t.C:
		default:
		}
	}

	return t
}

// PutTimer stops the timer and returns it to the pool.
//
// t must not be accessed after returning it to the pool.
func PutTimer(t *time.Timer) {
	if !t.Stop() {
		// Drain t.C if the caller has not consumed the fire.
		select {
		case <-t.C:
		default:
		}
	}
	timerPool.Put(t)
}
