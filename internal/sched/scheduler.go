// Package sched provides cancellable one-shot callbacks for the paper
// components. A callback runs at most once and never after Cancel.
package sched

import "time"

// Handle is an armed callback.
type Handle interface {
	// Cancel disarms the callback. Safe to call repeatedly, and after the
	// callback already ran.
	Cancel()
}

// Scheduler defers callbacks on the host's single event thread.
type Scheduler interface {
	Now() time.Duration
	AfterFunc(d time.Duration, fn func()) Handle
}
