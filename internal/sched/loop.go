package sched

import (
	"sync"
	"time"
)

// Fire is a due callback waiting to be run on the event loop.
type Fire struct {
	t *loopTimer
}

// Loop is a wall-clock scheduler for an interactive host. Deadlines are
// tracked by the runtime timer, but callbacks are handed to post and only
// run when the event loop calls Dispatch. Cancel and Dispatch both run on
// the loop goroutine, so a cancelled callback can never run.
type Loop struct {
	start time.Time
	post  func(Fire)

	mu     sync.Mutex
	active map[*loopTimer]struct{}
}

// NewLoop creates a scheduler delivering due callbacks through post.
// post is called from runtime timer goroutines; it must be safe for that and
// must not block once the host has stopped listening.
func NewLoop(post func(Fire)) *Loop {
	return &Loop{
		start:  time.Now(),
		post:   post,
		active: make(map[*loopTimer]struct{}),
	}
}

type loopTimer struct {
	l         *Loop
	timer     *time.Timer
	fn        func()
	cancelled bool
	fired     bool
}

// Now returns the time elapsed since the loop was created.
func (l *Loop) Now() time.Duration {
	return time.Since(l.start)
}

// AfterFunc arms fn. Must be called from the loop goroutine.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	t := &loopTimer{l: l, fn: fn}
	l.mu.Lock()
	l.active[t] = struct{}{}
	l.mu.Unlock()
	t.timer = time.AfterFunc(d, func() { l.post(Fire{t: t}) })
	return t
}

func (t *loopTimer) Cancel() {
	if t.cancelled || t.fired {
		return
	}
	t.cancelled = true
	t.timer.Stop()
	t.l.forget(t)
}

func (l *Loop) forget(t *loopTimer) {
	l.mu.Lock()
	delete(l.active, t)
	l.mu.Unlock()
}

// Dispatch runs a posted callback unless it was cancelled after posting.
func (l *Loop) Dispatch(f Fire) {
	t := f.t
	if t == nil || t.cancelled || t.fired {
		return
	}
	t.fired = true
	l.forget(t)
	t.fn()
}

// Pending returns the number of armed, not yet dispatched timers.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.active)
}

// Stop cancels every armed timer.
func (l *Loop) Stop() {
	l.mu.Lock()
	timers := make([]*loopTimer, 0, len(l.active))
	for t := range l.active {
		timers = append(timers, t)
	}
	l.mu.Unlock()
	for _, t := range timers {
		t.Cancel()
	}
}
