package page

import (
	"time"

	"paperfold-renderer/internal/sched"
)

// RevealDelay is how long the pointer must rest on the page before the
// hidden content shows.
const RevealDelay = 1500 * time.Millisecond

// HoverReveal owns the reveal timer. The handle is held only while the
// pointer is over the page and nothing has been revealed; every exit path
// (leave, re-enter, release) cancels it before dropping it.
type HoverReveal struct {
	sched    sched.Scheduler
	delay    time.Duration
	onReveal func()

	hovering bool
	revealed bool
	timer    sched.Handle
	released bool
}

// NewHoverReveal creates a disarmed timer calling onReveal once on completion.
func NewHoverReveal(s sched.Scheduler, delay time.Duration, onReveal func()) *HoverReveal {
	return &HoverReveal{sched: s, delay: delay, onReveal: onReveal}
}

// Enter marks the pointer over the page and arms the timer, replacing any
// timer already armed.
func (h *HoverReveal) Enter() {
	if h.released {
		return
	}
	h.hovering = true
	h.disarm()
	if h.revealed {
		return
	}
	h.timer = h.sched.AfterFunc(h.delay, h.fire)
}

// Leave marks the pointer gone and cancels the timer.
func (h *HoverReveal) Leave() {
	h.hovering = false
	h.disarm()
}

// Release cancels the timer for good; later calls do nothing.
func (h *HoverReveal) Release() {
	h.hovering = false
	h.disarm()
	h.released = true
}

// Reset clears the reveal latch and any hover, as on a fresh mount.
func (h *HoverReveal) Reset() {
	h.hovering = false
	h.disarm()
	h.revealed = false
	h.released = false
}

func (h *HoverReveal) disarm() {
	if h.timer != nil {
		h.timer.Cancel()
		h.timer = nil
	}
}

func (h *HoverReveal) fire() {
	h.timer = nil
	if h.revealed {
		return
	}
	h.revealed = true
	h.onReveal()
}

// Hovering reports whether the pointer is over the page.
func (h *HoverReveal) Hovering() bool { return h.hovering }

// Revealed reports whether the latch has been set.
func (h *HoverReveal) Revealed() bool { return h.revealed }

// Armed reports whether a reveal is pending.
func (h *HoverReveal) Armed() bool { return h.timer != nil }
