package anim

import (
	"sort"
	"time"

	"paperfold-renderer/internal/mathutil"
)

// Clock supplies the current time of the animation host.
type Clock interface {
	Now() time.Duration
}

type track struct {
	from, to float64
	start    time.Duration
	timing   Timing
}

func (tk *track) valueAt(at time.Duration) float64 {
	begin := tk.start + tk.timing.Delay
	if at < begin {
		return tk.from
	}
	if tk.timing.Duration <= 0 {
		return tk.to
	}
	p := mathutil.Clamp01(float64(at-begin) / float64(tk.timing.Duration))
	ease := tk.timing.Ease
	if ease == nil {
		ease = EaseDefault
	}
	return mathutil.Lerp(tk.from, tk.to, ease(p))
}

func (tk *track) end() time.Duration {
	return tk.start + tk.timing.End()
}

type element struct {
	state  string
	tracks map[Property]*track
}

// Timeline is an in-memory interpolation engine. Each property is a track
// that starts from whatever value it shows at declaration time, so a
// retargeted animation continues smoothly from mid-flight.
//
// Timeline is not safe for concurrent use; the host serializes all calls.
type Timeline struct {
	clock Clock
	elems map[string]*element
}

// NewTimeline creates a timeline reading time from clock.
func NewTimeline(clock Clock) *Timeline {
	return &Timeline{
		clock: clock,
		elems: make(map[string]*element),
	}
}

func (tl *Timeline) elem(key string) *element {
	e, ok := tl.elems[key]
	if !ok {
		e = &element{tracks: make(map[Property]*track)}
		tl.elems[key] = e
	}
	return e
}

// Set implements Interpolator.
func (tl *Timeline) Set(key, state string, values Props) {
	now := tl.clock.Now()
	e := tl.elem(key)
	e.state = state
	for prop, v := range values {
		e.tracks[prop] = &track{from: v, to: v, start: now}
	}
}

// Animate implements Interpolator.
func (tl *Timeline) Animate(key, state string, target Props, tr Transition) {
	now := tl.clock.Now()
	e := tl.elem(key)
	e.state = state
	for prop, to := range target {
		from := prop.Rest()
		if tk, ok := e.tracks[prop]; ok {
			from = tk.valueAt(now)
		}
		e.tracks[prop] = &track{from: from, to: to, start: now, timing: tr.For(prop)}
	}
}

// Remove implements Interpolator.
func (tl *Timeline) Remove(key string) {
	delete(tl.elems, key)
}

// Has reports whether key is mounted.
func (tl *Timeline) Has(key string) bool {
	_, ok := tl.elems[key]
	return ok
}

// State returns the last named state declared for key.
func (tl *Timeline) State(key string) string {
	if e, ok := tl.elems[key]; ok {
		return e.state
	}
	return ""
}

// Sample returns every tracked property of key at the clock's current time.
func (tl *Timeline) Sample(key string) Props {
	return tl.SampleAt(key, tl.clock.Now())
}

// SampleAt returns every tracked property of key at time at.
func (tl *Timeline) SampleAt(key string, at time.Duration) Props {
	e, ok := tl.elems[key]
	if !ok {
		return nil
	}
	out := make(Props, len(e.tracks))
	for prop, tk := range e.tracks {
		out[prop] = tk.valueAt(at)
	}
	return out
}

// SettlesAt returns the time at which every track of key reaches its target.
func (tl *Timeline) SettlesAt(key string) time.Duration {
	var end time.Duration
	if e, ok := tl.elems[key]; ok {
		for _, tk := range e.tracks {
			if te := tk.end(); te > end {
				end = te
			}
		}
	}
	return end
}

// Settled reports whether key has finished animating.
func (tl *Timeline) Settled(key string) bool {
	return tl.clock.Now() >= tl.SettlesAt(key)
}

// Keys returns mounted element keys in sorted order.
func (tl *Timeline) Keys() []string {
	keys := make([]string, 0, len(tl.elems))
	for k := range tl.elems {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
