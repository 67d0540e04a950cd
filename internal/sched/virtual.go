package sched

import (
	"container/heap"
	"time"
)

// Virtual is a deterministic scheduler driven by Advance. Time only moves
// when the host says so, which makes every timing property reproducible.
type Virtual struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// NewVirtual creates a scheduler whose clock starts at zero.
func NewVirtual() *Virtual {
	return &Virtual{}
}

type virtualTimer struct {
	v     *Virtual
	at    time.Duration
	seq   uint64
	fn    func()
	index int // position in queue, -1 once removed
}

func (t *virtualTimer) Cancel() {
	if t.index < 0 {
		return
	}
	heap.Remove(&t.v.queue, t.index)
}

// Now returns the virtual time.
func (v *Virtual) Now() time.Duration {
	return v.now
}

// AfterFunc arms fn to run d after the current virtual time.
func (v *Virtual) AfterFunc(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	v.seq++
	t := &virtualTimer{v: v, at: v.now + d, seq: v.seq, fn: fn}
	heap.Push(&v.queue, t)
	return t
}

// Advance moves the clock forward by d, running every timer that falls due
// in deadline order. The clock reads each timer's deadline while its
// callback runs. Timers armed by callbacks inside the window also fire.
func (v *Virtual) Advance(d time.Duration) {
	v.AdvanceTo(v.now + d)
}

// AdvanceTo moves the clock to at. Moving backwards is a no-op.
func (v *Virtual) AdvanceTo(at time.Duration) {
	if at < v.now {
		return
	}
	for len(v.queue) > 0 && v.queue[0].at <= at {
		t := heap.Pop(&v.queue).(*virtualTimer)
		v.now = t.at
		t.fn()
	}
	v.now = at
}

// Pending returns the number of armed timers.
func (v *Virtual) Pending() int {
	return len(v.queue)
}

// NextDeadline returns the earliest armed deadline.
func (v *Virtual) NextDeadline() (time.Duration, bool) {
	if len(v.queue) == 0 {
		return 0, false
	}
	return v.queue[0].at, true
}

type timerQueue []*virtualTimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*virtualTimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
