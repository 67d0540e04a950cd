package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtual_FiresInDeadlineOrder(t *testing.T) {
	v := NewVirtual()
	var order []string
	var seenAt []time.Duration

	v.AfterFunc(300*time.Millisecond, func() { order = append(order, "c"); seenAt = append(seenAt, v.Now()) })
	v.AfterFunc(100*time.Millisecond, func() { order = append(order, "a"); seenAt = append(seenAt, v.Now()) })
	v.AfterFunc(100*time.Millisecond, func() { order = append(order, "b"); seenAt = append(seenAt, v.Now()) })

	v.Advance(time.Second)

	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 100 * time.Millisecond, 300 * time.Millisecond}, seenAt)
	assert.Equal(t, time.Second, v.Now())
	assert.Zero(t, v.Pending())
}

func TestVirtual_CancelNeverFires(t *testing.T) {
	v := NewVirtual()
	fired := 0
	h := v.AfterFunc(time.Second, func() { fired++ })

	v.Advance(500 * time.Millisecond)
	h.Cancel()
	h.Cancel()
	v.Advance(time.Hour)

	assert.Zero(t, fired)
	assert.Zero(t, v.Pending())
}

func TestVirtual_FiresAtMostOnce(t *testing.T) {
	v := NewVirtual()
	fired := 0
	h := v.AfterFunc(time.Second, func() { fired++ })

	v.Advance(2 * time.Second)
	h.Cancel()
	v.Advance(2 * time.Second)

	assert.Equal(t, 1, fired)
}

func TestVirtual_ExactDeadlineFires(t *testing.T) {
	v := NewVirtual()
	fired := false
	v.AfterFunc(1500*time.Millisecond, func() { fired = true })

	v.Advance(1499 * time.Millisecond)
	assert.False(t, fired)
	v.Advance(time.Millisecond)
	assert.True(t, fired)
}

func TestVirtual_ChainedTimersInsideWindow(t *testing.T) {
	v := NewVirtual()
	var at []time.Duration
	v.AfterFunc(100*time.Millisecond, func() {
		at = append(at, v.Now())
		v.AfterFunc(100*time.Millisecond, func() { at = append(at, v.Now()) })
	})

	v.Advance(time.Second)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, at)
}

func TestVirtual_CancelMiddleOfQueue(t *testing.T) {
	v := NewVirtual()
	var order []int
	v.AfterFunc(1*time.Millisecond, func() { order = append(order, 1) })
	h := v.AfterFunc(2*time.Millisecond, func() { order = append(order, 2) })
	v.AfterFunc(3*time.Millisecond, func() { order = append(order, 3) })

	h.Cancel()
	next, ok := v.NextDeadline()
	require.True(t, ok)
	assert.Equal(t, time.Millisecond, next)

	v.Advance(time.Second)
	assert.Equal(t, []int{1, 3}, order)
}

func TestLoop_DispatchRunsPostedCallback(t *testing.T) {
	fires := make(chan Fire, 4)
	l := NewLoop(func(f Fire) { fires <- f })

	ran := 0
	l.AfterFunc(time.Millisecond, func() { ran++ })
	require.Equal(t, 1, l.Pending())

	select {
	case f := <-fires:
		l.Dispatch(f)
		l.Dispatch(f)
	case <-time.After(2 * time.Second):
		t.Fatal("timer never posted")
	}
	assert.Equal(t, 1, ran)
	assert.Zero(t, l.Pending())
}

func TestLoop_CancelAfterPostSuppressesCallback(t *testing.T) {
	fires := make(chan Fire, 4)
	l := NewLoop(func(f Fire) { fires <- f })

	ran := false
	h := l.AfterFunc(time.Millisecond, func() { ran = true })

	f := <-fires
	h.Cancel()
	l.Dispatch(f)

	assert.False(t, ran)
	assert.Zero(t, l.Pending())
}

func TestLoop_Stop(t *testing.T) {
	l := NewLoop(func(Fire) {})
	l.AfterFunc(time.Hour, func() {})
	l.AfterFunc(time.Hour, func() {})
	require.Equal(t, 2, l.Pending())

	l.Stop()
	assert.Zero(t, l.Pending())
}
