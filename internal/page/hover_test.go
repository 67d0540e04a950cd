package page

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paperfold-renderer/internal/sched"
)

func newHover() (*HoverReveal, *sched.Virtual, *int) {
	clk := sched.NewVirtual()
	fired := 0
	return NewHoverReveal(clk, RevealDelay, func() { fired++ }), clk, &fired
}

func TestHoverReveal_FiresOnceAfterDelay(t *testing.T) {
	h, clk, fired := newHover()

	h.Enter()
	assert.True(t, h.Armed())
	clk.Advance(RevealDelay - time.Millisecond)
	assert.False(t, h.Revealed())

	clk.Advance(time.Millisecond)
	assert.True(t, h.Revealed())
	assert.False(t, h.Armed())
	assert.Equal(t, 1, *fired)

	clk.Advance(time.Minute)
	assert.Equal(t, 1, *fired)
}

func TestHoverReveal_LeaveBeforeDelayNeverFires(t *testing.T) {
	h, clk, fired := newHover()

	h.Enter()
	clk.Advance(1400 * time.Millisecond)
	h.Leave()
	clk.Advance(time.Hour)

	assert.False(t, h.Revealed())
	assert.False(t, h.Hovering())
	assert.Zero(t, *fired)
	assert.Zero(t, clk.Pending())
}

func TestHoverReveal_ReenterRearms(t *testing.T) {
	h, clk, fired := newHover()

	h.Enter()
	clk.Advance(time.Second)
	h.Enter()
	assert.Equal(t, 1, clk.Pending(), "no duplicate timers")

	clk.Advance(600 * time.Millisecond)
	assert.Zero(t, *fired, "first timer was superseded")

	clk.Advance(900 * time.Millisecond)
	assert.Equal(t, 1, *fired)
	clk.Advance(time.Hour)
	assert.Equal(t, 1, *fired)
}

func TestHoverReveal_NoTimerOnceRevealed(t *testing.T) {
	h, clk, fired := newHover()

	h.Enter()
	clk.Advance(RevealDelay)
	h.Leave()
	h.Enter()

	assert.True(t, h.Hovering())
	assert.False(t, h.Armed())
	assert.Zero(t, clk.Pending())
	assert.Equal(t, 1, *fired)
}

func TestHoverReveal_Release(t *testing.T) {
	h, clk, fired := newHover()

	h.Enter()
	h.Release()
	h.Enter()
	clk.Advance(time.Hour)

	assert.Zero(t, *fired)
	assert.Zero(t, clk.Pending())
	assert.False(t, h.Hovering())
}

func TestHoverReveal_ResetClearsLatch(t *testing.T) {
	h, clk, fired := newHover()

	h.Enter()
	clk.Advance(RevealDelay)
	assert.True(t, h.Revealed())

	h.Reset()
	assert.False(t, h.Revealed())
	h.Enter()
	clk.Advance(RevealDelay)
	assert.Equal(t, 2, *fired)
}
