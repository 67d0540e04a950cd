package stage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paperfold-renderer/internal/anim"
	"paperfold-renderer/internal/content"
	"paperfold-renderer/internal/fold"
	"paperfold-renderer/internal/page"
	"paperfold-renderer/internal/sched"
)

func newStage(t *testing.T) (*Stage, *sched.Virtual) {
	t.Helper()
	clk := sched.NewVirtual()
	st, err := New(DefaultConfig(), clk, zap.NewNop())
	require.NoError(t, err)
	return st, clk
}

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent("page", "enter")
	require.NoError(t, err)
	assert.Equal(t, Event{Target: TargetPage, Kind: KindEnter}, ev)
	assert.Equal(t, "page:enter", ev.String())

	_, err = ParseEvent("letter", "enter")
	assert.ErrorIs(t, err, ErrUnknownEvent)
	_, err = ParseEvent("envelope", "click")
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Letter.Height = -1
	_, err := New(cfg, sched.NewVirtual(), nil)
	assert.ErrorIs(t, err, fold.ErrInvalidSize)
}

func TestStage_LetterScenario(t *testing.T) {
	st, clk := newStage(t)

	f := st.Snapshot()
	assert.Equal(t, 133.0, f.Letter.SectionHeight)
	assert.Equal(t, fold.Open, f.Letter.State)
	require.Len(t, f.Letter.Segments, 3)
	assert.Equal(t, 266.0, f.Letter.Segments[fold.Bottom].Props[anim.Y])
	assert.Equal(t, "High Conviction...", f.Letter.Segments[fold.Top].Label)

	require.NoError(t, st.Dispatch(Event{TargetLetter, KindClick}))
	clk.Advance(time.Second)
	f = st.Snapshot()
	assert.Equal(t, fold.Folded, f.Letter.State)
	assert.Equal(t, -85.0, f.Letter.Segments[fold.Middle].Props[anim.RotateX])

	require.NoError(t, st.Dispatch(Event{TargetLetter, KindClick}))
	clk.Advance(time.Second)
	f = st.Snapshot()
	assert.Equal(t, fold.Closed, f.Letter.State)
	assert.Equal(t, 0.0, f.Letter.Segments[fold.Middle].Props[anim.Opacity])
	assert.Equal(t, 0.0, f.Letter.Segments[fold.Bottom].Props[anim.Opacity])
	assert.Equal(t, 1.0, f.Letter.Segments[fold.Top].Props[anim.Opacity])
}

func TestStage_PageRevealScenario(t *testing.T) {
	st, clk := newStage(t)

	require.NoError(t, st.Dispatch(Event{TargetPage, KindClick}))
	require.NoError(t, st.Dispatch(Event{TargetPage, KindEnter}))
	f := st.Snapshot()
	assert.True(t, f.Page.Armed)
	assert.Equal(t, content.Primary, f.Page.Faces[page.FaceInner].Variant)
	assert.Len(t, f.Page.Faces[page.FaceInner].Lines, 5)

	clk.Advance(5 * time.Second)
	f = st.Snapshot()
	assert.True(t, f.Page.Revealed)
	assert.Equal(t, "2021", f.Page.StruckYear)
	assert.Equal(t, "2024", f.Page.Year)
	for _, name := range page.Faces() {
		ff := f.Page.Faces[name]
		assert.Equal(t, content.Alternate, ff.Variant, name)
		assert.Empty(t, ff.Lines, name)
		assert.Equal(t, 1.0, ff.Container[anim.Opacity], name)
	}
	assert.Equal(t, 1, f.Index)
}

func TestStage_UnmountedPageHasNoFaces(t *testing.T) {
	st, _ := newStage(t)
	require.NoError(t, st.Dispatch(Event{TargetPage, KindUnmount}))

	f := st.Snapshot()
	assert.False(t, f.Page.Mounted)
	assert.Empty(t, f.Page.Faces)
	assert.Nil(t, f.Page.Back)

	require.NoError(t, st.Dispatch(Event{TargetPage, KindMount}))
	assert.True(t, st.Snapshot().Page.Mounted)
}

func TestStage_DispatchRejectsUnknown(t *testing.T) {
	st, _ := newStage(t)
	assert.ErrorIs(t, st.Dispatch(Event{TargetLetter, KindReset}), ErrUnknownEvent)
}
