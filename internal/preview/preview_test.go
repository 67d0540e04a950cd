package preview

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperfold-renderer/internal/fold"
	"paperfold-renderer/internal/raster"
	"paperfold-renderer/internal/sched"
	"paperfold-renderer/internal/stage"
)

func newApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 25)

	app, err := New(screen, Options{Stage: stage.DefaultConfig(), Light: raster.DefaultLightConfig()})
	require.NoError(t, err)
	return app, screen
}

func click(x, y int) []tcell.Event {
	return []tcell.Event{
		tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone),
	}
}

func TestHandle_ClickLetterPane(t *testing.T) {
	app, _ := newApp(t)
	for _, ev := range click(10, 10) {
		assert.True(t, app.Handle(ev))
	}
	assert.Equal(t, fold.Folded, app.Stage().Letter().State())
}

func TestHandle_HeldButtonClicksOnce(t *testing.T) {
	app, _ := newApp(t)
	app.Handle(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	app.Handle(tcell.NewEventMouse(11, 10, tcell.Button1, tcell.ModNone))
	assert.Equal(t, fold.Folded, app.Stage().Letter().State())
}

func TestHandle_PagePointer(t *testing.T) {
	app, _ := newApp(t)
	pg := app.Stage().Page()

	for _, ev := range click(60, 10) {
		app.Handle(ev)
	}
	require.True(t, pg.IsOpen())
	assert.False(t, pg.Hovering(), "entering a closed page is ignored")

	app.Handle(tcell.NewEventMouse(10, 10, tcell.ButtonNone, tcell.ModNone))
	assert.False(t, pg.Hovering())
	app.Handle(tcell.NewEventMouse(60, 12, tcell.ButtonNone, tcell.ModNone))
	assert.True(t, pg.Hovering())
	assert.True(t, pg.RevealArmed())
}

func TestHandle_Keys(t *testing.T) {
	app, _ := newApp(t)
	assert.True(t, app.Handle(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.False(t, app.Handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, app.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestDraw_PaintsHalfBlocksAndStatus(t *testing.T) {
	app, screen := newApp(t)
	app.Draw()

	found := false
	for x := 0; x < 40 && !found; x++ {
		for y := 0; y < 24; y++ {
			r, _, _, _ := screen.GetContent(x, y)
			if r == upperHalf {
				found = true
				break
			}
		}
	}
	assert.True(t, found)

	var row []rune
	for x := 0; x < 12; x++ {
		r, _, _, _ := screen.GetContent(x, 24)
		row = append(row, r)
	}
	assert.Equal(t, " fold: open ", string(row))
}

func TestStatusLine(t *testing.T) {
	f := stage.Frame{}
	f.Letter.State = fold.Closed
	f.Page.Mounted = true
	f.Page.Open = true
	f.Page.Revealed = true
	s := StatusLine(f)
	assert.Contains(t, s, "fold: closed")
	assert.Contains(t, s, "page: open")
	assert.Contains(t, s, "revealed")
	assert.NotContains(t, s, "hover ")
}

func TestRun_LateTimerFiresDoNotBlock(t *testing.T) {
	app, _ := newApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, app.Run(ctx), context.Canceled)

	posted := make(chan struct{})
	go func() {
		for i := 0; i < 4*cap(app.fires); i++ {
			app.post(sched.Fire{})
		}
		close(posted)
	}()
	select {
	case <-posted:
	case <-time.After(5 * time.Second):
		t.Fatal("timer post blocked after Run returned")
	}
}
