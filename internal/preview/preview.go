// Package preview runs both components live in a terminal. Each pane is
// rasterized and drawn with half-block glyphs in true colour; the mouse
// clicks and hovers the way a pointer would on the real page.
package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"paperfold-renderer/internal/content"
	"paperfold-renderer/internal/postprocess"
	"paperfold-renderer/internal/raster"
	"paperfold-renderer/internal/scene"
	"paperfold-renderer/internal/sched"
	"paperfold-renderer/internal/stage"
)

// DefaultFPS is the redraw rate.
const DefaultFPS = 30

const upperHalf = '▀'

// Options configure a preview session.
type Options struct {
	Stage      stage.Config
	Grain      *image.NRGBA
	Light      raster.LightConfig
	Background color.NRGBA
	FPS        int
	Log        *zap.Logger

	// ContentFile, when set, is watched and reloaded into a fresh stage.
	ContentFile string
}

// App owns the screen, the stage and the wall-clock scheduler. Everything
// except the input reader and timer callbacks' posting runs on Run's goroutine.
type App struct {
	screen tcell.Screen
	opt    Options
	log    *zap.Logger
	loop   *sched.Loop
	fires  chan sched.Fire
	done   chan struct{}
	st     *stage.Stage

	pointerInPage bool
	buttonDown    bool
}

// New builds and mounts the stage on an initialized screen.
func New(screen tcell.Screen, opt Options) (*App, error) {
	if opt.FPS <= 0 {
		opt.FPS = DefaultFPS
	}
	log := opt.Log
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		screen: screen,
		opt:    opt,
		log:    log,
		fires:  make(chan sched.Fire, 16),
		done:   make(chan struct{}),
	}
	a.loop = sched.NewLoop(a.post)

	st, err := stage.New(opt.Stage, a.loop, log)
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	a.st = st
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	return a, nil
}

// post hands a due timer to Run. Once Run has returned the fire is dropped.
func (a *App) post(f sched.Fire) {
	select {
	case a.fires <- f:
	case <-a.done:
	}
}

// Stage exposes the hosted stage.
func (a *App) Stage() *stage.Stage { return a.st }

// Run processes input, timer callbacks and redraws until the user quits or
// ctx is done.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.opt.FPS))
	defer ticker.Stop()
	defer a.loop.Stop()
	defer close(a.done)

	var reloads <-chan content.Set
	if a.opt.ContentFile != "" {
		var err error
		if reloads, err = WatchContent(ctx, a.opt.ContentFile, a.log); err != nil {
			return err
		}
	}

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			a.quit()
			return ctx.Err()
		case f := <-a.fires:
			a.loop.Dispatch(f)
		case set := <-reloads:
			if err := a.Reload(set); err != nil {
				a.log.Warn("content reload rejected", zap.Error(err))
			}
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.Handle(ev) {
				a.quit()
				return nil
			}
		case <-ticker.C:
			a.Draw()
		}
	}
}

// Reload replaces the stage with a freshly mounted one showing text.
func (a *App) Reload(text content.Set) error {
	if err := text.Validate(); err != nil {
		return err
	}
	cfg := a.opt.Stage
	cfg.Text = text
	st, err := stage.New(cfg, a.loop, a.log)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	a.quit()
	a.opt.Stage = cfg
	a.st = st
	a.pointerInPage = false
	a.log.Info("content reloaded")
	return nil
}

func (a *App) quit() {
	a.dispatch(stage.Event{Target: stage.TargetPage, Kind: stage.KindUnmount})
}

// Handle routes one terminal event. It returns false when the user quits.
func (a *App) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				a.dispatch(stage.Event{Target: stage.TargetPage, Kind: stage.KindReset})
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		letterPane, pagePane := a.panes()
		inPage := image.Pt(x, y).In(pagePane)
		if inPage != a.pointerInPage {
			a.pointerInPage = inPage
			kind := stage.KindLeave
			if inPage {
				kind = stage.KindEnter
			}
			a.dispatch(stage.Event{Target: stage.TargetPage, Kind: kind})
		}

		down := ev.Buttons()&tcell.Button1 != 0
		if down && !a.buttonDown {
			switch {
			case inPage:
				a.dispatch(stage.Event{Target: stage.TargetPage, Kind: stage.KindClick})
			case image.Pt(x, y).In(letterPane):
				a.dispatch(stage.Event{Target: stage.TargetLetter, Kind: stage.KindClick})
			}
		}
		a.buttonDown = down

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) dispatch(ev stage.Event) {
	if err := a.st.Dispatch(ev); err != nil {
		a.log.Warn("event rejected", zap.Stringer("event", ev), zap.Error(err))
	}
}

// panes splits the screen above the status row into two halves, in cells.
func (a *App) panes() (letter, page image.Rectangle) {
	w, h := a.screen.Size()
	rows := max(h-1, 0)
	letter = image.Rect(0, 0, w/2, rows)
	page = image.Rect(w/2, 0, w, rows)
	return letter, page
}

// Draw renders a snapshot of both components and the status line.
func (a *App) Draw() {
	f := a.st.Snapshot()
	bg := tcell.NewRGBColor(int32(a.opt.Background.R), int32(a.opt.Background.G), int32(a.opt.Background.B))
	a.screen.Fill(' ', tcell.StyleDefault.Background(bg))

	opt := scene.Options{Grain: a.opt.Grain}
	letterPane, pagePane := a.panes()
	a.drawPane(letterPane, scene.BuildLetter(f.Letter, opt))
	a.drawPane(pagePane, scene.BuildPage(f.Page, opt))
	a.drawStatus(f)
	a.screen.Show()
}

// drawPane renders sc into the largest square that fits pane, two pixel
// rows per cell.
func (a *App) drawPane(pane image.Rectangle, sc scene.Scene) {
	size := min(pane.Dx(), 2*pane.Dy())
	if size <= 0 {
		return
	}
	img := postprocess.Flatten(raster.Render(sc, size, 1, a.opt.Light), a.opt.Background)

	x0 := pane.Min.X + (pane.Dx()-size)/2
	y0 := pane.Min.Y + (2*pane.Dy()-size)/4
	for py := 0; py+1 < size; py += 2 {
		for px := 0; px < size; px++ {
			top := img.NRGBAAt(px, py)
			bottom := img.NRGBAAt(px, py+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			a.screen.SetContent(x0+px, y0+py/2, upperHalf, nil, style)
		}
	}
}

func (a *App) drawStatus(f stage.Frame) {
	w, h := a.screen.Size()
	if h == 0 {
		return
	}
	status := StatusLine(f)
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		a.screen.SetContent(x, h-1, r, nil, style)
	}
}

// StatusLine summarizes a frame for the bottom row.
func StatusLine(f stage.Frame) string {
	pageState := "closed"
	switch {
	case !f.Page.Mounted:
		pageState = "unmounted"
	case f.Page.Open:
		pageState = "open"
	}
	s := fmt.Sprintf(" fold: %s  page: %s", f.Letter.State, pageState)
	if f.Page.Hovering {
		s += "  hover"
	}
	if f.Page.Armed {
		s += "  armed"
	}
	if f.Page.Revealed {
		s += "  revealed"
	}
	return s + "  | click panes, r reset, q quit "
}
