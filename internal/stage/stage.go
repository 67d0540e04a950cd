// Package stage hosts the letter and the page on one event thread, routes
// interaction events to them and samples their animated state into frames.
package stage

import (
	"fmt"

	"go.uber.org/zap"

	"paperfold-renderer/internal/anim"
	"paperfold-renderer/internal/content"
	"paperfold-renderer/internal/fold"
	"paperfold-renderer/internal/page"
	"paperfold-renderer/internal/sched"
)

// Config holds everything needed to build a stage.
type Config struct {
	Letter fold.LetterConfig
	Page   page.Config
	Text   content.Set
}

// DefaultConfig returns default components with the built-in text.
func DefaultConfig() Config {
	return Config{
		Letter: fold.DefaultLetterConfig(),
		Page:   page.DefaultConfig(),
		Text:   content.Default(),
	}
}

// Stage owns both components, their interpolator and their scheduler.
// All methods must be called from the host's event thread.
type Stage struct {
	log      *zap.Logger
	sched    sched.Scheduler
	timeline *anim.Timeline
	text     content.Set
	letter   *fold.Letter
	page     *page.Page
	frames   int
}

// New builds and mounts both components.
func New(cfg Config, s sched.Scheduler, log *zap.Logger) (*Stage, error) {
	if log == nil {
		log = zap.NewNop()
	}
	tl := anim.NewTimeline(s)

	letter, err := fold.NewLetter(cfg.Letter, tl)
	if err != nil {
		return nil, fmt.Errorf("stage: letter: %w", err)
	}
	pg, err := page.New(cfg.Page, cfg.Text, tl, s)
	if err != nil {
		return nil, fmt.Errorf("stage: page: %w", err)
	}

	st := &Stage{
		log:      log,
		sched:    s,
		timeline: tl,
		text:     cfg.Text,
		letter:   letter,
		page:     pg,
	}
	letter.Mount()
	pg.Mount()
	log.Debug("stage mounted",
		zap.Int("letter_width", cfg.Letter.Width),
		zap.Int("letter_height", cfg.Letter.Height),
		zap.Float64("section_height", letter.SectionHeight()),
		zap.Int("page_width", cfg.Page.Width),
		zap.Int("page_height", cfg.Page.Height),
	)
	return st, nil
}

// Dispatch routes one event.
func (s *Stage) Dispatch(ev Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	switch ev.Target {
	case TargetLetter:
		s.letter.Click()
	case TargetPage:
		switch ev.Kind {
		case KindClick:
			s.page.Click()
		case KindEnter:
			s.page.PointerEnter()
		case KindLeave:
			s.page.PointerLeave()
		case KindUnmount:
			s.page.Unmount()
		case KindMount:
			if !s.page.Mounted() {
				s.page.Mount()
			}
		case KindReset:
			s.page.Reset()
		}
	}

	s.log.Debug("event",
		zap.Stringer("event", ev),
		zap.Duration("at", s.sched.Now()),
		zap.Stringer("fold", s.letter.State()),
		zap.Bool("page_open", s.page.IsOpen()),
		zap.Bool("hovering", s.page.Hovering()),
		zap.Bool("revealed", s.page.Revealed()),
	)
	return nil
}

// Letter returns the letter component.
func (s *Stage) Letter() *fold.Letter { return s.letter }

// Page returns the page component.
func (s *Stage) Page() *page.Page { return s.page }

// Timeline returns the interpolation engine.
func (s *Stage) Timeline() *anim.Timeline { return s.timeline }

// Snapshot samples both components at the scheduler's current time.
func (s *Stage) Snapshot() Frame {
	f := Frame{
		Index:  s.frames,
		At:     s.sched.Now(),
		Letter: s.letterFrame(),
		Page:   s.pageFrame(),
	}
	s.frames++
	return f
}

func (s *Stage) letterFrame() LetterFrame {
	cfg := s.letter.Config()
	labels := map[fold.Segment]string{
		fold.Top:    s.text.Letter.Top,
		fold.Middle: s.text.Letter.Middle,
		fold.Bottom: s.text.Letter.Bottom,
	}
	lf := LetterFrame{
		Width:         cfg.Width,
		Height:        cfg.Height,
		SectionHeight: s.letter.SectionHeight(),
		Color:         cfg.PaperColor,
		State:         s.letter.State(),
	}
	for _, seg := range fold.Segments() {
		g := s.letter.Geometry(seg)
		lf.Segments = append(lf.Segments, SegmentFrame{
			Segment:    seg,
			Origin:     g.Origin,
			StackOrder: g.StackOrder,
			Label:      labels[seg],
			Props:      s.timeline.Sample(seg.Key()),
		})
	}
	return lf
}

func (s *Stage) pageFrame() PageFrame {
	cfg := s.page.Config()
	struck, year := s.page.TitleYears()
	pf := PageFrame{
		Width:       cfg.Width,
		Height:      cfg.Height,
		FrontColor:  cfg.FrontColor,
		InsideColor: cfg.InsideColor,
		Mounted:     s.page.Mounted(),
		Open:        s.page.IsOpen(),
		Hovering:    s.page.Hovering(),
		Armed:       s.page.RevealArmed(),
		Revealed:    s.page.Revealed(),
		Back:        s.timeline.Sample(page.BackKey),
		Front:       s.timeline.Sample(page.FrontKey),
		TitleLines:  s.page.TitleLines(),
		StruckYear:  struck,
		Year:        year,
		Faces:       make(map[string]FaceFrame, 2),
	}
	if !pf.Mounted {
		return pf
	}
	for _, name := range page.Faces() {
		c := s.page.Face(name)
		v := c.Mounted()
		ff := FaceFrame{
			Variant:   v,
			Exiting:   c.Exiting(),
			Block:     c.Block(),
			Container: s.timeline.Sample(page.BlockKey(name, v)),
		}
		if v == content.Primary {
			ff.Lines = make([]anim.Props, c.Lines())
			for i := range ff.Lines {
				ff.Lines[i] = s.timeline.Sample(page.LineKey(name, v, i))
			}
		}
		pf.Faces[name] = ff
	}
	return pf
}
