package fold

import (
	"fmt"
	"image/color"
	"time"

	"paperfold-renderer/internal/anim"
)

// Transition timings of the fold cycle.
const (
	FoldDuration    = 800 * time.Millisecond
	OpacityDelay    = 200 * time.Millisecond
	OpacityDuration = 600 * time.Millisecond
)

// FoldTransition is handed to the interpolator on every state change.
// Opacity lags the geometry so the snap near full fold is hidden.
func FoldTransition() anim.Transition {
	return anim.Transition{
		Timing: anim.Timing{Duration: FoldDuration, Ease: anim.EaseFold},
		Overrides: map[anim.Property]anim.Timing{
			anim.Opacity: {Duration: OpacityDuration, Delay: OpacityDelay},
		},
	}
}

// LetterConfig sizes and colours a letter.
type LetterConfig struct {
	Width      int
	Height     int
	PaperColor color.NRGBA
}

// DefaultLetterConfig returns a 300×400 light gray letter.
func DefaultLetterConfig() LetterConfig {
	return LetterConfig{
		Width:      300,
		Height:     400,
		PaperColor: color.NRGBA{0xf5, 0xf5, 0xf5, 0xff},
	}
}

// Letter is the folding surface. Its only input is Click.
type Letter struct {
	cfg    LetterConfig
	engine *Engine
	anim   anim.Interpolator
	state  State
}

// NewLetter creates an open letter.
func NewLetter(cfg LetterConfig, interp anim.Interpolator) (*Letter, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	engine, err := NewEngine(cfg.Height)
	if err != nil {
		return nil, err
	}
	return &Letter{cfg: cfg, engine: engine, anim: interp, state: Open}, nil
}

// Mount declares the initial segment placement without animating.
func (l *Letter) Mount() {
	for _, seg := range Segments() {
		l.anim.Set(seg.Key(), l.state.String(), l.engine.Geometry(seg, l.state).Props())
	}
}

// Click advances the fold cycle and animates every segment to the new state.
func (l *Letter) Click() State {
	l.state = l.state.Next()
	tr := FoldTransition()
	for _, seg := range Segments() {
		l.anim.Animate(seg.Key(), l.state.String(), l.engine.Geometry(seg, l.state).Props(), tr)
	}
	return l.state
}

// State returns the current fold state.
func (l *Letter) State() State {
	return l.state
}

// Geometry returns the target placement of seg in the current state.
func (l *Letter) Geometry(seg Segment) Geometry {
	return l.engine.Geometry(seg, l.state)
}

// Config returns the letter configuration.
func (l *Letter) Config() LetterConfig {
	return l.cfg
}

// SectionHeight returns the height of one segment.
func (l *Letter) SectionHeight() float64 {
	return l.engine.SectionHeight()
}
