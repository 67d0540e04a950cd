package page

import (
	"fmt"

	"paperfold-renderer/internal/anim"
	"paperfold-renderer/internal/content"
	"paperfold-renderer/internal/sched"
)

// Face names the content-bearing faces of the page.
const (
	FaceBack  = "back"
	FaceInner = "inner"
)

// Faces lists the content-bearing faces.
func Faces() []string {
	return []string{FaceBack, FaceInner}
}

// Page is the flippable booklet. Click toggles it open; resting the
// pointer on an open page for RevealDelay swaps in the hidden text.
type Page struct {
	cfg   Config
	text  content.Set
	anim  anim.Interpolator
	sched sched.Scheduler

	open    bool
	mounted bool
	hover   *HoverReveal
	faces   map[string]*Choreographer
}

// New creates a closed page.
func New(cfg Config, text content.Set, interp anim.Interpolator, s sched.Scheduler) (*Page, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := text.Validate(); err != nil {
		return nil, fmt.Errorf("page: %w", err)
	}
	p := &Page{
		cfg:   cfg,
		text:  text,
		anim:  interp,
		sched: s,
		faces: map[string]*Choreographer{
			FaceBack:  NewChoreographer(FaceBack, text.Back, interp, s),
			FaceInner: NewChoreographer(FaceInner, text.Inner, interp, s),
		},
	}
	p.hover = NewHoverReveal(s, RevealDelay, p.reveal)
	return p, nil
}

// Mount declares the closed geometry and primary text without animating.
// Mounting again starts from a fresh closed page.
func (p *Page) Mount() {
	if p.mounted {
		p.Unmount()
	}
	p.mounted = true
	p.open = false
	p.hover.Reset()
	p.anim.Set(BackKey, flipState(p.open), Back(p.cfg, p.open).Props())
	p.anim.Set(FrontKey, flipState(p.open), anim.Props{anim.RotateY: FrontRotation(p.open)})
	for _, name := range Faces() {
		p.faces[name].Mount(content.Primary)
	}
}

// Click toggles the page and animates both containers.
func (p *Page) Click() bool {
	if !p.mounted {
		return p.open
	}
	p.flip(!p.open)
	return p.open
}

func (p *Page) flip(open bool) {
	p.open = open
	tr := FlipTransition()
	p.anim.Animate(BackKey, flipState(p.open), Back(p.cfg, p.open).Props(), tr)
	p.anim.Animate(FrontKey, flipState(p.open), anim.Props{anim.RotateY: FrontRotation(p.open)}, tr)
	if !p.open {
		p.PointerLeave()
	}
}

// PointerEnter starts the reveal timer. Ignored while closed.
func (p *Page) PointerEnter() {
	if !p.mounted || !p.open {
		return
	}
	p.hover.Enter()
	p.setHovering(true)
}

// PointerLeave stops the reveal timer.
func (p *Page) PointerLeave() {
	if !p.mounted {
		return
	}
	p.hover.Leave()
	p.setHovering(false)
}

// Unmount cancels every pending timer and drops the page's elements.
// Events after Unmount do nothing.
func (p *Page) Unmount() {
	if !p.mounted {
		return
	}
	p.mounted = false
	p.hover.Release()
	for _, name := range Faces() {
		p.faces[name].Release()
	}
	p.anim.Remove(BackKey)
	p.anim.Remove(FrontKey)
}

// Reset closes the page, clears the reveal latch and brings the primary
// text back, animating from wherever the page is.
func (p *Page) Reset() {
	if !p.mounted {
		return
	}
	if p.open {
		p.flip(false)
	}
	p.hover.Reset()
	for _, name := range Faces() {
		c := p.faces[name]
		c.SetHovering(false)
		c.Show(content.Primary)
	}
}

func (p *Page) reveal() {
	for _, name := range Faces() {
		p.faces[name].Show(content.Alternate)
	}
}

func (p *Page) setHovering(h bool) {
	for _, name := range Faces() {
		p.faces[name].SetHovering(h)
	}
}

// IsOpen reports whether the page is open.
func (p *Page) IsOpen() bool { return p.open }

// Mounted reports whether the page is mounted.
func (p *Page) Mounted() bool { return p.mounted }

// Hovering reports whether the pointer rests on the page.
func (p *Page) Hovering() bool { return p.hover.Hovering() }

// Revealed reports whether the hidden content has been revealed.
func (p *Page) Revealed() bool { return p.hover.Revealed() }

// RevealArmed reports whether the reveal timer is pending.
func (p *Page) RevealArmed() bool { return p.hover.Armed() }

// Face returns the choreographer of a content face.
func (p *Page) Face(name string) *Choreographer { return p.faces[name] }

// Config returns the page configuration.
func (p *Page) Config() Config { return p.cfg }

// TitleYears returns the struck-through year and the current year of the
// outer face. struck is empty until the content is revealed.
func (p *Page) TitleYears() (struck, current string) {
	lines := p.text.Title.Lines
	year := lines[len(lines)-1]
	if p.hover.Revealed() {
		return year, p.text.Title.Revealed
	}
	return "", year
}

// TitleLines returns the outer face heading without the year line.
func (p *Page) TitleLines() []string {
	lines := p.text.Title.Lines
	return lines[:len(lines)-1]
}
