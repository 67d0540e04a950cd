package stage

import (
	"image/color"
	"time"

	"paperfold-renderer/internal/anim"
	"paperfold-renderer/internal/content"
	"paperfold-renderer/internal/fold"
)

// Frame is an immutable sample of both components at one instant.
// Renderers work only from frames, so they may run off the event thread.
type Frame struct {
	Index  int
	At     time.Duration
	Letter LetterFrame
	Page   PageFrame
}

// SegmentFrame is one sampled letter segment.
type SegmentFrame struct {
	Segment    fold.Segment
	Origin     fold.Origin
	StackOrder int
	Label      string
	Props      anim.Props
}

// LetterFrame is the sampled letter.
type LetterFrame struct {
	Width         int
	Height        int
	SectionHeight float64
	Color         color.NRGBA
	State         fold.State
	Segments      []SegmentFrame
}

// FaceFrame is the sampled text of one content face.
type FaceFrame struct {
	Variant   content.Variant
	Exiting   bool
	Block     content.Block
	Container anim.Props
	Lines     []anim.Props // per line for primary; empty for alternate
}

// PageFrame is the sampled page.
type PageFrame struct {
	Width       int
	Height      int
	FrontColor  color.NRGBA
	InsideColor color.NRGBA

	Mounted  bool
	Open     bool
	Hovering bool
	Armed    bool
	Revealed bool

	Back  anim.Props
	Front anim.Props

	TitleLines []string
	StruckYear string
	Year       string

	Faces map[string]FaceFrame
}
