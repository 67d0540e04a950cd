// Package fold computes the three-segment fold of a letter and the click
// cycle that moves it between open, folded and closed.
package fold

import (
	"errors"
	"fmt"
	"math"

	"paperfold-renderer/internal/anim"
	"paperfold-renderer/internal/mathutil"
)

const (
	// MiddleRotation is the tilt of the middle segment when folded, in degrees.
	MiddleRotation = -85.0
	// ClosedRotation stops one degree short of a half turn. Rotating exactly
	// to -180 leaves the interpolated face normal undefined at the end.
	ClosedRotation = -179.0
	// closedBottomZ keeps the closed bottom segment just behind the middle one.
	closedBottomZ = -0.1
)

// ErrInvalidSize is returned for non-positive letter dimensions.
var ErrInvalidSize = errors.New("fold: width and height must be positive")

// Origin is the edge a segment rotates around.
type Origin int

const (
	OriginTop Origin = iota
	OriginBottom
)

func (o Origin) String() string {
	if o == OriginBottom {
		return "bottom"
	}
	return "top"
}

// Geometry is the 3D placement of one segment in one state.
type Geometry struct {
	RotationX  float64 // degrees
	TranslateY float64 // px, downward
	TranslateZ float64 // px, toward the viewer
	Origin     Origin
	StackOrder int
	Opacity    float64
}

// Props converts the animatable part of g into interpolator targets.
func (g Geometry) Props() anim.Props {
	return anim.Props{
		anim.RotateX: g.RotationX,
		anim.Y:       g.TranslateY,
		anim.Z:       g.TranslateZ,
		anim.Opacity: g.Opacity,
	}
}

// BottomOffsets returns how far the bottom segment drops and recedes when the
// middle segment hinges back by |MiddleRotation| around its top edge.
func BottomOffsets(sectionHeight float64) (offsetY, offsetZ float64) {
	a := math.Abs(mathutil.Deg2Rad(MiddleRotation))
	return sectionHeight * math.Cos(a), sectionHeight * math.Sin(a)
}

// SectionHeight splits the letter height into three whole-pixel sections.
func SectionHeight(height int) float64 {
	return math.Floor(float64(height) / 3)
}

// Table holds the geometry of every segment in every state.
type Table [segmentCount][stateCount]Geometry

// Engine serves fold geometry for one section height.
type Engine struct {
	sectionHeight float64
	table         Table
	filled        [segmentCount][stateCount]bool
}

// NewEngine builds the geometry table for a letter of the given height.
func NewEngine(height int) (*Engine, error) {
	if height <= 0 {
		return nil, fmt.Errorf("%w: height %d", ErrInvalidSize, height)
	}
	e := &Engine{sectionHeight: SectionHeight(height)}
	e.build()
	return e, nil
}

func (e *Engine) build() {
	sh := e.sectionHeight
	offY, offZ := BottomOffsets(sh)

	flat := Geometry{Origin: OriginBottom, StackOrder: 2, Opacity: 1}
	e.put(Top, Open, flat)
	e.put(Top, Folded, flat)
	e.put(Top, Closed, flat)

	e.put(Middle, Open, Geometry{TranslateY: sh, Origin: OriginTop, StackOrder: 3, Opacity: 1})
	e.put(Middle, Folded, Geometry{RotationX: MiddleRotation, TranslateY: sh, Origin: OriginTop, StackOrder: 3, Opacity: 1})
	e.put(Middle, Closed, Geometry{RotationX: ClosedRotation, TranslateY: sh / 2, Origin: OriginTop, StackOrder: 1, Opacity: 0})

	e.put(Bottom, Open, Geometry{TranslateY: 2 * sh, Origin: OriginTop, StackOrder: 1, Opacity: 1})
	e.put(Bottom, Folded, Geometry{TranslateY: sh + offY, TranslateZ: -offZ, Origin: OriginTop, StackOrder: 1, Opacity: 1})
	e.put(Bottom, Closed, Geometry{RotationX: ClosedRotation, TranslateY: sh / 2, TranslateZ: closedBottomZ, Origin: OriginTop, StackOrder: 1, Opacity: 0})
}

func (e *Engine) put(seg Segment, st State, g Geometry) {
	e.table[seg][st] = g
	e.filled[seg][st] = true
}

// SectionHeight returns the height of one segment in px.
func (e *Engine) SectionHeight() float64 {
	return e.sectionHeight
}

// Geometry returns the placement of seg in state st.
func (e *Engine) Geometry(seg Segment, st State) Geometry {
	return e.table[seg][st]
}

// Table returns a copy of the full table.
func (e *Engine) Table() Table {
	return e.table
}

// Validate reports a segment/state pair the table does not define.
func (e *Engine) Validate() error {
	for _, seg := range Segments() {
		for _, st := range States() {
			if !e.filled[seg][st] {
				return fmt.Errorf("fold: no geometry for %s/%s", seg, st)
			}
		}
	}
	return nil
}
