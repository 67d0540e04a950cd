// Package page models the flippable booklet page: a click-driven flip,
// a hover timer that reveals hidden text, and the choreography that swaps
// the text on each face.
package page

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"paperfold-renderer/internal/anim"
)

// ErrInvalidSize is returned for non-positive page dimensions.
var ErrInvalidSize = errors.New("page: width and height must be positive")

// Element keys of the two flipping containers.
const (
	BackKey  = "page/back"
	FrontKey = "page/front"
)

// FlipDuration is the length of the open/close animation.
const FlipDuration = 800 * time.Millisecond

// Config sizes, colours and tilts a page.
type Config struct {
	Width           int
	Height          int
	FrontColor      color.NRGBA
	InsideColor     color.NRGBA
	InitialRotation float64 // degrees the back face is turned while closed
	SkewAngle       float64 // degrees of vertical shear while closed
}

// DefaultConfig returns a 300×400 page ajar by 35° with a -15° shear.
func DefaultConfig() Config {
	return Config{
		Width:           300,
		Height:          400,
		FrontColor:      color.NRGBA{0xe0, 0xe0, 0xe0, 0xff},
		InsideColor:     color.NRGBA{0xff, 0xff, 0xff, 0xff},
		InitialRotation: 35,
		SkewAngle:       -15,
	}
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	return nil
}

// Shadow is a drop shadow below a face.
type Shadow struct {
	OffsetY float64
	Blur    float64
	Alpha   float64
}

var (
	restingShadow = Shadow{OffsetY: 1, Blur: 3, Alpha: 0.12}
	liftedShadow  = Shadow{OffsetY: 4, Blur: 6, Alpha: 0.15}
)

// BackGeometry is the placement of the back face.
type BackGeometry struct {
	RotateY float64
	SkewY   float64
	Shadow  Shadow
}

// Props converts g into interpolator targets.
func (g BackGeometry) Props() anim.Props {
	return anim.Props{
		anim.RotateY:     g.RotateY,
		anim.SkewY:       g.SkewY,
		anim.ShadowY:     g.Shadow.OffsetY,
		anim.ShadowBlur:  g.Shadow.Blur,
		anim.ShadowAlpha: g.Shadow.Alpha,
	}
}

// Back returns the back face placement. Closed, it sits ajar and sheared
// under a heavier shadow; open, it lies flat.
func Back(cfg Config, open bool) BackGeometry {
	if open {
		return BackGeometry{Shadow: restingShadow}
	}
	return BackGeometry{RotateY: cfg.InitialRotation, SkewY: cfg.SkewAngle, Shadow: liftedShadow}
}

// FrontRotation returns the rotateY of the front stack. The inner face is
// pre-turned 180° in its own frame, so it shows once the stack reaches -180.
func FrontRotation(open bool) float64 {
	if open {
		return -180
	}
	return 0
}

// FlipTransition animates both containers on every toggle.
func FlipTransition() anim.Transition {
	return anim.Transition{Timing: anim.Timing{Duration: FlipDuration, Ease: anim.EaseInOut}}
}

func flipState(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}
