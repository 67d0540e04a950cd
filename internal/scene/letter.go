package scene

import (
	"image"
	"sort"

	"paperfold-renderer/internal/anim"
	"paperfold-renderer/internal/fold"
	"paperfold-renderer/internal/mathutil"
	"paperfold-renderer/internal/stage"
	"paperfold-renderer/internal/texture"
)

// Letter container view.
const (
	LetterPerspective = 1200.0
	LetterTiltY       = -30.0
	LetterTiltX       = 15.0
	letterMargin      = 1.3
	labelPadding      = 14
	labelOpacity      = 0.8
)

// Options are render inputs that do not come from the frame.
type Options struct {
	Grain *image.NRGBA // multiplied into every paper face; may be nil
}

// BuildLetter places the three segments of f. Each segment is a
// width×sectionHeight face translated and rotated about its hinge edge,
// then the whole letter is tilted about its centre.
func BuildLetter(f stage.LetterFrame, opt Options) Scene {
	w := float64(f.Width)
	h := float64(f.Height)
	sh := f.SectionHeight
	center := mathutil.Vec3{w / 2, h / 2, 0}
	tilt := mathutil.AboutOrigin(mathutil.Chain(rotY(LetterTiltY), rotX(LetterTiltX)), center)

	segs := append([]stage.SegmentFrame(nil), f.Segments...)
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].StackOrder < segs[j].StackOrder })

	sc := Scene{
		Center:      center,
		Extent:      maxf(w, h) / 2 * letterMargin,
		Perspective: LetterPerspective,
	}
	for _, seg := range segs {
		m := mathutil.Chain(tilt, SegmentTransform(seg, w, sh))
		tex := texture.NewFace(f.Width, int(sh), f.Color, opt.Grain)
		if seg.Label != "" {
			texture.PaintLabel(tex, seg.Label, labelOpacity, labelPadding)
		}
		sc.Quads = append(sc.Quads, Quad{
			Name:    seg.Segment.Key(),
			Corners: rect(m, 0, 0, w, sh),
			Texture: tex,
			Opacity: seg.Props.Get(anim.Opacity),
		})
	}
	return sc
}

// SegmentTransform is translate(0, y, z) rotateX(r) about the segment's
// hinge: the top edge or the bottom edge, centred horizontally.
func SegmentTransform(seg stage.SegmentFrame, width, sectionHeight float64) mathutil.Mat4 {
	origin := mathutil.Vec3{width / 2, 0, 0}
	if seg.Origin == fold.OriginBottom {
		origin[1] = sectionHeight
	}
	return mathutil.Chain(
		mathutil.Translate(0, seg.Props.Get(anim.Y), seg.Props.Get(anim.Z)),
		mathutil.AboutOrigin(rotX(seg.Props.Get(anim.RotateX)), origin),
	)
}
