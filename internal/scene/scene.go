// Package scene turns sampled frames into flat textured quads placed in
// container space, ready for the rasterizer.
package scene

import (
	"image"
	"image/color"
	"math"
	"sort"

	"paperfold-renderer/internal/mathutil"
)

// Quad is one rectangular face. Corners run top-left, top-right,
// bottom-right, bottom-left in the face's own frame, so a quad whose
// projection winds clockwise on screen is facing the viewer.
type Quad struct {
	Name           string
	Corners        [4]mathutil.Vec3
	Texture        *image.NRGBA // nil paints Color
	Color          color.NRGBA
	Opacity        float64
	BackfaceHidden bool
	Shadow         bool
}

// Depth is the mean z of the corners.
func (q Quad) Depth() float64 {
	return (q.Corners[0][2] + q.Corners[1][2] + q.Corners[2][2] + q.Corners[3][2]) / 4
}

// Normal is the unit normal of the face in container space, pointing out
// of its front side.
func (q Quad) Normal() mathutil.Vec3 {
	e1 := q.Corners[1].Sub(q.Corners[0])
	e2 := q.Corners[3].Sub(q.Corners[0])
	return e1.Cross(e2).Normalize()
}

// Translucent reports whether the quad must be blended over what is behind it.
func (q Quad) Translucent() bool {
	return q.Shadow || q.Opacity < 1
}

// Scene is a set of quads viewed through a CSS-style perspective.
type Scene struct {
	Center      mathutil.Vec3 // perspective origin, z=0 plane
	Extent      float64       // half the side of the square viewport, container px
	Perspective float64       // distance from the viewer to the z=0 plane
	Quads       []Quad
}

// Project maps a container-space point to normalized viewport coordinates
// in [0,1] and returns the perspective weight 1/w.
func (s Scene) Project(p mathutil.Vec3) (x, y, invW float64) {
	invW = 1
	if s.Perspective > 0 {
		w := (s.Perspective - p[2]) / s.Perspective
		if w < 1e-3 {
			w = 1e-3
		}
		invW = 1 / w
	}
	x = s.Center[0] + (p[0]-s.Center[0])*invW
	y = s.Center[1] + (p[1]-s.Center[1])*invW
	x = (x - (s.Center[0] - s.Extent)) / (2 * s.Extent)
	y = (y - (s.Center[1] - s.Extent)) / (2 * s.Extent)
	return x, y, invW
}

// Ordered returns the visible quads with opaque ones first, then the
// translucent ones from back to front.
func (s Scene) Ordered() []Quad {
	var opaque, blended []Quad
	for _, q := range s.Quads {
		if q.Opacity <= 0 {
			continue
		}
		if q.Translucent() {
			blended = append(blended, q)
		} else {
			opaque = append(opaque, q)
		}
	}
	sort.SliceStable(blended, func(i, j int) bool {
		return blended[i].Depth() < blended[j].Depth()
	})
	return append(opaque, blended...)
}

// rect returns the corners of a w×h face at the origin, transformed by m.
func rect(m mathutil.Mat4, x0, y0, w, h float64) [4]mathutil.Vec3 {
	return [4]mathutil.Vec3{
		m.MulPoint(mathutil.Vec3{x0, y0, 0}),
		m.MulPoint(mathutil.Vec3{x0 + w, y0, 0}),
		m.MulPoint(mathutil.Vec3{x0 + w, y0 + h, 0}),
		m.MulPoint(mathutil.Vec3{x0, y0 + h, 0}),
	}
}

func rotX(deg float64) mathutil.Mat4 { return mathutil.Linear(mathutil.RotX(mathutil.Deg2Rad(deg))) }
func rotY(deg float64) mathutil.Mat4 { return mathutil.Linear(mathutil.RotY(mathutil.Deg2Rad(deg))) }
func skewY(deg float64) mathutil.Mat4 {
	return mathutil.Linear(mathutil.SkewY(mathutil.Deg2Rad(deg)))
}

func maxf(a, b float64) float64 { return math.Max(a, b) }
