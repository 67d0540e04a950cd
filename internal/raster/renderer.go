package raster

import (
	"image"

	"paperfold-renderer/internal/scene"
)

// Corner texture coordinates in quad corner order.
var quadUV = [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Render rasterizes a scene to a (size*supersample)² NRGBA image over a
// transparent background. Callers downsample the result.
func Render(sc scene.Scene, size, supersample int, lc LightConfig) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample
	fb := NewFrameBuffer(renderSize, renderSize)
	for _, q := range sc.Ordered() {
		DrawQuad(fb, sc, q, &lc)
	}
	return fb.Image()
}

// DrawQuad projects q into fb and fills it as two triangles. A quad whose
// projection winds counter-clockwise shows its back; hidden backfaces are
// skipped.
func DrawQuad(fb *FrameBuffer, sc scene.Scene, q scene.Quad, lc *LightConfig) {
	var v [4]Vertex
	for i, c := range q.Corners {
		x, y, invW := sc.Project(c)
		v[i] = Vertex{
			X:    x * float64(fb.Width),
			Y:    y * float64(fb.Height),
			Z:    c[2],
			InvW: invW,
			U:    quadUV[i][0],
			V:    quadUV[i][1],
		}
	}

	if q.BackfaceHidden && SignedArea(v) <= 0 {
		return
	}

	p := Paint{
		Texture: q.Texture,
		Color:   [4]uint8{q.Color.R, q.Color.G, q.Color.B, q.Color.A},
		Opacity: q.Opacity,
		Shade:   1,
		Gamma:   lc.InvGamma,
		Blend:   q.Translucent(),
	}
	if !q.Shadow {
		p.Shade = lc.ComputeShade(q.Normal())
	}
	fb.BeginQuad()
	RasterizeTriangle(fb, [3]Vertex{v[0], v[1], v[2]}, &p)
	RasterizeTriangle(fb, [3]Vertex{v[0], v[2], v[3]}, &p)
}

// SignedArea is the shoelace area of the projected quad. With y pointing
// down, a face seen from the front has positive area.
func SignedArea(v [4]Vertex) float64 {
	var a float64
	for i := range v {
		j := (i + 1) % 4
		a += v[i].X*v[j].Y - v[j].X*v[i].Y
	}
	return a / 2
}
