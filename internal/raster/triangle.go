package raster

import (
	"image"
	"math"
)

// Vertex is a projected triangle corner in framebuffer pixels.
type Vertex struct {
	X, Y float64
	Z    float64 // container-space depth, larger is nearer
	InvW float64 // perspective weight for texture interpolation
	U, V float64
}

// Paint describes how a triangle's pixels are coloured.
type Paint struct {
	Texture *image.NRGBA // nil paints Color
	Color   [4]uint8
	Opacity float64
	Shade   float64
	Gamma   float64 // inverse display gamma
	Blend   bool // composite over the buffer, test depth without writing it
}

// depthBias lets a blended face sit on a coplanar opaque one.
const depthBias = 1e-6

// RasterizeTriangle fills one triangle with a perspective-correct texture
// lookup, flat shading and either an opaque depth write or an "over" blend.
// Winding is not checked here; culling happens per quad.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, p *Paint) {
	x0, y0 := v[0].X, v[0].Y
	x1, y1 := v[1].X, v[1].Y
	x2, y2 := v[2].X, v[2].Y

	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	shade := p.Shade
	invGamma := p.Gamma
	opacity := p.Opacity

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -1e-9 || w1 < -1e-9 || w2 < -1e-9 {
				continue
			}

			z := w0*v[0].Z + w1*v[1].Z + w2*v[2].Z
			zIdx := rowOff + sx
			if p.Blend {
				if z < fb.ZBuf[zIdx]-depthBias || fb.covered[zIdx] == fb.quad {
					continue
				}
			} else if z <= fb.ZBuf[zIdx] {
				continue
			}

			var cr, cg, cb, ca uint8
			if p.Texture != nil {
				iw := w0*v[0].InvW + w1*v[1].InvW + w2*v[2].InvW
				u := (w0*v[0].U*v[0].InvW + w1*v[1].U*v[1].InvW + w2*v[2].U*v[2].InvW) / iw
				t := (w0*v[0].V*v[0].InvW + w1*v[1].V*v[1].InvW + w2*v[2].V*v[2].InvW) / iw
				cr, cg, cb, ca = SampleTexture(p.Texture, u, t)
			} else {
				cr, cg, cb, ca = p.Color[0], p.Color[1], p.Color[2], p.Color[3]
			}

			alpha := float64(ca) / 255 * opacity
			if alpha < 1.0/255 {
				continue
			}

			// sRGB decode → linear (LUT), shade, re-encode
			fr := math.Pow(srgbToLinear[cr]*shade, invGamma) * 255
			fg := math.Pow(srgbToLinear[cg]*shade, invGamma) * 255
			ffb := math.Pow(srgbToLinear[cb]*shade, invGamma) * 255

			pxIdx := zIdx * 4
			if !p.Blend && alpha >= 1 {
				fb.ZBuf[zIdx] = z
				fb.Color[pxIdx] = clamp255(fr)
				fb.Color[pxIdx+1] = clamp255(fg)
				fb.Color[pxIdx+2] = clamp255(ffb)
				fb.Color[pxIdx+3] = 255
				continue
			}
			if p.Blend {
				fb.covered[zIdx] = fb.quad
			} else {
				fb.ZBuf[zIdx] = z
			}
			blendOver(fb.Color[pxIdx:pxIdx+4], fr, fg, ffb, alpha)
		}
	}
}

// blendOver composites a straight-alpha colour over a straight-alpha pixel.
func blendOver(dst []uint8, r, g, b, a float64) {
	da := float64(dst[3]) / 255
	outA := a + da*(1-a)
	if outA <= 0 {
		return
	}
	k := da * (1 - a)
	dst[0] = clamp255((r*a + float64(dst[0])*k) / outA)
	dst[1] = clamp255((g*a + float64(dst[1])*k) / outA)
	dst[2] = clamp255((b*a + float64(dst[2])*k) / outA)
	dst[3] = clamp255(outA * 255)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
