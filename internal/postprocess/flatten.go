package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Flatten composites img over a solid background and returns an opaque copy.
func Flatten(img *image.NRGBA, bg color.NRGBA) *image.NRGBA {
	bg.A = 0xff
	dst := image.NewNRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Over)
	return dst
}
