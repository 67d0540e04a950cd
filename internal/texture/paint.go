package texture

import (
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"paperfold-renderer/internal/anim"
	"paperfold-renderer/internal/content"
	"paperfold-renderer/internal/mathutil"
)

// Ink is the text colour on every face.
var Ink = color.NRGBA{0x1a, 0x1a, 0x1a, 0xff}

// Text metrics of the built-in 7×13 face.
const (
	glyphAscent = 11
	lineHeight  = 16
	blockGap    = 10
	itemGap     = 4
	itemIndent  = 12
	titleScale  = 2
)

var face font.Face = basicfont.Face7x13

// NewFace returns a w×h face filled with bg, multiplied by grain when given.
func NewFace(w, h int, bg color.NRGBA, grain *image.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	if grain != nil {
		ApplyGrain(img, grain)
	}
	return img
}

// ApplyGrain multiplies img by grain, tiling grain across img.
func ApplyGrain(img, grain *image.NRGBA) {
	gb := grain.Bounds()
	gw, gh := gb.Dx(), gb.Dy()
	if gw == 0 || gh == 0 {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gi := grain.PixOffset(gb.Min.X+(x-b.Min.X)%gw, gb.Min.Y+(y-b.Min.Y)%gh)
			i := img.PixOffset(x, y)
			for k := 0; k < 3; k++ {
				img.Pix[i+k] = uint8(uint16(img.Pix[i+k]) * uint16(grain.Pix[gi+k]) / 255)
			}
		}
	}
}

// PaintLabel draws a single faded line of text in the top-left corner.
func PaintLabel(dst *image.NRGBA, text string, opacity float64, padding int) {
	ink := Ink
	ink.A = uint8(255*mathutil.Clamp01(opacity) + 0.5)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.P(dst.Bounds().Min.X+padding, dst.Bounds().Min.Y+padding+glyphAscent),
	}
	d.DrawString(text)
}

// FaceText is a text block with its sampled animation state.
type FaceText struct {
	Block     content.Block
	Container anim.Props
	Lines     []anim.Props // per-line poses; nil animates the block as a whole
	Padding   int
}

// PaintBlock lays out ft.Block inside dst and composites every line with
// its own opacity, fall offset and rotateX squash, then the container's
// opacity, offset, tilt and scale about the face centre.
func PaintBlock(dst *image.NRGBA, ft FaceText) {
	b := dst.Bounds()
	width := b.Dx() - 2*ft.Padding
	if width <= 0 {
		return
	}

	cOpacity := ft.Container.Get(anim.Opacity)
	if cOpacity <= 0 {
		return
	}
	cScale := ft.Container.Get(anim.Scale)
	cSquash := math.Abs(math.Cos(mathutil.Deg2Rad(ft.Container.Get(anim.RotateX))))
	cShift := ft.Container.Get(anim.Y)
	cx := float64(b.Min.X) + float64(b.Dx())/2
	cy := float64(b.Min.Y) + float64(b.Dy())/2

	y := float64(b.Min.Y + ft.Padding)
	for i, line := range ft.Block.Lines {
		img := RenderLine(line, width)
		h := float64(img.Bounds().Dy())

		pose := anim.Props{}
		if i < len(ft.Lines) {
			pose = ft.Lines[i]
		}
		alpha := cOpacity * pose.Get(anim.Opacity)
		squash := math.Abs(math.Cos(mathutil.Deg2Rad(pose.Get(anim.RotateX))))
		// Lines pivot on their bottom edge.
		top := y + h - h*squash + pose.Get(anim.Y)

		sx := cScale
		sy := cScale * cSquash * squash
		tx := cx + (float64(b.Min.X+ft.Padding)-cx)*cScale
		ty := cy + (top-cy)*cScale*cSquash + cShift
		composite(dst, img, f64.Aff3{sx, 0, tx, 0, sy, ty}, alpha)

		y += h + blockGap
	}
}

// PaintTitle draws the centred outer-face heading. When struck is set it is
// shown crossed out and faded before year.
func PaintTitle(dst *image.NRGBA, lines []string, struck, year string) {
	b := dst.Bounds()
	rows := make([]*image.NRGBA, 0, len(lines)+1)
	for _, l := range lines {
		rows = append(rows, renderText(l, true))
	}
	rows = append(rows, renderYear(struck, year))

	total := float64(len(rows)*lineHeight*titleScale) * 1.2
	y := float64(b.Min.Y) + (float64(b.Dy())-total)/2
	for _, r := range rows {
		w := float64(r.Bounds().Dx() * titleScale)
		x := float64(b.Min.X) + (float64(b.Dx())-w)/2
		composite(dst, r, f64.Aff3{titleScale, 0, x, 0, titleScale, y}, 1)
		y += float64(lineHeight*titleScale) * 1.2
	}
}

func renderYear(struck, year string) *image.NRGBA {
	if struck == "" {
		return renderText(year, true)
	}
	old := renderText(struck, true)
	cur := renderText(year, true)
	gap := 8
	ow, cw := old.Bounds().Dx(), cur.Bounds().Dx()
	img := image.NewNRGBA(image.Rect(0, 0, ow+gap+cw, lineHeight))

	fadeAlpha := 0.7
	faded := image.NewUniform(color.Alpha{uint8(255 * fadeAlpha)})
	draw.DrawMask(img, old.Bounds(), old, image.Point{}, faded, image.Point{}, draw.Over)
	strike := Ink
	strike.A = uint8(255 * fadeAlpha)
	draw.Draw(img, image.Rect(0, lineHeight/2-1, ow, lineHeight/2+1), image.NewUniform(strike), image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(ow+gap, 0, ow+gap+cw, lineHeight), cur, image.Point{}, draw.Over)
	return img
}

// RenderLine lays out one block line at the given width on a transparent image.
func RenderLine(l content.Line, width int) *image.NRGBA {
	var rows []string
	indent := 0
	switch l.Kind {
	case content.List:
		indent = itemIndent
		for _, item := range l.Items {
			wrapped := Wrap(item, width-indent-2*advance())
			for j, w := range wrapped {
				if j == 0 {
					rows = append(rows, "- "+w)
				} else {
					rows = append(rows, "  "+w)
				}
			}
		}
	default:
		rows = Wrap(l.Text, width)
	}
	if len(rows) == 0 {
		rows = []string{""}
	}

	h := len(rows) * lineHeight
	if l.Kind == content.List && len(l.Items) > 1 {
		h += (len(l.Items) - 1) * itemGap
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, h))
	d := font.Drawer{Dst: img, Src: image.NewUniform(Ink), Face: face}
	y := glyphAscent
	for j, r := range rows {
		if l.Kind == content.List && j > 0 && !strings.HasPrefix(r, "  ") {
			y += itemGap
		}
		d.Dot = fixed.P(indent, y)
		d.DrawString(r)
		if l.Kind == content.Heading {
			d.Dot = fixed.P(indent+1, y)
			d.DrawString(r)
		}
		y += lineHeight
	}
	return img
}

func renderText(s string, bold bool) *image.NRGBA {
	w := font.MeasureString(face, s).Ceil() + 1
	if w < 1 {
		w = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, lineHeight))
	d := font.Drawer{Dst: img, Src: image.NewUniform(Ink), Face: face, Dot: fixed.P(0, glyphAscent)}
	d.DrawString(s)
	if bold {
		d.Dot = fixed.P(1, glyphAscent)
		d.DrawString(s)
	}
	return img
}

// Wrap breaks s into rows no wider than width pixels. A word wider than
// width gets a row of its own.
func Wrap(s string, width int) []string {
	words := strings.Fields(s)
	var rows []string
	cur := ""
	for _, w := range words {
		next := w
		if cur != "" {
			next = cur + " " + w
		}
		if cur != "" && font.MeasureString(face, next).Ceil() > width {
			rows = append(rows, cur)
			cur = w
			continue
		}
		cur = next
	}
	if cur != "" {
		rows = append(rows, cur)
	}
	return rows
}

func advance() int {
	a, _ := face.GlyphAdvance('m')
	return a.Ceil()
}

// composite draws src into dst through the src→dst affine map at the given alpha.
func composite(dst, src *image.NRGBA, s2d f64.Aff3, alpha float64) {
	alpha = mathutil.Clamp01(alpha)
	if alpha <= 0 || math.Abs(s2d[0]) < 1e-6 || math.Abs(s2d[4]) < 1e-6 {
		return
	}
	opts := &draw.Options{SrcMask: image.NewUniform(color.Alpha{uint8(255*alpha + 0.5)})}
	draw.ApproxBiLinear.Transform(dst, s2d, src, src.Bounds(), draw.Over, opts)
}
