package scene

import (
	"image"
	"image/color"

	"paperfold-renderer/internal/anim"
	"paperfold-renderer/internal/mathutil"
	"paperfold-renderer/internal/page"
	"paperfold-renderer/internal/stage"
	"paperfold-renderer/internal/texture"
)

// Page view.
const (
	PagePerspective = 1000.0
	pageMargin      = 1.1
	facePadding     = 24
	frontLift       = 1.0 // front stack sits just above the back face
)

// BuildPage places the back face with its shadow and the flipping front
// stack. Both hinge on the page's left edge; the page centre sits on that
// edge so an opened page spreads evenly to both sides.
func BuildPage(f stage.PageFrame, opt Options) Scene {
	w := float64(f.Width)
	h := float64(f.Height)
	sc := Scene{
		Center:      mathutil.Vec3{0, h / 2, 0},
		Extent:      maxf(w, h/2) * pageMargin,
		Perspective: PagePerspective,
	}
	if !f.Mounted {
		return sc
	}
	hinge := mathutil.Vec3{0, h / 2, 0}

	back := mathutil.AboutOrigin(mathutil.Chain(rotY(f.Back.Get(anim.RotateY)), skewY(f.Back.Get(anim.SkewY))), hinge)
	if a := f.Back.Get(anim.ShadowAlpha); a > 0 {
		blur := f.Back.Get(anim.ShadowBlur)
		dy := f.Back.Get(anim.ShadowY)
		sc.Quads = append(sc.Quads, Quad{
			Name:    page.BackKey + "/shadow",
			Corners: rect(mathutil.Chain(mathutil.Translate(0, 0, -0.5), back), -blur/2, dy-blur/2, w+blur, h+blur),
			Color:   color.NRGBA{0, 0, 0, 0xff},
			Opacity: a,
			Shadow:  true,
		})
	}
	sc.Quads = append(sc.Quads, Quad{
		Name:    page.BackKey,
		Corners: rect(back, 0, 0, w, h),
		Texture: faceTexture(f, page.FaceBack, opt),
		Opacity: 1,
	})

	front := mathutil.Chain(
		mathutil.Translate(0, 0, frontLift),
		mathutil.AboutOrigin(rotY(f.Front.Get(anim.RotateY)), hinge),
	)
	outer := texture.NewFace(f.Width, f.Height, f.FrontColor, opt.Grain)
	texture.PaintTitle(outer, f.TitleLines, f.StruckYear, f.Year)
	sc.Quads = append(sc.Quads, Quad{
		Name:           page.FrontKey + "/outer",
		Corners:        rect(front, 0, 0, w, h),
		Texture:        outer,
		Opacity:        1,
		BackfaceHidden: true,
	})

	inner := mathutil.Chain(front, mathutil.AboutOrigin(rotY(180), mathutil.Vec3{w / 2, h / 2, 0}))
	sc.Quads = append(sc.Quads, Quad{
		Name:           page.FrontKey + "/inner",
		Corners:        rect(inner, 0, 0, w, h),
		Texture:        faceTexture(f, page.FaceInner, opt),
		Opacity:        1,
		BackfaceHidden: true,
	})
	return sc
}

func faceTexture(f stage.PageFrame, name string, opt Options) *image.NRGBA {
	img := texture.NewFace(f.Width, f.Height, f.InsideColor, opt.Grain)
	ff, ok := f.Faces[name]
	if !ok {
		return img
	}
	texture.PaintBlock(img, texture.FaceText{
		Block:     ff.Block,
		Container: ff.Container,
		Lines:     ff.Lines,
		Padding:   facePadding,
	})
	return img
}
