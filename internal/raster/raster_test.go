package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperfold-renderer/internal/mathutil"
	"paperfold-renderer/internal/scene"
)

// flatLight leaves colours untouched.
var flatLight = LightConfig{LightDir: mathutil.Vec3{0, 0, 1}, Ambient: 0, Direct: 1, InvGamma: 1 / 2.2}

func square(x0, y0, x1, y1, z float64) [4]mathutil.Vec3 {
	return [4]mathutil.Vec3{{x0, y0, z}, {x1, y0, z}, {x1, y1, z}, {x0, y1, z}}
}

func mirrored(c [4]mathutil.Vec3) [4]mathutil.Vec3 {
	return [4]mathutil.Vec3{c[1], c[0], c[3], c[2]}
}

func orthoScene(quads ...scene.Quad) scene.Scene {
	return scene.Scene{Center: mathutil.Vec3{50, 50, 0}, Extent: 50, Quads: quads}
}

func solid(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestRender_OpaqueQuad(t *testing.T) {
	red := color.NRGBA{200, 10, 10, 255}
	img := Render(orthoScene(scene.Quad{Corners: square(25, 25, 75, 75, 0), Texture: solid(red), Opacity: 1}), 100, 1, flatLight)
	require.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())

	got := img.NRGBAAt(50, 50)
	assert.Equal(t, uint8(255), got.A)
	assert.InDelta(t, 200, int(got.R), 2)
	assert.Equal(t, uint8(0), img.NRGBAAt(5, 5).A)
}

func TestRender_NearerQuadWinsRegardlessOfOrder(t *testing.T) {
	red := solid(color.NRGBA{255, 0, 0, 255})
	blue := solid(color.NRGBA{0, 0, 255, 255})
	sc := orthoScene(
		scene.Quad{Corners: square(20, 20, 80, 80, 10), Texture: blue, Opacity: 1},
		scene.Quad{Corners: square(20, 20, 80, 80, 0), Texture: red, Opacity: 1},
	)
	got := Render(sc, 100, 1, flatLight).NRGBAAt(50, 50)
	assert.Greater(t, got.B, got.R)
}

func TestRender_HiddenBackfaceIsCulled(t *testing.T) {
	red := solid(color.NRGBA{255, 0, 0, 255})
	q := scene.Quad{Corners: mirrored(square(25, 25, 75, 75, 0)), Texture: red, Opacity: 1, BackfaceHidden: true}
	assert.Equal(t, uint8(0), Render(orthoScene(q), 100, 1, flatLight).NRGBAAt(50, 50).A)

	q.BackfaceHidden = false
	assert.Equal(t, uint8(255), Render(orthoScene(q), 100, 1, flatLight).NRGBAAt(50, 50).A)
}

func TestRender_TranslucentBlendsOnceAcrossDiagonal(t *testing.T) {
	white := solid(color.NRGBA{255, 255, 255, 255})
	sc := orthoScene(scene.Quad{Corners: square(0, 0, 100, 100, 0), Texture: white, Opacity: 0.5})
	img := Render(sc, 100, 1, flatLight)

	// Pixels on and off the shared diagonal carry the same coverage.
	assert.Equal(t, img.NRGBAAt(50, 50).A, img.NRGBAAt(70, 20).A)
	assert.InDelta(t, 128, int(img.NRGBAAt(50, 50).A), 1)
}

func TestRender_ShadowUnderOpaqueFace(t *testing.T) {
	white := solid(color.NRGBA{255, 255, 255, 255})
	sc := orthoScene(
		scene.Quad{Corners: square(20, 20, 80, 80, 0), Texture: white, Opacity: 1},
		scene.Quad{Corners: square(20, 25, 80, 85, -0.5), Color: color.NRGBA{0, 0, 0, 255}, Opacity: 0.15, Shadow: true},
	)
	img := Render(sc, 100, 1, flatLight)
	assert.Equal(t, uint8(255), img.NRGBAAt(50, 50).R, "face stays on top of its shadow")
	assert.InDelta(t, 38, int(img.NRGBAAt(50, 83).A), 1, "shadow shows below the face")
}

func TestRender_Supersample(t *testing.T) {
	img := Render(orthoScene(), 64, 2, DefaultLightConfig())
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestSignedArea_Winding(t *testing.T) {
	v := [4]Vertex{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.InDelta(t, 100, SignedArea(v), 1e-9)
	v[0], v[1], v[2], v[3] = v[1], v[0], v[3], v[2]
	assert.InDelta(t, -100, SignedArea(v), 1e-9)
}

func TestSampleTexture_ClampsEdges(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	tex.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	tex.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 255})
	r, _, _, _ := SampleTexture(tex, 1.5, 0)
	assert.Equal(t, uint8(255), r)
	r, _, _, _ = SampleTexture(tex, -0.5, 0)
	assert.Equal(t, uint8(0), r)
}
