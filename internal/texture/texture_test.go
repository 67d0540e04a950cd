package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperfold-renderer/internal/anim"
	"paperfold-renderer/internal/content"
)

func inkPixels(img *image.NRGBA) int {
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] < 0x80 && img.Pix[i+3] > 0 {
			n++
		}
	}
	return n
}

func TestWrap(t *testing.T) {
	rows := Wrap("the quick brown fox jumps over the lazy dog", 7*15)
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.LessOrEqual(t, len(r), 15, r)
	}
	assert.Equal(t, []string{"supercalifragilistic"}, Wrap("supercalifragilistic", 10))
	assert.Empty(t, Wrap("   ", 100))
}

func TestRenderLine_ListGrowsWithItems(t *testing.T) {
	one := RenderLine(content.Line{Kind: content.List, Items: []string{"a"}}, 200)
	three := RenderLine(content.Line{Kind: content.List, Items: []string{"a", "b", "c"}}, 200)
	assert.Greater(t, three.Bounds().Dy(), one.Bounds().Dy())
	assert.Positive(t, inkPixels(three))
}

func TestNewFace_FillsBackground(t *testing.T) {
	bg := color.NRGBA{10, 20, 30, 255}
	img := NewFace(4, 3, bg, nil)
	assert.Equal(t, bg, img.NRGBAAt(3, 2))
}

func TestApplyGrain_Multiplies(t *testing.T) {
	grain := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	grain.SetNRGBA(0, 0, color.NRGBA{128, 255, 0, 255})
	img := NewFace(2, 2, color.NRGBA{255, 200, 100, 255}, grain)

	got := img.NRGBAAt(1, 1)
	assert.Equal(t, uint8(128), got.R)
	assert.Equal(t, uint8(200), got.G)
	assert.Equal(t, uint8(0), got.B)
}

func TestPaintBlock_OpacityHidesText(t *testing.T) {
	block := content.Default().Inner.Primary
	bg := color.NRGBA{255, 255, 255, 255}

	visible := NewFace(300, 400, bg, nil)
	PaintBlock(visible, FaceText{Block: block, Container: anim.Props{anim.Opacity: 1}, Padding: 20})
	assert.Positive(t, inkPixels(visible))

	hidden := NewFace(300, 400, bg, nil)
	PaintBlock(hidden, FaceText{Block: block, Container: anim.Props{anim.Opacity: 0}, Padding: 20})
	assert.Zero(t, inkPixels(hidden))

	lines := make([]anim.Props, len(block.Lines))
	for i := range lines {
		lines[i] = anim.Props{anim.Opacity: 0, anim.Y: 100, anim.RotateX: -90}
	}
	fallen := NewFace(300, 400, bg, nil)
	PaintBlock(fallen, FaceText{Block: block, Container: anim.Props{anim.Opacity: 1}, Lines: lines, Padding: 20})
	assert.Zero(t, inkPixels(fallen))
}

func TestPaintTitle_StruckYearAddsInk(t *testing.T) {
	bg := color.NRGBA{224, 224, 224, 255}
	plain := NewFace(300, 400, bg, nil)
	PaintTitle(plain, []string{"High Conviction", "Web3 Thesis"}, "", "2021")

	struck := NewFace(300, 400, bg, nil)
	PaintTitle(struck, []string{"High Conviction", "Web3 Thesis"}, "2021", "2024")

	assert.Positive(t, inkPixels(plain))
	assert.Greater(t, inkPixels(struck), inkPixels(plain))
}

func TestPaintLabel(t *testing.T) {
	img := NewFace(200, 40, color.NRGBA{255, 255, 255, 255}, nil)
	PaintLabel(img, "2024...", 1, 8)
	assert.Positive(t, inkPixels(img))
}

func TestCache_LoadsOnce(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	path := filepath.Join(t.TempDir(), "grain.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	c := NewCache()
	a := c.Resolve(path)
	require.NotNil(t, a)
	assert.Same(t, a, c.Resolve(path))
	assert.Equal(t, color.NRGBA{1, 2, 3, 255}, a.NRGBAAt(0, 0))
	assert.Equal(t, 1, c.Len())

	assert.Nil(t, c.Resolve(""))
	_, err := c.Get(filepath.Join(t.TempDir(), "missing.tga"))
	assert.Error(t, err)
}
