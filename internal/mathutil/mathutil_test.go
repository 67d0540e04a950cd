package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotX_FoldsPointBackward(t *testing.T) {
	// A point one unit below a top hinge, folded by -85°, swings behind the plane.
	p := RotX(Deg2Rad(-85)).MulVec3(Vec3{0, 1, 0})

	assert.InDelta(t, math.Cos(Deg2Rad(85)), p[1], 1e-12)
	assert.InDelta(t, -math.Sin(Deg2Rad(85)), p[2], 1e-12)
}

func TestRotY_HalfTurnMirrorsX(t *testing.T) {
	p := RotY(math.Pi).MulVec3(Vec3{2, 3, 0})
	assert.True(t, p.Near(Vec3{-2, 3, 0}, 1e-9), "got %v", p)
}

func TestSkewY(t *testing.T) {
	p := SkewY(Deg2Rad(45)).MulVec3(Vec3{10, 5, 0})
	assert.InDelta(t, 15, p[1], 1e-9)
	assert.InDelta(t, 10, p[0], 1e-9)
}

func TestAboutOrigin(t *testing.T) {
	m := AboutOrigin(Linear(RotY(math.Pi)), Vec3{5, 0, 0})

	// The origin itself is fixed.
	assert.True(t, m.MulPoint(Vec3{5, 0, 0}).Near(Vec3{5, 0, 0}, 1e-9))
	// A point 5 to the right of the origin lands 5 to the left.
	assert.True(t, m.MulPoint(Vec3{10, 0, 0}).Near(Vec3{0, 0, 0}, 1e-9))
}

func TestChain_Order(t *testing.T) {
	m := Chain(Translate(1, 0, 0), Linear(Mat3Diag(2, 2, 2)))
	assert.True(t, m.MulPoint(Vec3{1, 1, 1}).Near(Vec3{3, 2, 2}, 1e-12))
	assert.True(t, Chain().IsIdentity())
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-1))
	assert.Equal(t, 0.5, Clamp01(0.5))
	assert.Equal(t, 1.0, Clamp01(3))
}
