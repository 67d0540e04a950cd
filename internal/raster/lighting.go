package raster

import (
	"math"

	"paperfold-renderer/internal/mathutil"
)

// LightConfig is a single directional light over an ambient floor. Paper
// is lit the same from both sides.
type LightConfig struct {
	LightDir mathutil.Vec3
	Ambient  float64
	Direct   float64
	InvGamma float64
}

// DefaultLightConfig lights from the upper left, slightly in front.
func DefaultLightConfig() LightConfig {
	return LightConfig{
		LightDir: mathutil.Vec3{-0.35, -0.5, 1}.Normalize(),
		Ambient:  0.78,
		Direct:   0.22,
		InvGamma: 1.0 / 2.2,
	}
}

// ComputeShade returns the lighting scalar for a face normal.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	return lc.Ambient + math.Abs(normal.Dot(lc.LightDir))*lc.Direct
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}
