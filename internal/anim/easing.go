package anim

import "math"

// Easing maps linear progress t ∈ [0, 1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 {
	return t
}

// CubicBezier returns the CSS cubic-bezier(x1, y1, x2, y2) timing curve.
// The curve starts at (0,0) heading toward (x1,y1) and arrives at (1,1)
// coming from (x2,y2). x is solved for the curve parameter with Newton's
// method, falling back to bisection when the derivative flattens.
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	bez := func(t, p1, p2 float64) float64 {
		d := 1 - t
		return 3*d*d*t*p1 + 3*d*t*t*p2 + t*t*t
	}
	deriv := func(t, p1, p2 float64) float64 {
		d := 1 - t
		return 3*d*d*p1 + 6*d*t*(p2-p1) + 3*t*t*(1-p2)
	}

	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}

		t := x
		for i := 0; i < 8; i++ {
			dx := bez(t, x1, x2) - x
			if math.Abs(dx) < 1e-7 {
				return bez(t, y1, y2)
			}
			d := deriv(t, x1, x2)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= dx / d
		}

		lo, hi := 0.0, 1.0
		t = x
		for i := 0; i < 40; i++ {
			v := bez(t, x1, x2)
			if math.Abs(v-x) < 1e-7 {
				break
			}
			if v < x {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return bez(t, y1, y2)
	}
}

// Named curves used by the paper components.
var (
	// EaseFold is the material "standard" curve used by the fold cycle.
	EaseFold = CubicBezier(0.4, 0, 0.2, 1)
	// EaseInOut matches CSS ease-in-out.
	EaseInOut = CubicBezier(0.42, 0, 0.58, 1)
	// EaseFall decelerates hard; used for lines falling away.
	EaseFall = CubicBezier(0.2, 0.6, 0.3, 1)
	// EaseDefault matches CSS ease and is used when no curve is given.
	EaseDefault = CubicBezier(0.25, 0.1, 0.25, 1)
)
