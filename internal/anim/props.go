package anim

import (
	"sort"
	"time"
)

// Property names an animatable value of an element.
type Property string

const (
	RotateX     Property = "rotateX"
	RotateY     Property = "rotateY"
	SkewY       Property = "skewY"
	Y           Property = "y"
	Z           Property = "z"
	Opacity     Property = "opacity"
	Scale       Property = "scale"
	ShadowY     Property = "shadowY"
	ShadowBlur  Property = "shadowBlur"
	ShadowAlpha Property = "shadowAlpha"
)

// Rest returns the value a property has before anything animates it.
func (p Property) Rest() float64 {
	switch p {
	case Opacity, Scale:
		return 1
	}
	return 0
}

// Props is a set of property targets or sampled values.
type Props map[Property]float64

// Get returns the value for p, or its rest value when absent.
func (p Props) Get(prop Property) float64 {
	if v, ok := p[prop]; ok {
		return v
	}
	return prop.Rest()
}

// Clone returns an independent copy.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Sorted returns the property names in stable order.
func (p Props) Sorted() []Property {
	keys := make([]Property, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Timing describes when and how one property moves.
type Timing struct {
	Duration time.Duration
	Delay    time.Duration
	Ease     Easing
}

// End is the offset from declaration at which the property arrives.
func (t Timing) End() time.Duration {
	return t.Delay + t.Duration
}

// Transition is the base timing plus per-property overrides.
type Transition struct {
	Timing
	Overrides map[Property]Timing
}

// For returns the timing that applies to prop.
func (tr Transition) For(prop Property) Timing {
	if o, ok := tr.Overrides[prop]; ok {
		if o.Ease == nil {
			o.Ease = tr.Ease
		}
		return o
	}
	return tr.Timing
}

// End returns the latest arrival over the given properties.
func (tr Transition) End(target Props) time.Duration {
	var end time.Duration
	for prop := range target {
		if e := tr.For(prop).End(); e > end {
			end = e
		}
	}
	return end
}

// Delayed returns a copy with extra delay added to the base timing and every override.
func (tr Transition) Delayed(d time.Duration) Transition {
	out := Transition{Timing: tr.Timing}
	out.Delay += d
	if len(tr.Overrides) > 0 {
		out.Overrides = make(map[Property]Timing, len(tr.Overrides))
		for k, v := range tr.Overrides {
			v.Delay += d
			out.Overrides[k] = v
		}
	}
	return out
}

// Interpolator is the animation engine the components drive. It accepts a
// named target state with its property table and converges each property
// to its target within the property's timing.
type Interpolator interface {
	// Set jumps key to values without animating.
	Set(key, state string, values Props)
	// Animate moves key from its current values toward target.
	Animate(key, state string, target Props, tr Transition)
	// Remove forgets key; an unmounted element has no values.
	Remove(key string)
}
