package page

import (
	"fmt"
	"time"

	"paperfold-renderer/internal/anim"
	"paperfold-renderer/internal/content"
	"paperfold-renderer/internal/sched"
)

// Choreography timings.
const (
	ContainerDuration = 1200 * time.Millisecond
	LineDuration      = 1500 * time.Millisecond
	LineStagger       = 80 * time.Millisecond
	EnterDelay        = 100 * time.Millisecond
	AlternateDuration = 600 * time.Millisecond
	AlternateDelay    = 500 * time.Millisecond
	HoverScaleTime    = 2000 * time.Millisecond
	HoverScale        = 1.02
	lineFallDistance  = 100
	containerTilt     = 15
	alternateShift    = 30
	alternateShrink   = 0.9
)

// Pose tables for each block and line.
var (
	containerRest = anim.Props{anim.Opacity: 1, anim.RotateX: 0}
	containerGone = anim.Props{anim.Opacity: 0, anim.RotateX: containerTilt}

	lineRest = anim.Props{anim.Opacity: 1, anim.Y: 0, anim.RotateX: 0}
	lineGone = anim.Props{anim.Opacity: 0, anim.Y: lineFallDistance, anim.RotateX: -90}

	alternateRest    = anim.Props{anim.Opacity: 1, anim.Y: 0, anim.Scale: 1}
	alternateInitial = anim.Props{anim.Opacity: 0, anim.Y: -alternateShift, anim.Scale: alternateShrink}
	alternateGone    = anim.Props{anim.Opacity: 0, anim.Y: alternateShift, anim.Scale: alternateShrink}
)

// Choreographer swaps the text block of one face. Exactly one variant is
// mounted at any instant: the outgoing block finishes its exit before the
// incoming block is mounted.
type Choreographer struct {
	face  string
	text  content.Face
	anim  anim.Interpolator
	sched sched.Scheduler

	mounted  content.Variant
	incoming content.Variant
	swap     sched.Handle
	hovering bool
}

// NewChoreographer creates the choreographer for face ("back" or "inner").
func NewChoreographer(face string, text content.Face, interp anim.Interpolator, s sched.Scheduler) *Choreographer {
	return &Choreographer{face: face, text: text, anim: interp, sched: s}
}

// BlockKey is the element key of a mounted variant's container.
func BlockKey(face string, v content.Variant) string {
	return fmt.Sprintf("page/%s/%s", face, v)
}

// LineKey is the element key of line i of a variant.
func LineKey(face string, v content.Variant, i int) string {
	return fmt.Sprintf("%s/line/%d", BlockKey(face, v), i)
}

// Mount places v at rest without animating.
func (c *Choreographer) Mount(v content.Variant) {
	c.mounted = v
	c.incoming = v
	c.hovering = false
	if v == content.Alternate {
		c.anim.Set(BlockKey(c.face, v), "animate", alternateRest)
		return
	}
	c.anim.Set(BlockKey(c.face, v), "initial", withScale(containerRest, 1))
	for i := range c.text.Primary.Lines {
		c.anim.Set(LineKey(c.face, v, i), "initial", lineRest)
	}
}

// Show requests v. A request during an exit retargets the block that will
// be mounted when the exit completes.
func (c *Choreographer) Show(v content.Variant) {
	if c.swap != nil {
		c.incoming = v
		return
	}
	if v == c.mounted {
		return
	}
	c.incoming = v
	end := c.exit(c.mounted)
	c.swap = c.sched.AfterFunc(end, c.completeSwap)
}

// SetHovering scales the primary block up slowly while the pointer rests on it.
func (c *Choreographer) SetHovering(h bool) {
	if h == c.hovering {
		return
	}
	c.hovering = h
	if c.mounted != content.Primary || c.swap != nil {
		return
	}
	scale := 1.0
	if h {
		scale = HoverScale
	}
	c.anim.Animate(BlockKey(c.face, content.Primary), "hover", anim.Props{anim.Scale: scale},
		anim.Transition{Timing: anim.Timing{Duration: HoverScaleTime}})
}

// Mounted returns the only variant present on the face.
func (c *Choreographer) Mounted() content.Variant {
	return c.mounted
}

// Exiting reports whether the mounted block is on its way out.
func (c *Choreographer) Exiting() bool {
	return c.swap != nil
}

// Lines returns the number of lines of the mounted block.
func (c *Choreographer) Lines() int {
	return len(c.text.Block(c.mounted).Lines)
}

// Block returns the text of the mounted block.
func (c *Choreographer) Block() content.Block {
	return c.text.Block(c.mounted)
}

// Release cancels a pending swap and unmounts the block's elements.
func (c *Choreographer) Release() {
	if c.swap != nil {
		c.swap.Cancel()
		c.swap = nil
	}
	c.unmount(c.mounted)
}

// exit declares the exit animation of v and returns when it completes.
func (c *Choreographer) exit(v content.Variant) time.Duration {
	if v == content.Alternate {
		tr := anim.Transition{Timing: anim.Timing{Duration: AlternateDuration}}
		c.anim.Animate(BlockKey(c.face, v), "exit", alternateGone, tr)
		return tr.End(alternateGone)
	}

	container := anim.Transition{Timing: anim.Timing{Duration: ContainerDuration}}
	c.anim.Animate(BlockKey(c.face, v), "exit", containerGone, container)
	end := container.End(containerGone)
	for i := range c.text.Primary.Lines {
		tr := lineTransition(time.Duration(i) * LineStagger)
		c.anim.Animate(LineKey(c.face, v, i), "exit", lineGone, tr)
		if e := tr.End(lineGone); e > end {
			end = e
		}
	}
	return end
}

func (c *Choreographer) completeSwap() {
	c.swap = nil
	c.unmount(c.mounted)
	c.mounted = c.incoming
	c.enter(c.mounted)
}

// enter mounts v in its initial pose and declares its entrance.
func (c *Choreographer) enter(v content.Variant) {
	key := BlockKey(c.face, v)
	if v == content.Alternate {
		c.anim.Set(key, "initial", alternateInitial)
		c.anim.Animate(key, "animate", alternateRest, anim.Transition{
			Timing: anim.Timing{Duration: AlternateDuration, Delay: AlternateDelay},
		})
		return
	}

	c.anim.Set(key, "initial", withScale(containerGone, 1))
	c.anim.Animate(key, "enter", containerRest, anim.Transition{Timing: anim.Timing{Duration: ContainerDuration}})
	for i := range c.text.Primary.Lines {
		lk := LineKey(c.face, v, i)
		c.anim.Set(lk, "initial", lineGone)
		c.anim.Animate(lk, "enter", lineRest, lineTransition(EnterDelay+time.Duration(i)*LineStagger))
	}
	if c.hovering {
		c.anim.Animate(key, "hover", anim.Props{anim.Scale: HoverScale},
			anim.Transition{Timing: anim.Timing{Duration: HoverScaleTime}})
	}
}

func (c *Choreographer) unmount(v content.Variant) {
	c.anim.Remove(BlockKey(c.face, v))
	if v == content.Primary {
		for i := range c.text.Primary.Lines {
			c.anim.Remove(LineKey(c.face, v, i))
		}
	}
}

func lineTransition(delay time.Duration) anim.Transition {
	return anim.Transition{Timing: anim.Timing{Duration: LineDuration, Delay: delay, Ease: anim.EaseFall}}
}

func withScale(p anim.Props, s float64) anim.Props {
	out := p.Clone()
	out[anim.Scale] = s
	return out
}
