// Package storyboard reads a scripted sequence of interaction events and
// the frame timing used to export it.
package storyboard

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"paperfold-renderer/internal/stage"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("storyboard: invalid")

// Limits on frame rate.
const (
	MinFPS = 1
	MaxFPS = 120
)

// Event is one scripted input. At is in seconds from the start.
type Event struct {
	At     float64 `toml:"at"`
	Target string  `toml:"target"`
	Kind   string  `toml:"kind"`
}

// Storyboard is a timed event script.
type Storyboard struct {
	FPS      int     `toml:"fps"`
	Duration float64 `toml:"duration"` // seconds
	Events   []Event `toml:"event"`
}

// Cue is a validated event at its virtual time.
type Cue struct {
	At    time.Duration
	Event stage.Event
}

// Default plays the whole interaction once: the letter folds, closes and
// opens again while the page opens, is hovered until its text swaps, and
// closes.
func Default() Storyboard {
	return Storyboard{
		FPS:      30,
		Duration: 8,
		Events: []Event{
			{At: 0.5, Target: "letter", Kind: "click"},
			{At: 0.5, Target: "page", Kind: "click"},
			{At: 1.5, Target: "page", Kind: "enter"},
			{At: 2.0, Target: "letter", Kind: "click"},
			{At: 3.5, Target: "letter", Kind: "click"},
			{At: 5.0, Target: "page", Kind: "leave"},
			{At: 6.0, Target: "page", Kind: "click"},
		},
	}
}

// Load reads a storyboard TOML file. Keys the file does not set take the
// default value; events replace the default script entirely.
func Load(path string) (Storyboard, error) {
	var sb Storyboard
	md, err := toml.DecodeFile(path, &sb)
	if err != nil {
		return Storyboard{}, fmt.Errorf("storyboard: parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Storyboard{}, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalid, path, strings.Join(keys, ", "))
	}

	def := Default()
	if !md.IsDefined("fps") {
		sb.FPS = def.FPS
	}
	if !md.IsDefined("duration") {
		sb.Duration = def.Duration
	}
	if !md.IsDefined("event") {
		sb.Events = def.Events
	}
	if err := sb.Validate(); err != nil {
		return Storyboard{}, fmt.Errorf("storyboard: %s: %w", path, err)
	}
	return sb, nil
}

// Validate checks frame timing and every event.
func (sb Storyboard) Validate() error {
	if sb.FPS < MinFPS || sb.FPS > MaxFPS {
		return fmt.Errorf("%w: fps %d outside %d..%d", ErrInvalid, sb.FPS, MinFPS, MaxFPS)
	}
	if !(sb.Duration > 0) || math.IsInf(sb.Duration, 0) {
		return fmt.Errorf("%w: duration %v must be positive", ErrInvalid, sb.Duration)
	}
	for i, ev := range sb.Events {
		if ev.At < 0 || ev.At > sb.Duration {
			return fmt.Errorf("%w: event %d at %.3fs outside 0..%gs", ErrInvalid, i, ev.At, sb.Duration)
		}
		if i > 0 && ev.At < sb.Events[i-1].At {
			return fmt.Errorf("%w: event %d at %.3fs is before event %d", ErrInvalid, i, ev.At, i-1)
		}
		if _, err := stage.ParseEvent(ev.Target, ev.Kind); err != nil {
			return fmt.Errorf("%w: event %d: %v", ErrInvalid, i, err)
		}
	}
	return nil
}

// Frames is the number of frames from 0 through Duration inclusive.
func (sb Storyboard) Frames() int {
	return int(math.Floor(sb.Duration*float64(sb.FPS)+1e-9)) + 1
}

// FrameTime is the virtual time of frame i.
func (sb Storyboard) FrameTime(i int) time.Duration {
	return time.Duration(float64(i) * float64(time.Second) / float64(sb.FPS))
}

// Cues converts the script into stage events in time order. Events sharing
// a timestamp keep their file order.
func (sb Storyboard) Cues() ([]Cue, error) {
	cues := make([]Cue, 0, len(sb.Events))
	for i, ev := range sb.Events {
		se, err := stage.ParseEvent(ev.Target, ev.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: event %d: %v", ErrInvalid, i, err)
		}
		cues = append(cues, Cue{At: seconds(ev.At), Event: se})
	}
	sort.SliceStable(cues, func(i, j int) bool { return cues[i].At < cues[j].At })
	return cues, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
