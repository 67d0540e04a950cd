package export

import (
	"fmt"

	"paperfold-renderer/internal/sched"
	"paperfold-renderer/internal/stage"
	"paperfold-renderer/internal/storyboard"
)

// Capture plays sb on st, driven by the virtual clock, and snapshots one
// frame per tick. Each cue is dispatched at its own instant, before any
// frame at or after that instant is taken.
func Capture(st *stage.Stage, clk *sched.Virtual, sb storyboard.Storyboard) ([]stage.Frame, error) {
	cues, err := sb.Cues()
	if err != nil {
		return nil, err
	}
	n := sb.Frames()
	frames := make([]stage.Frame, 0, n)
	next := 0
	for i := 0; i < n; i++ {
		at := sb.FrameTime(i)
		for next < len(cues) && cues[next].At <= at {
			clk.AdvanceTo(cues[next].At)
			if err := st.Dispatch(cues[next].Event); err != nil {
				return nil, fmt.Errorf("export: cue %d: %w", next, err)
			}
			next++
		}
		clk.AdvanceTo(at)
		frames = append(frames, st.Snapshot())
	}
	return frames, nil
}
