package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paperfold-renderer/internal/fold"
	"paperfold-renderer/internal/raster"
	"paperfold-renderer/internal/sched"
	"paperfold-renderer/internal/stage"
	"paperfold-renderer/internal/storyboard"
	"paperfold-renderer/internal/texture"
)

func capture(t *testing.T, sb storyboard.Storyboard) []stage.Frame {
	t.Helper()
	clk := sched.NewVirtual()
	st, err := stage.New(stage.DefaultConfig(), clk, zap.NewNop())
	require.NoError(t, err)
	frames, err := Capture(st, clk, sb)
	require.NoError(t, err)
	return frames
}

func TestCapture_DefaultStoryboard(t *testing.T) {
	sb := storyboard.Default()
	frames := capture(t, sb)
	require.Len(t, frames, sb.Frames())

	for i, f := range frames {
		assert.Equal(t, i, f.Index)
		assert.Equal(t, sb.FrameTime(i), f.At)
	}

	at := func(sec float64) stage.Frame { return frames[int(sec*float64(sb.FPS))] }
	assert.Equal(t, fold.Open, at(0).Letter.State)
	assert.Equal(t, fold.Folded, at(1).Letter.State)
	assert.Equal(t, fold.Closed, at(3).Letter.State)
	assert.Equal(t, fold.Open, at(4).Letter.State)

	assert.False(t, at(0).Page.Open)
	assert.True(t, at(1).Page.Open)
	assert.True(t, at(2).Page.Hovering)
	assert.False(t, at(2.9).Page.Revealed)
	assert.True(t, at(3.1).Page.Revealed, "revealed 1.5s after the 1.5s enter")
	assert.False(t, at(5.5).Page.Hovering)
	assert.True(t, at(5.5).Page.Revealed, "reveal is latched")
	assert.False(t, at(7).Page.Open)
}

func TestRun_WritesFramesAndManifest(t *testing.T) {
	sb := storyboard.Storyboard{
		FPS:      2,
		Duration: 1,
		Events:   []storyboard.Event{{At: 0.5, Target: "page", Kind: "click"}},
	}
	frames := capture(t, sb)
	require.Len(t, frames, 3)

	out := t.TempDir()
	cfg := Config{
		OutputDir:   out,
		Textures:    texture.NewCache(),
		RenderSize:  48,
		Supersample: 2,
		Workers:     2,
		Light:       raster.DefaultLightConfig(),
		Log:         zap.NewNop(),
		Progress:    10 * time.Millisecond,
	}
	results, err := Run(context.Background(), cfg, frames)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results {
		assert.True(t, r.Success, r.Error)
		for _, rel := range []string{r.Letter, r.Page} {
			info, err := os.Stat(filepath.Join(out, rel))
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		}
	}

	path := filepath.Join(out, "manifest.json")
	manifest := BuildManifest(sb.FPS, cfg.RenderSize, frames, results)
	manifest.RunID = "run-1"
	require.NoError(t, WriteManifest(path, manifest))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "run-1", m.RunID)
	require.Len(t, m.Frames, 3)
	assert.Equal(t, "letter/0001.webp", m.Frames[1].Letter)
	assert.Equal(t, 0.5, m.Frames[1].Time)
	assert.False(t, m.Frames[0].PageOpen)
	assert.True(t, m.Frames[1].PageOpen)
	assert.Empty(t, m.Frames[2].Error)
}

func TestRun_Canceled(t *testing.T) {
	frames := capture(t, storyboard.Storyboard{FPS: 1, Duration: 2})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run(ctx, Config{OutputDir: t.TempDir(), RenderSize: 16, Supersample: 1, Workers: 1}, frames)
	assert.ErrorIs(t, err, context.Canceled)
	for _, r := range results {
		assert.False(t, r.Success)
	}
}
