// Package export renders captured frames to WebP files with a worker pool
// and writes a manifest describing every frame.
package export

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"

	"paperfold-renderer/internal/postprocess"
	"paperfold-renderer/internal/raster"
	"paperfold-renderer/internal/scene"
	"paperfold-renderer/internal/stage"
	"paperfold-renderer/internal/texture"
)

// Output subdirectories, one per component.
const (
	LetterDir = "letter"
	PageDir   = "page"
)

// Config holds all shared resources for an export run.
type Config struct {
	OutputDir   string
	Textures    texture.Resolver
	GrainPath   string
	RenderSize  int
	Supersample int
	Workers     int
	Light       raster.LightConfig
	Log         *zap.Logger
	Progress    time.Duration // progress log interval; zero means 2s
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Index   int
	Letter  string // image paths relative to OutputDir
	Page    string
	Success bool
	Error   string
}

// FramePath is the relative path of frame index under dir.
func FramePath(dir string, index int) string {
	return filepath.ToSlash(filepath.Join(dir, fmt.Sprintf("%04d.webp", index)))
}

// Run renders all frames using a worker pool. It stops handing out work
// once ctx is done and returns ctx's error; frames not rendered by then
// carry it in their Result.
func Run(ctx context.Context, cfg Config, frames []stage.Frame) ([]Result, error) {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	workers := max(cfg.Workers, 1)
	interval := cfg.Progress
	if interval <= 0 {
		interval = 2 * time.Second
	}

	for _, dir := range []string{LetterDir, PageDir} {
		if err := os.MkdirAll(filepath.Join(cfg.OutputDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}

	var opt scene.Options
	if cfg.Textures != nil {
		opt.Grain = cfg.Textures.Resolve(cfg.GrainPath)
	}

	total := len(frames)
	results := make([]Result, total)
	for i, f := range frames {
		results[i] = Result{Index: f.Index, Error: "not rendered"}
	}
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("frames_per_sec", float64(p)/elapsed),
					)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				if err := ctx.Err(); err != nil {
					results[idx].Error = err.Error()
					continue
				}
				results[idx] = processFrame(cfg, opt, frames[idx])
				if !results[idx].Success {
					log.Warn("frame failed", zap.Int("index", frames[idx].Index), zap.String("error", results[idx].Error))
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
send:
	for i := range frames {
		select {
		case frameChan <- i:
		case <-ctx.Done():
			break send
		}
	}
	close(frameChan)

	wg.Wait()
	close(done)

	log.Info("export finished",
		zap.Int64("rendered", processed.Load()),
		zap.Int("total", total),
		zap.Duration("elapsed", time.Since(start)),
	)
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("export: %w", err)
	}
	return results, nil
}

func processFrame(cfg Config, opt scene.Options, f stage.Frame) Result {
	res := Result{
		Index:  f.Index,
		Letter: FramePath(LetterDir, f.Index),
		Page:   FramePath(PageDir, f.Index),
	}

	letter := renderScene(cfg, scene.BuildLetter(f.Letter, opt))
	if err := writeWebP(filepath.Join(cfg.OutputDir, res.Letter), letter); err != nil {
		res.Error = err.Error()
		return res
	}

	pg := renderScene(cfg, scene.BuildPage(f.Page, opt))
	if err := writeWebP(filepath.Join(cfg.OutputDir, res.Page), pg); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}

// renderScene rasterizes sc and reduces the supersampled image.
func renderScene(cfg Config, sc scene.Scene) *image.NRGBA {
	img := raster.Render(sc, cfg.RenderSize, cfg.Supersample, cfg.Light)
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize, cfg.RenderSize)
	}
	return img
}

func writeWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("WebP encode: %w", err)
	}
	return f.Close()
}
