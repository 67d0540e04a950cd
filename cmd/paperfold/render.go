package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"paperfold-renderer/internal/config"
	"paperfold-renderer/internal/export"
	"paperfold-renderer/internal/raster"
	"paperfold-renderer/internal/sched"
	"paperfold-renderer/internal/stage"
	"paperfold-renderer/internal/storyboard"
	"paperfold-renderer/internal/texture"
)

var renderFlags config.Flags

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderFlags.OutputDir, "output", "", "Output directory (default: frames)")
	f.IntVar(&renderFlags.Size, "size", 0, "Frame size in pixels (default: 512)")
	f.IntVar(&renderFlags.Supersample, "supersample", 0, "Supersampling factor (default: 2)")
	f.IntVar(&renderFlags.Workers, "workers", 0, "Number of worker goroutines (default: NumCPU)")
	f.StringVar(&renderFlags.Storyboard, "storyboard", "", "Storyboard TOML (default: built-in script)")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Export a storyboard as WebP frames",
	Long: `Play a storyboard on a virtual clock and write every frame of both
components as WebP images, plus manifest.json.

Examples:
  # Built-in script at 30 fps into ./frames
  paperfold render

  # Custom script, small frames
  paperfold render --storyboard story.toml --size 256 --output out`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(renderFlags)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	sb := storyboard.Default()
	if cfg.Files.Storyboard != "" {
		if sb, err = storyboard.Load(cfg.Files.Storyboard); err != nil {
			return err
		}
	}
	stageCfg, err := cfg.Stage()
	if err != nil {
		return err
	}

	clk := sched.NewVirtual()
	st, err := stage.New(stageCfg, clk, log.Named("stage"))
	if err != nil {
		return err
	}
	frames, err := export.Capture(st, clk, sb)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	log = log.With(zap.String("run", runID))
	log.Info("rendering",
		zap.Int("frames", len(frames)),
		zap.Int("fps", sb.FPS),
		zap.Int("size", cfg.Render.Size),
		zap.Int("workers", cfg.Render.Workers),
		zap.String("output", cfg.Render.OutputDir),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	textures := texture.NewCache()
	if cfg.Files.Grain != "" {
		if _, err := textures.Get(cfg.Files.Grain); err != nil {
			log.Warn("paper grain unavailable", zap.Error(err))
		}
	}

	results, runErr := export.Run(ctx, export.Config{
		OutputDir:   cfg.Render.OutputDir,
		Textures:    textures,
		GrainPath:   cfg.Files.Grain,
		RenderSize:  cfg.Render.Size,
		Supersample: cfg.Render.Supersample,
		Workers:     cfg.Render.Workers,
		Light:       raster.DefaultLightConfig(),
		Log:         log.Named("export"),
	}, frames)

	manifest := export.BuildManifest(sb.FPS, cfg.Render.Size, frames, results)
	manifest.RunID = runID
	if err := export.WriteManifest(filepath.Join(cfg.Render.OutputDir, "manifest.json"), manifest); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d frames failed", failed, len(results))
	}
	return nil
}
