package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"paperfold-renderer/internal/config"
	"paperfold-renderer/internal/preview"
	"paperfold-renderer/internal/raster"
	"paperfold-renderer/internal/texture"
)

var (
	previewLogFile string
	previewFPS     int
	previewBG      string
	previewWatch   bool
)

func init() {
	f := previewCmd.Flags()
	f.StringVar(&previewLogFile, "log-file", "", "Write logs to this file (the screen is otherwise silent)")
	f.IntVar(&previewFPS, "fps", preview.DefaultFPS, "Redraw rate")
	f.StringVar(&previewBG, "background", "#202428", "Terminal background colour")
	f.BoolVar(&previewWatch, "watch", false, "Reload the content file whenever it changes")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Interact with both components in the terminal",
	Long: `Open a full-screen terminal preview. The left pane shows the letter,
the right pane the page.

  click left pane    cycle the fold: open, folded, closed
  click right pane   open or close the page
  hover right pane   hold 1.5s on an open page to reveal the hidden text
  r                  reset the page
  q, Esc             quit`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(config.Flags{})
	if err != nil {
		return err
	}
	var w io.Writer = io.Discard
	if previewLogFile != "" {
		f, err := os.Create(previewLogFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	log, err := newLogger(cfg, w)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	bg, err := config.ParseColor(previewBG)
	if err != nil {
		return err
	}
	stageCfg, err := cfg.Stage()
	if err != nil {
		return err
	}
	grain, err := texture.NewCache().Get(cfg.Files.Grain)
	if err != nil {
		log.Warn("paper grain unavailable", zap.Error(err))
	}

	var watchFile string
	if previewWatch {
		if cfg.Files.Content == "" {
			return fmt.Errorf("--watch needs a content file")
		}
		watchFile = cfg.Files.Content
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	app, err := preview.New(screen, preview.Options{
		Stage:      stageCfg,
		Grain:      grain,
		Light:      raster.DefaultLightConfig(),
		Background: bg,
		FPS:        previewFPS,
		Log:        log.Named("preview"),

		ContentFile: watchFile,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
