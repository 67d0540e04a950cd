// Package config loads render and component settings from a YAML file and
// PAPERFOLD_* environment variables, then applies CLI overrides and defaults.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/lucasb-eyer/go-colorful"

	"paperfold-renderer/internal/content"
	"paperfold-renderer/internal/fold"
	"paperfold-renderer/internal/page"
	"paperfold-renderer/internal/stage"
)

// EnvPrefix marks environment overrides: PAPERFOLD_PAGE_SKEW_ANGLE sets page.skew_angle.
const EnvPrefix = "PAPERFOLD_"

const maxConfigFileSize = 1 << 20

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all configurable paths and render settings.
type Config struct {
	Letter LetterSection `koanf:"letter"`
	Page   PageSection   `koanf:"page"`
	Render RenderSection `koanf:"render"`
	Files  FilesSection  `koanf:"files"`
	Log    LogSection    `koanf:"log"`
}

type LetterSection struct {
	Width      int    `koanf:"width"`
	Height     int    `koanf:"height"`
	PaperColor string `koanf:"paper_color"`
}

type PageSection struct {
	Width           int     `koanf:"width"`
	Height          int     `koanf:"height"`
	FrontColor      string  `koanf:"front_color"`
	InsideColor     string  `koanf:"inside_color"`
	InitialRotation float64 `koanf:"initial_rotation"`
	SkewAngle       float64 `koanf:"skew_angle"`
}

type RenderSection struct {
	Size        int    `koanf:"size"`
	Supersample int    `koanf:"supersample"`
	Workers     int    `koanf:"workers"`
	OutputDir   string `koanf:"output_dir"`
}

// FilesSection points at optional inputs. Empty paths use built-in data.
type FilesSection struct {
	Content    string `koanf:"content"`
	Storyboard string `koanf:"storyboard"`
	Grain      string `koanf:"grain"`
}

type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Letter: LetterSection{Width: 300, Height: 400, PaperColor: "#f5f5f5"},
		Page: PageSection{
			Width:           300,
			Height:          400,
			FrontColor:      "#e0e0e0",
			InsideColor:     "white",
			InitialRotation: 35,
			SkewAngle:       -15,
		},
		Render: RenderSection{Size: 512, Supersample: 2, OutputDir: "frames"},
		Log:    LogSection{Level: "info", Format: "console"},
	}
}

// Load reads path (skipped when empty) and then the environment over the
// defaults. Keys absent from both keep their default values.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		data, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrInvalid, path, maxConfigFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return data, nil
}

// envKey maps PAPERFOLD_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir   string
	Size        int
	Supersample int
	Workers     int
	Content     string
	Storyboard  string
	Grain       string
	LogLevel    string
	LogFormat   string
}

// Resolve applies CLI overrides, then fills non-positive render settings.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.Render.OutputDir = flags.OutputDir
	}
	if flags.Size > 0 {
		c.Render.Size = flags.Size
	}
	if flags.Supersample > 0 {
		c.Render.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Render.Workers = flags.Workers
	}
	if flags.Content != "" {
		c.Files.Content = flags.Content
	}
	if flags.Storyboard != "" {
		c.Files.Storyboard = flags.Storyboard
	}
	if flags.Grain != "" {
		c.Files.Grain = flags.Grain
	}
	if flags.LogLevel != "" {
		c.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		c.Log.Format = flags.LogFormat
	}

	// Defaults for render settings
	def := Default()
	if c.Render.Size <= 0 {
		c.Render.Size = def.Render.Size
	}
	if c.Render.Supersample <= 0 {
		c.Render.Supersample = def.Render.Supersample
	}
	if c.Render.Workers <= 0 {
		c.Render.Workers = runtime.NumCPU()
	}
	if c.Render.OutputDir == "" {
		c.Render.OutputDir = def.Render.OutputDir
	}
}

// Validate checks sizes, colours and log settings.
func (c Config) Validate() error {
	if c.Letter.Width <= 0 || c.Letter.Height <= 0 {
		return fmt.Errorf("%w: letter size %dx%d", ErrInvalid, c.Letter.Width, c.Letter.Height)
	}
	if c.Page.Width <= 0 || c.Page.Height <= 0 {
		return fmt.Errorf("%w: page size %dx%d", ErrInvalid, c.Page.Width, c.Page.Height)
	}
	if c.Render.Size <= 0 || c.Render.Supersample <= 0 || c.Render.Supersample > 8 {
		return fmt.Errorf("%w: render size %d supersample %d", ErrInvalid, c.Render.Size, c.Render.Supersample)
	}
	for name, s := range map[string]string{
		"letter.paper_color": c.Letter.PaperColor,
		"page.front_color":   c.Page.FrontColor,
		"page.inside_color":  c.Page.InsideColor,
	} {
		if _, err := ParseColor(s); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// Stage builds component settings, loading the content file when set.
func (c Config) Stage() (stage.Config, error) {
	if err := c.Validate(); err != nil {
		return stage.Config{}, err
	}
	paper, _ := ParseColor(c.Letter.PaperColor)
	front, _ := ParseColor(c.Page.FrontColor)
	inside, _ := ParseColor(c.Page.InsideColor)

	text := content.Default()
	if c.Files.Content != "" {
		var err error
		if text, err = content.Load(c.Files.Content); err != nil {
			return stage.Config{}, err
		}
	}

	return stage.Config{
		Letter: fold.LetterConfig{Width: c.Letter.Width, Height: c.Letter.Height, PaperColor: paper},
		Page: page.Config{
			Width:           c.Page.Width,
			Height:          c.Page.Height,
			FrontColor:      front,
			InsideColor:     inside,
			InitialRotation: c.Page.InitialRotation,
			SkewAngle:       c.Page.SkewAngle,
		},
		Text: text,
	}, nil
}

var namedColors = map[string]color.NRGBA{
	"white": {0xff, 0xff, 0xff, 0xff},
	"black": {0x00, 0x00, 0x00, 0xff},
}

// ParseColor accepts #rgb, #rrggbb, white and black.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: colour %q", ErrInvalid, s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{r, g, b, 0xff}, nil
}
