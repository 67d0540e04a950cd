package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"paperfold-renderer/internal/config"
	"paperfold-renderer/internal/fold"
)

var (
	tableHeight int
	tableFormat string
	tableState  string
)

func init() {
	f := tableCmd.Flags()
	f.IntVar(&tableHeight, "height", 0, "Letter height in pixels (default: from config)")
	f.StringVar(&tableFormat, "format", "text", "Output format: text or toml")
	f.StringVar(&tableState, "state", "", "Only print this fold state (open, folded or closed)")
	rootCmd.AddCommand(tableCmd)
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the fold geometry of every segment in every state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		height := tableHeight
		if height == 0 {
			cfg, err := loadConfig(config.Flags{})
			if err != nil {
				return err
			}
			height = cfg.Letter.Height
		}
		eng, err := fold.NewEngine(height)
		if err != nil {
			return err
		}
		states := fold.States()
		if tableState != "" {
			st, err := fold.ParseState(tableState)
			if err != nil {
				return err
			}
			states = []fold.State{st}
		}
		return writeTable(cmd.OutOrStdout(), eng, states, tableFormat)
	},
}

// tableRow is one segment/state entry in the TOML dump.
type tableRow struct {
	Segment    string  `toml:"segment"`
	State      string  `toml:"state"`
	RotationX  float64 `toml:"rotation_x"`
	TranslateY float64 `toml:"translate_y"`
	TranslateZ float64 `toml:"translate_z"`
	Origin     string  `toml:"origin"`
	StackOrder int     `toml:"stack_order"`
	Opacity    float64 `toml:"opacity"`
}

func writeTable(w io.Writer, eng *fold.Engine, states []fold.State, format string) error {
	var rows []tableRow
	for _, seg := range fold.Segments() {
		for _, st := range states {
			g := eng.Geometry(seg, st)
			rows = append(rows, tableRow{
				Segment:    seg.String(),
				State:      st.String(),
				RotationX:  g.RotationX,
				TranslateY: g.TranslateY,
				TranslateZ: g.TranslateZ,
				Origin:     g.Origin.String(),
				StackOrder: g.StackOrder,
				Opacity:    g.Opacity,
			})
		}
	}

	switch format {
	case "toml":
		doc := struct {
			SectionHeight float64    `toml:"section_height"`
			Rows          []tableRow `toml:"geometry"`
		}{eng.SectionHeight(), rows}
		return toml.NewEncoder(w).Encode(doc)
	case "text":
		fmt.Fprintf(w, "section height: %g\n\n", eng.SectionHeight())
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "SEGMENT\tSTATE\tROTATE X\tY\tZ\tORIGIN\tSTACK\tOPACITY")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%g\t%.3f\t%.3f\t%s\t%d\t%g\n",
				r.Segment, r.State, r.RotationX, r.TranslateY, r.TranslateZ, r.Origin, r.StackOrder, r.Opacity)
		}
		return tw.Flush()
	}
	return fmt.Errorf("unknown format %q", format)
}
