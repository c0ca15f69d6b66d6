package main

import (
	"github.com/spf13/cobra"

	"github.com/jsvensson/streetleaves/internal/render"
	"github.com/jsvensson/streetleaves/internal/tui"
)

var flagWrite bool

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Pick a street interactively and preview its leaves",
	Long: "Open a terminal browser with street name suggestions. The preview follows the input as you type; " +
		"enter renders exactly what was typed. With --write every render also replaces the output files.",
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	f := browseCmd.Flags()
	f.String("out", "output", "output directory")
	f.String("templates", "", "templates directory (default built-in templates)")
	f.StringArray("page", nil, "render only these templates by output name (can be repeated)")
	f.BoolVar(&flagWrite, "write", false, "also write every render to the output files")
	bindOutputFlags(browseCmd)
}

func runBrowse(_ *cobra.Command, _ []string) error {
	atlas, err := loadAtlas()
	if err != nil {
		return err
	}

	display := &render.Display{}
	var surface render.Surface = display
	if flagWrite {
		surface = render.Tee(display, newEngine())
	}

	r := render.New(atlas, render.WithSurface(surface))
	return tui.Run(tui.New(r, display, atlas.Locations.Names()))
}
