package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsvensson/streetleaves/internal/engine"
	"github.com/jsvensson/streetleaves/internal/render"
	"github.com/jsvensson/streetleaves/internal/watch"
)

var flagWatch bool

var renderCmd = &cobra.Command{
	Use:   "render <street>",
	Short: "Render a street's leaves into the output files",
	Long: "Render the leaves recorded for a street through the templates into the output directory, " +
		"replacing whatever was rendered before. An unknown street renders the empty page.",
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.String("out", "output", "output directory")
	f.String("templates", "", "templates directory (default built-in templates)")
	f.StringArray("page", nil, "render only these templates by output name (can be repeated)")
	f.BoolVarP(&flagWatch, "watch", "w", false, "re-render whenever a catalog or the palette changes")
	bindOutputFlags(renderCmd)
}

// bindOutputFlags binds the engine flags of cmd. Flags are bound when the
// command runs so commands sharing keys do not overwrite each other.
func bindOutputFlags(cmd *cobra.Command) {
	prev := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		bindFlag("out", cmd.Flags().Lookup("out"))
		bindFlag("templates", cmd.Flags().Lookup("templates"))
		bindFlag("pages", cmd.Flags().Lookup("page"))
		if err := v.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("decoding config: %w", err)
		}
		if prev != nil {
			return prev(cmd, args)
		}
		return nil
	}
}

func newEngine() *engine.Engine {
	return &engine.Engine{
		TemplatesDir: cfg.Templates,
		OutputDir:    cfg.Out,
		Pages:        cfg.Pages,
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	name := args[0]
	atlas, err := loadAtlas()
	if err != nil {
		return err
	}

	eng := newEngine()
	if _, ok := atlas.Locations.Lookup(name); !ok {
		log.Warningf("unknown street %q, rendering the empty page", name)
	}
	render.New(atlas, render.WithSurface(eng)).Render(name)

	outputs, err := eng.Outputs()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s to %s\n", name, strings.Join(outputs, ", "))

	if !flagWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchAndRender(ctx, name, eng)
}

// watchAndRender reloads the data files on every change and renders name
// again. A reload that fails keeps the last good render on disk.
func watchAndRender(ctx context.Context, name string, surface render.Surface) error {
	w, err := watch.New(cfg.Locations, cfg.Shapes, cfg.Palette)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	log.Noticef("watching %s for changes", strings.Join(nonEmpty(cfg.Locations, cfg.Shapes, cfg.Palette), ", "))
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			log.Infof("changed: %s", strings.Join(change.Files, ", "))

			atlas, err := loadAtlas()
			if err != nil {
				log.Warningf("keeping previous render of %s", name)
				continue
			}
			render.New(atlas, render.WithSurface(surface)).Render(name)
			log.Noticef("re-rendered %s", name)
		}
	}
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, s := range values {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
