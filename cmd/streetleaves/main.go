package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/jsvensson/streetleaves"
	"github.com/jsvensson/streetleaves/internal/config"
	"github.com/jsvensson/streetleaves/internal/format"
)

var (
	flagConfig string
	flagCheck  bool
	version    = "dev" // Injected at build time via ldflags

	v   = viper.New()
	cfg config.Config
	log = commonlog.GetLogger("streetleaves")
)

var rootCmd = &cobra.Command{
	Use:               "streetleaves",
	Short:             "Show the fallen leaves recorded along a street as colored leaf icons",
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every street in the location catalog",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format palette files",
	Long:  "Format one or more palette HCL files in-place, or the configured palette when no file is given. Prints the name of each file that was modified.",
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default .streetleaves.toml in the working or home directory)")
	pf.String("locations", "street_color_shapes.json", "path to the location catalog")
	pf.String("shapes", "shapes.json", "path to the shape catalog")
	pf.String("palette", "", "path to a palette override file")
	pf.BoolP("verbose", "v", false, "log debug output")
	pf.String("log-file", "", "write logs to this file instead of stderr")
	bindFlag("locations", pf.Lookup("locations"))
	bindFlag("shapes", pf.Lookup("shapes"))
	bindFlag("palette", pf.Lookup("palette"))
	bindFlag("verbose", pf.Lookup("verbose"))
	bindFlag("log_file", pf.Lookup("log-file"))

	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup resolves configuration and configures logging before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.Setup(v, flagConfig); err != nil {
		return err
	}
	var err error
	cfg, err = config.Load(v)
	if err != nil {
		return err
	}

	verbosity := 0
	if cfg.Verbose {
		verbosity = 2
	}
	var logPath *string
	if cfg.LogFile != "" {
		logPath = &cfg.LogFile
	} else if cmd == browseCmd {
		// Log lines would tear the terminal UI.
		devNull := os.DevNull
		logPath = &devNull
	}
	commonlog.Configure(verbosity, logPath)

	log.Debugf("config: %+v", cfg)
	return nil
}

// loadAtlas loads the configured catalogs and palette. A failure is logged
// and returned so the command exits non-zero with nothing rendered.
func loadAtlas() (*streetleaves.Atlas, error) {
	atlas, err := streetleaves.Load(streetleaves.Sources{
		Locations: cfg.Locations,
		Shapes:    cfg.Shapes,
		Palette:   cfg.Palette,
	})
	if err != nil {
		log.Errorf("%s", err)
		return nil, err
	}
	log.Infof("loaded %d locations and %d shapes", atlas.Locations.Len(), atlas.Shapes.Len())
	return atlas, nil
}

func runList(cmd *cobra.Command, _ []string) error {
	atlas, err := loadAtlas()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range atlas.Locations.Names() {
		loc, _ := atlas.Locations.Lookup(name)
		fmt.Fprintf(out, "%s\t%d\n", name, loc.Total())
	}
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		if cfg.Palette == "" {
			return fmt.Errorf("no palette files given and no palette configured")
		}
		args = []string{cfg.Palette}
	}

	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		changed, err := format.File(path, flagCheck)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}
		if changed {
			fmt.Fprintln(cmd.OutOrStdout(), path)
			needsFormatting = true
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}
	return nil
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
