package main

import (
	"fmt"
	"math"
	"os"

	"github.com/jsvensson/lumen"
	"github.com/jsvensson/lumen/internal/config"
	"github.com/jsvensson/lumen/internal/export"
	"github.com/jsvensson/lumen/internal/format"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	flagConfig    string
	flagRegistry  string
	flagVerbose   int
	flagLog       string
	flagOut       string
	flagTemplates string
	flagName      []string
	flagCheck     bool
	version       = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:           "lumen",
	Short:         "Control lights from the command line and keep named snapshots of their state",
	Version:       version,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var path *string
		if flagLog != "" {
			path = &flagLog
		}
		commonlog.Configure(flagVerbose, path)
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <color>",
	Short: "Show a color expression in every supported notation",
	Long: `Evaluate a color expression and print it as hex, CSS rgb(), HSV, CIE XYZ
and correlated color temperature. Accepts "#rrggbb" and the light file
functions: rgb, hex, hsv, xyz, kelvin, brighten and darken.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render templates against the current light state",
	RunE:  runExport,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format light files",
	Long:  "Format one or more light files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
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
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "lights.hcl", "path to light file")
	rootCmd.PersistentFlags().StringVar(&flagRegistry, "registry", "", "registry directory (overrides the light file)")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")
	rootCmd.PersistentFlags().StringVar(&flagLog, "log", "", "write logs to this file instead of stderr")

	exportCmd.Flags().StringVar(&flagOut, "out", "output", "output directory")
	exportCmd.Flags().StringVar(&flagTemplates, "templates", "templates", "templates directory")
	exportCmd.Flags().StringArrayVar(&flagName, "name", nil, "render only specific outputs (can be repeated)")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
	addLightCommands()
	addSnapshotCommands()
}

func openFacade() (*lumen.Facade, error) {
	f, err := lumen.Open(flagConfig, flagRegistry)
	if err != nil {
		return nil, fmt.Errorf("loading light file: %w", err)
	}
	return f, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	c, err := config.ParseColor(args[0])
	if err != nil {
		return err
	}

	rgb := c.RGB()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "hex     %s\n", rgb.Hex())
	fmt.Fprintf(out, "css     %s\n", rgb.CSS())
	fmt.Fprintf(out, "hsv     %s\n", c.HSV())
	fmt.Fprintf(out, "xyz     %s\n", c)
	fmt.Fprintf(out, "kelvin  %.0f\n", math.Round(c.Temperature().Float64()))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	f, err := openFacade()
	if err != nil {
		return err
	}
	lights, err := f.ListAll(cmd.Context())
	if err != nil {
		return err
	}

	e := &export.Engine{
		TemplatesDir: flagTemplates,
		OutputDir:    flagOut,
		Names:        flagName,
	}
	if err := e.Run(lights); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d lights to %s\n", len(lights), flagOut)
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		formatted, err := format.Format(data)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if string(formatted) == string(data) {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, formatted, 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
