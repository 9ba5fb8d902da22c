package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jsvensson/lumen/internal/color"
	"github.com/jsvensson/lumen/internal/config"
	"github.com/jsvensson/lumen/internal/light"
	"github.com/jsvensson/lumen/internal/scalar"
	"github.com/spf13/cobra"
)

var (
	flagProvider   string
	flagColor      string
	flagBrightness float64
	flagOn         bool
	flagOff        bool
	flagSave       string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List lights",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var getCmd = &cobra.Command{
	Use:   "get <id@provider>...",
	Short: "Show the state of lights",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGet,
}

var setCmd = &cobra.Command{
	Use:   "set <id@provider>...",
	Short: "Change lights and sync them",
	Long: `Change the color, brightness or power of one or more lights. --color accepts
any expression "lumen convert" does. With --save, the resulting state of a
single light is also stored as a dump.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSet,
}

func addLightCommands() {
	listCmd.Flags().StringVar(&flagProvider, "provider", "", "list only lights of this provider")

	setCmd.Flags().StringVar(&flagColor, "color", "", "new color")
	setCmd.Flags().Float64Var(&flagBrightness, "brightness", 0, "new brightness (0 to 1)")
	setCmd.Flags().BoolVar(&flagOn, "on", false, "turn lights on")
	setCmd.Flags().BoolVar(&flagOff, "off", false, "turn lights off")
	setCmd.Flags().StringVar(&flagSave, "save", "", "save the result as a dump with this name")
	setCmd.MarkFlagsMutuallyExclusive("on", "off")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
}

func parseIDs(args []string) ([]light.ProviderID, error) {
	ids := make([]light.ProviderID, 0, len(args))
	for _, arg := range args {
		id, err := light.ParseProviderID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// printLight writes a one-line summary of l.
func printLight(w io.Writer, l *light.Light) {
	power := "off"
	if l.Power() {
		power = "on"
	}
	fmt.Fprintf(w, "%s %s", l, power)
	if c, err := l.Color(); err == nil {
		fmt.Fprintf(w, " color=%s", c.RGB().Hex())
	}
	if b, err := l.Brightness(); err == nil {
		fmt.Fprintf(w, " brightness=%.2f", b.Float64())
	}
	if m, err := l.Mode(); err == nil {
		fmt.Fprintf(w, " mode=%s", m.Name)
	}
	fmt.Fprintln(w)
}

func printLights(w io.Writer, lights []*light.Light) {
	for _, l := range lights {
		printLight(w, l)
	}
}

func runList(cmd *cobra.Command, args []string) error {
	f, err := openFacade()
	if err != nil {
		return err
	}

	var lights []*light.Light
	if flagProvider != "" {
		lights, err = f.ListProvider(cmd.Context(), flagProvider)
	} else {
		lights, err = f.ListAll(cmd.Context())
	}
	if err != nil {
		return err
	}
	printLights(cmd.OutOrStdout(), lights)
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	f, err := openFacade()
	if err != nil {
		return err
	}
	lights, err := f.GetMany(cmd.Context(), ids)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, l := range lights {
		printLight(out, l)
		if c, err := l.Color(); err == nil {
			fmt.Fprintf(out, "  hsv     %s\n", c.HSV())
			fmt.Fprintf(out, "  xyz     %s\n", c)
			fmt.Fprintf(out, "  kelvin  %.0f\n", c.Temperature().Float64())
		}
		if m, err := l.Mode(); err == nil {
			for _, p := range m.Parameters {
				fmt.Fprintf(out, "  %s.%s = %v\n", m.Name, p.Name, p.Value)
			}
		}
	}
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	if flagSave != "" && len(ids) != 1 {
		return errors.New("--save needs exactly one light")
	}

	var c *color.Color
	if flagColor != "" {
		parsed, err := config.ParseColor(flagColor)
		if err != nil {
			return err
		}
		c = &parsed
	}
	setBrightness := cmd.Flags().Changed("brightness")
	if c == nil && !setBrightness && !flagOn && !flagOff {
		return errors.New("nothing to set: use --color, --brightness, --on or --off")
	}

	f, err := openFacade()
	if err != nil {
		return err
	}

	err = f.FetchAndSync(cmd.Context(), ids, func(l *light.Light) error {
		if c != nil {
			if err := l.SetColor(*c); err != nil {
				return err
			}
		}
		if setBrightness {
			if err := l.SetBrightness(scalar.NewNorm(flagBrightness)); err != nil {
				return err
			}
		}
		if flagOn || flagOff {
			l.Turn(flagOn)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if flagSave != "" {
		if err := f.Save(cmd.Context(), ids[0], flagSave); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s as %q\n", ids[0], flagSave)
	}
	return nil
}
