package main

import (
	"fmt"

	"github.com/jsvensson/lumen/internal/light"
	"github.com/spf13/cobra"
)

var flagDefault bool

var saveCmd = &cobra.Command{
	Use:   "save <id@provider> <name>",
	Short: "Save the current state of a light under a name",
	Args:  cobra.ExactArgs(2),
	RunE:  runSave,
}

var applyCmd = &cobra.Command{
	Use:   "apply <name>...",
	Short: "Sync saved snapshots back to their lights",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runApply,
}

var dumpsCmd = &cobra.Command{
	Use:   "dumps",
	Short: "List saved dumps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListSnapshots(cmd, false)
	},
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "List saved defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListSnapshots(cmd, true)
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <name>...",
	Short: "Remove saved snapshots",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRemove,
}

var mvCmd = &cobra.Command{
	Use:   "mv <old> <new>",
	Short: "Rename a saved snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

func addSnapshotCommands() {
	for _, cmd := range []*cobra.Command{saveCmd, applyCmd, rmCmd, mvCmd} {
		cmd.Flags().BoolVarP(&flagDefault, "default", "d", false, "operate on defaults instead of dumps")
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(dumpsCmd)
	rootCmd.AddCommand(defaultsCmd)
}

func kind() string {
	if flagDefault {
		return "default"
	}
	return "dump"
}

func runSave(cmd *cobra.Command, args []string) error {
	id, err := light.ParseProviderID(args[0])
	if err != nil {
		return err
	}
	f, err := openFacade()
	if err != nil {
		return err
	}

	if flagDefault {
		err = f.SaveDefault(cmd.Context(), id, args[1])
	} else {
		err = f.Save(cmd.Context(), id, args[1])
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s as %s %q\n", id, kind(), args[1])
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	f, err := openFacade()
	if err != nil {
		return err
	}
	if flagDefault {
		return f.ApplyDefault(cmd.Context(), args, nil)
	}
	return f.LoadAndSync(cmd.Context(), args, nil)
}

func runListSnapshots(cmd *cobra.Command, defaults bool) error {
	f, err := openFacade()
	if err != nil {
		return err
	}

	var lights []*light.Light
	if defaults {
		lights, err = f.ListDefaults()
	} else {
		lights, err = f.ListDumps()
	}
	if err != nil {
		return err
	}
	printLights(cmd.OutOrStdout(), lights)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	f, err := openFacade()
	if err != nil {
		return err
	}
	for _, name := range args {
		if err := f.Remove(name, flagDefault); err != nil {
			return err
		}
	}
	return nil
}

func runRename(cmd *cobra.Command, args []string) error {
	f, err := openFacade()
	if err != nil {
		return err
	}
	if err := f.Rename(args[0], args[1], flagDefault); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s %q to %q\n", kind(), args[0], args[1])
	return nil
}
