package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbsim/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets [name]",
	Short: "list built-in scenarios, or write one to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  listPresets,
}

func init() {
	presetsCmd.Flags().String("save", "", "write the named preset to this .yaml or .toml file")
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	save, _ := cmd.Flags().GetString("save")

	if len(args) == 0 {
		if save != "" {
			return fmt.Errorf("--save needs a preset name (available: %v)", config.ListPresets())
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tBODIES\tDESCRIPTION")
		for _, name := range config.ListPresets() {
			sc := config.GetPreset(name)
			fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(sc.Bodies), sc.Description)
		}
		return w.Flush()
	}

	sc := config.GetPreset(args[0])
	if sc == nil {
		return fmt.Errorf("%w: %s (available: %v)", config.ErrUnknownPreset, args[0], config.ListPresets())
	}
	if save != "" {
		if err := config.SaveScenario(save, sc); err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %s to %s\n", sc.Name, save)
		return nil
	}

	fmt.Fprintf(out, "%s: %s\n", sc.Name, sc.Description)
	for _, b := range sc.Bodies {
		kind := b.Kind
		if kind == "" {
			kind = config.KindCelestial
		}
		line := fmt.Sprintf("  %-8s %-10s mass %.4e kg", b.Name, kind, b.Mass)
		if b.RelativeTo != "" {
			line += " relative to " + b.RelativeTo
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
