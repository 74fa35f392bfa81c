package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbsim/internal/command"
	"github.com/san-kum/orbsim/internal/integrators"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/physics"
	"github.com/san-kum/orbsim/internal/sim"
)

var compareCmd = &cobra.Command{
	Use:   "compare [integrator...]",
	Short: "run the same scenario with each integrator and compare drift",
	Long:  "compare runs one batch simulation per integrator in parallel. With no arguments every registered integrator is used.",
	RunE:  compareIntegrators,
}

func init() {
	compareCmd.Flags().Int("ticks", 8760, "ticks to simulate")
}

type comparison struct {
	name     string
	energy   *metrics.EnergyDrift
	momentum *metrics.MomentumDrift
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	ticks, _ := cmd.Flags().GetInt("ticks")
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	ss, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	field, err := physics.NewField(ss.settings.Field, ss.settings.Softening)
	if err != nil {
		return err
	}

	ensemble := sim.NewEnsemble()
	runs := make([]comparison, 0, len(names))
	for _, name := range names {
		integ, err := integrators.Lookup(name)
		if err != nil {
			return err
		}
		w, err := ss.scenario.Build(ss.settings.TimeScale)
		if err != nil {
			return err
		}
		d, err := sim.New(w, physics.NewEngine(field, integ), command.NewQueue(1), sim.Options{
			FPS:    ss.settings.FPS,
			Logger: ss.log.With("integrator", name),
		})
		if err != nil {
			return err
		}

		c := comparison{name: name, energy: metrics.NewEnergyDrift(), momentum: metrics.NewMomentumDrift()}
		d.AddMetric(c.energy)
		d.AddMetric(c.momentum)
		ensemble.Add(name, d)
		runs = append(runs, c)
	}

	out := cmd.OutOrStdout()
	dt := ss.settings.TimeScale / float64(ss.settings.FPS)
	fmt.Fprintf(out, "comparing integrators on %s (%d ticks, dt=%gs)\n\n", ss.scenario.Name, ticks, dt)

	start := time.Now()
	if err := ensemble.Run(cmd.Context(), ticks); err != nil {
		return err
	}
	printComparison(out, runs, time.Since(start))
	return nil
}

func printComparison(out io.Writer, runs []comparison, elapsed time.Duration) {
	fmt.Fprintf(out, "%-12s  %-14s  %-14s\n", "integrator", "energy_drift", "momentum_drift")
	fmt.Fprintln(out, strings.Repeat("-", 44))
	for _, r := range runs {
		fmt.Fprintf(out, "%-12s  %14.3e  %14.3e\n", r.name, r.energy.Value(), r.momentum.Value())
	}
	fmt.Fprintf(out, "\ncompleted in %v\n", elapsed)
}
