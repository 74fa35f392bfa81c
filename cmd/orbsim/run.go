package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/command"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/world"
)

const secondsPerDay = 86400

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run a fixed number of ticks without a view",
	Args:  cobra.NoArgs,
	RunE:  runBatch,
}

func init() {
	f := runCmd.Flags()
	f.Int("ticks", 8760, "ticks to simulate")
	f.String("from", "Earth", "body whose distance is plotted")
	f.String("to", "Sun", "reference body for the distance plot")
	f.Bool("plot", true, "print a distance plot")
	f.Float64("escape-radius", 1e13, "distance from the origin counted as escaped, in metres")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ticks, _ := cmd.Flags().GetInt("ticks")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	plot, _ := cmd.Flags().GetBool("plot")
	radius, _ := cmd.Flags().GetFloat64("escape-radius")

	ss, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	driver, err := sim.New(ss.world, ss.engine, command.NewQueue(1), sim.Options{
		FPS:    ss.settings.FPS,
		Logger: ss.log,
	})
	if err != nil {
		return err
	}
	rx := driver.Subscribe()

	sep := metrics.NewSeparation(from, to)
	energy := metrics.NewEnergyDrift()
	momentum := metrics.NewMomentumDrift()
	stability := metrics.NewStability(radius)
	for _, m := range []metrics.Metric{sep, energy, momentum, stability} {
		driver.AddMetric(m)
	}

	out := cmd.OutOrStdout()
	dt := ss.settings.TimeScale / float64(ss.settings.FPS)
	fmt.Fprintf(out, "running %s: %d ticks of %gs (%s, %s)\n",
		ss.scenario.Name, ticks, dt, ss.settings.Integrator, ss.settings.Field)

	start := time.Now()
	if err := driver.Run(cmd.Context(), ticks); err != nil {
		return err
	}
	elapsed := time.Since(start)

	final := rx.Borrow()
	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "simulated %.2f days\n\n", final.SimTime()/secondsPerDay)
	printBodies(out, final)

	fmt.Fprintln(out, "\nmetrics:")
	fmt.Fprintf(out, "  %s: %.3e\n", energy.Name(), energy.Value())
	fmt.Fprintf(out, "  %s: %.3e\n", momentum.Name(), momentum.Value())
	fmt.Fprintf(out, "  %s: %.3f\n", stability.Name(), stability.Value())

	series := sep.Series()
	if len(series) == 0 {
		fmt.Fprintf(out, "  %s: no samples (unknown body?)\n", sep.Name())
		return nil
	}
	fmt.Fprintf(out, "  %s: min %.4e max %.4e mean %.4e\n", sep.Name(), sep.Min(), sep.Max(), sep.Value())

	if plot && len(series) > 1 {
		graph := asciigraph.Plot(sep.Downsample(80),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s to %s distance (m)", from, to)),
		)
		fmt.Fprintf(out, "\n%s\n", graph)
	}
	return nil
}

func printBodies(out io.Writer, snap world.Snapshot) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tKIND\tX (m)\tY (m)\tZ (m)\tSPEED (m/s)")
	for _, b := range snap.Bodies() {
		kind := "celestial"
		if _, ok := b.(body.Spacecraft); ok {
			kind = "spacecraft"
		}
		p := b.Position()
		fmt.Fprintf(w, "%s\t%s\t%.4e\t%.4e\t%.4e\t%.1f\n", b.Name(), kind, p.X, p.Y, p.Z, b.Velocity().Norm())
	}
	w.Flush()
}
