package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/san-kum/orbsim/internal/command"
	"github.com/san-kum/orbsim/internal/input"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/tui"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "run the simulation in real time with a terminal view",
	Args:  cobra.NoArgs,
	RunE:  runLive,
}

func init() {
	f := liveCmd.Flags()
	f.Int("view-fps", 30, "frame rate of the terminal view")
	f.String("focus", "", "body the camera starts on")
	f.String("inset", "", "open a second window that follows this body")
	f.Int("inset-fps", 5, "frame rate of the second window")
	f.String("log-file", "", "write logs to this file instead of discarding them")
	f.String("control-file", "", "tail this file for commands, one per line")
	f.Float64("control-rate", 0, "max control file commands per second (0 = unlimited)")
	f.String("metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")

	_ = viper.BindPFlag("control_file", f.Lookup("control-file"))
	_ = viper.BindPFlag("metrics_addr", f.Lookup("metrics-addr"))
}

func runLive(cmd *cobra.Command, args []string) error {
	var logOut io.Writer = io.Discard
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	ss, err := setup(logOut)
	if err != nil {
		return err
	}
	s := ss.settings

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	collector := metrics.NewCollector(reg)

	queue := command.NewQueue(s.QueueCapacity)
	driver, err := sim.New(ss.world, ss.engine, queue, sim.Options{
		FPS:     s.FPS,
		Logger:  ss.log,
		Metrics: collector,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if s.ControlFile != "" {
		perSecond, _ := cmd.Flags().GetFloat64("control-rate")
		src, err := input.NewFileSource(s.ControlFile, queue, input.FileOptions{
			Logger:  ss.log,
			Metrics: collector,
			Rate:    rate.Limit(perSecond),
			Burst:   max(1, int(perSecond)),
		})
		if err != nil {
			return err
		}
		go func() {
			if err := src.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				ss.log.Error("control file stopped", "path", s.ControlFile, "err", err)
			}
		}()
	}

	if s.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              s.MetricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				ss.log.Error("metrics server", "addr", s.MetricsAddr, "err", err)
			}
		}()
		defer srv.Close()
		ss.log.Info("serving metrics", "addr", s.MetricsAddr)
	}

	done := make(chan error, 1)
	go func() { done <- driver.Spin(ctx) }()

	fps, _ := cmd.Flags().GetInt("view-fps")
	focus, _ := cmd.Flags().GetString("focus")
	opts := tui.Options{
		FPS:           fps,
		BaseTimeScale: s.TimeScale,
		Focus:         focus,
	}
	if inset, _ := cmd.Flags().GetString("inset"); inset != "" {
		opts.Inset = driver.Subscribe()
		opts.InsetFocus = inset
		opts.InsetFPS, _ = cmd.Flags().GetInt("inset-fps")
	}
	viewErr := tui.Run(ctx, driver.Subscribe(), queue, opts)

	// the view may have quit without a Shutdown reaching the queue
	if err := queue.TrySend(command.Shutdown{}); err != nil {
		queue.Close()
	}
	spinErr := <-done
	queue.Close()

	if errors.Is(spinErr, context.Canceled) {
		spinErr = nil
	}
	return errors.Join(viewErr, spinErr)
}
