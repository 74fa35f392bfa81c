package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/integrators"
	"github.com/san-kum/orbsim/internal/logging"
	"github.com/san-kum/orbsim/internal/physics"
	"github.com/san-kum/orbsim/internal/world"
)

var rootCmd = &cobra.Command{
	Use:   "orbsim",
	Short: "gravity simulation of bodies and spacecraft",
	Long: "orbsim integrates Newtonian gravity between celestial bodies and the " +
		"spacecraft moving among them, in real time in the terminal or as a batch run.",
	SilenceUsage: true,
}

// flagKeys binds persistent flags to their viper keys.
var flagKeys = map[string]string{
	"fps":            "fps",
	"time-scale":     "time_scale",
	"queue-capacity": "queue_capacity",
	"integrator":     "integrator",
	"field":          "field",
	"softening":      "softening",
	"scenario":       "scenario",
	"preset":         "preset",
	"log-level":      "log_level",
	"log-format":     "log_format",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .orbsim.yaml)")
	pf.Int("fps", config.DefaultFPS, "ticks per wall-clock second")
	pf.Float64("time-scale", config.DefaultTimeScale, "simulated seconds per wall-clock second")
	pf.Int("queue-capacity", config.DefaultQueueCapacity, "command queue capacity")
	pf.String("integrator", integrators.Default, fmt.Sprintf("integrator %v", integrators.Names()))
	pf.String("field", "newtonian", fmt.Sprintf("force field %v", physics.FieldNames()))
	pf.Float64("softening", 0, "softening length in metres (softened field)")
	pf.String("scenario", "", "scenario file (.yaml or .toml), overrides --preset")
	pf.String("preset", config.DefaultPreset, "built-in scenario")
	pf.String("log-level", config.DefaultLogLevel, "debug, info, warn or error")
	pf.String("log-format", config.DefaultLogFormat, "text or json")

	for flag, key := range flagKeys {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}

	rootCmd.AddCommand(liveCmd, runCmd, compareCmd, presetsCmd)
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(config.ConfigName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	// no config file is fine; defaults apply
	_ = viper.ReadInConfig()
}

// session is what every subcommand needs before it can build a driver.
type session struct {
	settings config.Settings
	scenario *config.Scenario
	world    *world.World
	engine   *physics.Engine
	log      *slog.Logger
}

// setup loads the settings and builds the world and engine they describe.
// Logs go to w.
func setup(w io.Writer) (*session, error) {
	s, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(w, s.LogLevel, s.LogFormat)
	if err != nil {
		return nil, err
	}
	sc, err := s.LoadScenario()
	if err != nil {
		return nil, err
	}
	wld, err := sc.Build(s.TimeScale)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	engine, err := s.Engine()
	if err != nil {
		return nil, err
	}
	logger.Debug("scenario loaded", "scenario", sc.Name, "bodies", len(sc.Bodies), "integrator", s.Integrator, "field", s.Field)
	return &session{settings: s, scenario: sc, world: wld, engine: engine, log: logger}, nil
}
