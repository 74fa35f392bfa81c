// Package config loads runtime settings with viper and describes the
// initial bodies of a run as a Scenario, read from yaml or toml files or
// taken from the built-in presets.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/san-kum/orbsim/internal/integrators"
	"github.com/san-kum/orbsim/internal/physics"
	"github.com/san-kum/orbsim/internal/world"
)

const (
	DefaultFPS           = 60
	DefaultTimeScale     = 3600.0
	DefaultQueueCapacity = 64
	DefaultPreset        = "solar"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"

	// MaxFPS keeps the tick period at or above one nanosecond.
	MaxFPS = int(time.Second)

	EnvPrefix  = "ORBSIM"
	ConfigName = ".orbsim"
)

var (
	ErrInvalidFPS      = errors.New("config: fps must be between 1 and 1e9")
	ErrInvalidCapacity = errors.New("config: queue_capacity must be positive")
	ErrUnknownFormat   = errors.New("config: unknown file format")
	ErrUnknownKind     = errors.New("config: unknown body kind")
	ErrUnknownRef      = errors.New("config: relative_to must name an earlier body")
	ErrUnknownPreset   = errors.New("config: unknown preset")
)

// Settings holds the runtime configuration of a run. Values come from
// .orbsim.yaml, ORBSIM_* env vars and CLI flags, in viper's usual order.
type Settings struct {
	FPS           int     `mapstructure:"fps"`
	TimeScale     float64 `mapstructure:"time_scale"`
	QueueCapacity int     `mapstructure:"queue_capacity"`
	Integrator    string  `mapstructure:"integrator"`
	Field         string  `mapstructure:"field"`
	Softening     float64 `mapstructure:"softening"`
	Scenario      string  `mapstructure:"scenario"`
	Preset        string  `mapstructure:"preset"`
	LogLevel      string  `mapstructure:"log_level"`
	LogFormat     string  `mapstructure:"log_format"`
	MetricsAddr   string  `mapstructure:"metrics_addr"`
	ControlFile   string  `mapstructure:"control_file"`
}

// SetDefaults registers the built-in defaults with the global viper.
func SetDefaults() {
	viper.SetDefault("fps", DefaultFPS)
	viper.SetDefault("time_scale", DefaultTimeScale)
	viper.SetDefault("queue_capacity", DefaultQueueCapacity)
	viper.SetDefault("integrator", integrators.Default)
	viper.SetDefault("field", "newtonian")
	viper.SetDefault("softening", 0.0)
	viper.SetDefault("scenario", "")
	viper.SetDefault("preset", DefaultPreset)
	viper.SetDefault("log_level", DefaultLogLevel)
	viper.SetDefault("log_format", DefaultLogFormat)
	viper.SetDefault("metrics_addr", "")
	viper.SetDefault("control_file", "")
}

// Load reads the settings from viper, applying defaults for any values not
// set by config file, environment, or flags.
func Load() (Settings, error) {
	SetDefaults()

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.FPS <= 0 || s.FPS > MaxFPS {
		return fmt.Errorf("%w: %d", ErrInvalidFPS, s.FPS)
	}
	if s.QueueCapacity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, s.QueueCapacity)
	}
	if err := world.ValidateTimeScale(s.TimeScale); err != nil {
		return err
	}
	if _, err := integrators.Lookup(s.Integrator); err != nil {
		return err
	}
	if _, err := physics.NewField(s.Field, s.Softening); err != nil {
		return err
	}
	return nil
}

// Engine builds the gravity engine the settings describe.
func (s Settings) Engine() (*physics.Engine, error) {
	field, err := physics.NewField(s.Field, s.Softening)
	if err != nil {
		return nil, err
	}
	integ, err := integrators.Lookup(s.Integrator)
	if err != nil {
		return nil, err
	}
	return physics.NewEngine(field, integ), nil
}

// LoadScenario returns the scenario file if one is set, else the preset.
func (s Settings) LoadScenario() (*Scenario, error) {
	if s.Scenario != "" {
		return LoadScenario(s.Scenario)
	}
	sc := GetPreset(s.Preset)
	if sc == nil {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownPreset, s.Preset, strings.Join(ListPresets(), ", "))
	}
	return sc, nil
}
