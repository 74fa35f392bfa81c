package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/world"
)

const (
	KindCelestial  = "celestial"
	KindSpacecraft = "spacecraft"
)

// BodySpec describes one body. Position and velocity are offsets from the
// body named by RelativeTo when it is set; that body must appear earlier in
// the list.
type BodySpec struct {
	Name       string     `yaml:"name" toml:"name"`
	Kind       string     `yaml:"kind,omitempty" toml:"kind,omitempty"`
	Mass       float64    `yaml:"mass" toml:"mass"`
	Radius     float64    `yaml:"radius,omitempty" toml:"radius,omitempty"`
	Position   [3]float64 `yaml:"position" toml:"position"`
	Velocity   [3]float64 `yaml:"velocity" toml:"velocity"`
	RelativeTo string     `yaml:"relative_to,omitempty" toml:"relative_to,omitempty"`
}

type Scenario struct {
	Name        string     `yaml:"name" toml:"name"`
	Description string     `yaml:"description,omitempty" toml:"description,omitempty"`
	Bodies      []BodySpec `yaml:"bodies" toml:"bodies"`
}

// LoadScenario reads a .yaml, .yml or .toml scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes data in the format named by ext (".yaml", ".yml",
// ".toml"; the leading dot is optional).
func ParseScenario(data []byte, ext string) (*Scenario, error) {
	sc := &Scenario{}
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, sc); err != nil {
			return nil, err
		}
	case "toml":
		if err := toml.Unmarshal(data, sc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return sc, nil
}

// SaveScenario writes sc as toml when path ends in .toml and as yaml
// otherwise.
func SaveScenario(path string, sc *Scenario) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err = toml.Marshal(sc)
	} else {
		data, err = yaml.Marshal(sc)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build resolves relative offsets and constructs the world. Invalid bodies
// are rejected by the body constructors, duplicate names by world.New.
func (sc *Scenario) Build(timeScale float64) (*world.World, error) {
	type motion struct{ pos, vel body.Vec3 }
	resolved := make(map[string]motion, len(sc.Bodies))

	var (
		celestials []body.CelestialBody
		spacecraft []body.Spacecraft
	)
	for i, b := range sc.Bodies {
		pos, vel := vec(b.Position), vec(b.Velocity)
		if b.RelativeTo != "" {
			ref, ok := resolved[b.RelativeTo]
			if !ok {
				return nil, fmt.Errorf("%w: body %d (%s) relative to %q", ErrUnknownRef, i, b.Name, b.RelativeTo)
			}
			pos, vel = ref.pos.Add(pos), ref.vel.Add(vel)
		}

		switch b.Kind {
		case "", KindCelestial:
			c, err := body.NewCelestial(b.Name, b.Mass, pos, vel, b.Radius)
			if err != nil {
				return nil, fmt.Errorf("config: body %d (%s): %w", i, b.Name, err)
			}
			celestials = append(celestials, c)
		case KindSpacecraft:
			s, err := body.NewSpacecraft(b.Name, b.Mass, pos, vel)
			if err != nil {
				return nil, fmt.Errorf("config: body %d (%s): %w", i, b.Name, err)
			}
			spacecraft = append(spacecraft, s)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, b.Kind)
		}
		if _, seen := resolved[b.Name]; !seen {
			resolved[b.Name] = motion{pos, vel}
		}
	}

	return world.New(celestials, spacecraft, timeScale)
}

// Names returns body names in file order.
func (sc *Scenario) Names() []string {
	names := make([]string, len(sc.Bodies))
	for i, b := range sc.Bodies {
		names[i] = b.Name
	}
	return names
}

func (sc *Scenario) clone() *Scenario {
	c := *sc
	c.Bodies = append([]BodySpec(nil), sc.Bodies...)
	return &c
}

func vec(a [3]float64) body.Vec3 { return body.Vec3{X: a[0], Y: a[1], Z: a[2]} }
