package config

import "sort"

var Presets = map[string]*Scenario{
	"solar": {
		Name:        "solar",
		Description: "Sun, Earth and Moon",
		Bodies:      solarBodies(),
	},
	"solar-iss": {
		Name:        "solar-iss",
		Description: "Sun, Earth and Moon with the ISS in low Earth orbit",
		Bodies: append(solarBodies(), BodySpec{
			Name: "ISS", Kind: KindSpacecraft, Mass: 419725,
			Position: [3]float64{6.771e6, 0, 0}, Velocity: [3]float64{0, 7660, 0},
			RelativeTo: "Earth",
		}),
	},
	"binary": {
		Name:        "binary",
		Description: "two equal stars on a circular orbit",
		Bodies: []BodySpec{
			{Name: "Alpha", Mass: 1e30, Radius: 7e8,
				Position: [3]float64{-5e10, 0, 0}, Velocity: [3]float64{0, -18268, 0}},
			{Name: "Beta", Mass: 1e30, Radius: 7e8,
				Position: [3]float64{5e10, 0, 0}, Velocity: [3]float64{0, 18268, 0}},
		},
	},
}

func solarBodies() []BodySpec {
	return []BodySpec{
		{Name: "Sun", Mass: 1.98911e30, Radius: 6.9634e8},
		{Name: "Earth", Mass: 5.972e24, Radius: 6.371e6,
			Position: [3]float64{1.521e11, 0, 0}, Velocity: [3]float64{0, 29290, 0}},
		{Name: "Moon", Mass: 7.34767309e22, Radius: 1.7374e6,
			Position: [3]float64{4.037634453e8, 0, 3.63901118372e7}, Velocity: [3]float64{0, 970, 0},
			RelativeTo: "Earth"},
	}
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Scenario {
	sc, ok := Presets[name]
	if !ok {
		return nil
	}
	return sc.clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
