package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/metrics"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("orbsim %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestRunCommand(t *testing.T) {
	out := execute(t, "run", "--preset", "solar", "--ticks", "48", "--plot=false", "--log-level", "error")

	for _, want := range []string{"running solar: 48 ticks", "Earth", "Moon", "Sun", "energy_drift", "separation_Earth_Sun"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPresetsCommand(t *testing.T) {
	out := execute(t, "presets")
	for _, name := range config.ListPresets() {
		if !strings.Contains(out, name) {
			t.Errorf("presets output missing %q:\n%s", name, out)
		}
	}

	out = execute(t, "presets", "solar-iss")
	if !strings.Contains(out, "ISS") || !strings.Contains(out, "relative to Earth") {
		t.Errorf("preset detail missing ISS:\n%s", out)
	}
}

func TestPresetsSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary.toml")
	execute(t, "presets", "binary", "--save", path)
	defer presetsCmd.Flags().Set("save", "")

	sc, err := config.LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario(%s): %v", path, err)
	}
	if got := sc.Names(); len(got) != 2 {
		t.Errorf("saved scenario bodies = %v, want Alpha and Beta", got)
	}
}

func TestPrintComparison(t *testing.T) {
	runs := []comparison{
		{name: "euler", energy: metrics.NewEnergyDrift(), momentum: metrics.NewMomentumDrift()},
		{name: "symplectic", energy: metrics.NewEnergyDrift(), momentum: metrics.NewMomentumDrift()},
	}

	var buf bytes.Buffer
	printComparison(&buf, runs, 1500*time.Millisecond)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasPrefix(lines[0], "integrator") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "euler") || !strings.HasPrefix(lines[3], "symplectic") {
		t.Errorf("rows out of order:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "completed in 1.5s") {
		t.Errorf("missing elapsed time:\n%s", buf.String())
	}
}
