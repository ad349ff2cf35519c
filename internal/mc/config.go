package mc

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"ising-mc/internal/core"
)

// Temperature grid kinds.
const (
	GridNormal = "normal"
	GridLinear = "linear"
)

// TraceConfig controls the snapshot (single chain) mode.
type TraceConfig struct {
	Size        int      `yaml:"size"`
	Steps       int      `yaml:"steps"`
	Temperature float64  `yaml:"temperature"`
	Every       int      `yaml:"every"`
	Init        InitSpec `yaml:"init"`
}

// Config controls a simulation run.
type Config struct {
	Model   string `yaml:"model"`
	Size    int    `yaml:"size"`
	EqSteps int    `yaml:"eq_steps"`
	MCSteps int    `yaml:"mc_steps"`
	Seed    int64  `yaml:"seed"`
	Workers int    `yaml:"workers"`

	// Grid selects how the temperature set is built: GridNormal samples
	// Temperatures, GridLinear spaces Count points from Low towards High.
	Grid         string          `yaml:"grid"`
	Temperatures TemperatureSpec `yaml:"temperatures"`

	Trace TraceConfig `yaml:"trace"`
}

// DefaultConfig returns the standard configuration for a model. Unknown
// models get the Ising defaults.
func DefaultConfig(model string) Config {
	if model == "twostate" {
		return Config{
			Model:   "twostate",
			Size:    64,
			EqSteps: 100,
			MCSteps: 400,
			Seed:    1337,
			Grid:    GridNormal,
			Temperatures: TemperatureSpec{
				Count: 100, Mean: 1.0, StdDev: 0.64, Low: 0.0, High: 5.8,
			},
			Trace: TraceConfig{Size: 64, Steps: 100, Temperature: 0.5, Every: 10, Init: InitRandom},
		}
	}
	return Config{
		Model:   model,
		Size:    16,
		EqSteps: 1024,
		MCSteps: 1024,
		Seed:    1337,
		Grid:    GridNormal,
		Temperatures: TemperatureSpec{
			Count: 100, Mean: 2.269, StdDev: 0.64, Low: 1.0, High: 4.0,
		},
		Trace: TraceConfig{Size: 64, Steps: 1000, Temperature: 1.2, Every: 10, Init: InitRandom},
	}
}

// FromMap populates the config from a string map (flag-style key/value
// pairs) over the defaults of the named model. Values that fail to parse or
// are out of range keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig(cfg["model"])
	if c.Model == "" {
		c.Model = "ising"
	}
	c.Apply(cfg)
	return c
}

// Apply overrides the fields named in cfg, using the same keys as FromMap.
// The model key is ignored; pick the model before applying overrides.
func (c *Config) Apply(cfg map[string]string) {
	if cfg == nil {
		return
	}
	positiveInt := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	nonNegativeInt := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = parsed
			}
		}
	}

	positiveInt("n", &c.Size)
	nonNegativeInt("eq_steps", &c.EqSteps)
	positiveInt("mc_steps", &c.MCSteps)
	nonNegativeInt("workers", &c.Workers)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["grid"]; ok && (v == GridNormal || v == GridLinear) {
		c.Grid = v
	}
	positiveInt("nt", &c.Temperatures.Count)
	float("t_mean", &c.Temperatures.Mean)
	float("t_stddev", &c.Temperatures.StdDev)
	float("t_low", &c.Temperatures.Low)
	float("t_high", &c.Temperatures.High)

	positiveInt("trace_n", &c.Trace.Size)
	nonNegativeInt("msrmnt", &c.Trace.Steps)
	positiveInt("every", &c.Trace.Every)
	float("temp", &c.Trace.Temperature)
	if v, ok := cfg["init"]; ok && (InitSpec(v) == InitRandom || InitSpec(v) == InitGround) {
		c.Trace.Init = InitSpec(v)
	}
}

// LoadConfig reads a YAML file over the defaults of the model it names.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var head struct {
		Model string `yaml:"model"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if head.Model == "" {
		head.Model = "ising"
	}
	c := DefaultConfig(head.Model)
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// Params returns the per-temperature run lengths.
func (c Config) Params() Params {
	return Params{Size: c.Size, EqSteps: c.EqSteps, MCSteps: c.MCSteps}
}

// Validate checks the sweep-mode settings.
func (c Config) Validate() error {
	if _, err := core.LookupModel(c.Model); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidParameter, c.Workers)
	}
	switch c.Grid {
	case GridNormal:
		return c.Temperatures.Validate()
	case GridLinear:
		if c.Temperatures.Count <= 0 || !(c.Temperatures.Low > 0) || !(c.Temperatures.Low < c.Temperatures.High) {
			return fmt.Errorf("%w: linear grid needs count > 0 and 0 < low < high", ErrInvalidParameter)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown temperature grid %q", ErrInvalidParameter, c.Grid)
	}
}

// ValidateTrace checks the snapshot-mode settings.
func (c Config) ValidateTrace() error {
	if _, err := core.LookupModel(c.Model); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	t := c.Trace
	switch {
	case t.Size <= 0:
		return fmt.Errorf("%w: trace lattice size %d must be positive", ErrInvalidParameter, t.Size)
	case t.Steps < 0:
		return fmt.Errorf("%w: trace steps %d must not be negative", ErrInvalidParameter, t.Steps)
	case !(t.Temperature > 0):
		return fmt.Errorf("%w: trace temperature %v must be positive", ErrInvalidParameter, t.Temperature)
	case t.Init != InitRandom && t.Init != InitGround:
		return fmt.Errorf("%w: unknown init %q", ErrInvalidParameter, t.Init)
	}
	return nil
}

// TemperatureSet builds the temperature set selected by Grid. The normal grid
// draws from a dedicated stream of Seed so it never shares draws with the
// per-temperature chains.
func (c Config) TemperatureSet() ([]float64, error) {
	if c.Grid == GridLinear {
		return LinearTemperatures(c.Temperatures.Low, c.Temperatures.High, c.Temperatures.Count)
	}
	src := rand.NewPCG(uint64(c.Seed), ^uint64(0))
	return GenerateTemperatures(c.Temperatures, src)
}

// Parameters describes the run for the HUD and for persisted runs.
func (c Config) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Model",
			Params: []core.Parameter{
				core.StringParam("model", "Model", c.Model),
				core.Int64Param("seed", "Seed", c.Seed),
			},
		},
		{
			Name: "Sweep",
			Params: []core.Parameter{
				core.IntParam("n", "Lattice size", c.Size),
				core.IntParam("eq_steps", "Equilibration sweeps", c.EqSteps),
				core.IntParam("mc_steps", "Measurement sweeps", c.MCSteps),
				core.StringParam("grid", "Temperature grid", c.Grid),
				core.IntParam("nt", "Temperature samples", c.Temperatures.Count),
				core.FloatParam("t_mean", "Temperature mean", c.Temperatures.Mean),
				core.FloatParam("t_stddev", "Temperature stddev", c.Temperatures.StdDev),
				core.FloatParam("t_low", "Temperature low", c.Temperatures.Low),
				core.FloatParam("t_high", "Temperature high", c.Temperatures.High),
			},
		},
		{
			Name: "Trace",
			Params: []core.Parameter{
				core.IntParam("trace_n", "Lattice size", c.Trace.Size),
				core.IntParam("msrmnt", "Sweeps", c.Trace.Steps),
				core.FloatParam("temp", "Temperature", c.Trace.Temperature),
				core.IntParam("every", "Snapshot every", c.Trace.Every),
				core.StringParam("init", "Initial state", string(c.Trace.Init)),
			},
		},
	}}
}
