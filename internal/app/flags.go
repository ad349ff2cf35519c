package app

import (
	"flag"

	"ising-mc/internal/mc"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Model       string
	Size        int
	Temperature float64
	Init        string
	Scale       int
	Rate        int
	TPS         int
	Seed        int64
	HUDWidth    int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Model:       "ising",
		Size:        128,
		Temperature: 2.269,
		Init:        string(mc.InitRandom),
		Scale:       4,
		Rate:        30,
		TPS:         60,
		Seed:        42,
		HUDWidth:    220,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Model, "model", c.Model, "lattice model to run (ising, twostate)")
	fs.IntVar(&c.Size, "n", c.Size, "lattice edge length")
	fs.Float64Var(&c.Temperature, "temp", c.Temperature, "initial temperature")
	fs.StringVar(&c.Init, "init", c.Init, "initial state (random, ground)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.Rate, "rate", c.Rate, "sweeps per second")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for chain reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the control panel in pixels (0 hides it)")
}
