// Package cli holds the flag and logging glue shared by the commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"ising-mc/internal/mc"
	_ "ising-mc/internal/sims/ising"
	_ "ising-mc/internal/sims/twostate"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends a key=value pair, rejecting values without '='.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q is not in key=value form", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs as a map; later entries win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}

// LoadConfig builds the run configuration: the YAML file at path when given,
// otherwise the defaults of model, with overrides applied on top. A non-empty
// model also replaces the model named in the file.
func LoadConfig(path, model string, overrides map[string]string) (mc.Config, error) {
	var cfg mc.Config
	if path != "" {
		loaded, err := mc.LoadConfig(path)
		if err != nil {
			return mc.Config{}, err
		}
		cfg = loaded
		if model != "" {
			cfg.Model = model
		}
	} else {
		if model == "" {
			model = "ising"
		}
		cfg = mc.DefaultConfig(model)
	}
	cfg.Apply(overrides)
	return cfg, nil
}

// NewLogger returns a text logger writing to w at Info level, or Debug when
// verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
