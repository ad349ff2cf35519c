package core

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownModel is returned by LookupModel for unregistered names.
var ErrUnknownModel = errors.New("core: unknown model")

// Model defines the energy rule of a lattice spin model. Implementations are
// stateless and must not mutate the lattice.
type Model interface {
	Name() string
	// FlipCost returns the energy change incurred by flipping (i, j).
	FlipCost(l *Lattice, i, j int) float64
	TotalEnergy(l *Lattice) float64
	TotalMagnetization(l *Lattice) float64
	// GroundSpin is the spin every cell holds in the model's ground state.
	GroundSpin() int8
}

// TotalMagnetization is the shared magnetization definition: the sum of all spins.
func TotalMagnetization(l *Lattice) float64 {
	return float64(l.Magnetization())
}

var models = map[string]Model{}

// Register adds a model under the provided name.
func Register(name string, m Model) {
	if name == "" || m == nil {
		return
	}
	models[name] = m
}

// Models exposes the registry of available models.
func Models() map[string]Model {
	return models
}

// ModelNames returns the registered model names in sorted order.
func ModelNames() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupModel returns the model registered under name.
func LookupModel(name string) (Model, error) {
	m, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownModel, name, ModelNames())
	}
	return m, nil
}
