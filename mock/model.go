// Package mock generates mock interferometer data for noise regression
// studies: a colored background, witness channels, and a target in which
// the witnesses couple into the background through one of the models.
//
// One random source per call drives every draw, so a seed reproduces the
// whole result.
package mock

import (
	"errors"
	"fmt"
	"strings"
)

// Model names a coupling model.
type Model string

// Known models.
const (
	Scatter   Model = "scatter"
	Bilinear  Model = "bilinear"
	Resonance Model = "resonance"
)

var (
	// ErrUnknownModel reports a model name outside the known set.
	ErrUnknownModel = errors.New("mock: unknown noise model")
	// ErrInvalidConfig reports a model configuration that cannot be run.
	ErrInvalidConfig = errors.New("mock: invalid model config")
)

// Models returns the known models in a stable order.
func Models() []Model {
	return []Model{Scatter, Bilinear, Resonance}
}

// ParseModel resolves a model name.
func ParseModel(name string) (Model, error) {
	for _, m := range Models() {
		if string(m) == name {
			return m, nil
		}
	}

	return "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownModel, name, knownNames())
}

func (m Model) String() string {
	return string(m)
}

func knownNames() string {
	names := make([]string, 0, 3)
	for _, m := range Models() {
		names = append(names, string(m))
	}

	return strings.Join(names, ", ")
}
