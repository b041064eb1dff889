package mock

import (
	"github.com/cwbudde/algo-mockdata/dsp/signal"
)

// Role tells whether a witness couples into the target.
type Role string

// Witness roles.
const (
	RoleRelevant   Role = "relevant"
	RoleIrrelevant Role = "irrelevant"
)

// Family groups witnesses by the physical channel they imitate.
type Family string

// Witness families.
const (
	FamilySeismic  Family = "seismic"
	FamilyAcoustic Family = "acoustic"
	FamilyBeamSpot Family = "beam_spot"
	FamilyAngular  Family = "angular"
	FamilyWhite    Family = "white"
)

// Witness is one witness channel.
type Witness struct {
	Name   string    `json:"name"`
	Family Family    `json:"family"`
	Role   Role      `json:"role"`
	Data   []float64 `json:"data"`
}

// Aux holds model-specific diagnostics: true motions, ideal estimates and
// the parameters that produced them.
type Aux struct {
	Series   map[string][]float64   `json:"series,omitempty"`
	Matrices map[string][][]float64 `json:"matrices,omitempty"`
	Scalars  map[string]float64     `json:"scalars,omitempty"`
}

func newAux() Aux {
	return Aux{
		Series:   map[string][]float64{},
		Matrices: map[string][][]float64{},
		Scalars:  map[string]float64{},
	}
}

// Result is the output of one generation run. Every series has
// Duration*SampleRate samples.
type Result struct {
	Model      Model     `json:"model"`
	SampleRate int       `json:"fs"`
	Times      []float64 `json:"times"`
	Background []float64 `json:"background"`
	// Target is Background plus the coupled noise.
	Target    []float64 `json:"target"`
	Witnesses []Witness `json:"witnesses"`
	Aux       Aux       `json:"aux"`
}

// WitnessMatrix returns the witness data as rows, in witness order. The
// rows share storage with the result.
func (r *Result) WitnessMatrix() [][]float64 {
	out := make([][]float64, len(r.Witnesses))
	for i, w := range r.Witnesses {
		out[i] = w.Data
	}

	return out
}

// Relevant returns the witnesses that couple into the target.
func (r *Result) Relevant() []Witness {
	return r.byRole(RoleRelevant)
}

// Irrelevant returns the witnesses with no coupling to the target.
func (r *Result) Irrelevant() []Witness {
	return r.byRole(RoleIrrelevant)
}

func (r *Result) byRole(role Role) []Witness {
	var out []Witness
	for _, w := range r.Witnesses {
		if w.Role == role {
			out = append(out, w)
		}
	}

	return out
}

// ShiftTarget rotates the target by seconds (truncated to whole samples),
// so that the new target[i] is the old target[i+shift]. It breaks the
// time alignment between target and witnesses.
func (r *Result) ShiftTarget(seconds float64) {
	n := int(seconds * float64(r.SampleRate))
	r.Target = signal.CircularShift(r.Target, n)
}
