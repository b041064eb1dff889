package biquad

// Filter runs x through the cascade described by sections with zero initial
// state and returns the output in a new slice. The input is not modified.
//
// An empty cascade returns a copy of x.
func Filter(sections []Coefficients, x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)

	var s Section
	for i := range sections {
		s = Section{Coefficients: sections[i]}
		s.ProcessBlock(out)
	}

	return out
}
