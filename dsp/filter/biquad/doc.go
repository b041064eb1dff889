// Package biquad runs cascades of second-order sections.
//
// A [Section] implements Direct Form II Transposed processing for one
// section defined by [Coefficients]. [Filter] applies a cascade to a whole
// series the way the noise models use it: fresh zero state, output in a new
// slice. [Chain] holds a designed cascade so a model can reuse it across
// realizations.
//
// Coefficient design lives in dsp/filter/design.
package biquad
