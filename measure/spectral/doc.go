// Package spectral estimates power and cross spectra of mock data with
// Welch's method and builds a coherence-gated frequency-domain subtraction
// of a witness from a target.
//
// Densities are one-sided and in units^2/Hz, with the scaling conventions
// of scipy.signal.welch: periodic window, constant detrending per segment,
// 50% overlap by default and doubled power in all bins but DC and Nyquist.
package spectral
