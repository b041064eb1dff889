// Package design turns filter specifications into biquad cascades for
// dsp/filter/biquad.
//
// Butterworth and elliptic designs start from an analog prototype in
// dsp/filter/zpk, are prewarped so the digital band edges land on the
// requested frequencies, and are discretized with the bilinear transform.
// [Pendulum] builds the two-pole mechanical response used for suspension
// models.
package design
