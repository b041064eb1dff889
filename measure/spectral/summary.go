package spectral

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a time series.
type Stats struct {
	Mean   float64
	StdDev float64
	RMS    float64
	Peak   float64
}

// Summary returns the mean, sample standard deviation, RMS and absolute
// peak of x. An empty series yields zero values.
func Summary(x []float64) Stats {
	if len(x) == 0 {
		return Stats{}
	}

	mean, std := stat.MeanStdDev(x, nil)

	return Stats{
		Mean:   mean,
		StdDev: std,
		RMS:    floats.Norm(x, 2) / math.Sqrt(float64(len(x))),
		Peak:   math.Max(floats.Max(x), -floats.Min(x)),
	}
}
