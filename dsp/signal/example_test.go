package signal_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mockdata/dsp/signal"
)

func ExampleAddSine() {
	x := make([]float64, 5)
	signal.AddSine(x, 1000, 250, 1, 0)
	if math.Abs(x[4]) < 1e-12 {
		x[4] = 0
	}

	fmt.Printf("%.0f %.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3], x[4])

	// Output:
	// 0 1 0 -1 0
}

func ExampleCircularShift() {
	fmt.Println(signal.CircularShift([]float64{1, 2, 3, 4}, 1))

	// Output:
	// [2 3 4 1]
}
