package window_test

import (
	"fmt"

	"github.com/cwbudde/algo-mockdata/dsp/window"
)

func ExampleGenerate() {
	w, err := window.Generate(window.TypeHann, 4, window.WithPeriodic())
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.2f\n", w)
	// Output:
	// [0.00 0.50 1.00 0.50]
}
