package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-mockdata/dsp/filter/biquad"
	"github.com/cwbudde/algo-mockdata/dsp/filter/design"
)

func ExamplePendulum() {
	sos, err := design.Pendulum(8, 3, 2048, 1)
	if err != nil {
		panic(err)
	}

	fmt.Printf("sections=%d dc=%.3f\n", len(sos), sos[0].DCGain())
	// Output:
	// sections=1 dc=1.000
}

func ExampleButterworthLowpass() {
	sos, err := design.ButterworthLowpass(4, 3, 16384)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.2f dB at 3 Hz\n", biquad.CascadeMagnitudeDB(sos, 3, 16384))
	// Output:
	// -3.01 dB at 3 Hz
}
