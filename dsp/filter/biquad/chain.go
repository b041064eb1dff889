package biquad

// Chain is a designed cascade of sections. It carries no delay-line state:
// every Apply starts from rest, so one Chain shapes any number of
// independent realizations.
type Chain struct {
	sections []Coefficients
}

// NewChain concatenates the given cascades, in order, into one Chain.
// The coefficients are copied.
func NewChain(cascades ...[]Coefficients) *Chain {
	n := 0
	for _, c := range cascades {
		n += len(c)
	}

	sections := make([]Coefficients, 0, n)
	for _, c := range cascades {
		sections = append(sections, c...)
	}

	return &Chain{sections: sections}
}

// Apply filters a copy of x through the cascade. x is not modified.
func (c *Chain) Apply(x []float64) []float64 {
	return Filter(c.sections, x)
}

// Stable reports whether every pole of the cascade lies inside the unit
// circle.
func (c *Chain) Stable() bool {
	return Stable(c.sections)
}
