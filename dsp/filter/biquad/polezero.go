package biquad

import "math/cmplx"

// Poles returns the z-plane roots of 1 + A1*z^-1 + A2*z^-2.
func (c *Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the z-plane roots of B0 + B1*z^-1 + B2*z^-2. A first-order
// numerator reports its second zero as 0.
func (c *Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// Stable reports whether every pole of every section lies strictly inside
// the unit circle.
func Stable(sections []Coefficients) bool {
	for i := range sections {
		for _, p := range sections[i].Poles() {
			if cmplx.Abs(p) >= 1 {
				return false
			}
		}
	}
	return true
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	sqrtDiscriminant := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)
	return [2]complex128{
		(-complex(b, 0) + sqrtDiscriminant) / den,
		(-complex(b, 0) - sqrtDiscriminant) / den,
	}
}
