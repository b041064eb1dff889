package zpk

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-mockdata/dsp/filter/biquad"
)

const (
	realRootTol  = 1e-9
	conjPairDist = 1e-4
)

// Sections realizes a digital system as a biquad cascade. Conjugate pairs
// share a section, real roots are paired in ascending order and an odd
// real root ends up in a first-order section. The gain is folded into the
// first section's numerator.
func (s ZPK) Sections() ([]biquad.Coefficients, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	for _, z := range s.Z {
		if cmplx.IsInf(z) {
			return nil, fmt.Errorf("%w: zero at infinity in a digital system", ErrInvalidSystem)
		}
	}

	if len(s.P) == 0 {
		if len(s.Z) > 0 {
			return nil, fmt.Errorf("%w: %d zeros without poles", ErrInvalidSystem, len(s.Z))
		}
		return []biquad.Coefficients{{B0: s.K}}, nil
	}

	pGroups := groupRoots(s.P)
	zGroups := groupRoots(s.Z)

	sort.SliceStable(pGroups, func(i, j int) bool {
		if len(pGroups[i]) != len(pGroups[j]) {
			return len(pGroups[i]) > len(pGroups[j])
		}
		return maxImagAbs(pGroups[i]) > maxImagAbs(pGroups[j])
	})

	var zPairs, zSingles [][]complex128
	for _, g := range zGroups {
		if len(g) == 2 {
			zPairs = append(zPairs, g)
		} else {
			zSingles = append(zSingles, g)
		}
	}

	take := func(first, second *[][]complex128) []complex128 {
		for _, q := range []*[][]complex128{first, second} {
			if len(*q) > 0 {
				g := (*q)[0]
				*q = (*q)[1:]
				return g
			}
		}
		return nil
	}

	out := make([]biquad.Coefficients, 0, len(pGroups))
	for _, pg := range pGroups {
		var zg []complex128
		if len(pg) == 2 {
			zg = take(&zPairs, &zSingles)
		} else {
			zg = take(&zSingles, &zPairs)
		}

		if len(zg) > len(pg) {
			return nil, fmt.Errorf("%w: section with %d zeros over %d poles", ErrInvalidSystem, len(zg), len(pg))
		}

		b1, b2 := quadFromRoots(zg)
		a1, a2 := quadFromRoots(pg)
		out = append(out, biquad.Coefficients{B0: 1, B1: b1, B2: b2, A1: a1, A2: a2})
	}

	if len(zPairs)+len(zSingles) > 0 {
		return nil, fmt.Errorf("%w: more zero groups than pole groups", ErrInvalidSystem)
	}

	out[0].B0 *= s.K
	out[0].B1 *= s.K
	out[0].B2 *= s.K

	return out, nil
}

func groupRoots(roots []complex128) [][]complex128 {
	if len(roots) == 0 {
		return nil
	}

	sorted := append([]complex128(nil), roots...)
	sort.Slice(sorted, func(i, j int) bool {
		if imag(sorted[i]) != imag(sorted[j]) {
			return imag(sorted[i]) > imag(sorted[j])
		}
		return real(sorted[i]) < real(sorted[j])
	})

	used := make([]bool, len(sorted))
	groups := make([][]complex128, 0, (len(sorted)+1)/2)
	reals := make([]complex128, 0, len(sorted))

	for i, r := range sorted {
		if used[i] {
			continue
		}
		used[i] = true

		if math.Abs(imag(r)) <= realRootTol {
			reals = append(reals, complex(real(r), 0))
			continue
		}

		target := cmplx.Conj(r)
		best := -1
		bestDist := math.MaxFloat64

		for j, rr := range sorted {
			if used[j] {
				continue
			}

			if d := cmplx.Abs(rr - target); d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best != -1 && bestDist <= conjPairDist {
			used[best] = true
			groups = append(groups, []complex128{r, sorted[best]})
		} else {
			groups = append(groups, []complex128{r})
		}
	}

	sort.Slice(reals, func(i, j int) bool { return real(reals[i]) < real(reals[j]) })

	for i := 0; i+1 < len(reals); i += 2 {
		groups = append(groups, []complex128{reals[i], reals[i+1]})
	}
	if len(reals)%2 == 1 {
		groups = append(groups, []complex128{reals[len(reals)-1]})
	}

	return groups
}

func maxImagAbs(g []complex128) float64 {
	out := 0.0
	for _, r := range g {
		out = math.Max(out, math.Abs(imag(r)))
	}
	return out
}

// quadFromRoots returns (c1, c2) of 1 + c1*z^-1 + c2*z^-2 with the given roots.
// Conjugate pairs are treated as exactly real products.
func quadFromRoots(group []complex128) (float64, float64) {
	switch len(group) {
	case 0:
		return 0, 0
	case 1:
		return -real(group[0]), 0
	default:
		r1, r2 := group[0], group[1]
		return -real(r1 + r2), real(r1 * r2)
	}
}
