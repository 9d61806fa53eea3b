package usecase

import "math"

// roundingEpsilon nudges values sitting a binary-representation hair below a
// half cent (0.1+0.2, 16.50-13.99) onto the intended side before rounding.
const roundingEpsilon = 0x1p-52

// Round2 rounds v to cents, half-up.
func Round2(v float64) float64 {
	return math.Floor((v+roundingEpsilon)*100+0.5) / 100
}
