package analysis

import (
	"fmt"
	"math"
)

// correlationEpsilon absorbs floating-point jitter just outside [-1, 1]
// before the bounds check rejects a result as genuinely out of range.
const correlationEpsilon = 1e-9

// PearsonCorrelation computes the Pearson correlation coefficient for
// two equal-length samples. Returns nil when fewer than 2 pairs exist
// or when either sample has zero variance (denominator 0): an undefined
// correlation is a valid outcome, distinct from 0.
//
// When defined, the result lies in [-1, 1]; Cauchy-Schwarz guarantees
// this for the deviation vectors, and the invariant is re-checked here.
func PearsonCorrelation(xs, ys []float64) *float64 {
	if len(xs) != len(ys) {
		panic(fmt.Sprintf("pearson: mismatched sample lengths %d and %d", len(xs), len(ys)))
	}
	if len(xs) < 2 {
		return nil
	}

	meanX := mean(xs)
	meanY := mean(ys)

	var numerator, sumSqX, sumSqY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		numerator += dx * dy
		sumSqX += dx * dx
		sumSqY += dy * dy
	}

	denominator := math.Sqrt(sumSqX * sumSqY)
	if denominator == 0 {
		return nil
	}

	r := numerator / denominator
	if r < -1-correlationEpsilon || r > 1+correlationEpsilon {
		panic(fmt.Sprintf("pearson: correlation %v outside [-1, 1]", r))
	}

	r = clamp(r, -1, 1)
	return &r
}

func mean(vs []float64) float64 {
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
