// Package stats provides the small set of descriptive statistics the
// insights engine is built on. All functions take a slice of finite values;
// callers are expected to have dropped missing values beforehand.
package stats

import (
	"math"
	"sort"
)

// Sum returns the sum of values. An empty slice sums to 0.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, or NaN for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return Sum(values) / float64(len(values))
}

// Median returns the middle value, or NaN for an empty slice.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Std returns the sample standard deviation (n-1 denominator). It is NaN for
// fewer than two values.
func Std(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return math.NaN()
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// Min returns the smallest value, or NaN for an empty slice.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the largest value, or NaN for an empty slice.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Quantile returns the q-th quantile (0 <= q <= 1) using linear
// interpolation between closest ranks. It is NaN for an empty slice or an
// out-of-range q.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 || q < 0 || q > 1 {
		return math.NaN()
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
