package ta

import "math"

// SMA returns the arithmetic mean of the last n values.
// Returns NaN when fewer than n values are available.
func SMA(values []float64, n int) float64 {
	if len(values) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(values) - n; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(n)
}

// Crossover reports the relation of a short SMA to a long SMA over the
// same series: +1 short above long, -1 short below long, 0 equal.
// ok is false while either window lacks history.
func Crossover(values []float64, short, long int) (dir int, ok bool) {
	s := SMA(values, short)
	l := SMA(values, long)
	if math.IsNaN(s) || math.IsNaN(l) {
		return 0, false
	}
	switch {
	case s > l:
		return 1, true
	case s < l:
		return -1, true
	}
	return 0, true
}
