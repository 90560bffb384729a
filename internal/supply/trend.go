package supply

// TrendSlope fits an ordinary least squares line to the daily totals against
// their series index (0..n-1) and returns the slope in pages/day.
//
// The regression is over series position, not elapsed calendar days: days
// with zero consumption never produce an entry, so sampled days are treated
// as uniformly spaced. Correcting for calendar gaps would change every
// projection downstream, so the behavior is kept deliberately.
//
// Fails closed: fewer than two points carry no trend signal and return 0.
// With n >= 2 the indices 0..n-1 are always distinct, so the denominator is
// never zero.
func TrendSlope(totals []float64) float64 {
	n := len(totals)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range totals {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	nf := float64(n)
	return (nf*sumXY - sumX*sumY) / (nf*sumX2 - sumX*sumX)
}
