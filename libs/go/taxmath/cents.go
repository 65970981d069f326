package taxmath

import "math"

// Round converts a fractional cent amount to whole cents, rounding half away
// from zero.
func Round(cents float64) int64 {
	return int64(math.Round(cents))
}

// ApplyRate multiplies an amount by a rate and rounds once.
func ApplyRate(cents int64, rate float64) int64 {
	return Round(float64(cents) * rate)
}

// Ratio multiplies an amount by num/den and rounds once. A zero denominator
// yields zero.
func Ratio(cents, num, den int64) int64 {
	if den == 0 {
		return 0
	}
	return Round(float64(cents) * float64(num) / float64(den))
}

// Max0 floors x at zero.
func Max0(x int64) int64 {
	if x < 0 {
		return 0
	}
	return x
}

// Min returns the smaller of a and b.
func Min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi int64) int64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampRatio limits a float ratio to [0, 1].
func ClampRatio(r float64) float64 {
	if math.IsNaN(r) || r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Dollars converts whole dollars to cents.
func Dollars(d int64) int64 {
	return d * 100
}

// CeilToStep rounds a positive amount up to the next multiple of step.
func CeilToStep(cents, step int64) int64 {
	if step <= 0 || cents <= 0 {
		return cents
	}
	if rem := cents % step; rem != 0 {
		return cents + step - rem
	}
	return cents
}

// PhaseOut reduces amount linearly as income moves through [start, start+width].
// Income at or below start keeps the full amount; income at or above the end
// yields zero.
func PhaseOut(amount, income, start, width int64) int64 {
	if amount <= 0 {
		return 0
	}
	if income <= start {
		return amount
	}
	if width <= 0 || income >= start+width {
		return 0
	}
	reduction := Ratio(amount, income-start, width)
	return Max0(amount - reduction)
}

// StepPhaseOut reduces amount by perStep for every step (or fraction of a step)
// that income exceeds threshold, never below zero.
func StepPhaseOut(amount, income, threshold, step, perStep int64) int64 {
	if income <= threshold || step <= 0 {
		return Max0(amount)
	}
	steps := (income - threshold + step - 1) / step
	return Max0(amount - steps*perStep)
}
