package taxmath

import (
	"errors"
	"fmt"
	"math"
)

// Unbounded is the upper limit of a top bracket.
const Unbounded int64 = math.MaxInt64

// ErrMalformedBrackets is returned when a bracket table is not strictly
// ascending or carries an invalid rate.
var ErrMalformedBrackets = errors.New("taxmath: malformed bracket table")

// Bracket is one marginal slice: income up to Limit is taxed at Rate.
type Bracket struct {
	Limit int64   `json:"limit" yaml:"limit"`
	Rate  float64 `json:"rate" yaml:"rate"`
}

// BracketTax applies a progressive bracket schedule to taxable income and
// rounds the accumulated tax once. Widths are clipped at zero so a malformed
// table never charges negative or double-counted slices.
func BracketTax(income int64, brackets []Bracket) int64 {
	if income <= 0 || len(brackets) == 0 {
		return 0
	}

	remaining := income
	var prev int64
	var tax float64
	for _, b := range brackets {
		if remaining <= 0 {
			break
		}
		width := b.Limit - prev
		if b.Limit == Unbounded {
			width = remaining
		}
		if width < 0 {
			width = 0
		}
		slice := Min(remaining, width)
		if b.Rate > 0 {
			tax += float64(slice) * b.Rate
		}
		remaining -= slice
		if b.Limit > prev {
			prev = b.Limit
		}
	}
	return Round(tax)
}

// MarginalRate returns the rate applied to the last cent of income.
func MarginalRate(income int64, brackets []Bracket) float64 {
	if len(brackets) == 0 {
		return 0
	}
	for _, b := range brackets {
		if income <= b.Limit {
			return b.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}

// ValidateBrackets checks that limits strictly ascend, rates are in [0,1],
// and the table ends in an unbounded bracket.
func ValidateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%w: empty table", ErrMalformedBrackets)
	}
	var prev int64
	for i, b := range brackets {
		if b.Rate < 0 || b.Rate > 1 {
			return fmt.Errorf("%w: bracket %d rate %v out of range", ErrMalformedBrackets, i, b.Rate)
		}
		if b.Limit <= prev {
			return fmt.Errorf("%w: bracket %d limit %d not above %d", ErrMalformedBrackets, i, b.Limit, prev)
		}
		prev = b.Limit
	}
	if brackets[len(brackets)-1].Limit != Unbounded {
		return fmt.Errorf("%w: top bracket must be unbounded", ErrMalformedBrackets)
	}
	return nil
}

// FlatRate returns a single unbounded bracket.
func FlatRate(rate float64) []Bracket {
	return []Bracket{{Limit: Unbounded, Rate: rate}}
}
