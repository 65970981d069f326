package taxdata

import (
	"fmt"
	"strings"

	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"gopkg.in/yaml.v3"
)

// Cents is a dollar figure in the YAML tables, held as integer cents.
type Cents int64

// UnmarshalYAML converts dollars (possibly fractional) to cents.
func (c *Cents) UnmarshalYAML(value *yaml.Node) error {
	var dollars float64
	if err := value.Decode(&dollars); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = Cents(taxmath.Round(dollars * 100))
	return nil
}

// Int64 returns the amount in cents.
func (c Cents) Int64() int64 { return int64(c) }

const defaultKey = "default"

// lookup resolves a per-status entry. Qualifying surviving spouses fall back
// to the joint entry; anything missing falls back to "default" then "single".
func lookup[T any](m map[string]T, fs business.FilingStatus) (T, bool) {
	if v, ok := m[string(fs)]; ok {
		return v, true
	}
	if fs == business.FilingQualifyingSurvivor {
		if v, ok := m[string(business.FilingMarriedJoint)]; ok {
			return v, true
		}
	}
	if v, ok := m[defaultKey]; ok {
		return v, true
	}
	v, ok := m[string(business.FilingSingle)]
	return v, ok
}

// ByStatus is a dollar amount keyed by filing status.
type ByStatus map[string]Cents

// For returns the cents amount for fs.
func (b ByStatus) For(fs business.FilingStatus) int64 {
	v, _ := lookup(b, fs)
	return int64(v)
}

// Schedule is a bracket table. In YAML it is a list of {upTo, rate}; an
// omitted upTo marks the top bracket.
type Schedule []taxmath.Bracket

type scheduleRow struct {
	UpTo *float64 `yaml:"upTo"`
	Rate float64  `yaml:"rate"`
}

// UnmarshalYAML decodes and validates a bracket table.
func (s *Schedule) UnmarshalYAML(value *yaml.Node) error {
	var rows []scheduleRow
	if err := value.Decode(&rows); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	out := make([]taxmath.Bracket, 0, len(rows))
	for _, r := range rows {
		limit := taxmath.Unbounded
		if r.UpTo != nil {
			limit = taxmath.Round(*r.UpTo * 100)
		}
		out = append(out, taxmath.Bracket{Limit: limit, Rate: r.Rate})
	}
	if err := taxmath.ValidateBrackets(out); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = out
	return nil
}

// Schedules is a bracket table keyed by filing status.
type Schedules map[string]Schedule

// For returns the brackets for fs, or nil when none apply.
func (s Schedules) For(fs business.FilingStatus) []taxmath.Bracket {
	v, _ := lookup(s, fs)
	return v
}

// PhaseRange is a linear phase-out window.
type PhaseRange struct {
	Start Cents `yaml:"start"`
	Width Cents `yaml:"width"`
}

// PhaseRanges is a phase-out window keyed by filing status.
type PhaseRanges map[string]PhaseRange

// For returns the range for fs and whether the status has one.
func (p PhaseRanges) For(fs business.FilingStatus) (PhaseRange, bool) {
	return lookup(p, fs)
}

// RateTier is one AGI tier of a tiered credit rate.
type RateTier struct {
	UpTo Cents   `yaml:"upTo"`
	Rate float64 `yaml:"rate"`
}

// RateTiers is an ascending tier list keyed by filing status.
type RateTiers map[string][]RateTier

// RateFor returns the rate of the first tier whose ceiling covers income.
func (t RateTiers) RateFor(fs business.FilingStatus, income int64) float64 {
	tiers, _ := lookup(t, fs)
	for _, tier := range tiers {
		if income <= int64(tier.UpTo) {
			return tier.Rate
		}
	}
	return 0
}

// Params holds jurisdiction-specific scalars. Keys may carry a filing status
// suffix ("threshold.mfj") that is preferred over the bare key.
type Params map[string]float64

// Rate returns the value for key, preferring the status-specific entry.
func (p Params) Rate(key string, fs ...business.FilingStatus) float64 {
	if len(fs) > 0 {
		if v, ok := p[key+"."+string(fs[0])]; ok {
			return v
		}
		if fs[0] == business.FilingQualifyingSurvivor {
			if v, ok := p[key+"."+string(business.FilingMarriedJoint)]; ok {
				return v
			}
		}
	}
	return p[key]
}

// Dollars returns the value for key converted from dollars to cents.
func (p Params) Dollars(key string, fs ...business.FilingStatus) int64 {
	return taxmath.Round(p.Rate(key, fs...) * 100)
}

// Has reports whether key (or a status-suffixed form of it) is present.
func (p Params) Has(key string) bool {
	if _, ok := p[key]; ok {
		return true
	}
	for k := range p {
		if strings.HasPrefix(k, key+".") {
			return true
		}
	}
	return false
}
