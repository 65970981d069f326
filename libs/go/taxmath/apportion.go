package taxmath

import (
	"time"

	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

const isoDate = "2006-01-02"

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// ComputeApportionmentRatio returns the fraction of taxYear a filer was a
// resident of the configured state, in [0,1]. Full-year residents get 1 and
// nonresidents 0. For part-year residents missing or unparsable dates fall back
// to the year boundaries, the window is clipped to the calendar year, and an
// inverted window counts zero days.
func ComputeApportionmentRatio(cfg business.StateReturnConfig, taxYear int) float64 {
	switch cfg.ResidencyType {
	case business.ResidencyNonresident:
		return 0
	case business.ResidencyPartYear:
		return float64(ResidentDays(cfg.MoveInDate, cfg.MoveOutDate, taxYear)) / float64(DaysInYear(taxYear))
	default:
		return 1
	}
}

// ResidentDays counts inclusive days between move-in and move-out inside taxYear.
func ResidentDays(moveIn, moveOut string, taxYear int) int {
	yearStart := time.Date(taxYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(taxYear, time.December, 31, 0, 0, 0, 0, time.UTC)

	start := yearStart
	if d, ok := parseDate(moveIn); ok && d.After(start) {
		start = d
	}
	end := yearEnd
	if d, ok := parseDate(moveOut); ok && d.Before(end) {
		end = d
	}
	if end.Before(start) {
		return 0
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if n := DaysInYear(taxYear); days > n {
		days = n
	}
	return days
}

// AgeAtYearEnd returns a person's age on December 31 of taxYear. Someone born
// on January 1 attains the age the day before, so is a year older. The boolean
// is false when the date of birth is missing or invalid.
func AgeAtYearEnd(dateOfBirth string, taxYear int) (int, bool) {
	dob, ok := parseDate(dateOfBirth)
	if !ok {
		return 0, false
	}
	age := taxYear - dob.Year()
	if dob.Month() == time.January && dob.Day() == 1 {
		age++
	}
	return age, true
}

// ReachesAgeBy reports whether someone born on dateOfBirth has reached the
// given age in whole months by the end of taxYear.
func ReachesAgeBy(dateOfBirth string, taxYear, months int) bool {
	dob, ok := parseDate(dateOfBirth)
	if !ok {
		return false
	}
	yearEnd := time.Date(taxYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	return !dob.AddDate(0, months, 0).After(yearEnd)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(isoDate, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
