package services

import (
	"fmt"
	"strconv"

	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// AgeAtYearEnd returns a person's age on December 31 of taxYear. Someone born
// on January 1 is treated as attaining the age the day before, as the IRS
// does. The boolean is false when the date of birth is missing or invalid.
func AgeAtYearEnd(dateOfBirth string, taxYear int) (int, bool) {
	return taxmath.AgeAtYearEnd(dateOfBirth, taxYear)
}

// ageAtLeast reports whether a person with a known date of birth is at least
// years old at year end.
func ageAtLeast(dateOfBirth string, taxYear, years int) bool {
	age, ok := AgeAtYearEnd(dateOfBirth, taxYear)
	return ok && age >= years
}

// docKey labels a source document in results: its id when present,
// otherwise its position.
func docKey(id string, index int) string {
	if id != "" {
		return id
	}
	return strconv.Itoa(index)
}

// nodeID names one field of one source document. The position always leads
// so that two documents never share a node, whatever ids they carry.
func nodeID(prefix, id string, index int, field string) string {
	if id == "" {
		return fmt.Sprintf("%s.%d.%s", prefix, index, field)
	}
	return fmt.Sprintf("%s.%d.%s.%s", prefix, index, id, field)
}

// ownerOf defaults an unset owner to the taxpayer.
func ownerOf(o business.Owner) business.Owner {
	if o == "" {
		return business.OwnerTaxpayer
	}
	return o
}

// hasSpouse reports whether a spouse's figures belong on this return.
func hasSpouse(ret *business.TaxReturn) bool {
	return ret.Spouse != nil && ret.FilingStatus.IsJoint()
}

// wagesFor sums box 1 wages for one person.
func wagesFor(ret *business.TaxReturn, owner business.Owner) int64 {
	var total int64
	for _, w := range ret.W2s {
		if ownerOf(w.Owner) == owner {
			total += w.Wages
		}
	}
	return total
}

// socialSecurityWagesFor sums box 3 wages for one person.
func socialSecurityWagesFor(ret *business.TaxReturn, owner business.Owner) int64 {
	var total int64
	for _, w := range ret.W2s {
		if ownerOf(w.Owner) == owner {
			total += w.SocialSecurityWages
		}
	}
	return total
}

// coveredByRetirementPlan reports whether box 13 is checked on any of the
// person's W-2s.
func coveredByRetirementPlan(ret *business.TaxReturn, owner business.Owner) bool {
	for _, w := range ret.W2s {
		if ownerOf(w.Owner) == owner && w.RetirementPlan {
			return true
		}
	}
	return false
}

// electiveDeferrals are the box 12 codes that count as retirement
// contributions for the saver's credit.
var electiveDeferrals = []string{"D", "E", "F", "G", "H", "S", "AA", "BB", "EE"}

func electiveDeferralsFor(ret *business.TaxReturn, owner business.Owner) int64 {
	var total int64
	for _, w := range ret.W2s {
		if ownerOf(w.Owner) == owner {
			total += w.Box12Total(electiveDeferrals...)
		}
	}
	return total
}
