package statemodule

import (
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// Filer is one person on the return as state rules see them.
type Filer struct {
	Owner    business.Owner
	Person   business.Person
	Age      int
	AgeKnown bool
}

// AtLeast reports whether the filer's known age is at least years.
func (f Filer) AtLeast(years int) bool {
	return f.AgeKnown && f.Age >= years
}

// People returns the taxpayer and, on a joint return, the spouse.
func (w *Worksheet) People() []Filer {
	people := []Filer{w.filer(business.OwnerTaxpayer, w.ret.Taxpayer)}
	if w.ret.Spouse != nil && w.ret.FilingStatus.IsJoint() {
		people = append(people, w.filer(business.OwnerSpouse, *w.ret.Spouse))
	}
	return people
}

func (w *Worksheet) filer(owner business.Owner, p business.Person) Filer {
	age, ok := taxmath.AgeAtYearEnd(p.DateOfBirth, w.ret.TaxYear)
	return Filer{Owner: owner, Person: p, Age: age, AgeKnown: ok}
}

// DependentAge returns a dependent's age at year end.
func (w *Worksheet) DependentAge(d business.Dependent) (int, bool) {
	return taxmath.AgeAtYearEnd(d.DateOfBirth, w.ret.TaxYear)
}

func ownerOf(o business.Owner) business.Owner {
	if o == "" {
		return business.OwnerTaxpayer
	}
	return o
}

// RetirementIncome sums taxable pension and IRA distributions for owner.
func (w *Worksheet) RetirementIncome(owner business.Owner) int64 {
	var total int64
	for _, r := range w.ret.Form1099R {
		if ownerOf(r.Owner) == owner {
			total += taxmath.Max0(r.TaxableAmount)
		}
	}
	return total
}

// EarnedIncome sums wages for owner.
func (w *Worksheet) EarnedIncome(owner business.Owner) int64 {
	var total int64
	for _, d := range w.ret.W2s {
		if ownerOf(d.Owner) == owner {
			total += d.Wages
		}
	}
	return total
}

// TaxableSocialSecurity splits federally taxable benefits between the filers
// in proportion to the benefits each received.
func (w *Worksheet) TaxableSocialSecurity(owner business.Owner) int64 {
	var mine, total int64
	for _, s := range w.ret.SSA1099 {
		total += s.NetBenefits
		if ownerOf(s.Owner) == owner {
			mine += s.NetBenefits
		}
	}
	return taxmath.Ratio(w.fed.Line6b.Amount, mine, total)
}

// SubtractSocialSecurity removes federally taxable Social Security benefits.
func (w *Worksheet) SubtractSocialSecurity() {
	if w.fed.Line6b.Amount <= 0 {
		return
	}
	federal := w.FromFederal("federal_taxable_social_security", w.fed.Line6b)
	w.Subtract("social_security", federal.Amount, federal)
}

// SubtractUSObligationInterest removes interest on U.S. Treasury obligations,
// which states may not tax.
func (w *Worksheet) SubtractUSObligationInterest() {
	var total int64
	for _, i := range w.ret.Form1099INT {
		total += i.USTreasuryInterest
	}
	if total <= 0 {
		return
	}
	in := w.Input("us_obligation_interest_reported", total)
	w.Subtract("us_obligation_interest", total, in)
}

// StandardDeduction records the state's standard deduction for the filing
// status.
func (w *Worksheet) StandardDeduction() {
	agi := w.AGI()
	w.Deduct("standard_deduction", w.table.StandardDeduction.For(w.Status()), agi)
}

// PersonalExemptions records the personal exemption for the filing status and
// the per-dependent exemption.
func (w *Worksheet) PersonalExemptions() {
	agi := w.AGI()
	w.Exempt("personal_exemption", w.table.PersonalExemption.For(w.Status()), agi)
	if n := int64(w.Dependents()); n > 0 {
		w.Exempt("dependent_exemption", n*w.table.DependentExemption.Int64(), agi)
	}
}

// FederalItemized returns the federal Schedule A figures when the filer
// itemized on the federal return.
func (w *Worksheet) FederalItemized() (business.ScheduleAResult, bool) {
	if w.fed.DeductionMethod != business.DeductionItemized {
		return business.ScheduleAResult{}, false
	}
	return w.fed.ScheduleA.Get()
}
