package business

// ReturnSummary is the bottom line of a computed return. The results queue
// and the API carry it alongside or instead of the full computation.
type ReturnSummary struct {
	ReturnID      string         `json:"return_id,omitempty" yaml:"return_id,omitempty"`
	TaxYear       int            `json:"tax_year" yaml:"tax_year"`
	FilingStatus  FilingStatus   `json:"filing_status" yaml:"filing_status"`
	Nonresident   bool           `json:"nonresident,omitempty" yaml:"nonresident,omitempty"`
	AGI           int64          `json:"agi" yaml:"agi"`
	TaxableIncome int64          `json:"taxable_income" yaml:"taxable_income"`
	TotalTax      int64          `json:"total_tax" yaml:"total_tax"`
	TotalPayments int64          `json:"total_payments" yaml:"total_payments"`
	Refund        int64          `json:"refund" yaml:"refund"`
	AmountOwed    int64          `json:"amount_owed" yaml:"amount_owed"`
	States        []StateSummary `json:"states,omitempty" yaml:"states,omitempty"`
}

// StateSummary is the bottom line of one state return.
type StateSummary struct {
	StateCode     string         `json:"state_code" yaml:"state_code"`
	ResidencyType ResidencyType  `json:"residency_type" yaml:"residency_type"`
	Confidence    DataConfidence `json:"confidence" yaml:"confidence"`
	TaxableIncome int64          `json:"taxable_income" yaml:"taxable_income"`
	TotalTax      int64          `json:"total_tax" yaml:"total_tax"`
	Refund        int64          `json:"refund" yaml:"refund"`
	AmountOwed    int64          `json:"amount_owed" yaml:"amount_owed"`
}

// Summarize extracts the bottom line of comp for the return with id returnID.
func Summarize(returnID string, comp *ReturnComputation) ReturnSummary {
	out := ReturnSummary{
		ReturnID:    returnID,
		TaxYear:     comp.TaxYear,
		Nonresident: comp.Nonresident.IsPresent(),
	}
	if fed := comp.Federal; fed != nil {
		out.FilingStatus = fed.FilingStatus
		out.AGI = fed.AGI()
		out.TaxableIncome = fed.Line15.Amount
		out.TotalTax = fed.TotalTax()
		out.TotalPayments = fed.TotalPayments()
		out.Refund = fed.Refund()
		out.AmountOwed = fed.AmountOwed()
	}
	for _, st := range comp.States {
		out.States = append(out.States, StateSummary{
			StateCode:     st.StateCode,
			ResidencyType: st.ResidencyType,
			Confidence:    st.Confidence,
			TaxableIncome: st.TaxableIncome.Amount,
			TotalTax:      st.TotalTax.Amount,
			Refund:        st.Refund.Amount,
			AmountOwed:    st.AmountOwed.Amount,
		})
	}
	return out
}
