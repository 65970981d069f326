package taxmath

// PreferentialThresholds are the taxable-income tops of the 0% and 15% capital
// gain rate bands for one filing status.
type PreferentialThresholds struct {
	ZeroRateTop    int64
	FifteenRateTop int64
}

// QDCGWorksheet holds the lines of the qualified dividends and capital gain
// tax worksheet that callers surface in provenance.
type QDCGWorksheet struct {
	TaxableIncome      int64 `json:"taxable_income"`
	QualifiedDividends int64 `json:"qualified_dividends"`
	NetCapitalGain     int64 `json:"net_capital_gain"`
	PreferentialIncome int64 `json:"preferential_income"`
	OrdinaryIncome     int64 `json:"ordinary_income"`
	TaxedAtZero        int64 `json:"taxed_at_zero"`
	TaxedAtFifteen     int64 `json:"taxed_at_fifteen"`
	TaxedAtTwenty      int64 `json:"taxed_at_twenty"`
	FifteenPercentTax  int64 `json:"fifteen_percent_tax"`
	TwentyPercentTax   int64 `json:"twenty_percent_tax"`
	OrdinaryTax        int64 `json:"ordinary_tax"`
	StackedTax         int64 `json:"stacked_tax"`
	RegularTax         int64 `json:"regular_tax"`
	Tax                int64 `json:"tax"`
}

// QualifiesForQDCG reports whether the preferential-rate worksheet applies.
func QualifiesForQDCG(qualifiedDividends, netPreferentialGain int64) bool {
	return qualifiedDividends > 0 || netPreferentialGain > 0
}

// ComputeQDCGWorksheet taxes preferential income after ordinary income has
// filled the lower brackets and returns the smaller of that and the regular
// bracket tax on all income.
func ComputeQDCGWorksheet(taxableIncome, qualifiedDividends, netCapitalGain int64, brackets []Bracket, thresholds PreferentialThresholds) QDCGWorksheet {
	ordinaryTax := func(income int64) int64 { return BracketTax(income, brackets) }
	return StackPreferentialIncome(taxableIncome, qualifiedDividends, netCapitalGain, ordinaryTax, thresholds)
}

// StackPreferentialIncome is the worksheet with a caller-supplied ordinary tax
// function, which lets the AMT reuse it with 26%/28% rates.
func StackPreferentialIncome(taxableIncome, qualifiedDividends, netCapitalGain int64, ordinaryTax func(int64) int64, thresholds PreferentialThresholds) QDCGWorksheet {
	ws := QDCGWorksheet{
		TaxableIncome:      Max0(taxableIncome),
		QualifiedDividends: Max0(qualifiedDividends),
		NetCapitalGain:     Max0(netCapitalGain),
	}
	l1 := ws.TaxableIncome
	l4 := ws.QualifiedDividends + ws.NetCapitalGain
	l5 := Max0(l1 - l4)
	l7 := Min(l1, thresholds.ZeroRateTop)
	l8 := Min(l5, l7)
	l9 := l7 - l8
	l10 := Min(l1, l4)
	l12 := l10 - l9
	l14 := Min(l1, thresholds.FifteenRateTop)
	l15 := l5 + l9
	l16 := Max0(l14 - l15)
	l17 := Min(l12, l16)
	l18 := ApplyRate(l17, 0.15)
	l19 := l9 + l17
	l20 := Max0(l10 - l19)
	l21 := ApplyRate(l20, 0.20)
	l22 := ordinaryTax(l5)
	l23 := l18 + l21 + l22
	l24 := ordinaryTax(l1)

	ws.PreferentialIncome = l10
	ws.OrdinaryIncome = l5
	ws.TaxedAtZero = l9
	ws.TaxedAtFifteen = l17
	ws.TaxedAtTwenty = l20
	ws.FifteenPercentTax = l18
	ws.TwentyPercentTax = l21
	ws.OrdinaryTax = l22
	ws.StackedTax = l23
	ws.RegularTax = l24
	ws.Tax = Min(l23, l24)
	return ws
}

// SelectTax picks the plain bracket path or the QDCG worksheet. The boolean
// reports whether the worksheet was used.
func SelectTax(taxableIncome, qualifiedDividends, netPreferentialGain int64, brackets []Bracket, thresholds PreferentialThresholds) (int64, bool, QDCGWorksheet) {
	if !QualifiesForQDCG(qualifiedDividends, netPreferentialGain) {
		return BracketTax(taxableIncome, brackets), false, QDCGWorksheet{}
	}
	ws := ComputeQDCGWorksheet(taxableIncome, qualifiedDividends, netPreferentialGain, brackets, thresholds)
	return ws.Tax, true, ws
}
