// Package statemodule defines the contract every state income tax module
// implements, the registry that selects modules by state code, and the shared
// worksheet that carries a state return from federal AGI to refund or amount
// owed.
package statemodule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// ErrUnknownState is returned when no module is registered for a state code.
var ErrUnknownState = errors.New("unknown state")

// StateInfo describes a registered jurisdiction.
type StateInfo struct {
	Code       string                  `json:"code"`
	Name       string                  `json:"name"`
	Confidence business.DataConfidence `json:"confidence"`
}

// ReviewSection groups node ids for display on a review screen.
type ReviewSection struct {
	Title   string   `json:"title"`
	NodeIDs []string `json:"node_ids"`
}

// StateRulesModule computes one state's return. Implementations must treat the
// return and the federal result as read-only.
type StateRulesModule interface {
	Info() StateInfo
	Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error)
	NodeLabels() map[string]string
	CollectTracedValues(res *business.StateComputeResult) []traced.TracedValue
	ReviewLayout() []ReviewSection
}

// commonLabels name the lines every state worksheet records.
var commonLabels = map[string]string{
	"federal_agi":        "Federal adjusted gross income",
	"additions":          "Additions to federal income",
	"subtractions":       "Subtractions from federal income",
	"agi":                "State adjusted gross income",
	"deduction":          "Deductions",
	"exemptions":         "Exemptions",
	"taxable_income":     "Taxable income",
	"apportioned_income": "Taxable income apportioned to the state",
	"source_income":      "Income attributable to the state",
	"bracket_tax":        "Tax from rate schedule",
	"tax":                "Tax before credits",
	"credits":            "Nonrefundable credits",
	"tax_after_credits":  "Tax after credits",
	"apportioned_tax":    "State income tax",
	"local_tax":          "Local income tax",
	"total_tax":          "Total tax",
	"withholding":        "State and local tax withheld",
	"estimated_payments": "Estimated payments",
	"refundable_credits": "Refundable credits",
	"total_payments":     "Total payments",
	"refund":             "Refund",
	"amount_owed":        "Amount owed",

	"federal_taxable_social_security": "Taxable Social Security benefits on the federal return",
	"social_security":                 "Social Security benefits",
	"us_obligation_interest_reported": "Interest on U.S. obligations reported on 1099-INT",
	"us_obligation_interest":          "Interest on U.S. obligations",
	"standard_deduction":              "Standard deduction",
	"personal_exemption":              "Personal exemptions",
	"dependent_exemption":             "Dependent exemptions",
	"federal_eic":                     "Federal earned income credit",
	"eitc":                            "State earned income tax credit",
}

// Base carries the identity and metadata a state module shares with the
// worksheet. Modules embed it and implement Compute.
type Base struct {
	code   string
	name   string
	labels map[string]string
	extra  []ReviewSection
}

// NewBase returns a Base for code. labels and sections use node keys without
// the state prefix ("hsa_addback", not "ca.hsa_addback").
func NewBase(code, name string, labels map[string]string, sections ...ReviewSection) Base {
	return Base{
		code:   strings.ToUpper(code),
		name:   name,
		labels: labels,
		extra:  sections,
	}
}

// Code returns the two-letter state code.
func (b Base) Code() string { return b.code }

// Info reports the code, name and the data confidence of the latest tables.
func (b Base) Info() StateInfo {
	years := taxdata.SupportedYears()
	if len(years) == 0 {
		return StateInfo{Code: b.code, Name: b.name, Confidence: business.ConfidenceProvisional}
	}
	return b.InfoForYear(years[len(years)-1])
}

// InfoForYear reports the data confidence of the tables for taxYear. A year
// without tables is provisional.
func (b Base) InfoForYear(taxYear int) StateInfo {
	info := StateInfo{Code: b.code, Name: b.name, Confidence: business.ConfidenceProvisional}
	if table, err := b.Table(taxYear); err == nil {
		info.Confidence = confidenceOf(table)
	}
	return info
}

func confidenceOf(table taxdata.State) business.DataConfidence {
	if table.Confidence == "" {
		return business.ConfidenceProvisional
	}
	return table.Confidence
}

// NodeLabels maps every node id the module may produce to its label.
func (b Base) NodeLabels() map[string]string {
	out := make(map[string]string, len(commonLabels)+len(b.labels))
	for k, v := range commonLabels {
		out[b.id(k)] = v
	}
	for k, v := range b.labels {
		out[b.id(k)] = v
	}
	return out
}

// CollectTracedValues returns the state's provenance nodes in recording order.
func (b Base) CollectTracedValues(res *business.StateComputeResult) []traced.TracedValue {
	if res == nil {
		return nil
	}
	return append([]traced.TracedValue{}, res.Nodes...)
}

// ReviewLayout lists the standard sections followed by any state-specific ones.
func (b Base) ReviewLayout() []ReviewSection {
	sections := []ReviewSection{
		{Title: "Income", NodeIDs: b.ids("federal_agi", "additions", "subtractions", "agi")},
		{Title: "Deductions", NodeIDs: b.ids("deduction", "exemptions", "taxable_income")},
		{Title: "Tax", NodeIDs: b.ids("tax", "credits", "apportioned_tax", "local_tax", "total_tax")},
		{Title: "Payments", NodeIDs: b.ids("withholding", "estimated_payments", "refundable_credits", "total_payments", "refund", "amount_owed")},
	}
	for _, s := range b.extra {
		sections = append(sections, ReviewSection{Title: s.Title, NodeIDs: b.ids(s.NodeIDs...)})
	}
	return sections
}

// Table loads the state's constants for a tax year.
func (b Base) Table(taxYear int) (taxdata.State, error) {
	tables, err := taxdata.ForYear(taxYear)
	if err != nil {
		return taxdata.State{}, err
	}
	st, ok := tables.State(b.code)
	if !ok {
		return taxdata.State{}, fmt.Errorf("%w: no %s tables for %d", taxdata.ErrUnsupportedTaxYear, b.code, taxYear)
	}
	return st, nil
}

func (b Base) id(key string) string {
	return strings.ToLower(b.code) + "." + key
}

func (b Base) ids(keys ...string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, b.id(k))
	}
	return out
}

func (b Base) label(key string) string {
	if l, ok := b.labels[key]; ok {
		return l
	}
	if l, ok := commonLabels[key]; ok {
		return l
	}
	return key
}
