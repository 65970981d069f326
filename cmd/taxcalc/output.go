package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cyphera/cyphera-tax/libs/go/constants"
	"github.com/cyphera/cyphera-tax/libs/go/helpers"
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"

	"gopkg.in/yaml.v3"
)

// decodeReturn accepts JSON or YAML. YAML is converted to JSON first so the
// json tags on the return types stay the single source of field names.
func decodeReturn(r io.Reader) (*business.TaxReturn, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	if trimmed[0] != '{' {
		var generic interface{}
		if err := yaml.Unmarshal(trimmed, &generic); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		if trimmed, err = json.Marshal(generic); err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
	}

	var ret business.TaxReturn
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ret); err != nil {
		return nil, fmt.Errorf("parse return: %w", err)
	}
	return &ret, nil
}

// writeStructured writes v as indented JSON or as YAML with the same keys.
func writeStructured(w io.Writer, format string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if format == constants.FormatJSON {
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

func writeSummaryText(w io.Writer, s business.ReturnSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	form := "1040"
	if s.Nonresident {
		form = "1040-NR"
	}
	fmt.Fprintf(tw, "Form\t%s (%d)\n", form, s.TaxYear)
	fmt.Fprintf(tw, "Filing status\t%s\n", s.FilingStatus)
	fmt.Fprintf(tw, "Adjusted gross income\t%s\n", helpers.FormatMoney(s.AGI))
	fmt.Fprintf(tw, "Taxable income\t%s\n", helpers.FormatMoney(s.TaxableIncome))
	fmt.Fprintf(tw, "Total tax\t%s\n", helpers.FormatMoney(s.TotalTax))
	fmt.Fprintf(tw, "Total payments\t%s\n", helpers.FormatMoney(s.TotalPayments))
	fmt.Fprintf(tw, "%s\t%s\n", bottomLineLabel(s.AmountOwed), helpers.FormatMoney(s.Refund+s.AmountOwed))

	if len(s.States) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "State\tResidency\tConfidence\tTax\tRefund / owed")
		for _, st := range s.States {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s %s\n",
				st.StateCode, st.ResidencyType, st.Confidence,
				helpers.FormatMoney(st.TotalTax),
				strings.ToLower(bottomLineLabel(st.AmountOwed)),
				helpers.FormatMoney(st.Refund+st.AmountOwed))
		}
	}
	return tw.Flush()
}

func writeNonresidentText(w io.Writer, res *business.Form1040NRResult) error {
	fed := res.ToForm1040Result()
	return writeSummaryText(w, business.ReturnSummary{
		TaxYear:       res.TaxYear,
		FilingStatus:  res.FilingStatus,
		Nonresident:   true,
		AGI:           fed.AGI(),
		TaxableIncome: fed.Line15.Amount,
		TotalTax:      fed.TotalTax(),
		TotalPayments: fed.TotalPayments(),
		Refund:        fed.Refund(),
		AmountOwed:    fed.AmountOwed(),
	})
}

func bottomLineLabel(owed int64) string {
	if owed > 0 {
		return "Amount owed"
	}
	return "Refund"
}

func writeStatesText(w io.Writer, infos []statemodule.StateInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Code\tName\tConfidence")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Code, info.Name, info.Confidence)
	}
	return tw.Flush()
}

// writeExplanationText prints one node per line, children indented below
// their parent.
func writeExplanationText(w io.Writer, exp *traced.Explanation, depth int) {
	if exp == nil {
		return
	}
	suffix := ""
	if exp.Repeated {
		suffix = " (see above)"
	}
	fmt.Fprintf(w, "%s%s  %s  [%s]%s\n",
		strings.Repeat("  ", depth), helpers.FormatMoney(exp.Amount), exp.Label, exp.NodeID, suffix)
	for _, in := range exp.Inputs {
		writeExplanationText(w, in, depth+1)
	}
}
