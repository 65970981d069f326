package helpers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// ErrInvalidReturn is matched by callers that map bad input to a client error.
var ErrInvalidReturn = errors.New("invalid tax return")

// ValidationError lists every problem found in a submitted return.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidReturn, strings.Join(e.Problems, "; "))
}

// Unwrap lets errors.Is match ErrInvalidReturn.
func (e *ValidationError) Unwrap() error { return ErrInvalidReturn }

// ValidateReturn checks the parts of a return the engine takes on trust: a
// supported tax year, a known filing status, well-formed state configurations
// non-negative document amounts and document ids that are unique within each
// document list. It returns a *ValidationError or nil.
func ValidateReturn(ret *business.TaxReturn) error {
	if ret == nil {
		return &ValidationError{Problems: []string{"return is required"}}
	}
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if _, err := taxdata.ForYear(ret.TaxYear); err != nil {
		add("tax_year %d is not supported (supported: %v)", ret.TaxYear, taxdata.SupportedYears())
	}
	if !ret.FilingStatus.Valid() {
		add("filing_status %q is not one of single, mfj, mfs, hoh, qw", ret.FilingStatus)
	}
	if ret.FilingStatus.IsJoint() && ret.Spouse == nil && ret.NonresidentAlien == nil {
		add("filing_status mfj requires a spouse")
	}
	if !isDateOrEmpty(ret.Taxpayer.DateOfBirth) {
		add("taxpayer.date_of_birth %q is not YYYY-MM-DD", ret.Taxpayer.DateOfBirth)
	}

	for i, w := range ret.W2s {
		if w.Wages < 0 || w.FederalWithheld < 0 || w.StateWithheld < 0 {
			add("w2s[%d]: amounts must not be negative", i)
		}
	}
	for _, list := range documentIDs(ret) {
		for _, dup := range duplicateIDs(list.ids) {
			add("%s: duplicate document id %q", list.field, dup)
		}
	}
	if ret.EstimatedPayments < 0 {
		add("estimated_payments must not be negative")
	}

	seen := make(map[string]bool, len(ret.StateReturns))
	for i, cfg := range ret.StateReturns {
		code := strings.ToUpper(strings.TrimSpace(cfg.StateCode))
		switch {
		case code == "":
			add("state_returns[%d]: state_code is required", i)
		case seen[code]:
			add("state_returns[%d]: duplicate state %s", i, code)
		}
		seen[code] = true

		switch cfg.ResidencyType {
		case "", business.ResidencyFullYear, business.ResidencyPartYear, business.ResidencyNonresident:
		default:
			add("state_returns[%d]: residency_type %q is not one of full-year, part-year, nonresident", i, cfg.ResidencyType)
		}
		if !isDateOrEmpty(cfg.MoveInDate) || !isDateOrEmpty(cfg.MoveOutDate) {
			add("state_returns[%d]: move dates must be YYYY-MM-DD", i)
		}
		if cfg.NonresidentSourceIncome < 0 {
			add("state_returns[%d]: nonresident_source_income must not be negative", i)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

type idList struct {
	field string
	ids   []string
}

func documentIDs(ret *business.TaxReturn) []idList {
	lists := []idList{{field: "w2s"}, {field: "form_1099_int"}, {field: "form_1099_div"}, {field: "form_1099_r"},
		{field: "form_1099_b"}, {field: "form_1099_g"}, {field: "form_1099_misc"}, {field: "form_1099_nec"},
		{field: "ssa_1099"}, {field: "schedule_c"}, {field: "schedule_e"}, {field: "schedule_k1"},
		{field: "rsu_vests"}, {field: "iso_exercises"}}
	for _, d := range ret.W2s {
		lists[0].ids = append(lists[0].ids, d.ID)
	}
	for _, d := range ret.Form1099INT {
		lists[1].ids = append(lists[1].ids, d.ID)
	}
	for _, d := range ret.Form1099DIV {
		lists[2].ids = append(lists[2].ids, d.ID)
	}
	for _, d := range ret.Form1099R {
		lists[3].ids = append(lists[3].ids, d.ID)
	}
	for _, d := range ret.Form1099B {
		lists[4].ids = append(lists[4].ids, d.ID)
	}
	for _, d := range ret.Form1099G {
		lists[5].ids = append(lists[5].ids, d.ID)
	}
	for _, d := range ret.Form1099MISC {
		lists[6].ids = append(lists[6].ids, d.ID)
	}
	for _, d := range ret.Form1099NEC {
		lists[7].ids = append(lists[7].ids, d.ID)
	}
	for _, d := range ret.SSA1099 {
		lists[8].ids = append(lists[8].ids, d.ID)
	}
	for _, d := range ret.ScheduleC {
		lists[9].ids = append(lists[9].ids, d.ID)
	}
	for _, d := range ret.ScheduleE {
		lists[10].ids = append(lists[10].ids, d.ID)
	}
	for _, d := range ret.ScheduleK1 {
		lists[11].ids = append(lists[11].ids, d.ID)
	}
	for _, d := range ret.RSUVests {
		lists[12].ids = append(lists[12].ids, d.ID)
	}
	for _, d := range ret.ISOExercises {
		lists[13].ids = append(lists[13].ids, d.ID)
	}
	return lists
}

// duplicateIDs returns each non-empty id that appears more than once, in
// first-seen order. Empty ids are allowed; documents are then told apart by
// position.
func duplicateIDs(ids []string) []string {
	counts := make(map[string]int, len(ids))
	var dups []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		counts[id]++
		if counts[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}

func isDateOrEmpty(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
