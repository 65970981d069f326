package services

import (
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// ScheduleDApplies reports whether the return has any capital activity.
func ScheduleDApplies(ret *business.TaxReturn) bool {
	if len(ret.Form1099B) > 0 {
		return true
	}
	for _, d := range ret.Form1099DIV {
		if d.CapitalGainDistributions != 0 {
			return true
		}
	}
	for _, k := range ret.ScheduleK1 {
		if k.ShortTermCapitalGain != 0 || k.LongTermCapitalGain != 0 {
			return true
		}
	}
	c := ret.CapitalLossCarryover
	return c != nil && (c.ShortTerm > 0 || c.LongTerm > 0)
}

// ComputeScheduleD nets short- and long-term transactions, applies the prior
// year carryover, limits a net loss, and works out the carryforward.
func ComputeScheduleD(ret *business.TaxReturn, fed *taxdata.Federal, rec *traced.Recorder) business.ScheduleDResult {
	vests := make(map[string]business.RSUVestEvent, len(ret.RSUVests))
	for _, v := range ret.RSUVests {
		vests[v.ID] = v
	}

	var res business.ScheduleDResult
	var stNodes, ltNodes []traced.TracedValue
	for i, tx := range ret.Form1099B {
		row := business.ScheduleDRow{
			ID:          docKey(tx.ID, i),
			Description: tx.Description,
			Proceeds:    tx.Proceeds,
			CostBasis:   tx.CostBasis,
			Adjustment:  tx.AdjustmentAmount,
			LongTerm:    tx.LongTerm,
		}
		if basis, ok := rsuBasis(tx, vests); ok {
			row.CostBasis = basis
			row.BasisFromRSUVest = true
		}
		row.Gain = row.Proceeds - row.CostBasis + row.Adjustment
		res.Rows = append(res.Rows, row)

		node := rec.Input(row.Gain, nodeID("f8949", tx.ID, i, "gain"), "Gain or loss: "+tx.Description)
		if tx.LongTerm {
			res.LongTermGain += row.Gain
			ltNodes = append(ltNodes, node)
		} else {
			res.ShortTermGain += row.Gain
			stNodes = append(stNodes, node)
		}
	}

	for i, k := range ret.ScheduleK1 {
		if k.ShortTermCapitalGain != 0 {
			res.ShortTermGain += k.ShortTermCapitalGain
			stNodes = append(stNodes, rec.Input(k.ShortTermCapitalGain, nodeID("k1", k.ID, i, "st_gain"), "K-1 short-term gain: "+k.EntityName))
		}
		if k.LongTermCapitalGain != 0 {
			res.LongTermGain += k.LongTermCapitalGain
			ltNodes = append(ltNodes, rec.Input(k.LongTermCapitalGain, nodeID("k1", k.ID, i, "lt_gain"), "K-1 long-term gain: "+k.EntityName))
		}
	}

	for i, d := range ret.Form1099DIV {
		if d.CapitalGainDistributions != 0 {
			res.CapitalGainDistributions += d.CapitalGainDistributions
			ltNodes = append(ltNodes, rec.Input(d.CapitalGainDistributions, nodeID("div", d.ID, i, "cap_gain_dist"), "Capital gain distributions: "+d.PayerName))
		}
	}
	res.LongTermGain += res.CapitalGainDistributions

	if c := ret.CapitalLossCarryover; c != nil {
		res.ShortTermCarryoverUsed = taxmath.Max0(c.ShortTerm)
		res.LongTermCarryoverUsed = taxmath.Max0(c.LongTerm)
		if res.ShortTermCarryoverUsed > 0 {
			stNodes = append(stNodes, rec.Input(-res.ShortTermCarryoverUsed, "sched_d.line6", "Short-term capital loss carryover"))
		}
		if res.LongTermCarryoverUsed > 0 {
			ltNodes = append(ltNodes, rec.Input(-res.LongTermCarryoverUsed, "sched_d.line14", "Long-term capital loss carryover"))
		}
	}

	res.NetShortTerm = res.ShortTermGain - res.ShortTermCarryoverUsed
	res.NetLongTerm = res.LongTermGain - res.LongTermCarryoverUsed
	res.NetGain = res.NetShortTerm + res.NetLongTerm

	st := rec.Compute(res.NetShortTerm, "sched_d.line7", traced.IDs(stNodes...), "Net short-term capital gain or loss")
	lt := rec.Compute(res.NetLongTerm, "sched_d.line15", traced.IDs(ltNodes...), "Net long-term capital gain or loss")
	net := rec.Compute(res.NetGain, "sched_d.line16", traced.IDs(st, lt), "Net capital gain or loss")

	limit := fed.CapitalLossLimit.For(ret.FilingStatus)
	res.Line7 = res.NetGain
	if res.NetGain < -limit {
		res.Line7 = -limit
	}
	rec.Compute(res.Line7, "sched_d.line21", traced.IDs(net), "Capital gain or allowable loss")

	if res.NetLongTerm > 0 && res.NetGain > 0 {
		res.NetPreferentialGain = taxmath.Min(res.NetLongTerm, res.NetGain)
	}

	if res.NetGain < 0 {
		allowed := -res.Line7
		stLoss := taxmath.Max0(-res.NetShortTerm)
		ltLoss := taxmath.Max0(-res.NetLongTerm)
		res.ShortTermCarryforward = taxmath.Max0(stLoss - (allowed + taxmath.Max0(res.NetLongTerm)))
		res.LongTermCarryforward = taxmath.Max0(ltLoss - (taxmath.Max0(res.NetShortTerm) + taxmath.Max0(allowed-stLoss)))
	}
	return res
}

// rsuBasis returns the vest-date value of shares sold from an RSU vest when
// the broker reported no basis.
func rsuBasis(tx business.Form1099B, vests map[string]business.RSUVestEvent) (int64, bool) {
	if tx.RSUVestID == "" || tx.CostBasis != 0 {
		return 0, false
	}
	v, ok := vests[tx.RSUVestID]
	if !ok {
		return 0, false
	}
	shares := tx.Shares
	if shares <= 0 {
		shares = v.Shares
	}
	return shares * v.FMVPerShare, true
}
