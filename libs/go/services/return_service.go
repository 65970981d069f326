package services

import (
	"context"
	"fmt"

	"github.com/cyphera/cyphera-tax/libs/go/interfaces"
	"github.com/cyphera/cyphera-tax/libs/go/logger"
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/states"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var _ interfaces.ReturnCalculator = (*ReturnService)(nil)

// ReturnService computes a complete return: the federal return, or the
// nonresident return when the filer is a nonresident alien, followed by every
// configured state return.
type ReturnService struct {
	log         *logger.StructuredLogger
	federal     *Form1040Service
	nonresident *Form1040NRService
	registry    *statemodule.Registry
}

// NewReturnService creates a return service over registry. A nil registry
// uses the built-in states.
func NewReturnService(registry *statemodule.Registry) *ReturnService {
	if registry == nil {
		registry = states.NewRegistry()
	}
	return &ReturnService{
		log:         logger.NewStructuredLogger(logger.ComponentState),
		federal:     NewForm1040Service(),
		nonresident: NewForm1040NRService(),
		registry:    registry,
	}
}

// Compute runs the federal return and then the state returns, which only
// read the finished federal result.
func (s *ReturnService) Compute(ctx context.Context, ret *business.TaxReturn) (*business.ReturnComputation, error) {
	out := &business.ReturnComputation{TaxYear: ret.TaxYear}
	if ret.NonresidentAlien != nil {
		nr, err := s.nonresident.ComputeForm1040NR(ctx, ret)
		if err != nil {
			return nil, err
		}
		out.Nonresident = business.Some(*nr)
		out.Federal = nr.ToForm1040Result()
	} else {
		fed, err := s.federal.ComputeForm1040(ctx, ret)
		if err != nil {
			return nil, err
		}
		out.Federal = fed
	}

	stateResults, err := s.registry.ComputeAll(ctx, ret, out.Federal)
	if err != nil {
		return nil, fmt.Errorf("compute state returns: %w", err)
	}
	out.States = stateResults

	log := s.log.WithReturn(ret.ID, ret.TaxYear)
	for _, st := range out.States {
		log.WithStateCode(st.StateCode).
			WithField("total_tax", st.TotalTax.Amount).
			WithField("confidence", string(st.Confidence)).
			Debug("Computed state return")
	}
	log.WithField("nonresident", ret.NonresidentAlien != nil).
		LogReturnComputed(string(ret.FilingStatus), out.Federal.TotalTax(), out.Federal.Refund(), out.Federal.AmountOwed(), len(out.States))

	return out, nil
}

// ComputeNonresident runs only the Form 1040-NR.
func (s *ReturnService) ComputeNonresident(ctx context.Context, ret *business.TaxReturn) (*business.Form1040NRResult, error) {
	return s.nonresident.ComputeForm1040NR(ctx, ret)
}

// Explain computes the return and returns the provenance tree of nodeID.
func (s *ReturnService) Explain(ctx context.Context, ret *business.TaxReturn, nodeID string) (*traced.Explanation, error) {
	comp, err := s.Compute(ctx, ret)
	if err != nil {
		return nil, err
	}
	return ProvenanceGraph(comp).Explain(nodeID)
}

// ListSupportedStates lists the registered states sorted by code.
func (s *ReturnService) ListSupportedStates() []statemodule.StateInfo {
	return s.registry.ListSupportedStates()
}

// ListSupportedStatesForYear lists the registered states with the data
// confidence of their taxYear tables.
func (s *ReturnService) ListSupportedStatesForYear(taxYear int) []statemodule.StateInfo {
	return s.registry.ListSupportedStatesForYear(taxYear)
}

// ProvenanceGraph merges the federal and state nodes of a computation into
// one graph. State nodes may reference federal nodes, never the reverse.
func ProvenanceGraph(comp *business.ReturnComputation) *traced.Graph {
	groups := make([][]traced.TracedValue, 0, len(comp.States)+1)
	if comp.Federal != nil {
		groups = append(groups, comp.Federal.Nodes)
	}
	for _, st := range comp.States {
		groups = append(groups, st.Nodes)
	}
	return traced.NewGraph(groups...)
}
