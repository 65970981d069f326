package statemodule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"golang.org/x/sync/errgroup"
)

// Registry maps state codes to modules. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]StateRulesModule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: map[string]StateRulesModule{}}
}

// Register adds m under its code. Registering a code twice is an error.
func (r *Registry) Register(m StateRulesModule) error {
	code := strings.ToUpper(m.Info().Code)
	if code == "" {
		return fmt.Errorf("register state module: empty state code")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[code]; exists {
		return fmt.Errorf("register state module: %s already registered", code)
	}
	r.modules[code] = m
	return nil
}

// MustRegister is Register for package initialisation; it panics on error.
func (r *Registry) MustRegister(modules ...StateRulesModule) {
	for _, m := range modules {
		if err := r.Register(m); err != nil {
			panic(err)
		}
	}
}

// GetModule returns the module for code, matched case-insensitively.
func (r *Registry) GetModule(code string) (StateRulesModule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownState, code)
	}
	return m, nil
}

// ListSupportedStates returns every registered state sorted by code.
func (r *Registry) ListSupportedStates() []StateInfo {
	r.mu.RLock()
	out := make([]StateInfo, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m.Info())
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// yearInfo is implemented by modules that can describe a specific tax year.
type yearInfo interface {
	InfoForYear(taxYear int) StateInfo
}

// ListSupportedStatesForYear is ListSupportedStates with each state's data
// confidence taken from its taxYear tables.
func (r *Registry) ListSupportedStatesForYear(taxYear int) []StateInfo {
	r.mu.RLock()
	out := make([]StateInfo, 0, len(r.modules))
	for _, m := range r.modules {
		if y, ok := m.(yearInfo); ok {
			out = append(out, y.InfoForYear(taxYear))
			continue
		}
		out = append(out, m.Info())
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// ComputeAll computes every state return configured on ret against the
// finished federal result. Modules run concurrently; results come back in
// configuration order. The first failure cancels the remaining work.
func (r *Registry) ComputeAll(ctx context.Context, ret *business.TaxReturn, fed *business.Form1040Result) ([]business.StateComputeResult, error) {
	modules := make([]StateRulesModule, len(ret.StateReturns))
	for i, cfg := range ret.StateReturns {
		m, err := r.GetModule(cfg.StateCode)
		if err != nil {
			return nil, err
		}
		modules[i] = m
	}

	results := make([]business.StateComputeResult, len(modules))
	g, ctx := errgroup.WithContext(ctx)
	for i := range modules {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg := ret.StateReturns[i]
			res, err := modules[i].Compute(ret, fed, cfg)
			if err != nil {
				return fmt.Errorf("compute %s return: %w", strings.ToUpper(cfg.StateCode), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
