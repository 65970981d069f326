// Package states wires the built-in state modules into a registry.
package states

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/states/az"
	"github.com/cyphera/cyphera-tax/libs/go/states/ca"
	"github.com/cyphera/cyphera-tax/libs/go/states/co"
	"github.com/cyphera/cyphera-tax/libs/go/states/ga"
	"github.com/cyphera/cyphera-tax/libs/go/states/il"
	"github.com/cyphera/cyphera-tax/libs/go/states/ma"
	"github.com/cyphera/cyphera-tax/libs/go/states/md"
	"github.com/cyphera/cyphera-tax/libs/go/states/mi"
	"github.com/cyphera/cyphera-tax/libs/go/states/nc"
	"github.com/cyphera/cyphera-tax/libs/go/states/nj"
	"github.com/cyphera/cyphera-tax/libs/go/states/ny"
	"github.com/cyphera/cyphera-tax/libs/go/states/oh"
	"github.com/cyphera/cyphera-tax/libs/go/states/or"
	"github.com/cyphera/cyphera-tax/libs/go/states/pa"
	"github.com/cyphera/cyphera-tax/libs/go/states/va"
)

// Builtins returns a fresh instance of every built-in module.
func Builtins() []statemodule.StateRulesModule {
	return []statemodule.StateRulesModule{
		az.New(), ca.New(), co.New(), ga.New(), il.New(),
		ma.New(), md.New(), mi.New(), nc.New(), nj.New(),
		ny.New(), oh.New(), or.New(), pa.New(), va.New(),
	}
}

// RegisterBuiltins adds every built-in module to r.
func RegisterBuiltins(r *statemodule.Registry) {
	r.MustRegister(Builtins()...)
}

// NewRegistry returns a registry holding the built-in modules.
func NewRegistry() *statemodule.Registry {
	r := statemodule.NewRegistry()
	RegisterBuiltins(r)
	return r
}
