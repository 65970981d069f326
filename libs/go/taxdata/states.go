package taxdata

import "github.com/cyphera/cyphera-tax/libs/go/types/business"

// State holds one jurisdiction's constants. Fields a state does not use are
// left empty; anything not covered by the typed fields lives in Params.
type State struct {
	Name                string                  `yaml:"name"`
	Confidence          business.DataConfidence `yaml:"confidence"`
	Brackets            Schedules               `yaml:"brackets"`
	StandardDeduction   ByStatus                `yaml:"standardDeduction"`
	PersonalExemption   ByStatus                `yaml:"personalExemption"`
	DependentExemption  Cents                   `yaml:"dependentExemption"`
	ExemptionCredit     ByStatus                `yaml:"exemptionCredit"`
	DependentCredit     Cents                   `yaml:"dependentCredit"`
	EITCRate            float64                 `yaml:"eitcRate"`
	Localities          map[string]Locality     `yaml:"localities"`
	Params              Params                  `yaml:"params"`
}

// Locality is a city or county income tax levied alongside the state return.
type Locality struct {
	Name     string    `yaml:"name"`
	Rate     float64   `yaml:"rate"`
	Brackets Schedules `yaml:"brackets"`
}

// Locality returns the named locality and whether it exists. The "default"
// entry is used when name is empty or unknown.
func (s State) Locality(name string) (Locality, bool) {
	if l, ok := s.Localities[name]; ok && name != "" {
		return l, true
	}
	l, ok := s.Localities[defaultKey]
	return l, ok
}
