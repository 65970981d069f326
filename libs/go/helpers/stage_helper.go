package helpers

import "github.com/cyphera/cyphera-tax/libs/go/constants"

// Stage constants define the possible deployment/runtime environments.
const (
	StageProd  = constants.ProdEnvironment
	StageDev   = constants.DevEnvironment
	StageLocal = constants.LocalEnvironment
	StageTest  = constants.TestEnvironment
)

// IsValidStage checks if the provided stage string is one of the defined valid stages.
func IsValidStage(stage string) bool {
	switch stage {
	case StageProd, StageDev, StageLocal, StageTest:
		return true
	default:
		return false
	}
}
