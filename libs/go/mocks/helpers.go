package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockReturnCalculatorForTest creates a new mock ReturnCalculator for testing
func NewMockReturnCalculatorForTest(t *testing.T) *MockReturnCalculator {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockReturnCalculator(ctrl)
}

// NewMockStateRulesModuleForTest creates a new mock StateRulesModule for testing
func NewMockStateRulesModuleForTest(t *testing.T) *MockStateRulesModule {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockStateRulesModule(ctrl)
}

// NewMockMessagePublisherForTest creates a new mock MessagePublisher for testing
func NewMockMessagePublisherForTest(t *testing.T) *MockMessagePublisher {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockMessagePublisher(ctrl)
}
