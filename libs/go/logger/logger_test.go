package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
		zap  zapcore.Level
	}{
		{in: "debug", want: DebugLevel, zap: zapcore.DebugLevel},
		{in: " WARNING ", want: WarnLevel, zap: zapcore.WarnLevel},
		{in: "error", want: ErrorLevel, zap: zapcore.ErrorLevel},
		{in: "fatal", want: FatalLevel, zap: zapcore.FatalLevel},
		{in: "", want: InfoLevel, zap: zapcore.InfoLevel},
		{in: "verbose", want: InfoLevel, zap: zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := LogLevelFromString(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.zap, zapLevel(got))
		})
	}
}

func TestRedactSSNs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "dashed", in: `{"ssn":"123-45-6789"}`, want: `{"ssn":"***-**-6789"}`},
		{name: "bare digits", in: "ssn 123456789 end", want: "ssn ***-**-6789 end"},
		{name: "two numbers", in: "111-22-3333 and 444-55-6666", want: "***-**-3333 and ***-**-6666"},
		{name: "amounts untouched", in: `{"wages":6000000}`, want: `{"wages":6000000}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RedactSSNs(tt.in))
		})
	}
}

func observed(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Log
	Log = zap.New(core)
	t.Cleanup(func() { Log = prev })
	return logs
}

func TestStructuredLogger_Fields(t *testing.T) {
	logs := observed(t)

	NewStructuredLogger(ComponentState).
		WithReturn("ret-1", 2025).
		WithStateCode("NY").
		WithCorrelationID("corr-1").
		WithField("taxable_income", int64(5200000)).
		Info("State computed")

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "state", ctx["component"])
	assert.Equal(t, "ret-1", ctx["return_id"])
	assert.Equal(t, int64(2025), ctx["tax_year"])
	assert.Equal(t, "NY", ctx["state_code"])
	assert.Equal(t, "corr-1", ctx["correlation_id"])
	assert.Equal(t, int64(5200000), ctx["taxable_income"])
}

func TestStructuredLogger_WithDoesNotMutateParent(t *testing.T) {
	logs := observed(t)

	parent := NewStructuredLogger(ComponentFederal).WithField("a", 1)
	parent.WithField("b", 2).Info("child")
	parent.Info("parent")

	require.Equal(t, 2, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap(), "b")
	assert.NotContains(t, logs.All()[1].ContextMap(), "b")
}

func TestStructuredLogger_LogOperation(t *testing.T) {
	logs := observed(t)
	sl := NewStructuredLogger(ComponentWorker)

	errBoom := errors.New("boom")
	assert.NoError(t, sl.LogOperation("compute", func() error { return nil }))
	assert.ErrorIs(t, sl.LogOperation("publish", func() error { return errBoom }), errBoom)

	assert.Equal(t, 1, logs.FilterMessage("Operation completed").Len())
	failed := logs.FilterMessage("Operation failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "publish", failed[0].ContextMap()["operation"])
}

func TestNewStructuredLogger_BeforeInit(t *testing.T) {
	prev := Log
	Log = nil
	t.Cleanup(func() { Log = prev })

	assert.NotPanics(t, func() {
		NewStructuredLogger(ComponentCLI).Info("no logger yet")
	})
}

func TestGet_BeforeInit(t *testing.T) {
	prev := Log
	Log = nil
	t.Cleanup(func() { Log = prev })

	require.NotNil(t, Get())
	assert.NotPanics(t, func() {
		Info("no logger yet")
		ForReturn("ret-1", 2025, "single").Warn("still no logger")
		_ = Sync()
	})
}

func TestForReturn(t *testing.T) {
	tests := []struct {
		name         string
		filingStatus string
		want         map[string]interface{}
	}{
		{
			name:         "with filing status",
			filingStatus: "mfj",
			want:         map[string]interface{}{FieldReturnID: "ret-9", FieldTaxYear: int64(2025), FieldFilingStatus: "mfj"},
		},
		{
			name: "without filing status",
			want: map[string]interface{}{FieldReturnID: "ret-9", FieldTaxYear: int64(2025)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observed(t)
			ForReturn("ret-9", 2025, tt.filingStatus).Info("Computed form 1040")

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].ContextMap())
		})
	}
}

func TestZapConfigFor(t *testing.T) {
	tests := []struct {
		name       string
		config     LoggerConfig
		wantFields map[string]interface{}
		wantLevel  zapcore.Level
	}{
		{
			name:   "production carries service and tax years",
			config: LoggerConfig{Level: "warn", Stage: "prod", TaxYears: []int{2025, 2024}},
			wantFields: map[string]interface{}{
				"service":     "cyphera-tax",
				"stage":       "prod",
				FieldTaxYears: []int{2024, 2025},
			},
			wantLevel: zapcore.WarnLevel,
		},
		{
			name:       "development with tax years",
			config:     LoggerConfig{Level: "debug", Stage: "dev", TaxYears: []int{2025}},
			wantFields: map[string]interface{}{FieldTaxYears: []int{2025}},
			wantLevel:  zapcore.DebugLevel,
		},
		{
			name:      "development without tax years",
			config:    LoggerConfig{Level: "info", Stage: "local"},
			wantLevel: zapcore.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := zapConfigFor(tt.config)
			if tt.wantFields == nil {
				assert.Empty(t, cfg.InitialFields)
			} else {
				assert.Equal(t, tt.wantFields, cfg.InitialFields)
			}
			assert.Equal(t, tt.wantLevel, cfg.Level.Level())
			assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
		})
	}
}
