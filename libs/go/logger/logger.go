package logger

import (
	"os"
	"sort"

	"github.com/cyphera/cyphera-tax/libs/go/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log is the global logger instance. It stays nil until InitLogger runs;
	// use Get where that can happen.
	Log *zap.Logger

	nop = zap.NewNop()
)

// Field keys shared by every component that logs about a return.
const (
	FieldReturnID     = "return_id"
	FieldTaxYear      = "tax_year"
	FieldFilingStatus = "filing_status"
	FieldStateCode    = "state_code"
	FieldTaxYears     = "tax_years"
)

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level       string `json:"level"`
	Stage       string `json:"stage"`
	EnableJSON  bool   `json:"enable_json"`
	EnableColor bool   `json:"enable_color"`
	// TaxYears, when set, is attached to every line so logs show which
	// table years the process was built with.
	TaxYears []int `json:"tax_years,omitempty"`
}

// InitLogger initializes the logger for stage, reading LOG_LEVEL.
func InitLogger(stage string, taxYears ...int) {
	InitLoggerWithConfig(LoggerConfig{
		Level:       getEnvWithDefault("LOG_LEVEL", "info"),
		Stage:       stage,
		EnableJSON:  stage == constants.ProdEnvironment,
		EnableColor: stage != constants.ProdEnvironment,
		TaxYears:    taxYears,
	})
}

// InitLoggerWithConfig builds the global logger. Production stages get JSON
// with the service fields; everything else gets console output on stderr.
func InitLoggerWithConfig(config LoggerConfig) {
	built, err := zapConfigFor(config).Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Log = built
}

func zapConfigFor(config LoggerConfig) zap.Config {
	var zapConfig zap.Config
	level := zapLevel(LogLevelFromString(config.Level))

	if config.Stage == constants.ProdEnvironment || config.EnableJSON {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.TimeKey = "timestamp"
		zapConfig.EncoderConfig.MessageKey = "message"
		zapConfig.InitialFields = map[string]interface{}{
			"service": constants.ServiceName,
			"stage":   config.Stage,
		}
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if config.EnableColor {
			zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		zapConfig.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.DisableStacktrace = config.Stage == constants.ProdEnvironment && level > zapcore.DebugLevel

	if len(config.TaxYears) > 0 {
		years := append([]int(nil), config.TaxYears...)
		sort.Ints(years)
		if zapConfig.InitialFields == nil {
			zapConfig.InitialFields = map[string]interface{}{}
		}
		zapConfig.InitialFields[FieldTaxYears] = years
	}
	return zapConfig
}

// Get returns the global logger, or a no-op logger before initialization.
func Get() *zap.Logger {
	if Log == nil {
		return nop
	}
	return Log
}

// ForReturn returns a logger carrying the identity of one return.
func ForReturn(returnID string, taxYear int, filingStatus string) *zap.Logger {
	return Get().With(ReturnFields(returnID, taxYear, filingStatus)...)
}

// ReturnFields are the fields that identify a return in every log line.
func ReturnFields(returnID string, taxYear int, filingStatus string) []zapcore.Field {
	fields := []zapcore.Field{zap.String(FieldReturnID, returnID), zap.Int(FieldTaxYear, taxYear)}
	if filingStatus != "" {
		fields = append(fields, zap.String(FieldFilingStatus, filingStatus))
	}
	return fields
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Info logs a message at InfoLevel
func Info(msg string, fields ...zapcore.Field) {
	Get().Info(msg, fields...)
}

// Error logs a message at ErrorLevel
func Error(msg string, fields ...zapcore.Field) {
	Get().Error(msg, fields...)
}

// Debug logs a message at DebugLevel
func Debug(msg string, fields ...zapcore.Field) {
	Get().Debug(msg, fields...)
}

// Warn logs a message at WarnLevel
func Warn(msg string, fields ...zapcore.Field) {
	Get().Warn(msg, fields...)
}

// Fatal logs a message at FatalLevel and then calls os.Exit(1).
func Fatal(msg string, fields ...zapcore.Field) {
	Get().Fatal(msg, fields...)
}

// With creates a child logger and adds structured context to it
func With(fields ...zapcore.Field) *zap.Logger {
	return Get().With(fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	return Get().Sync()
}
