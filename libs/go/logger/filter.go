package logger

import (
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LogLevelFromString converts a string to LogLevel
func LogLevelFromString(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}

func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// ssnPattern matches social security numbers with or without dashes.
var ssnPattern = regexp.MustCompile(`\b\d{3}-?\d{2}-?(\d{4})\b`)

// RedactSSNs masks every social security number in s, keeping the last four
// digits. Request dumps pass through it before they are logged.
func RedactSSNs(s string) string {
	return ssnPattern.ReplaceAllString(s, "***-**-$1")
}
