package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents different logging levels
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// LogComponent represents different system components for filtering
type LogComponent string

const (
	ComponentAPI        LogComponent = "api"
	ComponentFederal    LogComponent = "federal"
	ComponentState      LogComponent = "state"
	ComponentMiddleware LogComponent = "middleware"
	ComponentServer     LogComponent = "server"
	ComponentWorker     LogComponent = "worker"
	ComponentCLI        LogComponent = "cli"
)

// LogContext holds structured context information for logs
type LogContext struct {
	ReturnID      string
	TaxYear       int
	StateCode     string
	CorrelationID string
	RequestID     string
	Component     LogComponent
	Operation     string
	Duration      time.Duration
	Fields        map[string]interface{}
}

// StructuredLogger provides enhanced logging with structured context
type StructuredLogger struct {
	logger    *zap.Logger
	component LogComponent
	context   LogContext
}

// NewStructuredLogger creates a new structured logger for a specific component
func NewStructuredLogger(component LogComponent) *StructuredLogger {
	base := Log
	if base == nil {
		base = zap.NewNop()
	}
	return &StructuredLogger{
		logger:    base,
		component: component,
		context:   LogContext{Component: component, Fields: make(map[string]interface{})},
	}
}

// WithField adds a field to the log context
func (sl *StructuredLogger) WithField(key string, value interface{}) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.Fields[key] = value
	return newLogger
}

// WithFields adds multiple fields to the log context
func (sl *StructuredLogger) WithFields(fields map[string]interface{}) *StructuredLogger {
	newLogger := sl.clone()
	for k, v := range fields {
		newLogger.context.Fields[k] = v
	}
	return newLogger
}

// WithReturn adds the return id and tax year to the log context
func (sl *StructuredLogger) WithReturn(returnID string, taxYear int) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.ReturnID = returnID
	newLogger.context.TaxYear = taxYear
	return newLogger
}

// WithStateCode adds the state being computed
func (sl *StructuredLogger) WithStateCode(code string) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.StateCode = code
	return newLogger
}

// WithCorrelationID adds correlation ID to the log context
func (sl *StructuredLogger) WithCorrelationID(correlationID string) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.CorrelationID = correlationID
	return newLogger
}

// WithRequestID adds request ID to the log context
func (sl *StructuredLogger) WithRequestID(requestID string) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.RequestID = requestID
	return newLogger
}

// WithOperation adds operation name to the log context
func (sl *StructuredLogger) WithOperation(operation string) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.Operation = operation
	return newLogger
}

// WithDuration adds duration to the log context
func (sl *StructuredLogger) WithDuration(duration time.Duration) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.Duration = duration
	return newLogger
}

func (sl *StructuredLogger) clone() *StructuredLogger {
	newFields := make(map[string]interface{}, len(sl.context.Fields))
	for k, v := range sl.context.Fields {
		newFields[k] = v
	}
	ctx := sl.context
	ctx.Fields = newFields
	return &StructuredLogger{
		logger:    sl.logger,
		component: sl.component,
		context:   ctx,
	}
}

// Fields returns the zap fields for the current context.
func (sl *StructuredLogger) Fields() []zapcore.Field {
	fields := make([]zapcore.Field, 0, 8+len(sl.context.Fields))

	if sl.context.Component != "" {
		fields = append(fields, zap.String("component", string(sl.context.Component)))
	}
	if sl.context.ReturnID != "" {
		fields = append(fields, zap.String(FieldReturnID, sl.context.ReturnID))
	}
	if sl.context.TaxYear != 0 {
		fields = append(fields, zap.Int(FieldTaxYear, sl.context.TaxYear))
	}
	if sl.context.StateCode != "" {
		fields = append(fields, zap.String(FieldStateCode, sl.context.StateCode))
	}
	if sl.context.CorrelationID != "" {
		fields = append(fields, zap.String("correlation_id", sl.context.CorrelationID))
	}
	if sl.context.RequestID != "" {
		fields = append(fields, zap.String("request_id", sl.context.RequestID))
	}
	if sl.context.Operation != "" {
		fields = append(fields, zap.String("operation", sl.context.Operation))
	}
	if sl.context.Duration > 0 {
		fields = append(fields, zap.Duration("duration", sl.context.Duration))
	}

	for key, value := range sl.context.Fields {
		fields = append(fields, zap.Any(key, value))
	}

	return fields
}

// Debug logs a debug message with structured context
func (sl *StructuredLogger) Debug(msg string) {
	sl.logger.Debug(msg, sl.Fields()...)
}

// Info logs an info message with structured context
func (sl *StructuredLogger) Info(msg string) {
	sl.logger.Info(msg, sl.Fields()...)
}

// Warn logs a warning message with structured context
func (sl *StructuredLogger) Warn(msg string) {
	sl.logger.Warn(msg, sl.Fields()...)
}

// Error logs an error message with structured context
func (sl *StructuredLogger) Error(msg string, err error) {
	fields := sl.Fields()
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	sl.logger.Error(msg, fields...)
}

// LogOperation logs the start and end of an operation with timing
func (sl *StructuredLogger) LogOperation(operation string, fn func() error) error {
	start := time.Now()
	opLogger := sl.WithOperation(operation)

	opLogger.Debug("Operation started")

	err := fn()
	finalLogger := opLogger.WithDuration(time.Since(start))

	if err != nil {
		finalLogger.Error("Operation failed", err)
	} else {
		finalLogger.Info("Operation completed")
	}

	return err
}

// LogHTTPRequest logs HTTP request details
func (sl *StructuredLogger) LogHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	sl.WithFields(map[string]interface{}{
		"http_method":   method,
		"http_path":     path,
		"http_status":   statusCode,
		"response_time": duration,
	}).WithDuration(duration).Info("HTTP request processed")
}

// LogReturnComputed logs the bottom line of a computed return. Amounts are
// in cents.
func (sl *StructuredLogger) LogReturnComputed(filingStatus string, totalTax, refund, owed int64, states int) {
	sl.WithFields(map[string]interface{}{
		FieldFilingStatus: filingStatus,
		"total_tax":       totalTax,
		"refund":          refund,
		"amount_owed":     owed,
		"state_returns":   states,
	}).Info("Return computed")
}

// LogQueueMessage logs the outcome of one queue message.
func (sl *StructuredLogger) LogQueueMessage(messageID string, processed bool, processingTime time.Duration) {
	sl.WithFields(map[string]interface{}{
		"message_id":          messageID,
		"processed":           processed,
		"processing_duration": processingTime,
	}).WithDuration(processingTime).Info("Queue message processed")
}

// Timer helps measure operation duration
type Timer struct {
	start  time.Time
	logger *StructuredLogger
	name   string
}

// NewTimer creates a new timer for measuring operation duration
func (sl *StructuredLogger) NewTimer(operationName string) *Timer {
	return &Timer{
		start:  time.Now(),
		logger: sl,
		name:   operationName,
	}
}

// Stop stops the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	duration := time.Since(t.start)
	t.logger.WithOperation(t.name).WithDuration(duration).Debug("Operation timing")
	return duration
}

// StopWithResult stops the timer and logs the result
func (t *Timer) StopWithResult(err error) time.Duration {
	duration := time.Since(t.start)
	logger := t.logger.WithOperation(t.name).WithDuration(duration).WithField("success", err == nil)

	if err == nil {
		logger.Debug(fmt.Sprintf("%s completed successfully", t.name))
	} else {
		logger.Error(fmt.Sprintf("%s failed", t.name), err)
	}
	return duration
}
