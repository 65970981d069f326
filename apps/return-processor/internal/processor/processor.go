package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cyphera/cyphera-tax/libs/go/constants"
	"github.com/cyphera/cyphera-tax/libs/go/helpers"
	"github.com/cyphera/cyphera-tax/libs/go/interfaces"
	"github.com/cyphera/cyphera-tax/libs/go/logger"
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

// ReturnMessage is the body of a queued computation request.
type ReturnMessage struct {
	ReturnID      string             `json:"return_id,omitempty"`
	CorrelationID string             `json:"correlation_id,omitempty"`
	Return        business.TaxReturn `json:"return"`
}

// ResultMessage is published for every request that reaches a final outcome,
// successful or not.
type ResultMessage struct {
	ReturnID      string                  `json:"return_id"`
	CorrelationID string                  `json:"correlation_id"`
	ComputedAt    int64                   `json:"computed_at"`
	Summary       *business.ReturnSummary `json:"summary,omitempty"`
	Error         string                  `json:"error,omitempty"`
	Problems      []string                `json:"problems,omitempty"`
}

// RecordResult is the outcome of processing one SQS record.
type RecordResult struct {
	MessageID       string
	ReturnID        string
	Processed       bool
	ShouldRetry     bool
	ResultMessageID string
	Error           string
}

// ReturnProcessor computes queued returns and publishes their summaries.
type ReturnProcessor struct {
	calculator interfaces.ReturnCalculator
	publisher  interfaces.MessagePublisher
	log        *logger.StructuredLogger
}

// NewReturnProcessor creates a processor
func NewReturnProcessor(calculator interfaces.ReturnCalculator, publisher interfaces.MessagePublisher) *ReturnProcessor {
	return &ReturnProcessor{
		calculator: calculator,
		publisher:  publisher,
		log:        logger.NewStructuredLogger(logger.ComponentWorker),
	}
}

// HandleSQSEvent processes a batch. Records that failed for a transient
// reason are reported back as batch item failures so SQS redelivers only
// those; bad input is answered with an error result and not retried.
func (p *ReturnProcessor) HandleSQSEvent(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	p.log.WithField("record_count", len(event.Records)).Info("Return processor handling SQS event")

	var response events.SQSEventResponse
	successCount := 0
	for _, record := range event.Records {
		result := p.ProcessRecord(ctx, record)
		if result.Processed {
			successCount++
		}
		if result.ShouldRetry {
			response.BatchItemFailures = append(response.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: record.MessageId,
			})
		}
	}

	p.log.WithFields(map[string]interface{}{
		"total":   len(event.Records),
		"success": successCount,
		"failed":  len(event.Records) - successCount,
		"retried": len(response.BatchItemFailures),
	}).Info("Return processing completed")

	return response, nil
}

// ProcessRecord computes one queued return.
func (p *ReturnProcessor) ProcessRecord(ctx context.Context, record events.SQSMessage) (result RecordResult) {
	start := time.Now()
	result.MessageID = record.MessageId
	defer func() {
		p.log.WithReturn(result.ReturnID, 0).LogQueueMessage(record.MessageId, result.Processed, time.Since(start))
	}()

	var msg ReturnMessage
	if err := json.Unmarshal([]byte(record.Body), &msg); err != nil {
		result.ReturnID = record.MessageId
		return p.reject(ctx, result, correlationID(record, ""), fmt.Errorf("unmarshal return message: %w", err))
	}

	result.ReturnID = firstNonEmpty(msg.ReturnID, msg.Return.ID, record.MessageId)
	corrID := correlationID(record, msg.CorrelationID)
	log := p.log.WithReturn(result.ReturnID, msg.Return.TaxYear).WithCorrelationID(corrID)

	if err := helpers.ValidateReturn(&msg.Return); err != nil {
		return p.reject(ctx, result, corrID, err)
	}

	comp, err := p.calculator.Compute(ctx, &msg.Return)
	if err != nil {
		if permanent(err) {
			return p.reject(ctx, result, corrID, err)
		}
		log.Error("Failed to compute return", err)
		result.Error = err.Error()
		result.ShouldRetry = true
		return result
	}

	summary := business.Summarize(result.ReturnID, comp)
	log.LogReturnComputed(string(summary.FilingStatus), summary.TotalTax, summary.Refund, summary.AmountOwed, len(summary.States))

	return p.publish(ctx, result, ResultMessage{
		ReturnID:      result.ReturnID,
		CorrelationID: corrID,
		ComputedAt:    time.Now().Unix(),
		Summary:       &summary,
	}, msg.Return.TaxYear)
}

// reject publishes an error result for input that will never compute.
func (p *ReturnProcessor) reject(ctx context.Context, result RecordResult, corrID string, cause error) RecordResult {
	p.log.WithReturn(result.ReturnID, 0).WithCorrelationID(corrID).Warn("Rejecting return: " + cause.Error())

	out := ResultMessage{
		ReturnID:      result.ReturnID,
		CorrelationID: corrID,
		ComputedAt:    time.Now().Unix(),
		Error:         cause.Error(),
	}
	var verr *helpers.ValidationError
	if errors.As(cause, &verr) {
		out.Problems = verr.Problems
	}

	published := p.publish(ctx, result, out, 0)
	if published.Error == "" {
		published.Error = cause.Error()
	}
	return published
}

func (p *ReturnProcessor) publish(ctx context.Context, result RecordResult, out ResultMessage, taxYear int) RecordResult {
	body, err := json.Marshal(out)
	if err != nil {
		result.Error = fmt.Sprintf("marshal result: %v", err)
		return result
	}

	attrs := map[string]string{
		constants.AttrReturnID:      out.ReturnID,
		constants.AttrCorrelationID: out.CorrelationID,
	}
	if taxYear > 0 {
		attrs[constants.AttrTaxYear] = strconv.Itoa(taxYear)
	}

	id, err := p.publisher.Publish(ctx, body, attrs)
	if err != nil {
		p.log.WithReturn(out.ReturnID, taxYear).Error("Failed to publish result", err)
		result.Error = fmt.Sprintf("publish result: %v", err)
		result.ShouldRetry = true
		return result
	}

	result.ResultMessageID = id
	result.Processed = out.Error == ""
	return result
}

// permanent reports whether err comes from the input rather than the
// environment, so a redelivery would fail the same way.
func permanent(err error) bool {
	return errors.Is(err, helpers.ErrInvalidReturn) ||
		errors.Is(err, taxdata.ErrUnsupportedTaxYear) ||
		errors.Is(err, statemodule.ErrUnknownState)
}

func correlationID(record events.SQSMessage, fromBody string) string {
	if attr, ok := record.MessageAttributes[constants.AttrCorrelationID]; ok && attr.StringValue != nil && *attr.StringValue != "" {
		return *attr.StringValue
	}
	if fromBody != "" {
		return fromBody
	}
	return uuid.New().String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
