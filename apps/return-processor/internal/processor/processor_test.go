package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/cyphera/cyphera-tax/libs/go/constants"
	"github.com/cyphera/cyphera-tax/libs/go/logger"
	"github.com/cyphera/cyphera-tax/libs/go/mocks"
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.InitLogger("test")
}

func returnBody(t *testing.T, mutate func(*ReturnMessage)) string {
	t.Helper()
	msg := ReturnMessage{
		ReturnID: "ret-1",
		Return: business.TaxReturn{
			TaxYear:      2025,
			FilingStatus: business.FilingSingle,
			Taxpayer:     business.Person{FirstName: "Pat", LastName: "Doe"},
			W2s:          []business.W2{{ID: "w2-1", EmployerName: "Acme", Wages: 6000000, FederalWithheld: 600000}},
		},
	}
	if mutate != nil {
		mutate(&msg)
	}
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	return string(raw)
}

func record(id, body string) events.SQSMessage {
	corr := "corr-1"
	return events.SQSMessage{
		MessageId: id,
		Body:      body,
		MessageAttributes: map[string]events.SQSMessageAttribute{
			constants.AttrCorrelationID: {StringValue: &corr, DataType: "String"},
		},
	}
}

func computation() *business.ReturnComputation {
	return &business.ReturnComputation{
		TaxYear: 2025,
		Federal: &business.Form1040Result{
			TaxYear:      2025,
			FilingStatus: business.FilingSingle,
			Line11:       traced.FromComputation(6000000, "f1040.line11", nil, "Adjusted gross income"),
			Line24:       traced.FromComputation(500000, "f1040.line24", nil, "Total tax"),
			Line33:       traced.FromComputation(600000, "f1040.line33", nil, "Total payments"),
			Line34:       traced.FromComputation(100000, "f1040.line34", nil, "Refund"),
		},
	}
}

func TestReturnProcessor_ProcessRecord(t *testing.T) {
	tests := []struct {
		name          string
		body          func(t *testing.T) string
		setupMocks    func(calc *mocks.MockReturnCalculator, pub *mocks.MockMessagePublisher, published *[]byte, attrs *map[string]string)
		wantProcessed bool
		wantRetry     bool
		check         func(t *testing.T, out ResultMessage, attrs map[string]string)
	}{
		{
			name: "computes and publishes summary",
			body: func(t *testing.T) string { return returnBody(t, nil) },
			setupMocks: func(calc *mocks.MockReturnCalculator, pub *mocks.MockMessagePublisher, published *[]byte, attrs *map[string]string) {
				calc.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(computation(), nil)
				pub.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, body []byte, a map[string]string) (string, error) {
						*published = body
						*attrs = a
						return "out-1", nil
					})
			},
			wantProcessed: true,
			check: func(t *testing.T, out ResultMessage, attrs map[string]string) {
				require.NotNil(t, out.Summary)
				assert.Equal(t, int64(100000), out.Summary.Refund)
				assert.Empty(t, out.Error)
				assert.Equal(t, "ret-1", attrs[constants.AttrReturnID])
				assert.Equal(t, "2025", attrs[constants.AttrTaxYear])
				assert.Equal(t, "corr-1", attrs[constants.AttrCorrelationID])
			},
		},
		{
			name: "malformed body is rejected without retry",
			body: func(t *testing.T) string { return "{not json" },
			setupMocks: func(calc *mocks.MockReturnCalculator, pub *mocks.MockMessagePublisher, published *[]byte, attrs *map[string]string) {
				pub.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, body []byte, a map[string]string) (string, error) {
						*published = body
						*attrs = a
						return "out-2", nil
					})
			},
			check: func(t *testing.T, out ResultMessage, attrs map[string]string) {
				assert.Nil(t, out.Summary)
				assert.Contains(t, out.Error, "unmarshal return message")
				assert.Equal(t, "msg-1", out.ReturnID)
			},
		},
		{
			name: "invalid return lists problems",
			body: func(t *testing.T) string {
				return returnBody(t, func(m *ReturnMessage) { m.Return.FilingStatus = "bogus" })
			},
			setupMocks: func(calc *mocks.MockReturnCalculator, pub *mocks.MockMessagePublisher, published *[]byte, attrs *map[string]string) {
				pub.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, body []byte, a map[string]string) (string, error) {
						*published = body
						*attrs = a
						return "out-3", nil
					})
			},
			check: func(t *testing.T, out ResultMessage, attrs map[string]string) {
				require.Len(t, out.Problems, 1)
				assert.Contains(t, out.Problems[0], "filing_status")
			},
		},
		{
			name: "unknown state is not retried",
			body: func(t *testing.T) string { return returnBody(t, nil) },
			setupMocks: func(calc *mocks.MockReturnCalculator, pub *mocks.MockMessagePublisher, published *[]byte, attrs *map[string]string) {
				calc.EXPECT().Compute(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("compute states: %w", statemodule.ErrUnknownState))
				pub.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, body []byte, a map[string]string) (string, error) {
						*published = body
						*attrs = a
						return "out-4", nil
					})
			},
			check: func(t *testing.T, out ResultMessage, attrs map[string]string) {
				assert.Contains(t, out.Error, "unknown state")
			},
		},
		{
			name: "engine failure is retried",
			body: func(t *testing.T) string { return returnBody(t, nil) },
			setupMocks: func(calc *mocks.MockReturnCalculator, pub *mocks.MockMessagePublisher, published *[]byte, attrs *map[string]string) {
				calc.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)
			},
			wantRetry: true,
		},
		{
			name: "publish failure is retried",
			body: func(t *testing.T) string { return returnBody(t, nil) },
			setupMocks: func(calc *mocks.MockReturnCalculator, pub *mocks.MockMessagePublisher, published *[]byte, attrs *map[string]string) {
				calc.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(computation(), nil)
				pub.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("queue unavailable"))
			},
			wantRetry: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := mocks.NewMockReturnCalculatorForTest(t)
			pub := mocks.NewMockMessagePublisherForTest(t)
			var published []byte
			var attrs map[string]string
			tt.setupMocks(calc, pub, &published, &attrs)

			p := NewReturnProcessor(calc, pub)
			result := p.ProcessRecord(context.Background(), record("msg-1", tt.body(t)))

			assert.Equal(t, "msg-1", result.MessageID)
			assert.Equal(t, tt.wantProcessed, result.Processed)
			assert.Equal(t, tt.wantRetry, result.ShouldRetry)
			if tt.wantRetry {
				assert.NotEmpty(t, result.Error)
			}

			if tt.check != nil {
				var out ResultMessage
				require.NoError(t, json.Unmarshal(published, &out))
				assert.Equal(t, "corr-1", out.CorrelationID)
				tt.check(t, out, attrs)
			}
		})
	}
}

func TestReturnProcessor_HandleSQSEvent(t *testing.T) {
	calc := mocks.NewMockReturnCalculatorForTest(t)
	pub := mocks.NewMockMessagePublisherForTest(t)

	calc.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(computation(), nil)
	calc.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
	pub.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return("out-1", nil).Times(2)

	p := NewReturnProcessor(calc, pub)
	resp, err := p.HandleSQSEvent(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
		record("ok", returnBody(t, nil)),
		record("bad", "nope"),
		record("retry", returnBody(t, nil)),
	}})
	require.NoError(t, err)

	require.Len(t, resp.BatchItemFailures, 1)
	assert.Equal(t, "retry", resp.BatchItemFailures[0].ItemIdentifier)
}

func TestCorrelationID(t *testing.T) {
	fromAttr := "attr-id"
	withAttr := events.SQSMessage{MessageAttributes: map[string]events.SQSMessageAttribute{
		constants.AttrCorrelationID: {StringValue: &fromAttr},
	}}

	assert.Equal(t, "attr-id", correlationID(withAttr, "body-id"))
	assert.Equal(t, "body-id", correlationID(events.SQSMessage{}, "body-id"))
	assert.NotEmpty(t, correlationID(events.SQSMessage{}, ""))
}
