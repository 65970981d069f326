package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/cyphera/cyphera-tax/libs/go/logger"
)

// SQSSendAPI is the part of the SQS client the publisher uses.
type SQSSendAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// RetryConfig controls how publish failures are retried.
type RetryConfig struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig retries three times over at most ten seconds.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		MaxElapsedTime:  10 * time.Second,
	}
}

// SQSPublisher sends messages to one queue.
type SQSPublisher struct {
	client   SQSSendAPI
	queueURL string
	retry    RetryConfig
	logger   *zap.Logger
}

// NewSQSPublisher loads the default AWS configuration chain (environment
// variables, shared config, IAM role) and returns a publisher for queueURL.
func NewSQSPublisher(ctx context.Context, queueURL string) (*SQSPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewSQSPublisherWithClient(sqs.NewFromConfig(cfg), queueURL, DefaultRetryConfig()), nil
}

// NewSQSPublisherWithClient wraps an existing client.
func NewSQSPublisherWithClient(client SQSSendAPI, queueURL string, retry RetryConfig) *SQSPublisher {
	return &SQSPublisher{
		client:   client,
		queueURL: queueURL,
		retry:    retry,
		logger:   logger.Get(),
	}
}

// Publish sends body with string attributes and returns the SQS message id.
// Transport failures are retried with exponential backoff.
func (p *SQSPublisher) Publish(ctx context.Context, body []byte, attributes map[string]string) (string, error) {
	input := &sqs.SendMessageInput{
		QueueUrl:          aws.String(p.queueURL),
		MessageBody:       aws.String(string(body)),
		MessageAttributes: messageAttributes(attributes),
	}

	var messageID string
	attempt := 0
	operation := func() error {
		attempt++
		out, err := p.client.SendMessage(ctx, input)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			p.logger.Warn("SQS send failed",
				zap.String("queue_url", p.queueURL),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return err
		}
		messageID = aws.ToString(out.MessageId)
		return nil
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = p.retry.InitialInterval
	expBackoff.MaxInterval = p.retry.MaxInterval
	expBackoff.MaxElapsedTime = p.retry.MaxElapsedTime

	policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, p.retry.MaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", fmt.Errorf("failed to send message to SQS: %w", err)
	}

	p.logger.Debug("Published message",
		zap.String("queue_url", p.queueURL),
		zap.String("message_id", messageID),
		zap.Int("attempts", attempt))
	return messageID, nil
}

func messageAttributes(attrs map[string]string) map[string]types.MessageAttributeValue {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]types.MessageAttributeValue, len(attrs))
	for k, v := range attrs {
		// SQS rejects empty attribute values
		if v == "" {
			continue
		}
		out[k] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(v),
		}
	}
	return out
}
