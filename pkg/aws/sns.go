package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// ErrNoTopic is returned when a publish is attempted without a topic ARN.
var ErrNoTopic = errors.New("sns: empty topic arn")

// EventPublisher publishes domain events to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topicArn, eventType string, payload any) error
}

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher sends JSON encoded events with an event_type message attribute
// so subscribers can filter without decoding the body.
type SNSPublisher struct {
	client snsAPI
}

func NewSNSPublisher(cfg sdkaws.Config) *SNSPublisher {
	return &SNSPublisher{client: sns.NewFromConfig(cfg)}
}

func (p *SNSPublisher) Publish(ctx context.Context, topicArn, eventType string, payload any) error {
	if topicArn == "" {
		return ErrNoTopic
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: sdkaws.String(topicArn),
		Message:  sdkaws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    sdkaws.String("String"),
				StringValue: sdkaws.String(eventType),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish failed for topic %s: %w", topicArn, err)
	}
	return nil
}
