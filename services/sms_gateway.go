package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSSmsGateway publishes transactional SMS directly to an E.164 number.
type SNSSmsGateway struct {
	client   *awssns.Client
	senderID string
}

func NewSNSSmsGateway(client *awssns.Client, senderID string) *SNSSmsGateway {
	return &SNSSmsGateway{client: client, senderID: senderID}
}

func (g *SNSSmsGateway) Send(ctx context.Context, toE164, body string) error {
	attrs := map[string]snstypes.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {
			DataType:    aws.String("String"),
			StringValue: aws.String("Transactional"),
		},
	}
	if g.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = snstypes.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(g.senderID),
		}
	}

	_, err := g.client.Publish(ctx, &awssns.PublishInput{
		PhoneNumber:       aws.String(toE164),
		Message:           aws.String(body),
		MessageAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("sms send failed: %v", err)
	}
	return nil
}
