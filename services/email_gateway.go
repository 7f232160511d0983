package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESEmailGateway sends plain-text alert mail through SES.
type SESEmailGateway struct {
	client *ses.Client
	source string // verified sender address
}

func NewSESEmailGateway(client *ses.Client, source string) *SESEmailGateway {
	return &SESEmailGateway{client: client, source: source}
}

func (g *SESEmailGateway) Send(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(g.source),
	}

	if _, err := g.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}
