package sentimentalertscan

import (
	"context"

	awsclient "shamba-workers/internal/common/aws"
)

// Notifier delivers one alert over a single channel.
type Notifier interface {
	Channel() string
	Send(ctx context.Context, subject, body string) error
}

// EmailNotifier delivers alerts to the advisory mailing list over SES.
type EmailNotifier struct {
	client     *awsclient.SESClient
	fromEmail  string
	recipients []string
}

func NewEmailNotifier(client *awsclient.SESClient, fromEmail string, recipients []string) *EmailNotifier {
	return &EmailNotifier{
		client:     client,
		fromEmail:  fromEmail,
		recipients: recipients,
	}
}

func (n *EmailNotifier) Channel() string {
	return "email"
}

func (n *EmailNotifier) Send(ctx context.Context, subject, body string) error {
	return n.client.SendAlertEmail(ctx, n.fromEmail, n.recipients, subject, body)
}

// SMSNotifier delivers alerts to an SNS topic subscribed by county extension
// officers. The subject is dropped; SMS carries the body only.
type SMSNotifier struct {
	client   *awsclient.SNSClient
	topicARN string
	senderID string
}

func NewSMSNotifier(client *awsclient.SNSClient, topicARN, senderID string) *SMSNotifier {
	return &SMSNotifier{
		client:   client,
		topicARN: topicARN,
		senderID: senderID,
	}
}

func (n *SMSNotifier) Channel() string {
	return "sms"
}

func (n *SMSNotifier) Send(ctx context.Context, subject, body string) error {
	return n.client.PublishAlert(ctx, n.topicARN, n.senderID, body)
}
