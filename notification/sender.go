// Package notification delivers out-of-band messages (account and
// digest mail, ops pages). Only non-core flows call into it; a delivery
// failure never affects domain state.
package notification

import (
	"context"

	"github.com/Luismorlan/chirper/model"
	Logger "github.com/Luismorlan/chirper/utils/log"
	"github.com/slack-go/slack"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	// Send delivers the message, failing with a DeliveryError kind.
	Send(ctx context.Context, msg Message) error
}

// SlackSender posts messages to an incoming webhook.
type SlackSender struct {
	webhookURL string
}

func NewSlackSender(webhookURL string) *SlackSender {
	return &SlackSender{webhookURL: webhookURL}
}

func (s *SlackSender) Send(ctx context.Context, msg Message) error {
	err := slack.PostWebhookContext(ctx, s.webhookURL, &slack.WebhookMessage{
		Text: msg.Subject + "\n" + msg.Body,
	})
	if err != nil {
		return &model.AppError{Kind: model.ErrDelivery, Message: "fail to deliver notification", Err: err}
	}
	return nil
}

// LogSender is the fallback used in development: it only logs.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	Logger.Log.Infof("notification to %s: %s", msg.To, msg.Subject)
	return nil
}
