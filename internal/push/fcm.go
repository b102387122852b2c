// Package push delivers device notifications over Firebase Cloud Messaging.
// The client degrades to a no-op when no credentials are configured, so
// environments without Firebase still run every other feature.
package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"rentwheels-backend/internal/logger"
)

// Sender pushes a notification to a set of device tokens and returns the
// tokens FCM reports as invalid so the caller can prune them.
type Sender interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]string) (invalid []string, err error)
	Enabled() bool
}

type fcmSender struct {
	client *messaging.Client
}

// disabledSender is used when Firebase credentials are absent.
type disabledSender struct{}

func (disabledSender) Send(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]string, error) {
	return nil, nil
}

func (disabledSender) Enabled() bool { return false }

// NewSender builds an FCM sender from a service-account credentials file.
// An empty path yields a disabled sender rather than an error.
func NewSender(ctx context.Context, credentialsFile, projectID string) (Sender, error) {
	if credentialsFile == "" {
		logger.Warn("firebase credentials not configured, push notifications disabled")
		return disabledSender{}, nil
	}

	conf := &firebase.Config{ProjectID: projectID}
	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize fcm client: %w", err)
	}
	return &fcmSender{client: client}, nil
}

func (s *fcmSender) Enabled() bool { return true }

func (s *fcmSender) Send(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	payload := map[string]string{"title": title, "body": body}
	for k, v := range data {
		payload[k] = v
	}

	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: payload,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: intPtr(1),
				},
			},
		},
	}

	resp, err := s.client.SendEachForMulticast(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("send multicast: %w", err)
	}

	var invalid []string
	for i, r := range resp.Responses {
		if r.Success {
			continue
		}
		if messaging.IsRegistrationTokenNotRegistered(r.Error) || messaging.IsInvalidArgument(r.Error) {
			invalid = append(invalid, tokens[i])
		}
	}
	logger.Debug("fcm multicast sent",
		"success", resp.SuccessCount, "failure", resp.FailureCount, "invalid_tokens", len(invalid))
	return invalid, nil
}

func intPtr(n int) *int { return &n }
