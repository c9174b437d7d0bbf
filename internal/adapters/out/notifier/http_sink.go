// Package notifier delivers user-facing notifications to the external
// notification service over HTTP.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

const sendPath = "/notifications/send"

// HTTPNotificationSink posts notifications to the notification service.
// Callers treat delivery as best-effort; a failed send never rolls back
// the state change that produced it.
type HTTPNotificationSink struct {
	baseURL string
	client  *http.Client
}

func NewHTTPNotificationSink(baseURL string, callTimeout time.Duration) *HTTPNotificationSink {
	return &HTTPNotificationSink{
		baseURL: baseURL,
		client:  &http.Client{Timeout: callTimeout},
	}
}

type notificationPayload struct {
	UserID   string            `json:"userId"`
	UserType string            `json:"userType"`
	Title    string            `json:"title"`
	Message  string            `json:"message"`
	Data     map[string]string `json:"data,omitempty"`
}

func (s *HTTPNotificationSink) Notify(ctx context.Context, notification ports.Notification) error {
	payload := notificationPayload{
		UserID:   notification.UserID,
		UserType: string(notification.UserType),
		Title:    notification.Title,
		Message:  notification.Message,
		Data:     notification.Data,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("notification", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return errs.NewUpstreamUnavailableErrorWithCause("notification service", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errs.NewUpstreamUnavailableErrorWithCause("notification service", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errs.NewUpstreamUnavailableErrorWithCause("notification service",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return nil
}
