package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SMSNotifier posts messages to an SMS gateway over HTTP. It implements
// the Notifier port; callers treat delivery as best effort.
type SMSNotifier struct {
	Endpoint string
	From     string
	Client   *http.Client
}

func NewSMSNotifier(endpoint, from string) *SMSNotifier {
	return &SMSNotifier{
		Endpoint: endpoint,
		From:     from,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type smsRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

// Send one SMS. A non-2xx gateway response is an error; the caller
// decides whether that matters (the notification worker only logs it).
func (n *SMSNotifier) NotifyAssignment(ctx context.Context, phone string, body string) error {
	if n.Endpoint == "" {
		return errors.New("sms notifier: endpoint is not configured")
	}
	if phone == "" {
		return errors.New("sms notifier: driver has no phone number")
	}

	payload, err := json.Marshal(smsRequest{From: n.From, To: phone, Body: body})
	if err != nil {
		return fmt.Errorf("sms notifier: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sms notifier: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sms notifier: send to %q: %w", phone, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("sms notifier: gateway returned %d: %s", resp.StatusCode, snippet)
	}

	return nil
}
