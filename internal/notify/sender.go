package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
)

// Sender delivers a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

type LogSender struct{}

func (LogSender) Send(ctx context.Context, phone, message string) error {
	zlog.Info().Str("phone", phone).Str("message", message).Msg("sms (log only)")
	return nil
}

// SMSClient posts messages to an HTTP SMS gateway with a bearer key.
type SMSClient struct {
	URL    string
	APIKey string
	Client *http.Client
}

func NewSMSClient(url, apiKey string) *SMSClient {
	return &SMSClient{
		URL:    url,
		APIKey: apiKey,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type smsRequest struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

func (s *SMSClient) Send(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(smsRequest{Recipient: phone, Message: message})
	if err != nil {
		return errors.Wrap(err, "marshal sms")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "build sms request")
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.APIKey))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send sms")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("sms gateway returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// NewSender picks the SMS gateway when configured.
func NewSender(url, apiKey string) Sender {
	if url == "" {
		return LogSender{}
	}
	return NewSMSClient(url, apiKey)
}
