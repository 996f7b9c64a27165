package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultAPIURL  = "https://slack.com/api/chat.postMessage"
	defaultRetries = 3
)

// Slack posts report text to a channel. Two delivery paths are
// supported: a bot token with chat.postMessage, or an incoming webhook
// URL. The webhook wins when both are configured. Sends retry a few
// times with linear backoff since the daily job has no second chance.
type Slack struct {
	httpClient *http.Client
	apiURL     string
	token      string
	channel    string
	webhookURL string
	retries    int
}

// Option applies a configuration option to the Slack notifier.
type Option func(*Slack)

// WithHTTPClient overrides the HTTP client (tests use this).
func WithHTTPClient(c *http.Client) Option {
	return func(s *Slack) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithAPIURL overrides the chat.postMessage endpoint (tests use this).
func WithAPIURL(u string) Option {
	return func(s *Slack) {
		if u != "" {
			s.apiURL = u
		}
	}
}

// WithToken sets the bot token and target channel.
func WithToken(token, channel string) Option {
	return func(s *Slack) {
		s.token = token
		s.channel = channel
	}
}

// WithWebhook sets an incoming webhook URL.
func WithWebhook(u string) Option {
	return func(s *Slack) {
		s.webhookURL = u
	}
}

// WithRetries sets the number of send attempts.
func WithRetries(n int) Option {
	return func(s *Slack) {
		if n > 0 {
			s.retries = n
		}
	}
}

// NewSlack creates a Slack notifier.
func NewSlack(opts ...Option) *Slack {
	s := &Slack{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiURL:     defaultAPIURL,
		retries:    defaultRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether a delivery path exists.
func (s *Slack) Configured() bool {
	return s.webhookURL != "" || (s.token != "" && s.channel != "")
}

// Send delivers text, retrying transient failures.
func (s *Slack) Send(ctx context.Context, text string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	var lastErr error
	for attempt := 0; attempt < s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %w", ErrSendFailed, ctx.Err())
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
		if lastErr = s.post(ctx, text); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %w", ErrSendFailed, lastErr)
}

func (s *Slack) post(ctx context.Context, text string) error {
	endpoint := s.apiURL
	payload := map[string]any{"channel": s.channel, "text": text}
	if s.webhookURL != "" {
		endpoint = s.webhookURL
		payload = map[string]any{"text": text}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if s.webhookURL == "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("slack status=%d", resp.StatusCode)
	}
	// chat.postMessage reports failures inside a 200 response.
	if s.webhookURL == "" {
		if ok := gjson.GetBytes(respBody, "ok"); ok.Exists() && !ok.Bool() {
			return fmt.Errorf("slack error=%s", gjson.GetBytes(respBody, "error").String())
		}
	}
	return nil
}

// Stdout is a dry-run notifier that writes the report to a writer
// instead of posting it.
type Stdout struct {
	W io.Writer
}

// Send writes the report text followed by a newline.
func (s Stdout) Send(_ context.Context, text string) error {
	if _, err := io.Copy(s.W, strings.NewReader(text+"\n")); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	return nil
}
