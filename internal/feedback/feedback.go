// Package feedback delivers free-text user notes to an external channel.
// Delivery is best effort and fully decoupled from solving.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/inzamam-khan123/tbres/internal/contract"
)

// submitTimeout bounds a single webhook delivery attempt.
const submitTimeout = 10 * time.Second

// ErrEmptyFeedback is returned when the submitted text is blank.
var ErrEmptyFeedback = errors.New("feedback text cannot be empty")

// FileSink appends feedback lines to a local log file.
type FileSink struct {
	path string
}

var _ contract.FeedbackSink = &FileSink{} // Compile-time check

// NewFileSink creates a sink that appends to the given file path.
// An empty path falls back to the default feedback log location.
func NewFileSink(path string) *FileSink {
	if path == "" {
		path = contract.GetFeedbackFilePath()
	}
	return &FileSink{path: path}
}

// Submit appends one timestamped feedback line to the log file.
func (s *FileSink) Submit(_ context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyFeedback
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open feedback log %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	line := fmt.Sprintf("%s - %s\n", time.Now().Format(contract.DateTimeFormat), text)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to write feedback: %w", err)
	}
	return nil
}

// WebhookSink posts feedback as JSON to an external HTTP endpoint.
type WebhookSink struct {
	url    string
	client *http.Client
}

var _ contract.FeedbackSink = &WebhookSink{} // Compile-time check

// NewWebhookSink creates a sink that delivers feedback to the given URL.
func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{
		url:    url,
		client: &http.Client{Timeout: submitTimeout},
	}
}

// Submit posts one feedback entry. Non-2xx responses are reported as errors.
func (s *WebhookSink) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyFeedback
	}

	payload, err := json.Marshal(map[string]string{
		"timestamp": time.Now().Format(contract.DateTimeFormat),
		"text":      text,
	})
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build feedback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send feedback: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("feedback endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// NewSink picks the configured sink: webhook when a URL is set, otherwise a
// local log file.
func NewSink(cfg *contract.Config) contract.FeedbackSink {
	if cfg.FeedbackURL != "" {
		return NewWebhookSink(cfg.FeedbackURL)
	}
	return NewFileSink(cfg.FeedbackFile)
}
