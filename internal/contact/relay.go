package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 8 * time.Second

// RelayError reports a non-2xx answer from the relay endpoint.
type RelayError struct {
	StatusCode int
	Messages   []string
}

func (e *RelayError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("contact: relay status %d", e.StatusCode)
	}
	return fmt.Sprintf("contact: relay status %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// Client posts submissions to a Formspree-compatible endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient constructs a relay client for endpoint.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewRelay picks the HTTP client when an endpoint is configured and the
// logging relay otherwise.
func NewRelay(endpoint string, logger *zap.Logger) Relay {
	if strings.TrimSpace(endpoint) == "" {
		return LogRelay{Logger: logger}
	}
	return NewClient(endpoint)
}

// Send posts the submission as a form.
func (c *Client) Send(ctx context.Context, sub Submission) error {
	form := url.Values{}
	form.Set(FieldName, sub.Fields.Name)
	form.Set(FieldEmail, sub.Fields.Email)
	form.Set(FieldCompany, sub.Fields.Company)
	form.Set(FieldMessage, sub.Fields.Message)
	form.Set("_subject", sub.Subject)
	form.Set(FieldHoneypot, sub.Fields.Honeypot)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("contact: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("contact: relay: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RelayError{StatusCode: resp.StatusCode, Messages: decodeErrors(resp.Body)}
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return nil
}

type errorPayload struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// decodeErrors extracts the relay's messages. A body that is not JSON yields none.
func decodeErrors(r io.Reader) []string {
	var p errorPayload
	if err := json.NewDecoder(io.LimitReader(r, 16<<10)).Decode(&p); err != nil {
		return nil
	}
	var out []string
	for _, e := range p.Errors {
		if m := strings.TrimSpace(e.Message); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// LogRelay writes submissions to the log. It serves local development when no
// endpoint is configured.
type LogRelay struct {
	Logger *zap.Logger
}

func (r LogRelay) Send(_ context.Context, sub Submission) error {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("contact submission",
		zap.String("reference", sub.Reference),
		zap.String("subject", sub.Subject),
		zap.String("name", sub.Fields.Name),
		zap.String("email", sub.Fields.Email),
		zap.String("company", sub.Fields.Company),
		zap.Int("messageLength", len(sub.Fields.Message)),
	)
	return nil
}
