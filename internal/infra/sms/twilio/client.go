package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.twilio.com"

// Config holds the account credentials used for outbound messages.
type Config struct {
	AccountSID string
	AuthToken  string
	BaseURL    string
	Timeout    time.Duration
}

// SendResult summarises the API answer to a send request.
type SendResult struct {
	HTTPStatus   int    `json:"http_status"`
	SID          string `json:"sid,omitempty"`
	Status       string `json:"status,omitempty"`
	ErrorCode    int    `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Client posts messages to the Messages resource.
type Client struct {
	cfg        Config
	endpoint   string
	httpClient *http.Client
}

// NewClient constructs an SMS client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AccountSID) == "" || strings.TrimSpace(cfg.AuthToken) == "" {
		return nil, errors.New("twilio account sid and auth token are required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(cfg.BaseURL, "/"), url.PathEscape(cfg.AccountSID))
	return &Client{
		cfg:        cfg,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Send delivers body from one number to another. Transport failures, 429 and
// 5xx answers are returned as errors so the caller may retry; any other
// status is reported in the result.
func (c *Client) Send(ctx context.Context, to, from, body string) (SendResult, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return SendResult{}, fmt.Errorf("build message request: %w", err)
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SendResult{}, fmt.Errorf("request message: %w", err)
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return SendResult{}, fmt.Errorf("twilio send failed: status=%d body=%s", resp.StatusCode, truncate(payload, 4<<10))
	}

	result := SendResult{HTTPStatus: resp.StatusCode}
	var decoded struct {
		SID          string `json:"sid"`
		Status       any    `json:"status"`
		ErrorCode    *int   `json:"error_code"`
		Code         *int   `json:"code"`
		ErrorMessage string `json:"error_message"`
		Message      string `json:"message"`
	}
	if err := json.Unmarshal(payload, &decoded); err == nil {
		result.SID = decoded.SID
		if s, ok := decoded.Status.(string); ok {
			result.Status = s
		}
		switch {
		case decoded.ErrorCode != nil:
			result.ErrorCode = *decoded.ErrorCode
		case decoded.Code != nil:
			result.ErrorCode = *decoded.Code
		}
		result.ErrorMessage = firstNonEmpty(decoded.ErrorMessage, decoded.Message)
	}
	return result, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
