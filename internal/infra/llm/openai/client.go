package openai

import (
	"bytes"
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

const defaultBaseURL = "https://api.openai.com/v1"

// Client performs HTTP requests against the Responses API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Responses API client.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key cannot be empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// CreateResponse starts a model response.
func (c *Client) CreateResponse(ctx context.Context, req ResponseRequest) (Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("encode response request: %w", err)
	}
	return c.do(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(payload))
}

// GetResponse fetches a response by id, used to poll background responses.
func (c *Client) GetResponse(ctx context.Context, id string) (Response, error) {
	if strings.TrimSpace(id) == "" {
		return Response{}, errors.New("response id cannot be empty")
	}
	return c.do(ctx, http.MethodGet, c.baseURL+"/responses/"+url.PathEscape(id), nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) (Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return Response{}, fmt.Errorf("build response request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("request response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return Response{}, fmt.Errorf("openai request failed: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}
