package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateResponseSendsPayload(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/responses", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(`{"id":"resp_1","status":"queued","output":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL+"/v1/", time.Second)
	require.NoError(t, err)

	resp, err := client.CreateResponse(context.Background(), ResponseRequest{
		Model:              "o3",
		Prompt:             &Prompt{ID: "pmpt_1", Version: "12"},
		Reasoning:          &Reasoning{Effort: "medium"},
		PreviousResponseID: "resp_0",
		Input: []InputItem{
			FunctionCallOutput("call_1", ""),
			UserMessage("hi"),
		},
		Tools:      []Tool{{Type: "code_interpreter", Container: &Container{Type: "auto"}}},
		Background: true,
		Store:      true,
	})
	require.NoError(t, err)
	require.Equal(t, "resp_1", resp.ID)
	require.True(t, resp.Pending())

	require.Equal(t, "resp_0", captured["previous_response_id"])
	require.Equal(t, true, captured["background"])
	input := captured["input"].([]any)
	require.Equal(t, map[string]any{"type": "function_call_output", "call_id": "call_1", "output": ""}, input[0])
	require.Equal(t, map[string]any{"role": "user", "content": "hi"}, input[1])
	tools := captured["tools"].([]any)
	require.Equal(t, map[string]any{"type": "code_interpreter", "container": map[string]any{"type": "auto"}}, tools[0])
}

func TestGetResponseDecodesOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/responses/resp_9", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": "resp_9",
			"status": "completed",
			"output": [
				{"type": "reasoning", "id": "rs_1"},
				{"type": "function_call", "call_id": "call_a", "name": "get_weather", "arguments": "{\"lat\":[1]}"},
				{"type": "message", "role": "assistant", "content": [
					{"type": "output_text", "text": "Sunny "},
					{"type": "refusal", "text": "ignored"},
					{"type": "output_text", "text": "today."}
				]}
			],
			"usage": {"input_tokens": 10, "output_tokens": 5, "total_tokens": 15, "output_tokens_details": {"reasoning_tokens": 2}}
		}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL, time.Second)
	require.NoError(t, err)

	resp, err := client.GetResponse(context.Background(), "resp_9")
	require.NoError(t, err)
	require.False(t, resp.Pending())
	require.Equal(t, "Sunny today.", resp.OutputText())
	calls := resp.FunctionCalls()
	require.Len(t, calls, 1)
	require.Equal(t, "call_a", calls[0].CallID)
	require.Equal(t, "get_weather", calls[0].Name)
	require.Equal(t, 2, resp.Usage.OutputTokensDetails.ReasoningTokens)
}

func TestClientReturnsErrorOnFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL, time.Second)
	require.NoError(t, err)

	_, err = client.CreateResponse(context.Background(), ResponseRequest{Input: []InputItem{UserMessage("x")}})
	require.ErrorContains(t, err, "status=429")
	require.ErrorContains(t, err, "rate limited")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(" ", "", 0)
	require.Error(t, err)
}

func TestFailureReason(t *testing.T) {
	require.Equal(t, "server overloaded", Response{Status: StatusFailed, Error: &ResponseError{Message: "server overloaded"}}.FailureReason())
	require.Equal(t, "max_output_tokens", Response{Status: StatusIncomplete, IncompleteDetails: &IncompleteDetails{Reason: "max_output_tokens"}}.FailureReason())
	require.Equal(t, "response cancelled", Response{Status: StatusCancelled}.FailureReason())
}
