package openai

import (
	"encoding/json"
	"strings"
)

// Response statuses reported by the Responses API.
const (
	StatusQueued     = "queued"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
	StatusIncomplete = "incomplete"
)

// Output item types.
const (
	ItemMessage      = "message"
	ItemFunctionCall = "function_call"
	ItemFunctionOut  = "function_call_output"
	PartOutputText   = "output_text"
)

// ResponseRequest is the payload for POST /responses.
type ResponseRequest struct {
	Model              string      `json:"model,omitempty"`
	Prompt             *Prompt     `json:"prompt,omitempty"`
	Reasoning          *Reasoning  `json:"reasoning,omitempty"`
	PreviousResponseID string      `json:"previous_response_id,omitempty"`
	Input              []InputItem `json:"input"`
	Tools              []Tool      `json:"tools,omitempty"`
	Background         bool        `json:"background,omitempty"`
	Store              bool        `json:"store"`
}

// Prompt references a prompt template stored with the provider.
type Prompt struct {
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
}

// Reasoning tunes reasoning models.
type Reasoning struct {
	Effort string `json:"effort,omitempty"`
}

// InputItem is either a user message or the output of a function call.
type InputItem struct {
	Type    string
	Role    string
	Content string
	CallID  string
	Output  string
}

// UserMessage builds a user turn.
func UserMessage(text string) InputItem {
	return InputItem{Type: ItemMessage, Role: "user", Content: text}
}

// FunctionCallOutput answers the function call identified by callID.
func FunctionCallOutput(callID, output string) InputItem {
	return InputItem{Type: ItemFunctionOut, CallID: callID, Output: output}
}

// MarshalJSON emits only the fields relevant to the item type, so an empty
// tool output is still sent.
func (i InputItem) MarshalJSON() ([]byte, error) {
	if i.Type == ItemFunctionOut {
		return json.Marshal(struct {
			Type   string `json:"type"`
			CallID string `json:"call_id"`
			Output string `json:"output"`
		}{i.Type, i.CallID, i.Output})
	}
	return json.Marshal(struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{i.Role, i.Content})
}

// Tool declares a tool the model may use. Function tools set Name and
// Parameters; provider tools set only the fields their type needs.
type Tool struct {
	Type              string         `json:"type"`
	Name              string         `json:"name,omitempty"`
	Description       string         `json:"description,omitempty"`
	Parameters        map[string]any `json:"parameters,omitempty"`
	Strict            bool           `json:"strict,omitempty"`
	SearchContextSize string         `json:"search_context_size,omitempty"`
	UserLocation      *UserLocation  `json:"user_location,omitempty"`
	Container         *Container     `json:"container,omitempty"`
}

// UserLocation biases web search results.
type UserLocation struct {
	Type    string `json:"type"`
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
}

// Container configures the code interpreter sandbox.
type Container struct {
	Type string `json:"type"`
}

// Response is a model response object.
type Response struct {
	ID                string             `json:"id"`
	Status            string             `json:"status"`
	Error             *ResponseError     `json:"error,omitempty"`
	IncompleteDetails *IncompleteDetails `json:"incomplete_details,omitempty"`
	Output            []OutputItem       `json:"output"`
	Usage             *Usage             `json:"usage,omitempty"`
}

// ResponseError explains a failed response.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IncompleteDetails explains an incomplete response.
type IncompleteDetails struct {
	Reason string `json:"reason"`
}

// OutputItem is one element of Response.Output.
type OutputItem struct {
	Type      string        `json:"type"`
	ID        string        `json:"id,omitempty"`
	Status    string        `json:"status,omitempty"`
	Role      string        `json:"role,omitempty"`
	Content   []ContentPart `json:"content,omitempty"`
	CallID    string        `json:"call_id,omitempty"`
	Name      string        `json:"name,omitempty"`
	Arguments string        `json:"arguments,omitempty"`
}

// ContentPart is a piece of message content.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Usage reports token consumption.
type Usage struct {
	InputTokens         int `json:"input_tokens"`
	OutputTokens        int `json:"output_tokens"`
	TotalTokens         int `json:"total_tokens"`
	OutputTokensDetails struct {
		ReasoningTokens int `json:"reasoning_tokens"`
	} `json:"output_tokens_details"`
}

// Pending reports whether the response is still being generated.
func (r Response) Pending() bool {
	return r.Status == StatusQueued || r.Status == StatusInProgress
}

// FunctionCalls returns the function call items in output order.
func (r Response) FunctionCalls() []OutputItem {
	var calls []OutputItem
	for _, item := range r.Output {
		if item.Type == ItemFunctionCall {
			calls = append(calls, item)
		}
	}
	return calls
}

// OutputText concatenates every output_text part of every message item.
func (r Response) OutputText() string {
	var sb strings.Builder
	for _, item := range r.Output {
		if item.Type != ItemMessage {
			continue
		}
		for _, part := range item.Content {
			if part.Type == PartOutputText {
				sb.WriteString(part.Text)
			}
		}
	}
	return sb.String()
}

// FailureReason describes why a terminal response did not complete.
func (r Response) FailureReason() string {
	switch {
	case r.Error != nil && r.Error.Message != "":
		return r.Error.Message
	case r.IncompleteDetails != nil && r.IncompleteDetails.Reason != "":
		return r.IncompleteDetails.Reason
	default:
		return "response " + r.Status
	}
}
