package relay

import "time"

// Config tunes the conversation loop and the request sent each round.
type Config struct {
	Model           string
	PromptID        string
	PromptVersion   string
	ReasoningEffort string
	Background      bool
	MaxRounds       int
	ToolConcurrency int
	PollBaseDelay   time.Duration
	PollMaxDelay    time.Duration
	WebSearch       WebSearchConfig
	CodeInterpreter bool
}

// WebSearchConfig controls the provider-side web search tool.
type WebSearchConfig struct {
	Enabled     bool
	ContextSize string
	Country     string
	Region      string
}

const (
	defaultMaxRounds       = 10
	defaultToolConcurrency = 4
	defaultPollBaseDelay   = 500 * time.Millisecond
	defaultPollMaxDelay    = 8 * time.Second
)

func (c Config) withDefaults() Config {
	if c.MaxRounds <= 0 {
		c.MaxRounds = defaultMaxRounds
	}
	if c.ToolConcurrency <= 0 {
		c.ToolConcurrency = defaultToolConcurrency
	}
	if c.PollBaseDelay <= 0 {
		c.PollBaseDelay = defaultPollBaseDelay
	}
	if c.PollMaxDelay <= 0 {
		c.PollMaxDelay = defaultPollMaxDelay
	}
	if c.PollMaxDelay < c.PollBaseDelay {
		c.PollMaxDelay = c.PollBaseDelay
	}
	return c
}
