package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yanqian/sms-relay/internal/domain/workflow"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	LLM      LLMConfig      `yaml:"llm"`
	Weather  WeatherConfig  `yaml:"weather"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Workflow WorkflowConfig `yaml:"workflow"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address           string          `yaml:"address"`
	ReadTimeout       time.Duration   `yaml:"readTimeout"`
	WriteTimeout      time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout   time.Duration   `yaml:"shutdownTimeout"`
	SMSPath           string          `yaml:"smsPath"`
	ValidateSignature bool            `yaml:"validateSignature"`
	PublicURL         string          `yaml:"publicUrl"`
	RateLimit         RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the per-sender limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LLMConfig contains OpenAI Responses API settings.
type LLMConfig struct {
	APIKey          string          `yaml:"apiKey"`
	BaseURL         string          `yaml:"baseUrl"`
	Timeout         time.Duration   `yaml:"timeout"`
	Model           string          `yaml:"model"`
	PromptID        string          `yaml:"promptId"`
	PromptVersion   string          `yaml:"promptVersion"`
	ReasoningEffort string          `yaml:"reasoningEffort"`
	Background      bool            `yaml:"background"`
	MaxRounds       int             `yaml:"maxRounds"`
	ToolConcurrency int             `yaml:"toolConcurrency"`
	PollBaseDelay   time.Duration   `yaml:"pollBaseDelay"`
	PollMaxDelay    time.Duration   `yaml:"pollMaxDelay"`
	WebSearch       WebSearchConfig `yaml:"webSearch"`
	CodeInterpreter bool            `yaml:"codeInterpreter"`
}

// WebSearchConfig configures the provider-side web search tool.
type WebSearchConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ContextSize string `yaml:"contextSize"`
	Country     string `yaml:"country"`
	Region      string `yaml:"region"`
}

// WeatherConfig configures the National Weather Service client.
type WeatherConfig struct {
	BaseURL   string        `yaml:"baseUrl"`
	UserAgent string        `yaml:"userAgent"`
	Accept    string        `yaml:"accept"`
	Timeout   time.Duration `yaml:"timeout"`
	Breaker   BreakerConfig `yaml:"breaker"`
}

// BreakerConfig tunes the circuit breaker in front of the weather API.
type BreakerConfig struct {
	MaxRequests         uint32        `yaml:"maxRequests"`
	Interval            time.Duration `yaml:"interval"`
	OpenTimeout         time.Duration `yaml:"openTimeout"`
	ConsecutiveFailures uint32        `yaml:"consecutiveFailures"`
}

// TwilioConfig holds the messaging account credentials.
type TwilioConfig struct {
	AccountSID string        `yaml:"accountSid"`
	AuthToken  string        `yaml:"authToken"`
	BaseURL    string        `yaml:"baseUrl"`
	Timeout    time.Duration `yaml:"timeout"`
}

// WorkflowConfig controls step retries and durable state backends.
type WorkflowConfig struct {
	CallModel        workflow.Policy `yaml:"callModel"`
	SendSMS          workflow.Policy `yaml:"sendSms"`
	Queue            string          `yaml:"queue"`
	QueueKey         string          `yaml:"queueKey"`
	Journal          string          `yaml:"journal"`
	JournalRetention time.Duration   `yaml:"journalRetention"`
	SweepInterval    time.Duration   `yaml:"sweepInterval"`
}

// Backend names accepted by workflow.queue and workflow.journal.
const (
	BackendMemory   = "memory"
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
)

// ValkeyConfig contains connection information for the queue and journal.
type ValkeyConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from defaults, an optional .env file, a YAML file
// and environment variables, in that order of precedence.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("DOTENV_PATH"); path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load dotenv file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString("HTTP_ADDRESS", &cfg.HTTP.Address)
	setString("HTTP_SMS_PATH", &cfg.HTTP.SMSPath)
	setBool("HTTP_VALIDATE_SIGNATURE", &cfg.HTTP.ValidateSignature)
	setString("HTTP_PUBLIC_URL", &cfg.HTTP.PublicURL)
	setDuration("HTTP_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout)
	setBool("HTTP_RATE_LIMIT_ENABLED", &cfg.HTTP.RateLimit.Enabled)
	setInt("HTTP_RATE_LIMIT_RPM", &cfg.HTTP.RateLimit.RequestsPerMinute)
	setInt("HTTP_RATE_LIMIT_BURST", &cfg.HTTP.RateLimit.Burst)

	setString("OPENAI_API_KEY", &cfg.LLM.APIKey)
	setString("LLM_API_KEY", &cfg.LLM.APIKey)
	setString("LLM_BASE_URL", &cfg.LLM.BaseURL)
	setString("LLM_MODEL", &cfg.LLM.Model)
	setString("LLM_PROMPT_ID", &cfg.LLM.PromptID)
	setString("LLM_PROMPT_VERSION", &cfg.LLM.PromptVersion)
	setString("LLM_REASONING_EFFORT", &cfg.LLM.ReasoningEffort)
	setBool("LLM_BACKGROUND", &cfg.LLM.Background)
	setInt("LLM_MAX_ROUNDS", &cfg.LLM.MaxRounds)
	setDuration("LLM_POLL_BASE_DELAY", &cfg.LLM.PollBaseDelay)
	setDuration("LLM_POLL_MAX_DELAY", &cfg.LLM.PollMaxDelay)

	setString("WEATHER_BASE_URL", &cfg.Weather.BaseURL)
	setString("WEATHER_USER_AGENT", &cfg.Weather.UserAgent)

	setString("TWILIO_ACCOUNT_SID", &cfg.Twilio.AccountSID)
	setString("TWILIO_AUTH_TOKEN", &cfg.Twilio.AuthToken)
	setString("TWILIO_BASE_URL", &cfg.Twilio.BaseURL)

	setString("WORKFLOW_QUEUE", &cfg.Workflow.Queue)
	setString("WORKFLOW_JOURNAL", &cfg.Workflow.Journal)
	setDuration("WORKFLOW_JOURNAL_RETENTION", &cfg.Workflow.JournalRetention)
	setDuration("WORKFLOW_SWEEP_INTERVAL", &cfg.Workflow.SweepInterval)

	setString("VALKEY_ADDR", &cfg.Valkey.Addr)
	setString("VALKEY_PASSWORD", &cfg.Valkey.Password)
	setString("POSTGRES_DSN", &cfg.Postgres.DSN)
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
}

func setString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			SMSPath:         "/sms",
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 10,
				Burst:             5,
			},
		},
		LLM: LLMConfig{
			Timeout:         2 * time.Minute,
			Model:           "o3-2025-04-16",
			ReasoningEffort: "medium",
			Background:      true,
			MaxRounds:       10,
			ToolConcurrency: 4,
			PollBaseDelay:   500 * time.Millisecond,
			PollMaxDelay:    8 * time.Second,
			WebSearch: WebSearchConfig{
				Enabled:     true,
				ContextSize: "medium",
				Country:     "US",
			},
			CodeInterpreter: true,
		},
		Weather: WeatherConfig{
			BaseURL:   "https://api.weather.gov",
			UserAgent: "(sms-relay, ops@example.com)",
			Accept:    "application/ld+json",
			Timeout:   15 * time.Second,
			Breaker: BreakerConfig{
				MaxRequests:         1,
				Interval:            time.Minute,
				OpenTimeout:         30 * time.Second,
				ConsecutiveFailures: 5,
			},
		},
		Twilio: TwilioConfig{
			BaseURL: "https://api.twilio.com",
			Timeout: 30 * time.Second,
		},
		Workflow: WorkflowConfig{
			CallModel:        workflow.CallModelPolicy(),
			SendSMS:          workflow.SendSMSPolicy(),
			Queue:            BackendMemory,
			QueueKey:         "sms-relay:workflows",
			Journal:          BackendMemory,
			JournalRetention: 24 * time.Hour,
			SweepInterval:    time.Hour,
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if !strings.HasPrefix(c.HTTP.SMSPath, "/") {
		return errors.New("http.smsPath must start with /")
	}
	if c.HTTP.ValidateSignature {
		if strings.TrimSpace(c.HTTP.PublicURL) == "" {
			return errors.New("http.publicUrl is required when signature validation is enabled")
		}
		if strings.TrimSpace(c.Twilio.AuthToken) == "" {
			return errors.New("twilio.authToken is required when signature validation is enabled")
		}
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return errors.New("llm.apiKey cannot be empty")
	}
	if strings.TrimSpace(c.LLM.Model) == "" && strings.TrimSpace(c.LLM.PromptID) == "" {
		return errors.New("llm.model or llm.promptId must be set")
	}
	if c.LLM.MaxRounds <= 0 {
		return errors.New("llm.maxRounds must be positive")
	}
	if c.LLM.PollBaseDelay <= 0 || c.LLM.PollMaxDelay < c.LLM.PollBaseDelay {
		return errors.New("llm.pollBaseDelay must be positive and not exceed llm.pollMaxDelay")
	}
	if strings.TrimSpace(c.Weather.UserAgent) == "" {
		return errors.New("weather.userAgent cannot be empty")
	}
	if strings.TrimSpace(c.Twilio.AccountSID) == "" || strings.TrimSpace(c.Twilio.AuthToken) == "" {
		return errors.New("twilio.accountSid and twilio.authToken are required")
	}
	if err := c.Workflow.CallModel.Validate(); err != nil {
		return fmt.Errorf("workflow.callModel: %w", err)
	}
	if err := c.Workflow.SendSMS.Validate(); err != nil {
		return fmt.Errorf("workflow.sendSms: %w", err)
	}
	switch c.Workflow.Queue {
	case BackendMemory, BackendValkey:
	default:
		return fmt.Errorf("workflow.queue must be %q or %q", BackendMemory, BackendValkey)
	}
	switch c.Workflow.Journal {
	case BackendMemory, BackendValkey, BackendPostgres:
	default:
		return fmt.Errorf("workflow.journal must be one of %q, %q, %q", BackendMemory, BackendValkey, BackendPostgres)
	}
	if c.Workflow.JournalRetention < 0 {
		return errors.New("workflow.journalRetention cannot be negative")
	}
	if (c.Workflow.Queue == BackendValkey || c.Workflow.Journal == BackendValkey) && strings.TrimSpace(c.Valkey.Addr) == "" {
		return errors.New("valkey.addr cannot be empty when a valkey backend is selected")
	}
	if c.Workflow.Journal == BackendPostgres && strings.TrimSpace(c.Postgres.DSN) == "" {
		return errors.New("postgres.dsn cannot be empty when the postgres journal is selected")
	}
	return nil
}
