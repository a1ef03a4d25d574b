package relay

import (
	"context"

	"github.com/yanqian/sms-relay/internal/domain/forecast"
	"github.com/yanqian/sms-relay/internal/infra/llm/openai"
)

// ToolFunc executes one tool call. Failures are reported in the returned
// text so the model can react to them.
type ToolFunc func(ctx context.Context, arguments string) string

// Tool pairs a function declaration with its implementation.
type Tool struct {
	Definition openai.Tool
	Run        ToolFunc
}

// WeatherToolName is the function name the model calls for forecasts.
const WeatherToolName = "get_weather"

// WeatherTool exposes the forecast pipeline as get_weather.
func WeatherTool(svc forecast.Service) Tool {
	return Tool{
		Definition: openai.Tool{
			Type:        "function",
			Name:        WeatherToolName,
			Description: "Fetches weather information based on latitude and longitude provided.",
			Strict:      true,
			Parameters: map[string]any{
				"type":     "object",
				"required": []string{"lat", "lon", "type"},
				"properties": map[string]any{
					"lat": map[string]any{
						"type":        "array",
						"description": "Latitude coordinates as an array of numbers or a single number.",
						"items": map[string]any{
							"type":        "number",
							"description": "A latitude coordinate.",
						},
					},
					"lon": map[string]any{
						"type":        "array",
						"description": "Longitude coordinates as an array of numbers or a single number.",
						"items": map[string]any{
							"type":        "number",
							"description": "A longitude coordinate.",
						},
					},
					"type": map[string]any{
						"type":        "string",
						"enum":        []string{string(forecast.KindForecast), string(forecast.KindForecastHourly)},
						"description": "The type of weather information to retrieve.",
					},
				},
				"additionalProperties": false,
			},
		},
		Run: func(ctx context.Context, arguments string) string {
			req, err := forecast.ParseRequest(arguments)
			if err != nil {
				return "Invalid get_weather arguments: " + err.Error()
			}
			return svc.Resolve(ctx, req.Lat, req.Lon, req.Kind)
		},
	}
}

// providerTools lists the tools the provider runs on its side.
func providerTools(cfg Config) []openai.Tool {
	var tools []openai.Tool
	if cfg.WebSearch.Enabled {
		tool := openai.Tool{
			Type:              "web_search_preview",
			SearchContextSize: cfg.WebSearch.ContextSize,
		}
		if cfg.WebSearch.Country != "" || cfg.WebSearch.Region != "" {
			tool.UserLocation = &openai.UserLocation{
				Type:    "approximate",
				Country: cfg.WebSearch.Country,
				Region:  cfg.WebSearch.Region,
			}
		}
		tools = append(tools, tool)
	}
	if cfg.CodeInterpreter {
		tools = append(tools, openai.Tool{
			Type:      "code_interpreter",
			Container: &openai.Container{Type: "auto"},
		})
	}
	return tools
}
