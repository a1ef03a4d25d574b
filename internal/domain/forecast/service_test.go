package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const pointBody = `{
  "@context": ["https://geojson.org/geojson-ld/geojson-context.jsonld"],
  "gridId": "BOU",
  "forecast": "https://api.weather.gov/gridpoints/BOU/62,60/forecast",
  "forecastHourly": "https://api.weather.gov/gridpoints/BOU/62,60/forecast/hourly",
  "forecastZone": "https://api.weather.gov/zones/forecast/COZ040",
  "timeZone": "America/Denver"
}`

const forecastBody = `{
  "@context": ["https://geojson.org/geojson-ld/geojson-context.jsonld"],
  "units": "us",
  "generatedAt": "2024-06-01T14:05:11+00:00",
  "updateTime": "2024-06-01T13:40:02+00:00",
  "validTimes": "2024-06-01T07:00:00+00:00/P7DT18H",
  "elevation": {"unitCode": "wmoUnit:m", "value": 1609.6},
  "periods": [
    {
      "number": 1,
      "name": "This Afternoon",
      "startTime": "2024-06-01T08:00:00-06:00",
      "endTime": "2024-06-01T18:00:00-06:00",
      "isDaytime": true,
      "temperature": 78,
      "temperatureUnit": "F",
      "probabilityOfPrecipitation": {"unitCode": "wmoUnit:percent", "value": 20},
      "dewpoint": {"unitCode": "wmoUnit:degC", "value": 3.3},
      "windSpeed": "10 mph",
      "windDirection": "SE",
      "shortForecast": "Partly Sunny",
      "detailedForecast": "Partly sunny, with a high near 78."
    },
    {
      "number": 2,
      "name": "Tonight",
      "startTime": "2024-06-01T18:00:00-06:00",
      "isDaytime": false,
      "temperature": 51,
      "temperatureUnit": "F",
      "probabilityOfPrecipitation": {"unitCode": "wmoUnit:percent", "value": 0},
      "windSpeed": "5 mph",
      "windDirection": "S",
      "shortForecast": "Clear",
      "detailedForecast": "Clear, with a low around 51."
    }
  ]
}`

type stubResponse struct {
	status int
	body   string
	err    error
}

type stubFetcher struct {
	responses map[string]stubResponse
	requested []string
}

func (f *stubFetcher) PointURL(lat, lon float64) string {
	return fmt.Sprintf("https://api.weather.gov/points/%v,%v", lat, lon)
}

func (f *stubFetcher) Get(_ context.Context, rawURL string) (int, []byte, error) {
	f.requested = append(f.requested, rawURL)
	resp, ok := f.responses[rawURL]
	if !ok {
		return 404, []byte(`{"title":"Not Found"}`), nil
	}
	return resp.status, []byte(resp.body), resp.err
}

func newTestService(t *testing.T, fetcher Fetcher) Service {
	t.Helper()
	svc, err := NewService(Config{}, fetcher, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return svc
}

const denverPoint = "https://api.weather.gov/points/39.5,-104.99"

func TestResolveSuccess(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		denverPoint: {status: 200, body: pointBody},
		"https://api.weather.gov/gridpoints/BOU/62,60/forecast": {status: 200, body: forecastBody},
	}}
	svc := newTestService(t, fetcher)

	out := svc.Resolve(context.Background(), Coordinate{39, 30}, Coordinate{-104.99}, KindForecast)
	require.True(t, strings.HasPrefix(out, "{\n  \"timeZone\": \"America/Denver\""), out)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Equal(t, "America/Denver", decoded["timeZone"])
	require.Equal(t, "2024-06-01T13:40:02+00:00", decoded["updateTime"])
	require.Equal(t, "2024-06-01T07:00:00+00:00/P7DT18H", decoded["validTimes"])
	require.NotContains(t, decoded, "@context")
	require.NotContains(t, decoded, "units")

	periods, ok := decoded["periods"].([]any)
	require.True(t, ok)
	require.Len(t, periods, 2)
	first := periods[0].(map[string]any)
	require.Equal(t, "This Afternoon", first["name"])
	require.Equal(t, "Partly sunny, with a high near 78.", first["detailedForecast"])
	require.Contains(t, first, "dewpoint")
	require.NotContains(t, first, "endTime")
	second := periods[1].(map[string]any)
	require.Equal(t, false, second["isDaytime"])
	require.NotContains(t, second, "dewpoint")

	require.Equal(t, []string{denverPoint, "https://api.weather.gov/gridpoints/BOU/62,60/forecast"}, fetcher.requested)
}

func TestResolveHourlyFollowsHourlyLink(t *testing.T) {
	hourly := "https://api.weather.gov/gridpoints/BOU/62,60/forecast/hourly"
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		denverPoint: {status: 200, body: pointBody},
		hourly:      {status: 200, body: forecastBody},
	}}
	svc := newTestService(t, fetcher)

	out := svc.Resolve(context.Background(), Coordinate{39.5}, Coordinate{-104.99}, KindForecastHourly)
	require.Contains(t, out, `"timeZone": "America/Denver"`)
	require.Equal(t, hourly, fetcher.requested[1])
}

func TestResolvePointLookupError(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		"https://api.weather.gov/points/51.5,-0.12": {status: 404, body: `{"title":"Data Unavailable For Requested Point"}`},
	}}
	svc := newTestService(t, fetcher)

	out := svc.Resolve(context.Background(), Coordinate{51.5}, Coordinate{-0.12}, KindForecast)
	require.Equal(t, `Weather point lookup error: {"title":"Data Unavailable For Requested Point"}`, out)
	require.Len(t, fetcher.requested, 1)
}

func TestResolveTransportError(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		denverPoint: {err: errors.New("circuit breaker is open")},
	}}
	svc := newTestService(t, fetcher)

	out := svc.Resolve(context.Background(), Coordinate{39.5}, Coordinate{-104.99}, KindForecast)
	require.Equal(t, "Weather point lookup error: circuit breaker is open", out)
}

func TestResolvePointParseError(t *testing.T) {
	body := strings.Replace(pointBody, "https://api.weather.gov/gridpoints", "https://evil.example.com/gridpoints", 1)
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		denverPoint: {status: 200, body: body},
	}}
	svc := newTestService(t, fetcher)

	out := svc.Resolve(context.Background(), Coordinate{39.5}, Coordinate{-104.99}, KindForecast)
	require.True(t, strings.HasPrefix(out, "Weather point parse error: "), out)
	require.Contains(t, out, "forecast: must be a https://api.weather.gov url")
	require.Len(t, fetcher.requested, 1)
}

func TestResolveForecastLookupError(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		denverPoint: {status: 200, body: pointBody},
		"https://api.weather.gov/gridpoints/BOU/62,60/forecast": {status: 503, body: "upstream unavailable"},
	}}
	svc := newTestService(t, fetcher)

	out := svc.Resolve(context.Background(), Coordinate{39.5}, Coordinate{-104.99}, KindForecast)
	require.Equal(t, "Weather forecast lookup error: upstream unavailable", out)
}

func TestResolveForecastParseErrorOnNullPrecipitation(t *testing.T) {
	body := strings.Replace(forecastBody, `"value": 20`, `"value": null`, 1)
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		denverPoint: {status: 200, body: pointBody},
		"https://api.weather.gov/gridpoints/BOU/62,60/forecast": {status: 200, body: body},
	}}
	svc := newTestService(t, fetcher)

	out := svc.Resolve(context.Background(), Coordinate{39.5}, Coordinate{-104.99}, KindForecast)
	require.Equal(t, "Weather forecast parse error: periods[0].probabilityOfPrecipitation.value: required", out)
}

func TestResolveForecastRequiresPeriodText(t *testing.T) {
	body := strings.Replace(forecastBody, `"shortForecast": "Clear",`, "", 1)
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		denverPoint: {status: 200, body: pointBody},
		"https://api.weather.gov/gridpoints/BOU/62,60/forecast": {status: 200, body: body},
	}}
	svc := newTestService(t, fetcher)

	out := svc.Resolve(context.Background(), Coordinate{39.5}, Coordinate{-104.99}, KindForecast)
	require.Equal(t, "Weather forecast parse error: periods[1].shortForecast: required", out)
}

func TestResolveAcceptsEmptyPeriodText(t *testing.T) {
	body := strings.Replace(forecastBody, `"windDirection": "S",`, `"windDirection": "",`, 1)
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		denverPoint: {status: 200, body: pointBody},
		"https://api.weather.gov/gridpoints/BOU/62,60/forecast": {status: 200, body: body},
	}}
	svc := newTestService(t, fetcher)

	out := svc.Resolve(context.Background(), Coordinate{39.5}, Coordinate{-104.99}, KindForecast)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	periods := decoded["periods"].([]any)
	require.Equal(t, "", periods[1].(map[string]any)["windDirection"])
}

func TestResolveForecastParseErrorOnMalformedJSON(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		denverPoint: {status: 200, body: pointBody},
		"https://api.weather.gov/gridpoints/BOU/62,60/forecast": {status: 200, body: "<html>"},
	}}
	svc := newTestService(t, fetcher)

	out := svc.Resolve(context.Background(), Coordinate{39.5}, Coordinate{-104.99}, KindForecast)
	require.True(t, strings.HasPrefix(out, "Weather forecast parse error: "), out)
}

func TestResolveDoesNotCachePointMetadata(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		denverPoint: {status: 200, body: pointBody},
		"https://api.weather.gov/gridpoints/BOU/62,60/forecast": {status: 200, body: forecastBody},
	}}
	svc := newTestService(t, fetcher)

	svc.Resolve(context.Background(), Coordinate{39.5}, Coordinate{-104.99}, KindForecast)
	svc.Resolve(context.Background(), Coordinate{39.5}, Coordinate{-104.99}, KindForecast)
	require.Len(t, fetcher.requested, 4)
	require.Equal(t, denverPoint, fetcher.requested[2])
}

func TestNewServiceRejectsBadBase(t *testing.T) {
	_, err := NewService(Config{APIBase: "not a url"}, &stubFetcher{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}
