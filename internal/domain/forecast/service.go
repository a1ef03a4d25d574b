package forecast

import (
	"context"
	"fmt"
	"log/slog"
)

// Service turns coordinates into a forecast payload for the model.
type Service interface {
	// Resolve never fails: every problem is reported as a diagnostic string
	// the model can read and explain.
	Resolve(ctx context.Context, lat, lon Coordinate, kind Kind) string
}

// Fetcher performs GETs against the weather API.
type Fetcher interface {
	PointURL(lat, lon float64) string
	Get(ctx context.Context, rawURL string) (int, []byte, error)
}

// Config scopes which origin forecast links are trusted from.
type Config struct {
	APIBase string
}

type service struct {
	fetcher Fetcher
	schema  *schema
	logger  *slog.Logger
}

// NewService wires the weather resolution pipeline.
func NewService(cfg Config, fetcher Fetcher, logger *slog.Logger) (Service, error) {
	s, err := newSchema(cfg.APIBase)
	if err != nil {
		return nil, err
	}
	return &service{
		fetcher: fetcher,
		schema:  s,
		logger:  logger.With("component", "forecast.service"),
	}, nil
}

func (s *service) Resolve(ctx context.Context, lat, lon Coordinate, kind Kind) string {
	latDeg, lonDeg := lat.Decimal(), lon.Decimal()
	pointURL := s.fetcher.PointURL(latDeg, lonDeg)

	var point PointMetadata
	if msg, ok := s.fetch(ctx, pointURL, "point", &point); !ok {
		return msg
	}

	forecastURL, err := point.URLFor(kind)
	if err != nil {
		return "Weather forecast lookup error: " + err.Error()
	}

	var doc Document
	if msg, ok := s.fetch(ctx, forecastURL, "forecast", &doc); !ok {
		return msg
	}

	out, err := Result{TimeZone: point.TimeZone, Document: doc}.Encode()
	if err != nil {
		return "Weather forecast parse error: " + err.Error()
	}
	s.logger.Info("forecast resolved", "lat", latDeg, "lon", lonDeg, "type", kind, "periods", len(doc.Periods))
	return out
}

// fetch GETs rawURL and decodes it into dst. On failure it returns the
// diagnostic string for stage and false.
func (s *service) fetch(ctx context.Context, rawURL, stage string, dst any) (string, bool) {
	status, body, err := s.fetcher.Get(ctx, rawURL)
	if err != nil {
		s.logger.Warn("weather request failed", "stage", stage, "url", rawURL, "error", err)
		return fmt.Sprintf("Weather %s lookup error: %s", stage, err.Error()), false
	}
	if status < 200 || status > 299 {
		s.logger.Warn("weather request rejected", "stage", stage, "url", rawURL, "status", status)
		return fmt.Sprintf("Weather %s lookup error: %s", stage, string(body)), false
	}
	if err := s.schema.decode(body, dst); err != nil {
		s.logger.Warn("weather response invalid", "stage", stage, "url", rawURL, "error", err)
		return fmt.Sprintf("Weather %s parse error: %s", stage, err.Error()), false
	}
	return "", true
}
