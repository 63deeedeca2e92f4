// Package dashboard supplies the records and column layouts shown on the
// farmer, vendor and NGO dashboards.
package dashboard

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BrianJOC/agri-console/api"
)

// Source yields the records for each dashboard.
type Source interface {
	Crops(ctx context.Context) ([]api.Crop, error)
	Products(ctx context.Context) ([]api.Product, error)
	Analytics(ctx context.Context) ([]api.Analytics, error)
}

// ForecastSource yields weather forecasts.
type ForecastSource interface {
	Forecast(ctx context.Context, city, country string) (api.WeatherForecast, error)
}

// APISource reads records from the backend.
type APISource struct {
	client *api.Client
}

// NewAPISource wraps client.
func NewAPISource(client *api.Client) *APISource {
	return &APISource{client: client}
}

func (s *APISource) Crops(ctx context.Context) ([]api.Crop, error) {
	return s.client.ListCrops(ctx)
}

func (s *APISource) Products(ctx context.Context) ([]api.Product, error) {
	return s.client.ListProducts(ctx)
}

func (s *APISource) Analytics(ctx context.Context) ([]api.Analytics, error) {
	return s.client.ListAnalytics(ctx)
}

func (s *APISource) Forecast(ctx context.Context, city, country string) (api.WeatherForecast, error) {
	return s.client.Forecast(ctx, city, country)
}

// FallbackSource serves from Primary and switches to Secondary when Primary
// cannot be reached. HTTP errors from Primary are returned as-is.
type FallbackSource struct {
	Primary   Source
	Secondary Source
	Logger    *zap.Logger
}

func (s FallbackSource) Crops(ctx context.Context) ([]api.Crop, error) {
	crops, err := s.Primary.Crops(ctx)
	if s.fallback("crops", err) {
		return s.Secondary.Crops(ctx)
	}
	return crops, err
}

func (s FallbackSource) Products(ctx context.Context) ([]api.Product, error) {
	products, err := s.Primary.Products(ctx)
	if s.fallback("products", err) {
		return s.Secondary.Products(ctx)
	}
	return products, err
}

func (s FallbackSource) Analytics(ctx context.Context) ([]api.Analytics, error) {
	records, err := s.Primary.Analytics(ctx)
	if s.fallback("analytics", err) {
		return s.Secondary.Analytics(ctx)
	}
	return records, err
}

// Forecast requires both sources to implement ForecastSource.
func (s FallbackSource) Forecast(ctx context.Context, city, country string) (api.WeatherForecast, error) {
	primary, ok := s.Primary.(ForecastSource)
	if !ok {
		return api.WeatherForecast{}, errors.New("dashboard: primary source has no forecasts")
	}
	forecast, err := primary.Forecast(ctx, city, country)
	if secondary, ok := s.Secondary.(ForecastSource); ok && s.fallback("forecast", err) {
		return secondary.Forecast(ctx, city, country)
	}
	return forecast, err
}

func (s FallbackSource) fallback(resource string, err error) bool {
	var netErr api.NetworkError
	if err == nil || s.Secondary == nil || !errors.As(err, &netErr) {
		return false
	}
	if s.Logger != nil {
		s.Logger.Warn("backend unreachable, using sample data", zap.String("resource", resource), zap.Error(err))
	}
	return true
}
