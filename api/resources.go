package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// ListCrops returns the authenticated farmer's crops.
func (c *Client) ListCrops(ctx context.Context) ([]Crop, error) {
	var crops []Crop
	if err := c.do(ctx, http.MethodGet, "/farmers/crops", nil, nil, &crops); err != nil {
		return nil, err
	}
	return crops, nil
}

// AddCrop creates a crop and returns the stored record.
func (c *Client) AddCrop(ctx context.Context, crop Crop) (Crop, error) {
	if strings.TrimSpace(crop.Name) == "" {
		return Crop{}, ValidationError{Field: "crop name"}
	}
	crop.ID = ""
	var out Crop
	err := c.do(ctx, http.MethodPost, "/farmers/crops", nil, crop, &out)
	return out, err
}

// UpdateCrop replaces the fields of an existing crop.
func (c *Client) UpdateCrop(ctx context.Context, id string, crop Crop) (Crop, error) {
	if strings.TrimSpace(id) == "" {
		return Crop{}, ValidationError{Field: "crop id"}
	}
	var out Crop
	err := c.do(ctx, http.MethodPut, "/farmers/crops/"+url.PathEscape(id), nil, crop, &out)
	return out, err
}

// DeleteCrop removes a crop.
func (c *Client) DeleteCrop(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ValidationError{Field: "crop id"}
	}
	return c.do(ctx, http.MethodDelete, "/farmers/crops/"+url.PathEscape(id), nil, nil, nil)
}

// ListProducts returns the authenticated vendor's inventory.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/vendors/products", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// AddProduct creates an inventory item.
func (c *Client) AddProduct(ctx context.Context, p Product) (Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Product{}, ValidationError{Field: "product name"}
	}
	p.ID = ""
	var out Product
	err := c.do(ctx, http.MethodPost, "/vendors/products", nil, p, &out)
	return out, err
}

// UpdateProduct replaces the fields of an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id string, p Product) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, ValidationError{Field: "product id"}
	}
	var out Product
	err := c.do(ctx, http.MethodPut, "/vendors/products/"+url.PathEscape(id), nil, p, &out)
	return out, err
}

// DeleteProduct removes an inventory item.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ValidationError{Field: "product id"}
	}
	return c.do(ctx, http.MethodDelete, "/vendors/products/"+url.PathEscape(id), nil, nil, nil)
}

// ListAnalytics returns the NGO's analytics records.
func (c *Client) ListAnalytics(ctx context.Context) ([]Analytics, error) {
	var records []Analytics
	if err := c.do(ctx, http.MethodGet, "/ngos/analytics", nil, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateAnalytics stores a new analytics record.
func (c *Client) CreateAnalytics(ctx context.Context, a Analytics) (Analytics, error) {
	if strings.TrimSpace(a.Title) == "" {
		return Analytics{}, ValidationError{Field: "analytics title"}
	}
	a.ID = ""
	var out Analytics
	err := c.do(ctx, http.MethodPost, "/ngos/analytics", nil, a, &out)
	return out, err
}

// DeleteAnalytics removes an analytics record.
func (c *Client) DeleteAnalytics(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ValidationError{Field: "analytics id"}
	}
	return c.do(ctx, http.MethodDelete, "/ngos/analytics/"+url.PathEscape(id), nil, nil, nil)
}

// Forecast fetches the weather forecast for a city.
func (c *Client) Forecast(ctx context.Context, city, country string) (WeatherForecast, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return WeatherForecast{}, ValidationError{Field: "city"}
	}
	query := url.Values{}
	query.Set("city", city)
	if country = strings.TrimSpace(country); country != "" {
		query.Set("country", country)
	}
	var out WeatherForecast
	err := c.do(ctx, http.MethodGet, "/weather/forecast", query, nil, &out)
	return out, err
}
