package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/BrianJOC/agri-console/api"
)

// MockSource serves the bundled sample records. Predicted yields and
// spoilage risks are fixed values, not computed.
type MockSource struct{}

func (MockSource) Crops(context.Context) ([]api.Crop, error) {
	return sampleCrops(), nil
}

func (MockSource) Products(context.Context) ([]api.Product, error) {
	return sampleProducts(), nil
}

func (MockSource) Analytics(context.Context) ([]api.Analytics, error) {
	return sampleAnalytics(), nil
}

// Forecast returns a fixed five-day sample for any city.
func (MockSource) Forecast(_ context.Context, city, country string) (api.WeatherForecast, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return api.WeatherForecast{}, api.ValidationError{Field: "city"}
	}
	var out api.WeatherForecast
	out.Location.Name = city
	out.Location.Country = strings.TrimSpace(country)
	out.Forecast = sampleForecast()
	return out, nil
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleCrops() []api.Crop {
	return []api.Crop{
		{ID: "c1", Name: "Maize", Variety: "H614", PlantingDate: day("2024-03-10"), ExpectedHarvestDate: day("2024-08-15"), Area: 2.5, Status: api.CropGrowing, PredictedYield: 3.2},
		{ID: "c2", Name: "Beans", Variety: "Rosecoco", PlantingDate: day("2024-03-22"), ExpectedHarvestDate: day("2024-06-20"), Area: 1.2, Status: api.CropGrowing, PredictedYield: 0.9},
		{ID: "c3", Name: "Tomatoes", Variety: "Anna F1", PlantingDate: day("2024-02-01"), ExpectedHarvestDate: day("2024-05-10"), Area: 0.4, Status: api.CropHarvested, PredictedYield: 12.5},
		{ID: "c4", Name: "Potatoes", Variety: "Shangi", PlantingDate: day("2024-04-05"), ExpectedHarvestDate: day("2024-07-30"), Area: 1.8, Status: api.CropGrowing, PredictedYield: 18},
		{ID: "c5", Name: "Wheat", Variety: "Kenya Fahari", PlantingDate: day("2024-01-15"), ExpectedHarvestDate: day("2024-05-25"), Area: 4, Status: api.CropFailed, PredictedYield: 0},
		{ID: "c6", Name: "Rice", Variety: "Basmati 370", PlantingDate: day("2024-05-02"), ExpectedHarvestDate: day("2024-10-01"), Area: 3.1, Status: api.CropGrowing, PredictedYield: 4.4},
		{ID: "c7", Name: "Kale", Variety: "Thousand Headed", PlantingDate: day("2024-04-18"), ExpectedHarvestDate: day("2024-06-01"), Area: 0.3, Status: api.CropGrowing, PredictedYield: 6},
	}
}

func sampleProducts() []api.Product {
	nairobi := api.Location{Country: "Kenya", Region: "Nairobi"}
	return []api.Product{
		{ID: "p1", Name: "Tomatoes", Category: "vegetables", Quantity: 120, Unit: "kg", Price: 80, Currency: "KES", HarvestDate: day("2024-05-08"), ExpiryEstimate: day("2024-05-18"), Status: api.ProductAvailable, SpoilageRisk: "high", Location: nairobi},
		{ID: "p2", Name: "Maize", Category: "grains", Quantity: 900, Unit: "kg", Price: 45, Currency: "KES", HarvestDate: day("2024-04-20"), ExpiryEstimate: day("2024-12-20"), Status: api.ProductAvailable, SpoilageRisk: "low", Location: nairobi},
		{ID: "p3", Name: "Mangoes", Category: "fruits", Quantity: 300, Unit: "kg", Price: 60, Currency: "KES", HarvestDate: day("2024-05-01"), ExpiryEstimate: day("2024-05-14"), Status: api.ProductReserved, SpoilageRisk: "medium", Location: nairobi},
		{ID: "p4", Name: "Milk", Category: "dairy", Quantity: 200, Unit: "l", Price: 55, Currency: "KES", HarvestDate: day("2024-05-10"), ExpiryEstimate: day("2024-05-13"), Status: api.ProductAvailable, SpoilageRisk: "high", Location: nairobi},
		{ID: "p5", Name: "Beans", Category: "grains", Quantity: 450, Unit: "kg", Price: 110, Currency: "KES", HarvestDate: day("2024-03-30"), ExpiryEstimate: day("2025-03-30"), Status: api.ProductSold, SpoilageRisk: "low", Location: nairobi},
		{ID: "p6", Name: "Cabbage", Category: "vegetables", Quantity: 150, Unit: "head", Price: 35, Currency: "KES", HarvestDate: day("2024-05-06"), ExpiryEstimate: day("2024-05-27"), Status: api.ProductAvailable, SpoilageRisk: "medium", Location: nairobi},
	}
}

func sampleAnalytics() []api.Analytics {
	return []api.Analytics{
		{ID: "a1", Title: "Eastern maize yield", Type: "yield", Region: "Eastern", StartDate: day("2024-01-01"), EndDate: day("2024-03-31"), Status: "active",
			Metrics: []api.Metric{{Name: "yield", Value: 2.8, Unit: "t/ha", Trend: "up"}}},
		{ID: "a2", Title: "Post-harvest loss", Type: "waste", Region: "Central", StartDate: day("2024-01-01"), EndDate: day("2024-03-31"), Status: "active",
			Metrics: []api.Metric{{Name: "loss", Value: 18, Unit: "%", Trend: "down"}}},
		{ID: "a3", Title: "Market prices", Type: "market", Region: "Rift Valley", StartDate: day("2024-02-01"), EndDate: day("2024-04-30"), Status: "active",
			Metrics: []api.Metric{{Name: "maize price", Value: 45, Unit: "KES/kg", Trend: "stable"}}},
		{ID: "a4", Title: "Water usage", Type: "sustainability", Region: "Coast", StartDate: day("2023-10-01"), EndDate: day("2023-12-31"), Status: "archived",
			Metrics: []api.Metric{{Name: "irrigation", Value: 410, Unit: "m3/ha", Trend: "down"}}},
		{ID: "a5", Title: "Smallholder yield", Type: "yield", Region: "Western", StartDate: day("2024-01-01"), EndDate: day("2024-03-31"), Status: "active",
			Metrics: []api.Metric{{Name: "yield", Value: 1.9, Unit: "t/ha", Trend: "stable"}}},
		{ID: "a6", Title: "Cold chain coverage", Type: "waste", Region: "Nairobi", StartDate: day("2024-03-01"), EndDate: day("2024-05-31"), Status: "active",
			Metrics: []api.Metric{{Name: "coverage", Value: 34, Unit: "%", Trend: "up"}}},
	}
}

func forecastDay(date, condition string, lo, hi, humidity, rain float64) api.WeatherDay {
	var d api.WeatherDay
	d.Date = date
	d.Condition = condition
	d.Temperature.Min = lo
	d.Temperature.Max = hi
	d.Temperature.Average = (lo + hi) / 2
	d.Humidity = humidity
	d.Precipitation.Probability = rain
	return d
}

func sampleForecast() []api.WeatherDay {
	return []api.WeatherDay{
		forecastDay("2024-05-13", "sunny", 14, 26, 48, 5),
		forecastDay("2024-05-14", "partly cloudy", 15, 25, 55, 20),
		forecastDay("2024-05-15", "rain", 15, 21, 82, 85),
		forecastDay("2024-05-16", "thunderstorm", 16, 22, 88, 90),
		forecastDay("2024-05-17", "cloudy", 14, 23, 64, 35),
	}
}
