package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/BrianJOC/agri-console/api"
	"github.com/BrianJOC/agri-console/table"
)

var titleCase = cases.Title(language.English)

// Title formats a lower-case label ("growing") for display ("Growing").
func Title(s string) string {
	return titleCase.String(s)
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CropKey identifies a crop row.
func CropKey(c api.Crop) string { return c.ID }

// ProductKey identifies a product row.
func ProductKey(p api.Product) string { return p.ID }

// AnalyticsKey identifies an analytics row.
func AnalyticsKey(a api.Analytics) string { return a.ID }

// CropColumns is the farmer dashboard layout.
func CropColumns() []table.Column[api.Crop] {
	return []table.Column[api.Crop]{
		{Key: "name", Header: "Crop", Value: func(c api.Crop) any { return c.Name }, Sortable: true},
		{Key: "variety", Header: "Variety", Value: func(c api.Crop) any { return c.Variety }},
		{Key: "plantingDate", Header: "Planted", Value: func(c api.Crop) any { return date(c.PlantingDate) }, Sortable: true},
		{Key: "expectedHarvestDate", Header: "Harvest", Value: func(c api.Crop) any { return date(c.ExpectedHarvestDate) }, Sortable: true},
		{
			Key: "area", Header: "Area (ha)", Sortable: true,
			Value: func(c api.Crop) any { return c.Area },
			Render: func(c api.Crop) string { return number(c.Area) },
			Less: table.ByNumber(func(c api.Crop) float64 { return c.Area }),
		},
		{
			Key: "status", Header: "Status", Sortable: true,
			Value:  func(c api.Crop) any { return string(c.Status) },
			Render: func(c api.Crop) string { return Title(string(c.Status)) },
		},
		{
			Key: "predictedYield", Header: "Predicted Yield (t)", Sortable: true,
			Value: func(c api.Crop) any { return c.PredictedYield },
			Render: func(c api.Crop) string {
				if c.PredictedYield == 0 {
					return "-"
				}
				return number(c.PredictedYield)
			},
		},
	}
}

// ProductColumns is the vendor dashboard layout.
func ProductColumns() []table.Column[api.Product] {
	return []table.Column[api.Product]{
		{Key: "name", Header: "Product", Value: func(p api.Product) any { return p.Name }, Sortable: true},
		{
			Key: "category", Header: "Category", Sortable: true,
			Value:  func(p api.Product) any { return p.Category },
			Render: func(p api.Product) string { return Title(p.Category) },
		},
		{
			Key: "quantity", Header: "Quantity", Sortable: true,
			Value:  func(p api.Product) any { return p.Quantity },
			Render: func(p api.Product) string { return number(p.Quantity) + " " + p.Unit },
			Less:   table.ByNumber(func(p api.Product) float64 { return p.Quantity }),
		},
		{
			Key: "price", Header: "Price", Sortable: true,
			Value:  func(p api.Product) any { return p.Price },
			Render: func(p api.Product) string { return fmt.Sprintf("%s %s", p.Currency, number(p.Price)) },
			Less:   table.ByNumber(func(p api.Product) float64 { return p.Price }),
		},
		{Key: "expiryEstimate", Header: "Expires", Value: func(p api.Product) any { return date(p.ExpiryEstimate) }, Sortable: true},
		{
			Key: "spoilageRisk", Header: "Spoilage Risk", Sortable: true,
			Value:  func(p api.Product) any { return p.SpoilageRisk },
			Render: func(p api.Product) string { return Title(p.SpoilageRisk) },
		},
		{
			Key: "status", Header: "Status",
			Value:  func(p api.Product) any { return string(p.Status) },
			Render: func(p api.Product) string { return Title(string(p.Status)) },
		},
	}
}

// AnalyticsColumns is the NGO dashboard layout.
func AnalyticsColumns() []table.Column[api.Analytics] {
	return []table.Column[api.Analytics]{
		{Key: "title", Header: "Title", Value: func(a api.Analytics) any { return a.Title }, Sortable: true},
		{
			Key: "type", Header: "Type", Sortable: true,
			Value:  func(a api.Analytics) any { return a.Type },
			Render: func(a api.Analytics) string { return Title(a.Type) },
		},
		{Key: "region", Header: "Region", Value: func(a api.Analytics) any { return a.Region }, Sortable: true},
		{
			Key: "period", Header: "Period",
			Value: func(a api.Analytics) any { return date(a.StartDate) + " – " + date(a.EndDate) },
		},
		{
			Key: "metrics", Header: "Headline Metric",
			Value: func(a api.Analytics) any { return headlineMetric(a.Metrics) },
		},
		{
			Key: "status", Header: "Status", Sortable: true,
			Value:  func(a api.Analytics) any { return a.Status },
			Render: func(a api.Analytics) string { return Title(a.Status) },
		},
	}
}

// ForecastKey identifies a forecast row.
func ForecastKey(d api.WeatherDay) string { return d.Date }

// ForecastColumns is the weather forecast layout.
func ForecastColumns() []table.Column[api.WeatherDay] {
	return []table.Column[api.WeatherDay]{
		{Key: "date", Header: "Date", Value: func(d api.WeatherDay) any { return d.Date }, Sortable: true},
		{
			Key: "condition", Header: "Condition", Sortable: true,
			Value:  func(d api.WeatherDay) any { return d.Condition },
			Render: func(d api.WeatherDay) string { return Title(d.Condition) },
		},
		{
			Key: "temperature", Header: "Temp (°C)", Sortable: true,
			Value:  func(d api.WeatherDay) any { return d.Temperature.Max },
			Render: func(d api.WeatherDay) string { return number(d.Temperature.Min) + " / " + number(d.Temperature.Max) },
			Less:   table.ByNumber(func(d api.WeatherDay) float64 { return d.Temperature.Max }),
		},
		{
			Key: "humidity", Header: "Humidity (%)", Sortable: true,
			Value:  func(d api.WeatherDay) any { return d.Humidity },
			Render: func(d api.WeatherDay) string { return number(d.Humidity) },
			Less:   table.ByNumber(func(d api.WeatherDay) float64 { return d.Humidity }),
		},
		{
			Key: "rain", Header: "Rain Chance (%)", Sortable: true,
			Value:  func(d api.WeatherDay) any { return d.Precipitation.Probability },
			Render: func(d api.WeatherDay) string { return number(d.Precipitation.Probability) },
			Less:   table.ByNumber(func(d api.WeatherDay) float64 { return d.Precipitation.Probability }),
		},
	}
}

func headlineMetric(metrics []api.Metric) string {
	if len(metrics) == 0 {
		return "-"
	}
	m := metrics[0]
	arrow := map[string]string{"up": "↑", "down": "↓", "stable": "→"}[strings.ToLower(m.Trend)]
	return strings.TrimSpace(fmt.Sprintf("%s %s %s %s", m.Name, number(m.Value), m.Unit, arrow))
}
