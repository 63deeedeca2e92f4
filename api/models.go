package api

import "time"

// Location is a country/region pair with optional coordinates.
type Location struct {
	Country     string       `json:"country"`
	Region      string       `json:"region"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LoginRequest is the payload for /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RegisterRequest is the payload for /users/register.
type RegisterRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Location    Location `json:"location"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
}

// User is the account returned by the auth endpoints.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResponse carries the session token and the authenticated user.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CropStatus is the lifecycle of a planted crop.
type CropStatus string

const (
	CropGrowing   CropStatus = "growing"
	CropHarvested CropStatus = "harvested"
	CropFailed    CropStatus = "failed"
)

// Crop is a farmer's planted crop.
type Crop struct {
	ID                  string     `json:"_id,omitempty"`
	Name                string     `json:"name"`
	Variety             string     `json:"variety,omitempty"`
	PlantingDate        time.Time  `json:"plantingDate"`
	ExpectedHarvestDate time.Time  `json:"expectedHarvestDate"`
	Area                float64    `json:"area"`
	SoilType            string     `json:"soilType,omitempty"`
	IrrigationType      string     `json:"irrigationType,omitempty"`
	Status              CropStatus `json:"status,omitempty"`
	PredictedYield      float64    `json:"predictedYield,omitempty"`
}

// ProductStatus is the sale state of a product.
type ProductStatus string

const (
	ProductAvailable ProductStatus = "available"
	ProductReserved  ProductStatus = "reserved"
	ProductSold      ProductStatus = "sold"
)

// Product is a vendor's inventory item.
type Product struct {
	ID             string        `json:"_id,omitempty"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	Category       string        `json:"category"`
	Quantity       float64       `json:"quantity"`
	Unit           string        `json:"unit"`
	Price          float64       `json:"price"`
	Currency       string        `json:"currency"`
	HarvestDate    time.Time     `json:"harvestDate"`
	ExpiryEstimate time.Time     `json:"expiryEstimate"`
	Status         ProductStatus `json:"status"`
	SpoilageRisk   string        `json:"spoilageRisk,omitempty"`
	Location       Location      `json:"location"`
}

// Metric is one measured value inside an analytics record.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Trend string  `json:"trend"`
}

// Analytics is an NGO regional analytics record.
type Analytics struct {
	ID          string    `json:"_id,omitempty"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Region      string    `json:"region"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Metrics     []Metric  `json:"metrics"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// WeatherDay is one day of a forecast.
type WeatherDay struct {
	Date        string `json:"date"`
	Temperature struct {
		Min     float64 `json:"min"`
		Max     float64 `json:"max"`
		Average float64 `json:"average"`
	} `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	Precipitation struct {
		Probability float64 `json:"probability"`
		Amount      float64 `json:"amount"`
	} `json:"precipitation"`
	Condition string `json:"condition"`
}

// WeatherForecast is the forecast for a named location.
type WeatherForecast struct {
	Location struct {
		Name        string      `json:"name"`
		Country     string      `json:"country"`
		Coordinates Coordinates `json:"coordinates"`
	} `json:"location"`
	Forecast []WeatherDay `json:"forecast"`
}
