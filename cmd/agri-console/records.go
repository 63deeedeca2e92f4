package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/BrianJOC/agri-console/api"
	"github.com/BrianJOC/agri-console/dashboard"
)

// Record command flags
var (
	cropIn      cropFlags
	productIn   productFlags
	analyticsIn analyticsFlags

	weatherCity    string
	weatherCountry string
)

type cropFlags struct {
	name       string
	variety    string
	planted    string
	harvest    string
	area       float64
	soil       string
	irrigation string
	status     string
}

func (f *cropFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Crop name")
	fs.StringVar(&f.variety, "variety", "", "Crop variety")
	fs.StringVar(&f.planted, "planted", "", "Planting date (YYYY-MM-DD)")
	fs.StringVar(&f.harvest, "harvest", "", "Expected harvest date (YYYY-MM-DD)")
	fs.Float64Var(&f.area, "area", 0, "Area in hectares")
	fs.StringVar(&f.soil, "soil", "", "Soil type")
	fs.StringVar(&f.irrigation, "irrigation", "", "Irrigation type")
	fs.StringVar(&f.status, "status", string(api.CropGrowing), "growing, harvested or failed")
}

// apply copies the flags onto c. Unless all is set only flags given on the
// command line are copied.
func (f cropFlags) apply(cmd *cobra.Command, c *api.Crop, all bool) error {
	set := changed(cmd, all)
	if set("name") {
		c.Name = strings.TrimSpace(f.name)
	}
	if set("variety") {
		c.Variety = f.variety
	}
	if set("area") {
		if f.area < 0 {
			return errors.New("--area must not be negative")
		}
		c.Area = f.area
	}
	if set("soil") {
		c.SoilType = f.soil
	}
	if set("irrigation") {
		c.IrrigationType = f.irrigation
	}
	if set("status") {
		switch status := api.CropStatus(f.status); status {
		case api.CropGrowing, api.CropHarvested, api.CropFailed:
			c.Status = status
		default:
			return fmt.Errorf("unknown crop status %q", f.status)
		}
	}
	var err error
	if set("planted") {
		if c.PlantingDate, err = parseDate("planted", f.planted); err != nil {
			return err
		}
	}
	if set("harvest") {
		if c.ExpectedHarvestDate, err = parseDate("harvest", f.harvest); err != nil {
			return err
		}
	}
	return nil
}

type productFlags struct {
	name        string
	description string
	category    string
	quantity    float64
	unit        string
	price       float64
	currency    string
	harvest     string
	expiry      string
	status      string
	country     string
	region      string
}

func (f *productFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Product name")
	fs.StringVar(&f.description, "description", "", "Product description")
	fs.StringVar(&f.category, "category", "", "Category, e.g. vegetables or grains")
	fs.Float64Var(&f.quantity, "quantity", 0, "Quantity in stock")
	fs.StringVar(&f.unit, "unit", "kg", "Quantity unit")
	fs.Float64Var(&f.price, "price", 0, "Unit price")
	fs.StringVar(&f.currency, "currency", "KES", "Price currency")
	fs.StringVar(&f.harvest, "harvest", "", "Harvest date (YYYY-MM-DD)")
	fs.StringVar(&f.expiry, "expiry", "", "Estimated expiry date (YYYY-MM-DD)")
	fs.StringVar(&f.status, "status", string(api.ProductAvailable), "available, reserved or sold")
	fs.StringVar(&f.country, "country", "", "Country the product is stored in")
	fs.StringVar(&f.region, "region", "", "Region the product is stored in")
}

func (f productFlags) apply(cmd *cobra.Command, p *api.Product, all bool) error {
	set := changed(cmd, all)
	if set("name") {
		p.Name = strings.TrimSpace(f.name)
	}
	if set("description") {
		p.Description = f.description
	}
	if set("category") {
		p.Category = strings.ToLower(strings.TrimSpace(f.category))
	}
	if set("quantity") {
		if f.quantity < 0 {
			return errors.New("--quantity must not be negative")
		}
		p.Quantity = f.quantity
	}
	if set("unit") {
		p.Unit = f.unit
	}
	if set("price") {
		if f.price < 0 {
			return errors.New("--price must not be negative")
		}
		p.Price = f.price
	}
	if set("currency") {
		p.Currency = strings.ToUpper(f.currency)
	}
	if set("status") {
		switch status := api.ProductStatus(f.status); status {
		case api.ProductAvailable, api.ProductReserved, api.ProductSold:
			p.Status = status
		default:
			return fmt.Errorf("unknown product status %q", f.status)
		}
	}
	if set("country") {
		p.Location.Country = f.country
	}
	if set("region") {
		p.Location.Region = f.region
	}
	var err error
	if set("harvest") {
		if p.HarvestDate, err = parseDate("harvest", f.harvest); err != nil {
			return err
		}
	}
	if set("expiry") {
		if p.ExpiryEstimate, err = parseDate("expiry", f.expiry); err != nil {
			return err
		}
	}
	return nil
}

type analyticsFlags struct {
	title   string
	kind    string
	region  string
	start   string
	end     string
	status  string
	metrics []string
}

func (f *analyticsFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "Report title")
	fs.StringVar(&f.kind, "type", "", "Report type, e.g. yield or waste")
	fs.StringVar(&f.region, "region", "", "Region covered")
	fs.StringVar(&f.start, "start", "", "Period start (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", "", "Period end (YYYY-MM-DD)")
	fs.StringVar(&f.status, "status", "active", "Report status")
	fs.StringArrayVar(&f.metrics, "metric", nil, "Metric as name=value[:unit[:trend]], repeatable")
}

func (f analyticsFlags) record() (api.Analytics, error) {
	a := api.Analytics{
		Title:  strings.TrimSpace(f.title),
		Type:   strings.ToLower(strings.TrimSpace(f.kind)),
		Region: strings.TrimSpace(f.region),
		Status: f.status,
	}
	var err error
	if a.StartDate, err = parseDate("start", f.start); err != nil {
		return api.Analytics{}, err
	}
	if a.EndDate, err = parseDate("end", f.end); err != nil {
		return api.Analytics{}, err
	}
	if !a.EndDate.IsZero() && a.EndDate.Before(a.StartDate) {
		return api.Analytics{}, errors.New("--end must not be before --start")
	}
	for _, raw := range f.metrics {
		m, err := parseMetric(raw)
		if err != nil {
			return api.Analytics{}, err
		}
		a.Metrics = append(a.Metrics, m)
	}
	return a, nil
}

// parseMetric reads "name=value[:unit[:trend]]".
func parseMetric(raw string) (api.Metric, error) {
	name, rest, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return api.Metric{}, fmt.Errorf("metric %q: want name=value[:unit[:trend]]", raw)
	}
	parts := strings.SplitN(rest, ":", 3)
	value, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return api.Metric{}, fmt.Errorf("metric %q: %w", raw, err)
	}
	m := api.Metric{Name: name, Value: value, Trend: "stable"}
	if len(parts) > 1 {
		m.Unit = parts[1]
	}
	if len(parts) > 2 {
		switch trend := strings.ToLower(parts[2]); trend {
		case "up", "down", "stable":
			m.Trend = trend
		default:
			return api.Metric{}, fmt.Errorf("metric %q: trend must be up, down or stable", raw)
		}
	}
	return m, nil
}

func changed(cmd *cobra.Command, all bool) func(string) bool {
	return func(name string) bool {
		return all || cmd.Flags().Changed(name)
	}
}

// parseDate reads YYYY-MM-DD. An empty value is the zero time.
func parseDate(flag, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be a YYYY-MM-DD date: %w", flag, err)
	}
	return t, nil
}

// explain adds a sign-in hint to authorization failures.
func explain(err error) error {
	var httpErr api.HTTPError
	if errors.As(err, &httpErr) && httpErr.Unauthorized() {
		return fmt.Errorf("%w (sign in with `agri-console login`)", err)
	}
	return err
}

func findByKey[T any](items []T, key func(T) string, id string) (T, bool) {
	for _, item := range items {
		if key(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// withClient runs fn against the backend client and reports its outcome.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, client *api.Client) (string, error)) error {
	e, err := loadEnv(cmd, false)
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	client, err := e.backend()
	if err != nil {
		return err
	}
	msg, err := fn(cmd.Context(), client)
	if err != nil {
		return explain(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

var cropsAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Add a crop",
	Example: `  agri-console crops add --name Maize --planted 2024-03-10 --harvest 2024-08-15 --area 2.5`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var crop api.Crop
		if err := cropIn.apply(cmd, &crop, true); err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, client *api.Client) (string, error) {
			saved, err := client.AddCrop(ctx, crop)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Added crop %s (%s)", saved.Name, saved.ID), nil
		})
	},
}

var cropsUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Change fields of a crop",
	Example: `  agri-console crops update c1 --status harvested`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, client *api.Client) (string, error) {
			return updateCrop(ctx, cmd, client, args[0])
		})
	},
}

func updateCrop(ctx context.Context, cmd *cobra.Command, client *api.Client, id string) (string, error) {
	crops, err := client.ListCrops(ctx)
	if err != nil {
		return "", err
	}
	crop, ok := findByKey(crops, dashboard.CropKey, id)
	if !ok {
		return "", fmt.Errorf("crop %q not found", id)
	}
	if err := cropIn.apply(cmd, &crop, false); err != nil {
		return "", err
	}
	saved, err := client.UpdateCrop(ctx, id, crop)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated crop %s (%s)", saved.Name, id), nil
}

var productsAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Add an inventory item",
	Example: `  agri-console products add --name Tomatoes --category vegetables --quantity 120 --price 80`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var product api.Product
		if err := productIn.apply(cmd, &product, true); err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, client *api.Client) (string, error) {
			saved, err := client.AddProduct(ctx, product)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Added product %s (%s)", saved.Name, saved.ID), nil
		})
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Change fields of an inventory item",
	Example: `  agri-console products update p1 --status sold`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, client *api.Client) (string, error) {
			products, err := client.ListProducts(ctx)
			if err != nil {
				return "", err
			}
			product, ok := findByKey(products, dashboard.ProductKey, args[0])
			if !ok {
				return "", fmt.Errorf("product %q not found", args[0])
			}
			if err := productIn.apply(cmd, &product, false); err != nil {
				return "", err
			}
			saved, err := client.UpdateProduct(ctx, args[0], product)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Updated product %s (%s)", saved.Name, args[0]), nil
		})
	},
}

var analyticsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Publish an analytics report",
	Example: `  agri-console analytics add --title "Eastern maize yield" --type yield --region Eastern \
    --start 2024-01-01 --end 2024-03-31 --metric yield=2.8:t/ha:up`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := analyticsIn.record()
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, client *api.Client) (string, error) {
			saved, err := client.CreateAnalytics(ctx, record)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Published %s (%s)", saved.Title, saved.ID), nil
		})
	},
}

func deleteCmd(noun string, remove func(*api.Client) func(context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client *api.Client) (string, error) {
				if err := remove(client)(ctx, args[0]); err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted %s %s", noun, args[0]), nil
			})
		},
	}
}

var weatherCmd = &cobra.Command{
	Use:     "weather",
	Short:   "Show the weather forecast for a city",
	Example: `  agri-console weather --city Nairobi --country KE`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, false)
		if err != nil {
			return err
		}
		defer func() { _ = e.logger.Sync() }()

		src, ok := e.source().(dashboard.ForecastSource)
		if !ok {
			return errors.New("forecasts are not available from this source")
		}
		forecast, err := src.Forecast(cmd.Context(), weatherCity, weatherCountry)
		if err != nil {
			return fmt.Errorf("failed to load forecast: %w", explain(err))
		}
		return printForecast(cmd, forecast, e.cfg.ItemsPerPage)
	},
}

func printForecast(cmd *cobra.Command, forecast api.WeatherForecast, itemsPerPage int) error {
	w := cmd.OutOrStdout()
	place := forecast.Location.Name
	if forecast.Location.Country != "" {
		place += ", " + forecast.Location.Country
	}
	fmt.Fprintf(w, "Forecast for %s\n\n", place)
	return printTable(w, dashboard.ForecastColumns(), dashboard.ForecastKey, forecast.Forecast, itemsPerPage)
}

func init() {
	cropIn.bind(cropsAddCmd)
	cropIn.bind(cropsUpdateCmd)
	_ = cropsAddCmd.MarkFlagRequired("name")
	_ = cropsAddCmd.MarkFlagRequired("planted")
	_ = cropsAddCmd.MarkFlagRequired("area")

	productIn.bind(productsAddCmd)
	productIn.bind(productsUpdateCmd)
	_ = productsAddCmd.MarkFlagRequired("name")
	_ = productsAddCmd.MarkFlagRequired("category")
	_ = productsAddCmd.MarkFlagRequired("quantity")
	_ = productsAddCmd.MarkFlagRequired("price")

	analyticsIn.bind(analyticsAddCmd)
	_ = analyticsAddCmd.MarkFlagRequired("title")
	_ = analyticsAddCmd.MarkFlagRequired("type")
	_ = analyticsAddCmd.MarkFlagRequired("region")

	weatherCmd.Flags().StringVar(&weatherCity, "city", "", "City name")
	weatherCmd.Flags().StringVar(&weatherCountry, "country", "", "Country name or code")
	_ = weatherCmd.MarkFlagRequired("city")

	cropsCmd.AddCommand(cropsAddCmd, cropsUpdateCmd, deleteCmd("crop", func(c *api.Client) func(context.Context, string) error {
		return c.DeleteCrop
	}))
	productsCmd.AddCommand(productsAddCmd, productsUpdateCmd, deleteCmd("product", func(c *api.Client) func(context.Context, string) error {
		return c.DeleteProduct
	}))
	analyticsCmd.AddCommand(analyticsAddCmd, deleteCmd("report", func(c *api.Client) func(context.Context, string) error {
		return c.DeleteAnalytics
	}))
	rootCmd.AddCommand(weatherCmd)
}
