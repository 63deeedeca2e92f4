package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/BrianJOC/agri-console/api"
	"github.com/BrianJOC/agri-console/dashboard"
	"github.com/BrianJOC/agri-console/table"
)

// Table command flags
var (
	sortKey  string
	sortDesc bool
	page     int
)

func init() {
	for _, cmd := range []*cobra.Command{cropsCmd, productsCmd, analyticsCmd} {
		cmd.Flags().StringVar(&sortKey, "sort", "", "Column key to sort by")
		cmd.Flags().BoolVar(&sortDesc, "desc", false, "Sort descending")
		cmd.Flags().IntVar(&page, "page", 1, "Page to print")
		rootCmd.AddCommand(cmd)
	}
}

var cropsCmd = &cobra.Command{
	Use:   "crops",
	Short: "List your crops",
	Example: `  # Largest fields first
  agri-console crops --sort area --desc

  # Second page, using sample data
  agri-console crops --page 2 --offline`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTable(cmd, dashboard.CropColumns(), dashboard.CropKey, func(ctx context.Context, src dashboard.Source) ([]api.Crop, error) {
			return src.Crops(ctx)
		})
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List marketplace products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTable(cmd, dashboard.ProductColumns(), dashboard.ProductKey, func(ctx context.Context, src dashboard.Source) ([]api.Product, error) {
			return src.Products(ctx)
		})
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "List regional analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTable(cmd, dashboard.AnalyticsColumns(), dashboard.AnalyticsKey, func(ctx context.Context, src dashboard.Source) ([]api.Analytics, error) {
			return src.Analytics(ctx)
		})
	},
}

func runTable[T any](cmd *cobra.Command, columns []table.Column[T], key table.KeyFunc[T], fetch func(context.Context, dashboard.Source) ([]T, error)) error {
	e, err := loadEnv(cmd, false)
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	items, err := fetch(cmd.Context(), e.source())
	if err != nil {
		return fmt.Errorf("failed to load records: %w", explain(err))
	}
	return printTable(cmd.OutOrStdout(), columns, key, items, e.cfg.ItemsPerPage)
}

func printTable[T any](w io.Writer, columns []table.Column[T], key table.KeyFunc[T], items []T, itemsPerPage int) error {
	if page < 1 {
		return errors.New("--page must be at least 1")
	}
	var opts []table.Option[T]
	if sortKey != "" {
		dir := table.Ascending
		if sortDesc {
			dir = table.Descending
		}
		opts = append(opts, table.WithSort[T](sortKey, dir))
	}
	presenter, err := table.New(columns, key, opts...)
	if err != nil {
		return err
	}

	view, err := presenter.Render(items, &table.Pagination{
		ItemsPerPage: itemsPerPage,
		TotalItems:   len(items),
		CurrentPage:  page,
	})
	if err != nil {
		return err
	}
	if len(view.Rows) == 0 {
		fmt.Fprintln(w, "No records found.")
		return nil
	}
	_, err = fmt.Fprint(w, view.Text())
	return err
}
