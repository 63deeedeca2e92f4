package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrianJOC/agri-console/dashboard"
)

func TestPrintTableSortsAndPages(t *testing.T) {
	crops, err := dashboard.MockSource{}.Crops(context.Background())
	require.NoError(t, err)

	sortKey, sortDesc, page = "area", true, 1
	t.Cleanup(func() { sortKey, sortDesc, page = "", false, 1 })

	var out bytes.Buffer
	require.NoError(t, printTable(&out, dashboard.CropColumns(), dashboard.CropKey, crops, 2))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "Area (ha) ↓")
	require.Contains(t, lines[1], "Wheat")
	require.Contains(t, lines[2], "Rice")
	require.Contains(t, lines[3], "Showing 1 to 2 of 7 results")
}

func TestPrintTableRejectsUnsortableColumn(t *testing.T) {
	sortKey, sortDesc, page = "variety", false, 1
	t.Cleanup(func() { sortKey, sortDesc, page = "", false, 1 })

	err := printTable(&bytes.Buffer{}, dashboard.CropColumns(), dashboard.CropKey, nil, 5)
	require.ErrorContains(t, err, "not sortable")
}

func TestPrintTableEmptyPage(t *testing.T) {
	sortKey, sortDesc, page = "", false, 9
	t.Cleanup(func() { sortKey, sortDesc, page = "", false, 1 })

	products, err := dashboard.MockSource{}.Products(context.Background())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printTable(&out, dashboard.ProductColumns(), dashboard.ProductKey, products, 5))
	require.Equal(t, "No records found.\n", out.String())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	require.True(t, strings.HasPrefix(out.String(), "agri-console "))
}

func TestPrintTableRejectsPageZero(t *testing.T) {
	sortKey, sortDesc, page = "", false, 0
	t.Cleanup(func() { sortKey, sortDesc, page = "", false, 1 })

	err := printTable(&bytes.Buffer{}, dashboard.CropColumns(), dashboard.CropKey, nil, 5)
	require.ErrorContains(t, err, "--page must be at least 1")
}
