//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/shelfwise/shelfwise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardPayload struct {
	Stats struct {
		TotalProducts int     `json:"total_products"`
		TotalEarning  float64 `json:"total_earning"`
		TotalViews    int     `json:"total_views"`
		TotalSales    int     `json:"total_sales"`
	} `json:"stats"`
	RecentSales []struct {
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	} `json:"recent_sales"`
	ChartData struct {
		Monthly []struct {
			Name  string  `json:"name"`
			Value float64 `json:"value"`
		} `json:"monthly"`
		Weekly []struct {
			Name  string  `json:"name"`
			Value float64 `json:"value"`
		} `json:"weekly"`
	} `json:"chart_data"`
}

func getDashboard(t *testing.T, client *testutil.Client) dashboardPayload {
	t.Helper()

	resp, err := client.GET("/api/v1/stats/dashboard")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data dashboardPayload `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Data
}

func TestStats_Dashboard_Shape(t *testing.T) {
	manager := newManagerClient(t)

	dashboard := getDashboard(t, manager)

	assert.Len(t, dashboard.ChartData.Monthly, 12)
	assert.Len(t, dashboard.ChartData.Weekly, 7)
	assert.NotNil(t, dashboard.RecentSales)
	assert.LessOrEqual(t, len(dashboard.RecentSales), 6)
}

func TestStats_Dashboard_CountsProducts(t *testing.T) {
	manager := newManagerClient(t)

	before := getDashboard(t, manager)

	createProduct(t, manager, map[string]interface{}{
		"name":  testutil.RandomName("Counted"),
		"price": 20.0,
	})

	after := getDashboard(t, manager)
	assert.Greater(t, after.Stats.TotalProducts, before.Stats.TotalProducts)
}

func TestStats_Dashboard_CountsViews(t *testing.T) {
	manager := newManagerClient(t)
	product := createProduct(t, manager, map[string]interface{}{
		"name":  testutil.RandomName("Viewed"),
		"price": 20.0,
	})

	before := getDashboard(t, manager)

	resp, err := manager.GET("/api/v1/products/" + product.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	after := getDashboard(t, manager)
	assert.Greater(t, after.Stats.TotalViews, before.Stats.TotalViews)
}
