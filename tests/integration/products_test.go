//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/shelfwise/shelfwise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productPayload struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Views        int      `json:"views"`
	Tags         []string `json:"tags"`
	Discount     float64  `json:"discount"`
	Status       string   `json:"status"`
}

func createProduct(t *testing.T, client *testutil.Client, body map[string]interface{}) productPayload {
	t.Helper()

	resp, err := client.POST("/api/v1/products", body)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Data productPayload `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Data
}

func TestProducts_Create(t *testing.T) {
	client := newStoreKeeperClient(t)

	product := createProduct(t, client, map[string]interface{}{
		"name":     testutil.RandomName("Ceramic Mug"),
		"category": "Kitchen",
		"price":    12.50,
		"tags":     []string{"ceramic", "mug"},
	})

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Kitchen", product.Category)
	assert.Equal(t, 12.50, product.Price)
	assert.Equal(t, "published", product.Status)
	assert.Equal(t, 0, product.Views)
}

func TestProducts_Create_InvalidPrice(t *testing.T) {
	client := newStoreKeeperClient(t).WithoutValidation()

	resp, err := client.POST("/api/v1/products", map[string]interface{}{
		"name":  "Broken",
		"price": -5,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestProducts_Get_IncrementsViews(t *testing.T) {
	client := newStoreKeeperClient(t)
	product := createProduct(t, client, map[string]interface{}{
		"name":  testutil.RandomName("Lamp"),
		"price": 30.0,
	})

	var last productPayload
	for i := 0; i < 3; i++ {
		resp, err := client.GET("/api/v1/products/" + product.ID)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Data productPayload `json:"data"`
		}
		testutil.DecodeJSON(t, resp, &result)
		last = result.Data
	}

	assert.Equal(t, 3, last.Views)
}

func TestProducts_Get_NotFound(t *testing.T) {
	client := newStoreKeeperClient(t)

	resp, err := client.GET("/api/v1/products/00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProducts_Update(t *testing.T) {
	client := newStoreKeeperClient(t)
	product := createProduct(t, client, map[string]interface{}{
		"name":  testutil.RandomName("Chair"),
		"price": 45.0,
	})

	resp, err := client.PUT("/api/v1/products/"+product.ID, map[string]interface{}{
		"name":     product.Name + " v2",
		"category": "Furniture",
		"price":    55.0,
		"discount": 10,
		"status":   "draft",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data productPayload `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, product.Name+" v2", result.Data.Name)
	assert.Equal(t, 55.0, result.Data.Price)
	assert.Equal(t, "draft", result.Data.Status)
	assert.Equal(t, 10.0, result.Data.Discount)
}

func TestProducts_Update_NotFound(t *testing.T) {
	client := newStoreKeeperClient(t)

	resp, err := client.PUT("/api/v1/products/00000000-0000-0000-0000-000000000000", map[string]interface{}{
		"name":   "Ghost",
		"price":  1.0,
		"status": "published",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProducts_List_Pagination(t *testing.T) {
	client := newStoreKeeperClient(t)
	category := testutil.RandomName("pagination")

	for i := 0; i < 5; i++ {
		createProduct(t, client, map[string]interface{}{
			"name":     fmt.Sprintf("%s item %d", category, i),
			"category": category,
			"price":    10.0,
		})
	}

	resp, err := client.GET("/api/v1/products?category=" + category + "&page=1&limit=2")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Products   []productPayload `json:"products"`
			Pagination struct {
				Page  int `json:"page"`
				Limit int `json:"limit"`
				Total int `json:"total"`
				Pages int `json:"pages"`
			} `json:"pagination"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Len(t, result.Data.Products, 2)
	assert.Equal(t, 1, result.Data.Pagination.Page)
	assert.Equal(t, 2, result.Data.Pagination.Limit)
	assert.Equal(t, 5, result.Data.Pagination.Total)
	assert.Equal(t, 3, result.Data.Pagination.Pages)
}

func TestProducts_List_SearchByName(t *testing.T) {
	client := newStoreKeeperClient(t)
	name := testutil.RandomName("Searchable Kettle")
	createProduct(t, client, map[string]interface{}{
		"name":  name,
		"price": 25.0,
	})

	resp, err := client.GET("/api/v1/products?search=" + url.QueryEscape(name[:len(name)-3]))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Products []productPayload `json:"products"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.Data.Products)
	assert.Equal(t, name, result.Data.Products[0].Name)
}

func TestProducts_List_StatusFilter(t *testing.T) {
	client := newStoreKeeperClient(t)
	category := testutil.RandomName("statuses")

	createProduct(t, client, map[string]interface{}{
		"name":     testutil.RandomName("Published"),
		"category": category,
		"price":    10.0,
		"status":   "published",
	})
	createProduct(t, client, map[string]interface{}{
		"name":     testutil.RandomName("Draft"),
		"category": category,
		"price":    10.0,
		"status":   "draft",
	})

	resp, err := client.GET("/api/v1/products?category=" + category + "&status=draft")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Products []productPayload `json:"products"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.Len(t, result.Data.Products, 1)
	assert.Equal(t, "draft", result.Data.Products[0].Status)
}

func TestProducts_List_InvalidStatusFilter(t *testing.T) {
	client := newStoreKeeperClient(t).WithoutValidation()

	resp, err := client.GET("/api/v1/products?status=archived")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestProducts_List_RequiresAuth(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/products")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestProducts_Delete_AsManager(t *testing.T) {
	manager := newManagerClient(t)
	product := createProduct(t, manager, map[string]interface{}{
		"name":  testutil.RandomName("Disposable"),
		"price": 5.0,
	})

	resp, err := manager.DELETE("/api/v1/products/" + product.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = manager.GET("/api/v1/products/" + product.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProducts_Delete_NotFound(t *testing.T) {
	manager := newManagerClient(t)

	resp, err := manager.DELETE("/api/v1/products/00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
