package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
)

func TestGetProductsByCategory(t *testing.T) {
	env := newTestEnv(t)

	env.createProduct(models.Product{Name: "soap", Price: 3.5, Category: "soaps"})
	env.createProduct(models.Product{Name: "cream", Price: 7, Category: "creams"})
	env.createProduct(models.Product{Name: "soap deluxe", Price: 5, Category: "soaps"})

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products?category=soaps", nil)
	require.NoError(t, env.P.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	for _, p := range resp {
		require.Equal(t, "soaps", p.Category)
	}
}

func TestGetProductsEmptyIsArray(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products", nil)
	require.NoError(t, env.P.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	prod := env.createProduct(models.Product{Name: "soap", Price: 3.5, Category: "soaps", Stock: 12})

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products/"+prod.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(prod.ID)
	require.NoError(t, env.P.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, prod.ID, resp.ID)
	require.Equal(t, 12, resp.Stock)
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/products/missing", nil)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	err := env.P.GetProduct(c)
	require.Error(t, err)
}

func TestGetCategories(t *testing.T) {
	env := newTestEnv(t)

	env.createProduct(models.Product{Name: "soap", Price: 3.5, Category: "soaps"})
	env.createProduct(models.Product{Name: "cream", Price: 7, Category: "creams"})
	env.createProduct(models.Product{Name: "soap deluxe", Price: 5, Category: "soaps"})

	rec, c := env.doJSONRequest(http.MethodGet, "/api/categories", nil)
	require.NoError(t, env.P.GetCategories(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, []string{"creams", "soaps"}, resp)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/admin/products", map[string]any{
		"name":     "soap",
		"price":    3.5,
		"category": "soaps",
		"stock":    10,
	})
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	require.Equal(t, "soap", resp.Name)

	event := env.lastEvent()
	require.Equal(t, "product_events", event.Topic)
	require.Equal(t, "product_created", event.Event["type"])
}

func TestPatchProduct(t *testing.T) {
	env := newTestEnv(t)
	prod := env.createProduct(models.Product{Name: "soap", Price: 3.5, Category: "soaps"})

	rec, c := env.doJSONRequest(http.MethodPatch, "/api/admin/products/"+prod.ID, map[string]any{
		"price": 4.25,
	})
	c.SetParamNames("id")
	c.SetParamValues(prod.ID)
	require.NoError(t, env.P.PatchProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 4.25, resp.Price)
	require.Equal(t, "soap", resp.Name)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	prod := env.createProduct(models.Product{Name: "soap", Price: 3.5, Category: "soaps"})

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/admin/products/"+prod.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(prod.ID)
	require.NoError(t, env.P.DeleteProduct(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&count).Error)
	require.Zero(t, count)
}
