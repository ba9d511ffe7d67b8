package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer mykafka.Publisher
}

func (h *ProductHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// GetProducts returns one page of the catalog, optionally filtered by
// category. The response is a bare array, matching the storefront client.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	offset, limit := util.Calculate(page, util.DefaultPageSize)

	q := h.DB.Model(&models.Product{}).Order("id ASC")
	if category := c.QueryParam("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var items []models.Product
	if err := q.Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	if items == nil {
		items = []models.Product{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	var product models.Product
	if err := h.DB.Where("id = ?", c.Param("id")).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetCategories(c echo.Context) error {
	var categories []string
	if err := h.DB.Model(&models.Product{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		ImageURL    string  `json:"image_url"`
		Category    string  `json:"category"`
		Stock       int     `json:"stock"`
		SKU         string  `json:"sku"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if req.Name == "" || req.Category == "" || req.Price < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name, category and a non-negative price are required")
	}

	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
		SKU:         req.SKU,
	}
	if err := h.DB.Create(&prod).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	h.publish(c, prod.ID, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	var prod models.Product
	if err := h.DB.Where("id = ?", c.Param("id")).First(&prod).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		ImageURL    *string  `json:"image_url"`
		Category    *string  `json:"category"`
		Stock       *int     `json:"stock"`
		SKU         *string  `json:"sku"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "price must be non-negative")
		}
		prod.Price = *req.Price
	}
	if req.ImageURL != nil {
		prod.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}
	if req.Stock != nil {
		prod.Stock = *req.Stock
	}
	if req.SKU != nil {
		prod.SKU = *req.SKU
	}

	if err := h.DB.Save(&prod).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	h.publish(c, prod.ID, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := h.DB.Where("id = ?", id).Delete(&models.Product{}).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	h.publish(c, id, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
