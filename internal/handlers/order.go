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
	"github.com/Skotchmaster/storefront/internal/notify"
)

type OrderHandler struct {
	DB       *gorm.DB
	Producer mykafka.Publisher
	Notifier *notify.WhatsAppNotifier
}

type orderItemRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type orderRequest struct {
	Items           []orderItemRequest `json:"items"`
	Total           float64            `json:"total"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	Notes           string             `json:"notes"`
}

type orderResponse struct {
	models.Order
	Items []models.OrderItem `json:"items"`
}

func (h *OrderHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// CreateOrder persists a submitted cart as an order. Every product is
// verified against the catalog and the total is recomputed from the
// submitted price snapshots, so a tampered total never makes it to storage.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no items in order")
	}
	if req.CustomerName == "" || req.CustomerPhone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "customer name and phone are required")
	}

	var (
		order      models.Order
		orderItems []models.OrderItem
	)

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, it := range req.Items {
			if it.Quantity < 1 {
				return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
			}
			var p models.Product
			if err := tx.Where("id = ?", it.ProductID).First(&p).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "product "+it.ProductID+" not found")
				}
				return err
			}
			total += it.Price * float64(it.Quantity)
		}

		order = models.Order{
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerAddress: req.CustomerAddress,
			Notes:           req.Notes,
			Total:           total,
			Status:          "pending",
			CreatedAt:       time.Now().UTC(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems = make([]models.OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			oi := models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Price,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			orderItems = append(orderItems, oi)
		}
		return nil
	})

	if txErr != nil {
		var he *echo.HTTPError
		if errors.As(txErr, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusInternalServerError, txErr.Error())
	}

	h.publish(c, order.ID, map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"total":   order.Total,
	})

	if h.Notifier != nil && h.Notifier.Enabled() {
		// the context is pooled by echo once the handler returns, so it must
		// not be touched from the goroutine; resolve the logger up front
		logger := c.Logger()
		go func(order models.Order, items []models.OrderItem) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.Notifier.SendOrderNotification(ctx, order, items); err != nil {
				logger.Warnf("WhatsApp notification failed: %v", err)
			}
		}(order, orderItems)
	}

	return c.JSON(http.StatusCreated, orderResponse{Order: order, Items: orderItems})
}
