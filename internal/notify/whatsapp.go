package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
)

const defaultGraphURL = "https://graph.facebook.com/v17.0"

// WhatsAppNotifier sends new-order notifications through the WhatsApp
// business API. A zero token disables it; callers treat failures as
// log-and-continue, never as order failures.
type WhatsAppNotifier struct {
	// BaseURL points at the graph API; overridable for tests.
	BaseURL     string
	token       string
	phoneNumber string
	httpClient  *http.Client
}

func NewWhatsAppNotifier(token, phoneNumber string) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		BaseURL:     defaultGraphURL,
		token:       token,
		phoneNumber: phoneNumber,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *WhatsAppNotifier) Enabled() bool {
	return n.token != "" && n.phoneNumber != ""
}

func (n *WhatsAppNotifier) SendOrderNotification(ctx context.Context, order models.Order, items []models.OrderItem) error {
	if !n.Enabled() {
		return fmt.Errorf("whatsapp credentials not configured")
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                order.CustomerPhone,
		"type":              "text",
		"text":              map[string]string{"body": formatOrderMessage(order, items)},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/%s/messages", n.BaseURL, n.phoneNumber),
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whatsapp send failed with status: %d", resp.StatusCode)
	}
	return nil
}

func formatOrderMessage(order models.Order, items []models.OrderItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order from %s!\n\nItems:\n", order.CustomerName)
	for _, it := range items {
		fmt.Fprintf(&b, "- %dx %s ($%.2f)\n", it.Quantity, it.ProductID, it.Price)
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f\n", order.Total)
	if order.CustomerAddress != "" {
		fmt.Fprintf(&b, "\nDelivery address: %s", order.CustomerAddress)
	}
	if order.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s", order.Notes)
	}
	return b.String()
}
