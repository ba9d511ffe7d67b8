package shopclient

import (
	"time"

	"github.com/Skotchmaster/storefront/pkg/store"
)

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type OrderCreate struct {
	Items           []store.CartItem `json:"items"`
	Total           float64          `json:"total"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerAddress string           `json:"customer_address,omitempty"`
	Notes           string           `json:"notes,omitempty"`
}

type Order struct {
	ID              string           `json:"id"`
	Items           []store.CartItem `json:"items"`
	Total           float64          `json:"total"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerAddress string           `json:"customer_address,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	Status          string           `json:"status"`
}
