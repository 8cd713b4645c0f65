package dto

import "github.com/shopspring/decimal"

type OrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required,gte=1"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
}

type ProcessOrderRequest struct {
	WarehouseID     string             `json:"warehouse_id" validate:"required,uuid4"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryOption  bool               `json:"delivery_option"`
	DeliveryAddress *string            `json:"delivery_address"`
	PaymentMethod   string             `json:"payment_method" validate:"required,oneof=direct credit"`
}

type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Product   string          `json:"product,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	ClientID        string              `json:"client_id"`
	WarehouseID     string              `json:"warehouse_id"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	DeliveryOption  bool                `json:"delivery_option"`
	DeliveryAddress *string             `json:"delivery_address,omitempty"`
	PaymentMethod   string              `json:"payment_method"`
	DeliveryID      *string             `json:"delivery_id,omitempty"`
	PaymentID       string              `json:"payment_id,omitempty"`
	Message         string              `json:"message,omitempty"`
	CreatedAt       string              `json:"created_at"`
}

type OrderFilter struct {
	ClientID    string
	WarehouseID string
	Status      string
	Page        int
	Limit       int
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
