package dto

import "github.com/shopspring/decimal"

type AdjustStockRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid4"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid4"`
	Delta       decimal.Decimal `json:"delta" validate:"required"`
	Reason      string          `json:"reason"`
}

type TransferStockRequest struct {
	ProductID       string          `json:"product_id" validate:"required,uuid4"`
	FromWarehouseID string          `json:"from_warehouse_id" validate:"required,uuid4"`
	ToWarehouseID   string          `json:"to_warehouse_id" validate:"required,uuid4"`
	Quantity        decimal.Decimal `json:"quantity" validate:"required,gt=0"`
	Reason          string          `json:"reason"`
}

type StockAlertRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Threshold decimal.Decimal `json:"threshold" validate:"required,gte=0"`
}

type StockEntryResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Product     string          `json:"product,omitempty"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LastUpdated string          `json:"last_updated"`
	Message     string          `json:"message,omitempty"`
}

type WarehouseBreakdown struct {
	WarehouseID string          `json:"warehouse_id"`
	Warehouse   string          `json:"warehouse,omitempty"`
	ItemCount   int             `json:"item_count"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

type AuditEntryResponse struct {
	ID         string `json:"id"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Action     string `json:"action"`
	UserID     string `json:"user_id"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type StockReportResponse struct {
	TotalItems     int                  `json:"total_items"`
	TotalValue     decimal.Decimal      `json:"total_value"`
	LowStock       []StockEntryResponse `json:"low_stock"`
	ByWarehouse    []WarehouseBreakdown `json:"by_warehouse"`
	RecentActivity []AuditEntryResponse `json:"recent_activity"`
}

type StockAlertResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Threshold   decimal.Decimal `json:"threshold"`
	IsLowStock  bool            `json:"is_low_stock"`
	Message     string          `json:"message,omitempty"`
}
