package dto

import "github.com/shopspring/decimal"

type CreateApprovisionnementRequest struct {
	ProductID     string          `json:"product_id" validate:"required,uuid4"`
	WarehouseID   string          `json:"warehouse_id" validate:"required,uuid4"`
	Quantity      decimal.Decimal `json:"quantity" validate:"required,gt=0"`
	ProposedPrice decimal.Decimal `json:"proposed_price" validate:"required,gt=0"`
	DeliveryDate  string          `json:"delivery_date" validate:"required"` // RFC 3339
}

// RejectApprovisionnementRequest carries the optional free-text reason
// forwarded to the supplier.
type RejectApprovisionnementRequest struct {
	Reason string `json:"reason"`
}

type ApprovisionnementResponse struct {
	ID                  string          `json:"id"`
	SupplierID          string          `json:"supplier_id"`
	ProductID           string          `json:"product_id"`
	WarehouseID         string          `json:"warehouse_id"`
	Quantity            decimal.Decimal `json:"quantity"`
	ProposedPrice       decimal.Decimal `json:"proposed_price"`
	DeliveryDate        string          `json:"delivery_date"`
	Status              string          `json:"status"`
	BusinessDeveloperID *string         `json:"business_developer_id,omitempty"`
	StockManagerID      *string         `json:"stock_manager_id,omitempty"`
	RejectionReason     *string         `json:"rejection_reason,omitempty"`
	Message             string          `json:"message,omitempty"`
	CreatedAt           string          `json:"created_at"`
}

type ApprovisionnementFilter struct {
	SupplierID  string
	WarehouseID string
	Status      string
	Page        int
	Limit       int
}

type ApprovisionnementListResponse struct {
	Data  []ApprovisionnementResponse `json:"data"`
	Total int64                       `json:"total"`
	Page  int                         `json:"page"`
	Limit int                         `json:"limit"`
}
