package dto

// Thin catalog DTOs: products and warehouses are simple CRUD rows the
// workflows reference by id.

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid4"`
	Unit        string  `json:"unit" validate:"omitempty,oneof=unit kg crate"`
}

type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
	Unit        string  `json:"unit"`
	Active      bool    `json:"active"`
}

type CreateWarehouseRequest struct {
	Name    string  `json:"name" validate:"required"`
	Address *string `json:"address"`
}

type WarehouseResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Active  bool    `json:"active"`
}
