package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Strife-cyber/agro/internal/apierror"
	"github.com/Strife-cyber/agro/internal/dto"
	"github.com/Strife-cyber/agro/internal/model"
	"github.com/Strife-cyber/agro/internal/repository"
)

// CatalogService is the thin CRUD passthrough for products and
// warehouses. The workflow core only references these rows by id.
type CatalogService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context) ([]dto.ProductResponse, error)
	CreateWarehouse(ctx context.Context, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error)
	ListWarehouses(ctx context.Context) ([]dto.WarehouseResponse, error)
}

type catalogService struct {
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
}

func NewCatalogService(products repository.ProductRepository, warehouses repository.WarehouseRepository) CatalogService {
	return &catalogService{products: products, warehouses: warehouses}
}

func (s *catalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		Active:      true,
	}
	if p.Unit == "" {
		p.Unit = "unit"
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apierror.Validation(map[string]string{"category_id": "must be a valid uuid"})
		}
		p.CategoryID = &cid
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, apierror.Internal(err)
	}
	return productToResponse(p), nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = *productToResponse(&products[i])
	}
	return resp, nil
}

func (s *catalogService) CreateWarehouse(ctx context.Context, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w := &model.Warehouse{
		Name:    req.Name,
		Address: req.Address,
		Active:  true,
	}
	if err := s.warehouses.Create(ctx, w); err != nil {
		return nil, apierror.Internal(err)
	}
	return warehouseToResponse(w), nil
}

func (s *catalogService) ListWarehouses(ctx context.Context) ([]dto.WarehouseResponse, error) {
	warehouses, err := s.warehouses.List(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := make([]dto.WarehouseResponse, len(warehouses))
	for i := range warehouses {
		resp[i] = *warehouseToResponse(&warehouses[i])
	}
	return resp, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		Active:      p.Active,
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

func warehouseToResponse(w *model.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:      w.ID.String(),
		Name:    w.Name,
		Address: w.Address,
		Active:  w.Active,
	}
}
