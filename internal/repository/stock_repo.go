package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Strife-cyber/agro/internal/model"
)

// StockRepository is the data access contract for the inventory ledger.
// All mutating methods take a live *gorm.DB transaction: the service layer
// owns transaction boundaries so ledger writes and their audit rows commit
// or roll back together.
type StockRepository interface {
	FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*model.Stock, error)
	// FindFirstByProduct returns the ledger entry for the product in any
	// warehouse, oldest first. Used by the stock alert lookup.
	FindFirstByProduct(ctx context.Context, productID uuid.UUID) (*model.Stock, error)
	List(ctx context.Context) ([]model.Stock, error)

	// FindForUpdateTx locks the row (SELECT … FOR UPDATE) so concurrent
	// mutators of the same pair serialize.
	FindForUpdateTx(tx *gorm.DB, productID, warehouseID uuid.UUID) (*model.Stock, error)
	CreateTx(tx *gorm.DB, s *model.Stock) error
	SaveTx(tx *gorm.DB, s *model.Stock) error
	// DecrementTx atomically subtracts qty, guarded so the row is only
	// touched when enough stock remains. Returns the rows-affected count:
	// 0 means the entry is missing or would go negative.
	DecrementTx(tx *gorm.DB, productID, warehouseID uuid.UUID, qty decimal.Decimal) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*model.Stock, error) {
	var s model.Stock
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&s).Error
	return &s, err
}

func (r *stockRepo) FindFirstByProduct(ctx context.Context, productID uuid.UUID) (*model.Stock, error) {
	var s model.Stock
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("last_updated ASC").
		First(&s).Error
	return &s, err
}

func (r *stockRepo) List(ctx context.Context) ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Warehouse").
		Order("last_updated DESC").
		Find(&stocks).Error
	return stocks, err
}

func (r *stockRepo) FindForUpdateTx(tx *gorm.DB, productID, warehouseID uuid.UUID) (*model.Stock, error) {
	var s model.Stock
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&s).Error
	return &s, err
}

func (r *stockRepo) CreateTx(tx *gorm.DB, s *model.Stock) error {
	s.LastUpdated = time.Now().UTC()
	return tx.Create(s).Error
}

func (r *stockRepo) SaveTx(tx *gorm.DB, s *model.Stock) error {
	s.LastUpdated = time.Now().UTC()
	return tx.Save(s).Error
}

func (r *stockRepo) DecrementTx(tx *gorm.DB, productID, warehouseID uuid.UUID, qty decimal.Decimal) (int64, error) {
	res := tx.Model(&model.Stock{}).
		Where("product_id = ? AND warehouse_id = ? AND quantity >= ?", productID, warehouseID, qty).
		Updates(map[string]interface{}{
			"quantity":     gorm.Expr("quantity - ?", qty),
			"last_updated": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *stockRepo) DB() *gorm.DB { return r.db }
