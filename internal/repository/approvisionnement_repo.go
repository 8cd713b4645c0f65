package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Strife-cyber/agro/internal/dto"
	"github.com/Strife-cyber/agro/internal/model"
)

type ApprovisionnementRepository interface {
	Create(ctx context.Context, a *model.Approvisionnement) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Approvisionnement, error)
	List(ctx context.Context, filter dto.ApprovisionnementFilter) ([]model.Approvisionnement, int64, error)

	// FindForUpdateTx locks the record so two actors cannot race the same
	// state transition.
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Approvisionnement, error)
	SaveTx(tx *gorm.DB, a *model.Approvisionnement) error

	DB() *gorm.DB
}

type approvisionnementRepo struct{ db *gorm.DB }

func NewApprovisionnementRepository(db *gorm.DB) ApprovisionnementRepository {
	return &approvisionnementRepo{db: db}
}

func (r *approvisionnementRepo) Create(ctx context.Context, a *model.Approvisionnement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *approvisionnementRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Approvisionnement, error) {
	var a model.Approvisionnement
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Warehouse").
		First(&a, id).Error
	return &a, err
}

func (r *approvisionnementRepo) List(ctx context.Context, filter dto.ApprovisionnementFilter) ([]model.Approvisionnement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Approvisionnement{})

	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.WarehouseID != "" {
		q = q.Where("warehouse_id = ?", filter.WarehouseID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var records []model.Approvisionnement
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&records).Error
	return records, total, err
}

func (r *approvisionnementRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Approvisionnement, error) {
	var a model.Approvisionnement
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, id).Error
	return &a, err
}

func (r *approvisionnementRepo) SaveTx(tx *gorm.DB, a *model.Approvisionnement) error {
	return tx.Save(a).Error
}

func (r *approvisionnementRepo) DB() *gorm.DB { return r.db }
