package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Strife-cyber/agro/internal/model"
)

type PaymentRepository interface {
	CreateTx(tx *gorm.DB, p *model.Payment) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Payment, error)
	FindByApprovisionnementID(ctx context.Context, approID uuid.UUID) (*model.Payment, error)
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) CreateTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Create(p).Error
}

func (r *paymentRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error
	return &p, err
}

func (r *paymentRepo) FindByApprovisionnementID(ctx context.Context, approID uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("approvisionnement_id = ?", approID).First(&p).Error
	return &p, err
}

type DeliveryRepository interface {
	CreateTx(tx *gorm.DB, d *model.Delivery) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Delivery, error)
}

type deliveryRepo struct{ db *gorm.DB }

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository { return &deliveryRepo{db: db} }

func (r *deliveryRepo) CreateTx(tx *gorm.DB, d *model.Delivery) error {
	return tx.Create(d).Error
}

func (r *deliveryRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Delivery, error) {
	var d model.Delivery
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&d).Error
	return &d, err
}
